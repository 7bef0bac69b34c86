package pipeline_test

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tenji/pkg/pipeline"
)

func ExampleRunner_Execute() {
	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))

	res, err := runner.Execute(context.Background(), pipeline.Options{
		Text:      "KYA\nPPA  N",
		Normalize: true,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(res.Output))
	fmt.Println(res.Tokens, "tokens,", res.Cells, "cells")
	// Output:
	// -o o- -- -- o- --
	// -- -- o- -- -- -o
	// -- -o -- -o oo oo
	// 3 tokens, 6 cells
}

func ExampleRunner_Execute_unicode() {
	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))

	res, err := runner.Execute(context.Background(), pipeline.Options{
		Text:   "TE N TI",
		Format: pipeline.FormatUnicode,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(res.Output))
	// Output: ⠟⠴⠗
}
