package cli

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tenji/pkg/config"
	"github.com/matzehuels/tenji/pkg/errors"
	"github.com/matzehuels/tenji/pkg/pipeline"
)

type convertFlags struct {
	format  string
	raised  string
	flat    string
	file    string
	output  string
	noCache bool
	refresh bool
	stats   bool
}

func (c *CLI) convertCommand() *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert [mora...]",
		Short: "Convert romanized mora to braille",
		Long: `Convert space-separated romanized mora to Japanese braille.

Each argument is one or more tokens; arguments are joined with a single space.
Without arguments the text is read from --file or stdin, where line breaks and
runs of whitespace count as one separator.

Tokens are uppercase: an optional consonant (K S T N H M R G Z D B P Y W),
optionally doubled for a geminate, an optional Y for a palatalized sound, and
a vowel (A I U E O). "N" and "-" stand alone.`,
		Example: `  tenji convert KA SI
  tenji convert --format unicode KYA PPA N
  echo "TO U KYO U" | tenji convert -f json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: "+strings.Join(config.Formats, ", "))
	cmd.Flags().StringVar(&flags.raised, "raised", "", "symbol for a raised dot")
	cmd.Flags().StringVar(&flags.flat, "flat", "", "symbol for a flat dot")
	cmd.Flags().StringVarP(&flags.file, "file", "i", "", "read input from file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to file")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "print token and cell counts to stderr")
	cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(config.Formats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, args []string, flags convertFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	text, fromStream, err := readInput(cmd, args, flags.file)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		Text:      text,
		Format:    flags.format,
		Raised:    flags.raised,
		Flat:      flags.flat,
		Normalize: fromStream,
		Refresh:   flags.refresh,
	}
	opts.FromConfig(c.cfg)

	runner := c.newRunner(ctx, flags.noCache)
	defer runner.Close()

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done("converted", "tokens", res.Tokens, "cells", res.Cells, "cached", res.Cached)

	out := append(res.Output, '\n')
	if flags.output != "" {
		if err := errors.ValidatePath(flags.output); err != nil {
			return err
		}
		if err := os.WriteFile(flags.output, out, 0644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", flags.output)
		}
		printSuccess(c.Err, "Converted %s", plural(res.Tokens, "token"))
		printFile(c.Err, flags.output)
	} else if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return err
	}

	if flags.stats {
		printStats(c.Err, res.Tokens, res.Cells, res.Cached)
	}
	return nil
}

// readInput returns the text to convert. fromStream reports whether it came
// from a file or stdin, where whitespace is normalized.
func readInput(cmd *cobra.Command, args []string, file string) (text string, fromStream bool, err error) {
	switch {
	case len(args) > 0 && file != "":
		return "", false, errors.New(errors.ErrCodeInvalidInput, "give either arguments or --file, not both")
	case len(args) > 0:
		return strings.Join(args, " "), false, nil
	case file != "":
		if err := errors.ValidatePath(file); err != nil {
			return "", false, err
		}
		f, err := os.Open(file)
		if os.IsNotExist(err) {
			return "", false, errors.New(errors.ErrCodeFileNotFound, "file not found: %s", file)
		}
		if err != nil {
			return "", false, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", file)
		}
		defer f.Close()
		text, err = readLimited(f, file)
		return text, true, err
	}

	text, err = readLimited(cmd.InOrStdin(), "stdin")
	return text, true, err
}

// readLimited reads r whole, failing rather than truncating when it holds
// more than errors.MaxInputLength bytes.
func readLimited(r io.Reader, name string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, errors.MaxInputLength+1))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", name)
	}
	if err := errors.ValidateLength(len(data)); err != nil {
		return "", err
	}
	return string(data), nil
}
