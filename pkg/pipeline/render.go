package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/tenji/pkg/tenji"
)

// Document is the JSON rendering of a conversion.
type Document struct {
	Grid    string          `json:"grid"`
	Unicode string          `json:"unicode"`
	Tokens  []DocumentToken `json:"tokens"`
}

// DocumentToken describes one input token in a Document.
type DocumentToken struct {
	Text        string   `json:"text"`
	Consonant   string   `json:"consonant,omitempty"`
	Geminated   bool     `json:"geminated,omitempty"`
	Palatalized bool     `json:"palatalized,omitempty"`
	Core        string   `json:"core"`
	Cells       []string `json:"cells"`
	Dots        [][]int  `json:"dots"`
}

// NewDocument builds a Document from analyzed tokens.
func NewDocument(tokens []tenji.Token, g tenji.Glyphs) Document {
	cells := tenji.Flatten(tokens)
	doc := Document{
		Grid:    tenji.Layout(cells, g),
		Unicode: tenji.Unicode(cells),
		Tokens:  make([]DocumentToken, 0, len(tokens)),
	}
	for _, t := range tokens {
		dt := DocumentToken{
			Text:        t.Text,
			Consonant:   t.Mora.Consonant.String(),
			Geminated:   t.Mora.Geminated,
			Palatalized: t.Mora.Palatalized,
			Core:        t.Mora.Core.String(),
			Cells:       make([]string, len(t.Cells)),
			Dots:        make([][]int, len(t.Cells)),
		}
		for i, c := range t.Cells {
			dt.Cells[i] = c.String()
			dt.Dots[i] = c.Dots()
		}
		doc.Tokens = append(doc.Tokens, dt)
	}
	return doc
}

// Render formats analyzed tokens in the given format.
func Render(tokens []tenji.Token, format string, g tenji.Glyphs) ([]byte, error) {
	switch format {
	case FormatText:
		return []byte(tenji.Layout(tenji.Flatten(tokens), g)), nil
	case FormatUnicode:
		return []byte(tenji.Unicode(tenji.Flatten(tokens))), nil
	case FormatJSON:
		return json.MarshalIndent(NewDocument(tokens, g), "", "  ")
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}
