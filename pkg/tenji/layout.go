package tenji

import (
	"fmt"
	"strings"
)

// Token is one analyzed input token.
type Token struct {
	Text  string
	Mora  Mora
	Cells Sequence
}

// Analyze splits text on single spaces and decomposes and composes every
// token. It stops at the first token that does not decompose.
func Analyze(text string) ([]Token, error) {
	parts := strings.Split(text, " ")
	tokens := make([]Token, 0, len(parts))
	for i, part := range parts {
		m, err := decompose(part, i)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, Token{Text: part, Mora: m, Cells: Compose(m)})
	}
	return tokens, nil
}

// Encode returns the flattened cells for text.
func Encode(text string) ([]Cell, error) {
	tokens, err := Analyze(text)
	if err != nil {
		return nil, err
	}
	return Flatten(tokens), nil
}

// Flatten concatenates the cells of tokens in order.
func Flatten(tokens []Token) []Cell {
	n := 0
	for _, t := range tokens {
		n += len(t.Cells)
	}
	cells := make([]Cell, 0, n)
	for _, t := range tokens {
		cells = append(cells, t.Cells...)
	}
	return cells
}

// Layout renders cells and transposes them into three lines. Line r holds
// row r of every cell, space-separated, in cell order.
func Layout(cells []Cell, g Glyphs) string {
	var lines [3][]string
	for r := range lines {
		lines[r] = make([]string, 0, len(cells))
	}
	for _, c := range cells {
		rows := c.Rows(g)
		for r := range rows {
			lines[r] = append(lines[r], rows[r])
		}
	}
	out := make([]string, len(lines))
	for r := range lines {
		out[r] = strings.Join(lines[r], " ")
	}
	return strings.Join(out, "\n")
}

// Unicode renders cells as a single line of Unicode braille patterns.
func Unicode(cells []Cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteRune(c.Rune())
	}
	return b.String()
}

// ParseGrid reads a three-line grid produced by Layout back into cells.
func ParseGrid(grid string, g Glyphs) ([]Cell, error) {
	lines := strings.Split(grid, "\n")
	if len(lines) != 3 {
		return nil, fmt.Errorf("grid has %d lines, want 3", len(lines))
	}
	var groups [3][]string
	for r, line := range lines {
		groups[r] = strings.Split(line, " ")
	}
	if len(groups[1]) != len(groups[0]) || len(groups[2]) != len(groups[0]) {
		return nil, fmt.Errorf("grid rows have %d, %d and %d groups", len(groups[0]), len(groups[1]), len(groups[2]))
	}
	cells := make([]Cell, len(groups[0]))
	for i := range cells {
		c, err := ParseCell([3]string{groups[0][i], groups[1][i], groups[2][i]}, g)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		cells[i] = c
	}
	return cells, nil
}

// Encoder converts text using a fixed set of glyphs.
type Encoder struct {
	Glyphs Glyphs
}

// NewEncoder returns an Encoder drawing with g.
func NewEncoder(g Glyphs) (Encoder, error) {
	if err := g.Validate(); err != nil {
		return Encoder{}, err
	}
	return Encoder{Glyphs: g}, nil
}

// Convert encodes text and lays it out as a three-line grid.
func (e Encoder) Convert(text string) (string, error) {
	cells, err := Encode(text)
	if err != nil {
		return "", err
	}
	return Layout(cells, e.Glyphs), nil
}

// Convert encodes text with DefaultGlyphs.
func Convert(text string) (string, error) {
	return Encoder{Glyphs: DefaultGlyphs}.Convert(text)
}
