package tenji

import (
	"fmt"
	"strings"
	"unicode"
)

// Cell is one braille character encoded in its low six bits. From the high
// bit down the bits are dots 1, 4, 2, 5, 3, 6.
type Cell uint8

// cellMask covers the six significant bits of a Cell.
const cellMask Cell = 0b11_11_11

// Prefix cells emitted ahead of a main cell.
const (
	sokuonCell     Cell = 0b00_10_00 // dot 2
	dakutenCell    Cell = 0b00_01_00 // dot 5
	handakutenCell Cell = 0b00_00_01 // dot 6
	yoonBit        Cell = 0b01_00_00 // dot 4
)

// dotBits lists the bit for each dot number, indexed by dot-1.
var dotBits = [6]Cell{
	0b10_00_00, // 1
	0b00_10_00, // 2
	0b00_00_10, // 3
	0b01_00_00, // 4
	0b00_01_00, // 5
	0b00_00_01, // 6
}

// Valid reports whether c uses only the six significant bits.
func (c Cell) Valid() bool {
	return c&^cellMask == 0
}

// Has reports whether dot (1-6) is raised.
func (c Cell) Has(dot int) bool {
	if dot < 1 || dot > 6 {
		return false
	}
	return c&dotBits[dot-1] != 0
}

// Dots returns the raised dot numbers in ascending order.
func (c Cell) Dots() []int {
	var dots []int
	for i, bit := range dotBits {
		if c&bit != 0 {
			dots = append(dots, i+1)
		}
	}
	return dots
}

// Rune returns the Unicode braille pattern (U+2800 block) for c.
func (c Cell) Rune() rune {
	r := rune(0x2800)
	for i, bit := range dotBits {
		if c&bit != 0 {
			r |= 1 << i
		}
	}
	return r
}

// String renders c as a binary literal in dot order, e.g. "100001".
func (c Cell) String() string {
	return fmt.Sprintf("%06b", uint8(c&cellMask))
}

// Rows renders c as three two-symbol groups: dots {1,4}, {2,5} and {3,6}.
func (c Cell) Rows(g Glyphs) [3]string {
	var rows [3]string
	for r := 0; r < 3; r++ {
		shift := uint(4 - 2*r)
		pair := (c >> shift) & 0b11
		rows[r] = string([]rune{g.symbol(pair&0b10 != 0), g.symbol(pair&0b01 != 0)})
	}
	return rows
}

// ParseCell reads three rendered rows back into a Cell.
func ParseCell(rows [3]string, g Glyphs) (Cell, error) {
	var c Cell
	for r, row := range rows {
		symbols := []rune(row)
		if len(symbols) != 2 {
			return 0, fmt.Errorf("row %d: want 2 symbols, got %d", r+1, len(symbols))
		}
		for _, s := range symbols {
			c <<= 1
			switch s {
			case g.Raised:
				c |= 1
			case g.Flat:
			default:
				return 0, fmt.Errorf("row %d: unknown symbol %q", r+1, s)
			}
		}
	}
	return c, nil
}

// Glyphs are the two symbols used to draw raised and flat dots.
type Glyphs struct {
	Raised rune
	Flat   rune
}

// DefaultGlyphs draws raised dots as 'o' and flat dots as '-'.
var DefaultGlyphs = Glyphs{Raised: 'o', Flat: '-'}

// Validate checks that the glyphs are distinct, printable and not
// whitespace, so a rendered grid can be split back into cells.
func (g Glyphs) Validate() error {
	if g.Raised == g.Flat {
		return fmt.Errorf("raised and flat glyphs must differ (both %q)", g.Raised)
	}
	for _, r := range []rune{g.Raised, g.Flat} {
		if !unicode.IsPrint(r) || unicode.IsSpace(r) {
			return fmt.Errorf("glyph %q is not a printable non-space character", r)
		}
	}
	return nil
}

// ParseGlyphs builds Glyphs from two single-character strings.
func ParseGlyphs(raised, flat string) (Glyphs, error) {
	r, err := singleRune(raised)
	if err != nil {
		return Glyphs{}, fmt.Errorf("raised glyph: %w", err)
	}
	f, err := singleRune(flat)
	if err != nil {
		return Glyphs{}, fmt.Errorf("flat glyph: %w", err)
	}
	g := Glyphs{Raised: r, Flat: f}
	if err := g.Validate(); err != nil {
		return Glyphs{}, err
	}
	return g, nil
}

func (g Glyphs) symbol(raised bool) rune {
	if raised {
		return g.Raised
	}
	return g.Flat
}

func singleRune(s string) (rune, error) {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) != 1 {
		return 0, fmt.Errorf("want exactly one character, got %q", s)
	}
	return runes[0], nil
}
