package tenji

// Sequence is the ordered list of cells produced for one mora.
type Sequence []Cell

// Compose turns a decomposed mora into one to three cells, in the order they
// are written.
func Compose(m Mora) Sequence {
	seq := consonantCells(m.Consonant, m.Core.Base())
	if m.Palatalized {
		seq = palatalize(seq)
	}
	if m.Geminated {
		seq = geminate(seq)
	}
	return seq
}

// consonantCells applies the consonant transform to a base cell.
func consonantCells(c Consonant, base Cell) Sequence {
	switch c.Kind() {
	case KindRow:
		return Sequence{base | c.rowMask()}
	case KindGlide:
		return Sequence{shiftDown(base) | c.glideMark()}
	case KindVoiced:
		return Sequence{dakutenCell, base | c.Voiceless().rowMask()}
	case KindSemiVoiced:
		return Sequence{handakutenCell, base | c.Voiceless().rowMask()}
	}
	return Sequence{base}
}

// shiftDown moves a vowel's dots toward the bottom of the cell to make room
// for a glide marker: one row if the middle row is in use, two otherwise.
func shiftDown(base Cell) Cell {
	if base&0b00_11_00 != 0 {
		return base >> 2
	}
	return base >> 4
}

// palatalize adds the yoon bit to an existing prefix cell, or prepends a new
// prefix cell carrying it.
func palatalize(seq Sequence) Sequence {
	if len(seq) == 2 {
		return Sequence{seq[0] | yoonBit, seq[1]}
	}
	out := make(Sequence, 0, len(seq)+1)
	out = append(out, yoonBit)
	return append(out, seq...)
}

// geminate prepends the sokuon cell.
func geminate(seq Sequence) Sequence {
	out := make(Sequence, 0, len(seq)+1)
	out = append(out, sokuonCell)
	return append(out, seq...)
}
