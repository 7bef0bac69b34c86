package tenji

// Core is the vowel or special marker that ends every mora.
type Core uint8

const (
	CoreA Core = iota + 1
	CoreI
	CoreU
	CoreE
	CoreO
	SyllabicN // ん
	LongVowel // ー
)

var coreNames = map[Core]string{
	CoreA:     "A",
	CoreI:     "I",
	CoreU:     "U",
	CoreE:     "E",
	CoreO:     "O",
	SyllabicN: "N",
	LongVowel: "-",
}

func (c Core) String() string {
	if s, ok := coreNames[c]; ok {
		return s
	}
	return "?"
}

// Base returns the cell for the core on its own.
func (c Core) Base() Cell {
	switch c {
	case CoreA:
		return 0b10_00_00
	case CoreI:
		return 0b10_10_00
	case CoreU:
		return 0b11_00_00
	case CoreE:
		return 0b11_10_00
	case CoreO:
		return 0b01_10_00
	case SyllabicN:
		return 0b00_01_11
	case LongVowel:
		return 0b00_11_00
	}
	return 0
}

// IsVowel reports whether c is one of A I U E O.
func (c Core) IsVowel() bool {
	return c >= CoreA && c <= CoreO
}

func vowelCore(b byte) (Core, bool) {
	switch b {
	case 'A':
		return CoreA, true
	case 'I':
		return CoreI, true
	case 'U':
		return CoreU, true
	case 'E':
		return CoreE, true
	case 'O':
		return CoreO, true
	}
	return 0, false
}

// Consonant is the leading consonant of a mora.
type Consonant uint8

const (
	NoConsonant Consonant = iota
	ConsonantK
	ConsonantS
	ConsonantT
	ConsonantN
	ConsonantH
	ConsonantM
	ConsonantR
	ConsonantG
	ConsonantZ
	ConsonantD
	ConsonantB
	ConsonantP
	ConsonantY
	ConsonantW
)

// consonantLetters maps input letters to consonants.
var consonantLetters = map[byte]Consonant{
	'K': ConsonantK,
	'S': ConsonantS,
	'T': ConsonantT,
	'N': ConsonantN,
	'H': ConsonantH,
	'M': ConsonantM,
	'R': ConsonantR,
	'G': ConsonantG,
	'Z': ConsonantZ,
	'D': ConsonantD,
	'B': ConsonantB,
	'P': ConsonantP,
	'Y': ConsonantY,
	'W': ConsonantW,
}

var consonantNames = [...]string{"", "K", "S", "T", "N", "H", "M", "R", "G", "Z", "D", "B", "P", "Y", "W"}

func (c Consonant) String() string {
	if int(c) < len(consonantNames) {
		return consonantNames[c]
	}
	return "?"
}

// Kind groups consonants by the transform they apply.
type Kind uint8

const (
	KindNone Kind = iota
	KindRow
	KindGlide
	KindVoiced
	KindSemiVoiced
)

func (k Kind) String() string {
	switch k {
	case KindRow:
		return "row"
	case KindGlide:
		return "glide"
	case KindVoiced:
		return "voiced"
	case KindSemiVoiced:
		return "semi-voiced"
	}
	return "none"
}

// Kind returns the transform class of c.
func (c Consonant) Kind() Kind {
	switch c {
	case ConsonantK, ConsonantS, ConsonantT, ConsonantN, ConsonantH, ConsonantM, ConsonantR:
		return KindRow
	case ConsonantY, ConsonantW:
		return KindGlide
	case ConsonantG, ConsonantZ, ConsonantD, ConsonantB:
		return KindVoiced
	case ConsonantP:
		return KindSemiVoiced
	}
	return KindNone
}

// Voiceless returns the unvoiced counterpart of a voiced or semi-voiced
// consonant, and c itself otherwise.
func (c Consonant) Voiceless() Consonant {
	switch c {
	case ConsonantG:
		return ConsonantK
	case ConsonantZ:
		return ConsonantS
	case ConsonantD:
		return ConsonantT
	case ConsonantB, ConsonantP:
		return ConsonantH
	}
	return c
}

// rowMask returns the low-row mask of a row consonant.
func (c Consonant) rowMask() Cell {
	switch c {
	case ConsonantK:
		return 0b00_00_01
	case ConsonantS:
		return 0b00_01_01
	case ConsonantT:
		return 0b00_01_10
	case ConsonantN:
		return 0b00_00_10
	case ConsonantH:
		return 0b00_00_11
	case ConsonantM:
		return 0b00_01_11
	case ConsonantR:
		return 0b00_01_00
	}
	return 0
}

// glideMark returns the bit a glide adds after shifting.
func (c Consonant) glideMark() Cell {
	if c == ConsonantY {
		return yoonBit
	}
	return 0
}
