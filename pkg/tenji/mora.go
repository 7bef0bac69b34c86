package tenji

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDecomposition matches any *DecompositionError via errors.Is.
var ErrDecomposition = errors.New("decomposition failed")

// DecompositionError reports a token that does not match the mora grammar.
type DecompositionError struct {
	Token  string // offending token
	Index  int    // zero-based position of the token in the input
	Reason string
}

// Error implements the error interface.
func (e *DecompositionError) Error() string {
	return fmt.Sprintf("token %d %q: %s", e.Index, e.Token, e.Reason)
}

// Is makes errors.Is(err, ErrDecomposition) true.
func (e *DecompositionError) Is(target error) bool {
	return target == ErrDecomposition
}

// Mora is a decomposed token.
type Mora struct {
	Consonant   Consonant
	Geminated   bool // doubled leading consonant (sokuon)
	Palatalized bool // Y glide after the consonant (yoon)
	Core        Core
}

// String rebuilds the canonical token, e.g. "GGYA".
func (m Mora) String() string {
	if !m.Core.IsVowel() {
		return m.Core.String()
	}
	var b strings.Builder
	b.WriteString(m.Consonant.String())
	if m.Geminated {
		b.WriteString(m.Consonant.String())
	}
	if m.Palatalized {
		b.WriteByte('Y')
	}
	b.WriteString(m.Core.String())
	return b.String()
}

// Decompose matches token against the grammar
//
//	C? C? Y? (A|I|U|E|O)  |  "-"  |  "N"
//
// where the optional second C repeats the first. Doubled Y is read as
// gemination before palatalization, so "YYA" is a geminated YA.
func Decompose(token string) (Mora, error) {
	return decompose(token, 0)
}

func decompose(token string, index int) (Mora, error) {
	fail := func(format string, args ...any) (Mora, error) {
		return Mora{}, &DecompositionError{Token: token, Index: index, Reason: fmt.Sprintf(format, args...)}
	}

	switch token {
	case "":
		return fail("empty token")
	case "N":
		return Mora{Core: SyllabicN}, nil
	case "-":
		return Mora{Core: LongVowel}, nil
	}

	last := token[len(token)-1]
	core, ok := vowelCore(last)
	if !ok {
		return fail("must end in a vowel (A I U E O) or be \"N\" or \"-\"")
	}
	m := Mora{Core: core}

	rest := token[:len(token)-1]
	if rest == "" {
		return m, nil
	}

	cons, ok := consonantLetters[rest[0]]
	if !ok {
		return fail("unsupported consonant %q", rest[0])
	}
	m.Consonant = cons
	rest = rest[1:]

	if rest != "" && rest[0] == token[0] {
		m.Geminated = true
		rest = rest[1:]
	}
	if rest == "Y" {
		m.Palatalized = true
		rest = ""
	}
	if rest != "" {
		return fail("unexpected %q after consonant", rest)
	}
	return m, nil
}
