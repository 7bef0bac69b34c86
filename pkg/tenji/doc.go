// Package tenji encodes romanized Japanese mora as six-dot Japanese braille
// (tenji) and renders the result as a three-line grid of dot markers.
//
// # Overview
//
// Input is a string of space-delimited tokens, one mora each: "KA", "KYA",
// "PPA", "N", "-". Every token is decomposed into a [Mora], composed into a
// [Sequence] of one to three [Cell] values, and the flattened cells are laid
// out row by row:
//
//	out, err := tenji.Convert("KA SI")
//	// o- o-
//	// -- oo
//	// -o -o
//
// # Cells
//
// A [Cell] holds six significant bits. Reading from the high bit down, the
// bits correspond to braille dots 1, 4, 2, 5, 3 and 6, so each consecutive
// pair of bits is one rendered row. [Cell.Rows] draws a cell and [ParseCell]
// reads one back.
//
// # Composition
//
// The base cell comes from the mora's vowel (or the syllabic N / long vowel
// mark). Consonants then apply one of four transforms:
//
//   - row consonants (K S T N H M R) OR a mask into the low rows
//   - glides (Y W) shift the vowel down and optionally add dot 4
//   - voiced consonants (G Z D B) prefix a dakuten cell
//   - P prefixes a handakuten cell
//
// Palatalization (yoon) and gemination (sokuon) add prefix cells on top.
// Every step returns a fresh [Sequence]; nothing is mutated in place.
//
// # Errors
//
// A token outside the grammar yields a [*DecompositionError]. Conversion stops
// at the first bad token and no partial output is produced.
//
// # Concurrency
//
// All functions are pure. An [Encoder] is an immutable value and may be shared
// between goroutines.
package tenji
