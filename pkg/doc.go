// Package pkg holds the libraries behind the tenji command.
//
// # Overview
//
// Tenji turns romanized Japanese into Japanese braille. The pkg directory is
// organized into three areas:
//
//  1. [tenji] - The encoder (decompose, compose, render, lay out)
//  2. [pipeline] - Orchestration shared by the CLI and [server]
//  3. Infrastructure: [cache], [config], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The data flow for one conversion:
//
//	"KYA PPA N"
//	     ↓
//	[tenji.Decompose] per token (consonant, gemination, palatalization, core)
//	     ↓
//	[tenji.Compose] per mora (1-3 cells)
//	     ↓
//	[tenji.Layout] (three rows of dot pairs) or [tenji.Unicode]
//
// [pipeline.Runner] wraps this with validation, caching and output formats.
//
// # Quick Start
//
//	grid, err := tenji.Convert("KA SI")
//	if err != nil {
//	    var de *tenji.DecompositionError
//	    if errors.As(err, &de) {
//	        log.Fatalf("token %d (%q): %s", de.Index, de.Token, de.Reason)
//	    }
//	}
//	fmt.Println(grid)
//	// o- o-
//	// -- oo
//	// -o -o
//
// [tenji]: https://pkg.go.dev/github.com/matzehuels/tenji/pkg/tenji
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tenji/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/tenji/pkg/server
// [cache]: https://pkg.go.dev/github.com/matzehuels/tenji/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/tenji/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/tenji/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/tenji/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/tenji/pkg/buildinfo
// [tenji.Decompose]: https://pkg.go.dev/github.com/matzehuels/tenji/pkg/tenji#Decompose
// [tenji.Compose]: https://pkg.go.dev/github.com/matzehuels/tenji/pkg/tenji#Compose
// [tenji.Layout]: https://pkg.go.dev/github.com/matzehuels/tenji/pkg/tenji#Layout
// [tenji.Unicode]: https://pkg.go.dev/github.com/matzehuels/tenji/pkg/tenji#Unicode
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/tenji/pkg/pipeline#Runner
package pkg
