// Package pipeline provides the conversion pipeline shared by the CLI and
// the HTTP server.
//
// By centralizing option handling, caching and output formatting here, every
// entry point converts text the same way.
//
// # Architecture
//
// A run has four steps:
//
//  1. Validate: apply defaults, normalize whitespace if asked, check input,
//     format and glyphs
//  2. Lookup: return a cached rendering if one exists
//  3. Convert: analyze every token with the tenji encoder
//  4. Render: format the cells as a text grid, Unicode braille, or JSON
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Text:   "KYA PPA N",
//	    Format: pipeline.FormatText,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(string(result.Output))
package pipeline

import (
	"time"

	"github.com/matzehuels/tenji/pkg/cache"
	"github.com/matzehuels/tenji/pkg/config"
	"github.com/matzehuels/tenji/pkg/errors"
	"github.com/matzehuels/tenji/pkg/tenji"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// Format constants for output formats.
const (
	FormatText    = config.FormatText
	FormatUnicode = config.FormatUnicode
	FormatJSON    = config.FormatJSON
)

// DefaultFormat is the default output format.
const DefaultFormat = FormatText

// DefaultTTL is how long results stay cached when Options.TTL is zero.
const DefaultTTL = cache.TTLConversion

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one conversion.
// This struct supports JSON serialization for API requests.
type Options struct {
	Text   string `json:"text"`
	Format string `json:"format,omitempty"`
	Raised string `json:"raised,omitempty"`
	Flat   string `json:"flat,omitempty"`

	// Normalize collapses whitespace runs (newlines from files or stdin)
	// into single spaces before conversion.
	Normalize bool `json:"normalize,omitempty"`

	// Refresh skips the cache lookup but still stores the new result.
	Refresh bool `json:"refresh,omitempty"`

	// TTL overrides DefaultTTL for the stored result.
	TTL time.Duration `json:"-"`

	glyphs    tenji.Glyphs
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Output is the rendered conversion in the requested format.
	Output []byte

	// Format is the format Output is rendered in.
	Format string

	// Tokens and Cells count the input tokens and emitted braille cells.
	Tokens int
	Cells  int

	// Cached is true when Output came from the cache.
	Cached bool

	// Duration is the wall time of the run.
	Duration time.Duration
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Raised == "" {
		o.Raised = string(tenji.DefaultGlyphs.Raised)
	}
	if o.Flat == "" {
		o.Flat = string(tenji.DefaultGlyphs.Flat)
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}

	if o.Normalize {
		if err := errors.ValidateLength(len(o.Text)); err != nil {
			return err
		}
		o.Text = errors.NormalizeInput(o.Text)
	}
	if err := errors.ValidateInput(o.Text); err != nil {
		return err
	}
	if err := errors.ValidateFormat(o.Format, config.Formats...); err != nil {
		return err
	}
	g, err := tenji.ParseGlyphs(o.Raised, o.Flat)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGlyphs, err, "invalid glyphs")
	}
	o.glyphs = g

	o.validated = true
	return nil
}

// Glyphs returns the validated glyphs. Call ValidateAndSetDefaults first.
func (o *Options) Glyphs() tenji.Glyphs {
	return o.glyphs
}

// CacheKeyOpts returns the options that distinguish cached renderings.
func (o *Options) CacheKeyOpts() cache.ConversionKeyOpts {
	return cache.ConversionKeyOpts{
		Format: o.Format,
		Raised: o.Raised,
		Flat:   o.Flat,
	}
}

// FromConfig fills unset options from a loaded config.
func (o *Options) FromConfig(cfg config.Config) {
	if o.Format == "" {
		o.Format = cfg.Format
	}
	if o.Raised == "" {
		o.Raised = cfg.Glyphs.Raised
	}
	if o.Flat == "" {
		o.Flat = cfg.Glyphs.Flat
	}
	if o.TTL == 0 {
		o.TTL = cfg.Cache.TTL.Duration
	}
}
