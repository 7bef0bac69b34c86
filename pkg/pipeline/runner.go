package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tenji/pkg/cache"
	"github.com/matzehuels/tenji/pkg/errors"
	"github.com/matzehuels/tenji/pkg/observability"
	"github.com/matzehuels/tenji/pkg/tenji"
)

// cacheKeyType labels conversion entries in cache hooks.
const cacheKeyType = "convert"

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedResult is the cache payload for one conversion.
type cachedResult struct {
	Output []byte `json:"output"`
	Tokens int    `json:"tokens"`
	Cells  int    `json:"cells"`
}

// Execute validates opts, then returns a cached rendering or converts and
// renders the text. Decomposition failures are returned as INVALID_TOKEN
// errors wrapping the *tenji.DecompositionError.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Convert()
	hooks.OnConvertStart(ctx, len(opts.Text))

	key := r.Keyer.ConversionKey(opts.Text, opts.CacheKeyOpts())
	if !opts.Refresh {
		if res, ok := r.lookup(ctx, key); ok {
			res.Format = opts.Format
			res.Duration = time.Since(start)
			hooks.OnConvertComplete(ctx, opts.Format, res.Cells, res.Duration, nil)
			return res, nil
		}
	}

	tokens, err := tenji.Analyze(opts.Text)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeInvalidToken, err, "cannot convert input")
		hooks.OnConvertComplete(ctx, opts.Format, 0, time.Since(start), err)
		return nil, err
	}

	out, err := Render(tokens, opts.Format, opts.Glyphs())
	if err != nil {
		err = errors.Wrap(errors.ErrCodeInternal, err, "render %s", opts.Format)
		hooks.OnConvertComplete(ctx, opts.Format, 0, time.Since(start), err)
		return nil, err
	}

	res := &Result{
		Output: out,
		Format: opts.Format,
		Tokens: len(tokens),
		Cells:  len(tenji.Flatten(tokens)),
	}
	r.store(ctx, key, res, opts.TTL)

	res.Duration = time.Since(start)
	r.Logger.Debug("converted",
		"tokens", res.Tokens,
		"cells", res.Cells,
		"format", res.Format,
		"duration", res.Duration)
	hooks.OnConvertComplete(ctx, opts.Format, res.Cells, res.Duration, nil)
	return res, nil
}

// lookup returns a cached result. Cache errors count as misses.
func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache get failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}

	var cached cachedResult
	if err := json.Unmarshal(data, &cached); err != nil {
		r.Logger.Debug("cache entry unreadable", "err", err)
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return &Result{
		Output: cached.Output,
		Tokens: cached.Tokens,
		Cells:  cached.Cells,
		Cached: true,
	}, true
}

// store writes res to the cache. Failures are logged and ignored.
func (r *Runner) store(ctx context.Context, key string, res *Result, ttl time.Duration) {
	data, err := json.Marshal(cachedResult{Output: res.Output, Tokens: res.Tokens, Cells: res.Cells})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache set failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
