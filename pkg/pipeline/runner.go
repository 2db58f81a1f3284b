package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/TheJP/factorio-blueprint/pkg/blueprint"
	"github.com/TheJP/factorio-blueprint/pkg/cache"
	"github.com/TheJP/factorio-blueprint/pkg/errors"
	"github.com/TheJP/factorio-blueprint/pkg/generate/loader"
	"github.com/TheJP/factorio-blueprint/pkg/generate/memory"
	"github.com/TheJP/factorio-blueprint/pkg/observability"
)

// Runner encapsulates generator execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL is how long results stay cached.
	TTL time.Duration
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
		TTL:    cache.TTLGenerated,
	}
}

// cachedResult is the cache entry format.
type cachedResult struct {
	Blueprint string `json:"blueprint"`
	Entities  int    `json:"entities"`
}

// Generate runs the requested generator and returns the encoded blueprint,
// serving it from the cache when possible.
func (r *Runner) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := req.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()
	key := r.Keyer.GeneratorKey(req.Generator, req.params(), req.Input)

	if !req.Refresh {
		if res, ok := r.lookup(ctx, req.Generator, key); ok {
			res.Duration = time.Since(start)
			r.Logger.Debug("served from cache", "generator", req.Generator, "key", key)
			return res, nil
		}
	}

	hooks := observability.Generator()
	hooks.OnGenerateStart(ctx, req.Generator)
	bp, err := run(req)
	if err != nil {
		hooks.OnGenerateComplete(ctx, req.Generator, 0, time.Since(start), err)
		return nil, err
	}
	s, err := blueprint.Encode(bp)
	if err != nil {
		hooks.OnGenerateComplete(ctx, req.Generator, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnGenerateComplete(ctx, req.Generator, bp.Len(), time.Since(start), nil)

	res := &Result{Blueprint: s, Entities: bp.Len(), Duration: time.Since(start)}
	r.store(ctx, req.Generator, key, res)

	r.Logger.Info("generated blueprint",
		"generator", req.Generator,
		"entities", res.Entities,
		"duration", res.Duration)
	return res, nil
}

func run(req Request) (*blueprint.Blueprint, error) {
	switch req.Generator {
	case memory.Name:
		return memory.Generate(req.Memory)
	case loader.Name:
		return loader.Generate(loader.Words(req.Input), req.Loader)
	}
	return nil, errors.New(errors.ErrCodeInternal, "no generator %q", req.Generator)
}

// lookup returns the cached result for key. Unreadable entries count as
// misses.
func (r *Runner) lookup(ctx context.Context, generator, key string) (*Result, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	if err != nil || !hit {
		hooks.OnCacheMiss(ctx, generator)
		return nil, false
	}

	var entry cachedResult
	if err := json.Unmarshal(data, &entry); err != nil || entry.Blueprint == "" {
		hooks.OnCacheMiss(ctx, generator)
		return nil, false
	}
	hooks.OnCacheHit(ctx, generator)
	return &Result{Blueprint: entry.Blueprint, Entities: entry.Entities, Cached: true}, true
}

// store writes res to the cache. Failures are logged, not returned.
func (r *Runner) store(ctx context.Context, generator, key string, res *Result) {
	data, err := json.Marshal(cachedResult{Blueprint: res.Blueprint, Entities: res.Entities})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, generator, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
