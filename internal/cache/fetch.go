package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Source tells a caller where a Result's value came from.
type Source string

const (
	// SourceFresh means the value was fetched during this call.
	SourceFresh Source = "fresh"
	// SourceCached means the value was served from a fresh cache entry.
	SourceCached Source = "cached"
	// SourceFallback means the fetch failed and the value is a default.
	SourceFallback Source = "fallback"
)

// FetchFunc loads a resource from its source of truth.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Result is the outcome of a cached fetch.
type Result[T any] struct {
	Value  T
	Source Source
	Err    error
}

// OK reports whether Value is real data rather than a fallback.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

type flight struct {
	raw    []byte
	cached bool
}

// Fetch returns the fresh cached value for key, or runs fetch and caches its
// result. A failed fetch never writes to the cache. Concurrent misses on the
// same key share one fetch, unless an invalidation happened in between.
func Fetch[T any](ctx context.Context, c *Freshness, key string, fetch FetchFunc[T]) Result[T] {
	if v, ok := GetValue[T](c, key); ok {
		return Result[T]{Value: v, Source: SourceCached}
	}

	gen := c.generation()
	flightKey := key + "@" + strconv.FormatUint(gen, 10)
	shared, err, _ := c.group.Do(flightKey, func() (interface{}, error) {
		// Another flight may have filled the key since our miss.
		if e, ok := c.store.Load(key); ok && c.now().Sub(e.FetchedAt) < c.ttl {
			return flight{raw: e.Value, cached: true}, nil
		}

		start := time.Now()
		v, err := fetch(ctx)
		FetchDuration.WithLabelValues(key).Observe(time.Since(start).Seconds())
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		if !c.putIfCurrent(gen, key, raw) {
			c.logger.Debug("cache-put-skipped", zap.String("key", key), zap.Uint64("generation", gen))
		}
		return flight{raw: raw}, nil
	})

	var zero T
	if err != nil {
		FetchErrorsTotal.WithLabelValues(key).Inc()
		c.logger.Warn("fetch-failed", zap.String("key", key), zap.Error(err))
		return Result[T]{Value: zero, Source: SourceFallback, Err: err}
	}

	// Each caller decodes its own copy so results never share memory.
	f := shared.(flight)
	var v T
	if err := json.Unmarshal(f.raw, &v); err != nil {
		return Result[T]{Value: zero, Source: SourceFallback, Err: fmt.Errorf("decode %s: %w", key, err)}
	}

	src := SourceFresh
	if f.cached {
		src = SourceCached
	}
	return Result[T]{Value: v, Source: src}
}

// FetchOr is Fetch with a default value returned on failure.
func FetchOr[T any](ctx context.Context, c *Freshness, key string, fetch FetchFunc[T], fallback T) Result[T] {
	res := Fetch(ctx, c, key, fetch)
	if res.Err != nil {
		res.Value = fallback
	}
	return res
}
