package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is the freshness window used when none is configured.
const DefaultTTL = 5 * time.Minute

// Resource keys shared by the server and the API client.
const (
	KeyProfile    = "profile"
	KeyProjects   = "projects"
	KeySkills     = "skills"
	KeyExperience = "experience"
)

// InvalidationHook is called after an explicit invalidation.
// keys is nil when every entry was dropped.
type InvalidationHook func(keys []string)

// Freshness is a keyed cache whose entries are valid for a fixed TTL after
// they were fetched. Stale entries are not deleted on read; they are
// superseded by the next Put or removed by an invalidation.
//
// Every invalidation starts a new generation. A fetch that began in an
// earlier generation still answers its own callers but is neither joined by
// later callers nor written back.
type Freshness struct {
	store  Store
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
	hooks  []InvalidationHook
	group  singleflight.Group

	genMu sync.Mutex
	gen   uint64
}

// Option configures a Freshness cache.
type Option func(*Freshness)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Freshness) { c.now = now }
}

// WithLogger sets the logger used for cache events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Freshness) { c.logger = logger }
}

// WithInvalidationHook registers fn to run after every invalidation.
func WithInvalidationHook(fn InvalidationHook) Option {
	return func(c *Freshness) { c.hooks = append(c.hooks, fn) }
}

// New creates a Freshness cache over store. A non-positive ttl selects DefaultTTL.
func New(store Store, ttl time.Duration, opts ...Option) *Freshness {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Freshness{
		store:  store,
		ttl:    ttl,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the freshness window.
func (c *Freshness) TTL() time.Duration {
	return c.ttl
}

// Get returns the payload stored under key if it was fetched less than TTL ago.
func (c *Freshness) Get(key string) ([]byte, bool) {
	e, ok := c.store.Load(key)
	if !ok {
		CacheMissesTotal.WithLabelValues(key, "absent").Inc()
		c.logger.Debug("cache-miss", zap.String("key", key))
		return nil, false
	}

	age := c.now().Sub(e.FetchedAt)
	if age >= c.ttl {
		CacheMissesTotal.WithLabelValues(key, "stale").Inc()
		c.logger.Debug("cache-stale", zap.String("key", key), zap.Duration("age", age))
		return nil, false
	}

	CacheHitsTotal.WithLabelValues(key).Inc()
	c.logger.Debug("cache-hit", zap.String("key", key), zap.Duration("age", age))
	return e.Value, true
}

// Put stores value under key with fetchedAt set to now.
func (c *Freshness) Put(key string, value []byte) {
	c.store.Save(key, Entry{Value: value, FetchedAt: c.now()})
	CachePutsTotal.WithLabelValues(key).Inc()
	c.logger.Debug("cache-put", zap.String("key", key), zap.Int("bytes", len(value)))
}

// generation returns the current invalidation generation.
func (c *Freshness) generation() uint64 {
	c.genMu.Lock()
	defer c.genMu.Unlock()
	return c.gen
}

// putIfCurrent stores value only if no invalidation happened since gen.
func (c *Freshness) putIfCurrent(gen uint64, key string, value []byte) bool {
	c.genMu.Lock()
	defer c.genMu.Unlock()
	if c.gen != gen {
		return false
	}
	c.Put(key, value)
	return true
}

// Invalidate drops the given keys so the next read refetches them.
func (c *Freshness) Invalidate(keys ...string) {
	if len(keys) == 0 {
		return
	}
	c.genMu.Lock()
	c.gen++
	for _, key := range keys {
		c.store.Delete(key)
		CacheInvalidationsTotal.WithLabelValues(key).Inc()
	}
	c.genMu.Unlock()
	c.logger.Info("cache-invalidated", zap.Strings("keys", keys))
	c.notify(keys)
}

// InvalidateAll drops every entry.
func (c *Freshness) InvalidateAll() {
	c.genMu.Lock()
	c.gen++
	c.store.Clear()
	c.genMu.Unlock()
	CacheInvalidationsTotal.WithLabelValues(allKeysLabel).Inc()
	c.logger.Info("cache-cleared")
	c.notify(nil)
}

func (c *Freshness) notify(keys []string) {
	for _, hook := range c.hooks {
		hook(keys)
	}
}

// GetValue decodes the fresh payload under key into a T.
// A payload that no longer decodes is reported as a miss.
func GetValue[T any](c *Freshness, key string) (T, bool) {
	var v T
	raw, ok := c.Get(key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		c.logger.Warn("cache-decode-failed", zap.String("key", key), zap.Error(err))
		return v, false
	}
	return v, true
}

// PutValue encodes v and stores it under key.
func PutValue[T any](c *Freshness, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	c.Put(key, raw)
	return nil
}
