package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"
)

// RistrettoStore is a Store backed by a Ristretto cache. Ristretto may
// evict under memory pressure; the Freshness layer treats that as a miss.
type RistrettoStore struct {
	cache  *ristretto.Cache
	logger *zap.Logger
}

// RistrettoConfig holds configuration for a RistrettoStore.
type RistrettoConfig struct {
	NumCounters int64 // Number of keys to track frequency (10x max items)
	MaxCost     int64 // Maximum number of entries
	BufferItems int64 // Number of keys per Get buffer
}

// DefaultRistrettoConfig sizes the store for a handful of resource keys.
func DefaultRistrettoConfig() RistrettoConfig {
	return RistrettoConfig{
		NumCounters: 1e4,
		MaxCost:     1 << 10,
		BufferItems: 64,
	}
}

// NewRistrettoStore creates a Ristretto-backed store.
func NewRistrettoStore(cfg RistrettoConfig, logger *zap.Logger) (*RistrettoStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		// Cost counts entries, not bytes.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create ristretto cache: %w", err)
	}
	return &RistrettoStore{cache: c, logger: logger}, nil
}

// Load implements Store.Load.
func (s *RistrettoStore) Load(key string) (Entry, bool) {
	v, ok := s.cache.Get(key)
	if !ok {
		return Entry{}, false
	}
	e, ok := v.(Entry)
	return e, ok
}

// Save implements Store.Save. Sets are buffered by Ristretto, so Save waits
// for the write to land before returning. Ristretto may still drop a set when
// its buffer is full or the cache is closed; that is logged and the next
// read misses.
func (s *RistrettoStore) Save(key string, e Entry) {
	if !s.cache.Set(key, e, 1) {
		StoreDroppedTotal.WithLabelValues(BackendRistretto).Inc()
		s.logger.Warn("cache-store-save-dropped", zap.String("key", key))
		return
	}
	s.cache.Wait()
}

// Delete implements Store.Delete.
func (s *RistrettoStore) Delete(key string) {
	s.cache.Del(key)
}

// Clear implements Store.Clear.
func (s *RistrettoStore) Clear() {
	s.cache.Clear()
}

// Close releases Ristretto's background goroutines.
func (s *RistrettoStore) Close() {
	s.cache.Close()
}

var _ Store = (*RistrettoStore)(nil)
