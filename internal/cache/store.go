package cache

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Entry is a cached payload and the time it was fetched.
// Value holds the JSON encoding of the resource.
type Entry struct {
	Value     []byte
	FetchedAt time.Time
}

// Store is the backing storage behind a Freshness cache. A Store keeps
// entries until they are overwritten or deleted; deciding whether an entry
// is still fresh is the cache's job.
type Store interface {
	// Load returns the entry stored under key, fresh or not.
	Load(key string) (Entry, bool)

	// Save stores e under key, replacing any previous entry.
	Save(key string, e Entry)

	// Delete removes a key if present.
	Delete(key string)

	// Clear removes all entries.
	Clear()
}

// Backend names accepted by OpenStore.
const (
	BackendMemory    = "memory"
	BackendRistretto = "ristretto"
	BackendTTLCache  = "ttlcache"
	BackendDB        = "db"
)

// OpenStore builds the Store named by backend. The returned close func
// releases any background resources and is never nil.
func OpenStore(backend string, db *gorm.DB, logger *zap.Logger) (Store, func(), error) {
	noop := func() {}
	switch backend {
	case "", BackendMemory:
		return NewMemoryStore(Options{ConcurrencySafe: true}), noop, nil
	case BackendRistretto:
		s, err := NewRistrettoStore(DefaultRistrettoConfig(), logger)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case BackendTTLCache:
		return NewTTLCacheStore(), noop, nil
	case BackendDB:
		if db == nil {
			return nil, noop, fmt.Errorf("cache backend %q needs a database", backend)
		}
		s, err := NewDBStore(db, logger)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown cache backend %q", backend)
	}
}
