package cache

import (
	"github.com/jellydator/ttlcache/v3"
)

// TTLCacheStore is a Store backed by jellydator/ttlcache. Items are stored
// without their own expiry; freshness is decided by the Freshness layer.
type TTLCacheStore struct {
	c *ttlcache.Cache[string, Entry]
}

// NewTTLCacheStore creates an empty TTLCacheStore.
func NewTTLCacheStore() *TTLCacheStore {
	return &TTLCacheStore{c: ttlcache.New[string, Entry]()}
}

// Load implements Store.Load.
func (s *TTLCacheStore) Load(key string) (Entry, bool) {
	item := s.c.Get(key)
	if item == nil {
		return Entry{}, false
	}
	return item.Value(), true
}

// Save implements Store.Save.
func (s *TTLCacheStore) Save(key string, e Entry) {
	s.c.Set(key, e, ttlcache.NoTTL)
}

// Delete implements Store.Delete.
func (s *TTLCacheStore) Delete(key string) {
	s.c.Delete(key)
}

// Clear implements Store.Clear.
func (s *TTLCacheStore) Clear() {
	s.c.DeleteAll()
}

var _ Store = (*TTLCacheStore)(nil)
