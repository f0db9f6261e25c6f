package cache

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type profile struct {
	Name      string `json:"name"`
	HeroImage string `json:"heroImage"`
}

// fakeClock is a settable time source.
type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(t *testing.T, store Store, opts ...Option) (*Freshness, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	opts = append([]Option{WithClock(clock.now)}, opts...)
	return New(store, 300000*time.Millisecond, opts...), clock
}

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	rs, err := NewRistrettoStore(DefaultRistrettoConfig(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(rs.Close)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	ds, err := NewDBStore(db, nil)
	require.NoError(t, err)

	return map[string]Store{
		BackendMemory:    NewMemoryStore(Options{ConcurrencySafe: true}),
		BackendRistretto: rs,
		BackendTTLCache:  NewTTLCacheStore(),
		BackendDB:        ds,
	}
}

func TestFreshness_Backends(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			c, clock := newTestCache(t, store)

			// get right after put returns the value
			require.NoError(t, PutValue(c, KeyProfile, profile{Name: "A"}))
			got, ok := GetValue[profile](c, KeyProfile)
			require.True(t, ok)
			require.Equal(t, "A", got.Name)

			// just inside and just past the window
			clock.advance(299999 * time.Millisecond)
			_, ok = GetValue[profile](c, KeyProfile)
			require.True(t, ok)

			clock.advance(2 * time.Millisecond)
			_, ok = GetValue[profile](c, KeyProfile)
			require.False(t, ok)

			// stale entries are still physically present
			_, stored := store.Load(KeyProfile)
			require.True(t, stored)

			// a new put supersedes the stale entry
			require.NoError(t, PutValue(c, KeyProfile, profile{Name: "B"}))
			got, ok = GetValue[profile](c, KeyProfile)
			require.True(t, ok)
			require.Equal(t, "B", got.Name)
		})
	}
}

func TestFreshness_ExactlyTTLIsStale(t *testing.T) {
	c, clock := newTestCache(t, NewMemoryStore(Options{}))
	c.Put(KeySkills, []byte(`[]`))
	clock.advance(c.TTL())
	_, ok := c.Get(KeySkills)
	require.False(t, ok)
}

func TestFreshness_InvalidateAll(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestCache(t, store)
			keys := []string{KeyProfile, KeyProjects, KeySkills, KeyExperience}
			for _, k := range keys {
				c.Put(k, []byte(`{}`))
			}

			c.InvalidateAll()

			for _, k := range keys {
				_, ok := c.Get(k)
				require.False(t, ok, k)
			}
		})
	}
}

func TestFreshness_InvalidateTargeted(t *testing.T) {
	var seen [][]string
	c, _ := newTestCache(t, NewMemoryStore(Options{}), WithInvalidationHook(func(keys []string) {
		seen = append(seen, keys)
	}))
	c.Put(KeyProjects, []byte(`[]`))
	c.Put(KeySkills, []byte(`[]`))

	c.Invalidate(KeyProjects)
	_, ok := c.Get(KeyProjects)
	require.False(t, ok)
	_, ok = c.Get(KeySkills)
	require.True(t, ok)

	c.Invalidate()
	c.InvalidateAll()

	require.Len(t, seen, 2)
	require.Equal(t, []string{KeyProjects}, seen[0])
	require.Nil(t, seen[1])
}

func TestFreshness_UndecodablePayloadIsMiss(t *testing.T) {
	c, _ := newTestCache(t, NewMemoryStore(Options{}))
	c.Put(KeyProfile, []byte(`not json`))
	_, ok := GetValue[profile](c, KeyProfile)
	require.False(t, ok)
}

func TestOpenStore(t *testing.T) {
	for _, backend := range []string{"", BackendMemory, BackendRistretto, BackendTTLCache} {
		s, closeFn, err := OpenStore(backend, nil, nil)
		require.NoError(t, err, backend)
		require.NotNil(t, s)
		closeFn()
	}

	_, _, err := OpenStore(BackendDB, nil, nil)
	require.Error(t, err)

	_, _, err = OpenStore("redis", nil, nil)
	require.Error(t, err)
}
