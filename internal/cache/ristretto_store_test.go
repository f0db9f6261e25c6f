package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRistrettoStore_SaveLoad(t *testing.T) {
	s, err := NewRistrettoStore(DefaultRistrettoConfig(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(s.Close)

	now := time.Now()
	s.Save(KeySkills, Entry{Value: []byte(`[1]`), FetchedAt: now})

	e, ok := s.Load(KeySkills)
	require.True(t, ok)
	require.Equal(t, []byte(`[1]`), e.Value)
	require.True(t, now.Equal(e.FetchedAt))
}

func TestRistrettoStore_DroppedSaveIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s, err := NewRistrettoStore(DefaultRistrettoConfig(), zap.New(core))
	require.NoError(t, err)

	// a closed ristretto cache refuses every set
	s.Close()
	s.Save(KeySkills, Entry{Value: []byte(`[1]`), FetchedAt: time.Now()})

	_, ok := s.Load(KeySkills)
	require.False(t, ok)

	entries := logs.FilterMessage("cache-store-save-dropped").All()
	require.Len(t, entries, 1)
	require.Equal(t, KeySkills, entries[0].ContextMap()["key"])
}
