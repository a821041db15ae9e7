package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/xi-generator/internal/lineup"
	"github.com/stitts-dev/xi-generator/pkg/logger"
)

func newTestCache(t *testing.T) (*GenerationCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewGenerationCache(client, time.Hour, logrus.NewEntry(logger.Discard())), mr
}

func TestKey(t *testing.T) {
	type request struct {
		Team1 string
		Seed  uint64
	}

	a, err := Key(request{Team1: "IND", Seed: 7})
	require.NoError(t, err)
	b, err := Key(request{Team1: "IND", Seed: 7})
	require.NoError(t, err)
	c, err := Key(request{Team1: "IND", Seed: 8})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^xigen:batch:[0-9a-f]{32}$`, a)

	_, err = Key(func() {})
	assert.Error(t, err)
}

func TestGenerationCache_RoundTrip(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	batch := &lineup.Batch{
		ID:    "b1",
		Teams: [2]string{"IND", "AUS"},
		Lineups: []lineup.Lineup{{
			Players:    []lineup.Player{{Name: "Pant", Role: lineup.RoleWicketKeeper, RealTeam: "IND"}},
			Captain:    lineup.Player{Name: "Pant", Role: lineup.RoleWicketKeeper, RealTeam: "IND"},
			TeamCounts: [2]int{1, 0},
			Formation:  [4]int{1, 0, 0, 0},
			Attempts:   3,
		}},
		Attempts: 3,
	}

	_, hit, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, "k", batch))
	assert.Equal(t, time.Hour, mr.TTL("k"))

	got, hit, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, batch, got)

	mr.FastForward(2 * time.Hour)
	_, hit, err = cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestGenerationCache_CorruptEntryIsAMiss(t *testing.T) {
	cache, mr := newTestCache(t)
	require.NoError(t, mr.Set("k", "not json"))

	_, hit, err := cache.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, mr.Exists("k"))
}

func TestGenerationCache_Unavailable(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()

	assert.Error(t, cache.Ping(context.Background()))
	_, _, err := cache.Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	client.Close()

	_, err = NewClient(context.Background(), "not a url")
	assert.Error(t, err)
}
