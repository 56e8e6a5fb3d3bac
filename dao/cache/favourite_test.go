package cache

import (
	"Favour/config"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t *testing.T) (*FavouriteStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewFavouriteStorage(rdb, &config.Cache{TTLSeconds: 60, NegativeTTLSeconds: 5}), mr
}

func TestFavouriteStorage_GetSet(t *testing.T) {
	s, mr := newStorage(t)
	ctx := context.Background()

	hit, _, err := s.Get(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, s.Set(ctx, 1, 10, true))
	hit, fav, err := s.Get(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.True(t, fav)

	assert.Equal(t, time.Minute, mr.TTL("favourite:account:1:status:10"))

	require.NoError(t, s.Set(ctx, 1, 10, false))
	hit, fav, err = s.Get(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.False(t, fav)

	assert.Equal(t, 5*time.Second, mr.TTL("favourite:account:1:status:10"), "negative answers expire sooner")
}

func TestFavouriteStorage_FillKeepsNewerValue(t *testing.T) {
	s, mr := newStorage(t)
	ctx := context.Background()

	// a favourite committed between the database read and the fill
	require.NoError(t, s.Set(ctx, 1, 10, true))
	require.NoError(t, s.Fill(ctx, 1, 10, false))

	hit, fav, err := s.Get(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.True(t, fav)

	require.NoError(t, s.Fill(ctx, 1, 11, false))
	hit, fav, err = s.Get(ctx, 1, 11)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.False(t, fav)
	assert.Equal(t, 5*time.Second, mr.TTL("favourite:account:1:status:11"))
}

func TestFavouriteStorage_Expires(t *testing.T) {
	s, mr := newStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, 2, 20, true))
	mr.FastForward(2 * time.Minute)

	hit, _, err := s.Get(ctx, 2, 20)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestFavouriteStorage_Forget(t *testing.T) {
	s, _ := newStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, 3, 30, true))
	require.NoError(t, s.Set(ctx, 3, 31, true))
	require.NoError(t, s.Set(ctx, 4, 30, true))

	require.NoError(t, s.Forget(ctx, 3, 30, 31))
	require.NoError(t, s.Forget(ctx, 3))

	for _, id := range []uint64{30, 31} {
		hit, _, err := s.Get(ctx, 3, id)
		require.NoError(t, err)
		assert.False(t, hit)
	}
	hit, fav, err := s.Get(ctx, 4, 30)
	require.NoError(t, err)
	assert.True(t, hit && fav)
}

func TestFavouriteStorage_RedisDown(t *testing.T) {
	s, mr := newStorage(t)
	mr.Close()

	_, _, err := s.Get(context.Background(), 1, 1)
	assert.Error(t, err)
}
