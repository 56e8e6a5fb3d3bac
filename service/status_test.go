package service

import (
	"Favour/models"
	"Favour/pkg/metrics"
	"Favour/pkg/testdb"
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusService_RemoveSkipsCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testdb.SeedAccount(t, f.db, 1, "alice")
	testdb.SeedAccount(t, f.db, 3, "carol")
	testdb.SeedStatus(t, f.db, 10, 2, testdb.Int64(0))
	testdb.SeedStatus(t, f.db, 11, 2, testdb.Int64(0))

	for _, acct := range []uint64{1, 3} {
		_, err := f.favs.FavouriteByID(ctx, acct, 10)
		require.NoError(t, err)
	}
	_, err := f.favs.FavouriteByID(ctx, 1, 11)
	require.NoError(t, err)
	f.indexer.ids = nil

	st, err := f.favs.StatusDAO.GetResident(ctx, 10)
	require.NoError(t, err)

	skips := testutil.ToFloat64(metrics.CounterAdjustments.WithLabelValues(metrics.OpSkip, metrics.PathResident))
	f.rec.Reset()
	require.NoError(t, f.statuses.Remove(ctx, st))

	assert.True(t, st.MarkedForDestruction())
	assert.Empty(t, f.counterUpdates())
	assert.Equal(t, skips+2, testutil.ToFloat64(metrics.CounterAdjustments.WithLabelValues(metrics.OpSkip, metrics.PathResident)))

	var left []models.Favourite
	require.NoError(t, f.db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, uint64(11), left[0].StatusID)
	assert.Equal(t, int64(1), f.notificationRows(t))

	var n int64
	require.NoError(t, f.db.Model(&models.Status{}).Where("id = ?", 10).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, f.db.Model(&models.StatusStat{}).Where("status_id = ?", 10).Count(&n).Error)
	assert.Zero(t, n)

	assert.False(t, f.redis.Exists("favourite:account:1:status:10"))
	assert.True(t, f.redis.Exists("favourite:account:1:status:11"))
	assert.Equal(t, []uint64{10}, f.indexer.reindexed())
}

func TestStatusService_RemoveMany(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testdb.SeedAccount(t, f.db, 1, "alice")
	var batch []*models.Status
	for id := uint64(10); id < 13; id++ {
		testdb.SeedStatus(t, f.db, id, 2, testdb.Int64(0))
		_, err := f.favs.FavouriteByID(ctx, 1, id)
		require.NoError(t, err)
		st, err := f.favs.StatusDAO.GetResident(ctx, id)
		require.NoError(t, err)
		batch = append(batch, st)
	}
	f.indexer.ids = nil

	f.rec.Reset()
	require.NoError(t, f.statuses.RemoveMany(ctx, batch))

	for _, st := range batch {
		assert.True(t, st.MarkedForMassDestruction())
		assert.False(t, st.MarkedForDestruction())
	}
	assert.Empty(t, f.counterUpdates())
	assert.Equal(t, int64(0), f.favouriteRows(t))
	assert.Equal(t, int64(0), f.notificationRows(t))
	assert.ElementsMatch(t, []uint64{10, 11, 12}, f.indexer.reindexed())
}

func TestStatusService_RemoveWithoutFavourites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := testdb.SeedStatus(t, f.db, 10, 2, nil)

	require.NoError(t, f.statuses.Remove(ctx, st))

	var n int64
	require.NoError(t, f.db.Model(&models.Status{}).Count(&n).Error)
	assert.Zero(t, n)
}
