package dao

import (
	"Favour/pkg/testdb"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStatusStatDAO_Incr(t *testing.T) {
	db, rec := testdb.Open(t)
	testdb.SeedStatus(t, db, 1, 100, testdb.Int64(4))
	testdb.SeedStatus(t, db, 2, 100, nil)
	d := NewStatusStatDAO(db)
	ctx := context.Background()

	rec.Reset()
	require.NoError(t, d.IncrFavouritesCount(ctx, 1))
	assert.Len(t, rec.Matching("UPDATE `status_stats`"), 1)
	assert.Contains(t, rec.Matching("UPDATE `status_stats`")[0], "COALESCE(favourites_count, 0) + 1")
	assert.Equal(t, int64(5), testdb.Favourites(t, db, 1))

	require.NoError(t, d.IncrFavouritesCount(ctx, 2))
	assert.Equal(t, int64(1), testdb.Favourites(t, db, 2))
}

func TestStatusStatDAO_DecrFloorsAtZero(t *testing.T) {
	db, _ := testdb.Open(t)
	testdb.SeedStatus(t, db, 1, 100, testdb.Int64(1))
	testdb.SeedStatus(t, db, 2, 100, nil)
	d := NewStatusStatDAO(db)
	ctx := context.Background()

	require.NoError(t, d.DecrFavouritesCount(ctx, 1))
	assert.Equal(t, int64(0), testdb.Favourites(t, db, 1))

	require.NoError(t, d.DecrFavouritesCount(ctx, 1))
	assert.Equal(t, int64(0), testdb.Favourites(t, db, 1))

	require.NoError(t, d.DecrFavouritesCount(ctx, 2))
	assert.Equal(t, int64(0), testdb.Favourites(t, db, 2))
}

func TestStatusStatDAO_MissingRow(t *testing.T) {
	db, _ := testdb.Open(t)
	testdb.SeedBareStatus(t, db, 1, 100)
	d := NewStatusStatDAO(db)
	ctx := context.Background()

	assert.ErrorIs(t, d.IncrFavouritesCount(ctx, 1), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, d.DecrFavouritesCount(ctx, 1), gorm.ErrRecordNotFound)

	_, err := d.GetByStatusID(ctx, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStatusStatDAO_GetAndDelete(t *testing.T) {
	db, _ := testdb.Open(t)
	testdb.SeedStatus(t, db, 1, 100, testdb.Int64(9))
	d := NewStatusStatDAO(db)
	ctx := context.Background()

	stat, err := d.GetByStatusID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(9), stat.Favourites())

	require.NoError(t, d.DeleteByStatusID(ctx, 1))
	_, err = d.GetByStatusID(ctx, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
