package service

import (
	"Favour/config"
	"Favour/dao"
	"Favour/dao/cache"
	"Favour/pkg/testdb"
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type recordingIndexer struct {
	mu  sync.Mutex
	ids []uint64
}

func (r *recordingIndexer) Reindex(_ context.Context, statusID uint64) {
	r.mu.Lock()
	r.ids = append(r.ids, statusID)
	r.mu.Unlock()
}

func (r *recordingIndexer) ReindexMany(ctx context.Context, statusIDs []uint64) {
	for _, id := range statusIDs {
		r.Reindex(ctx, id)
	}
}

func (r *recordingIndexer) reindexed() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uint64(nil), r.ids...)
}

type fixture struct {
	db       *gorm.DB
	rec      *testdb.Recorder
	redis    *miniredis.Miniredis
	indexer  *recordingIndexer
	favs     *FavouriteService
	statuses *StatusService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, rec := testdb.Open(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	storage := cache.NewFavouriteStorage(rdb, &config.Cache{TTLSeconds: 60})

	indexer := &recordingIndexer{}
	favs := &FavouriteService{
		AccountDAO:      dao.NewAccountDAO(db),
		StatusDAO:       dao.NewStatusDAO(db),
		StatsDAO:        dao.NewStatusStatDAO(db),
		FavouriteDAO:    dao.NewFavouriteDAO(db),
		NotificationDAO: dao.NewNotificationDAO(db),
		Cache:           storage,
		Indexer:         indexer,
	}
	statuses := &StatusService{
		StatusDAO:    favs.StatusDAO,
		StatsDAO:     favs.StatsDAO,
		FavouriteDAO: favs.FavouriteDAO,
		Favourites:   favs,
		Cache:        storage,
		Indexer:      indexer,
	}
	return &fixture{db: db, rec: rec, redis: mr, indexer: indexer, favs: favs, statuses: statuses}
}

// counterUpdates returns the statements that touched status_stats.
func (f *fixture) counterUpdates() []string {
	return f.rec.Matching("UPDATE `status_stats`")
}

func (f *fixture) favouriteRows(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := f.db.Table("favourites").Count(&n).Error; err != nil {
		t.Fatalf("count favourites: %v", err)
	}
	return n
}

func (f *fixture) notificationRows(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := f.db.Table("notifications").Count(&n).Error; err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	return n
}
