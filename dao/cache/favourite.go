package cache

import (
	"Favour/config"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FavouriteStorage caches whether an account has favourited a status. The
// database stays authoritative; a miss or a redis error sends the caller there.
type FavouriteStorage struct {
	redis       *redis.Client
	ttl         time.Duration
	negativeTTL time.Duration
}

func NewFavouriteStorage(redis *redis.Client, conf *config.Cache) *FavouriteStorage {
	return &FavouriteStorage{redis: redis, ttl: conf.TTL(), negativeTTL: conf.NegativeTTL()}
}

// Get returns hit=false when nothing is cached for the pair.
func (s *FavouriteStorage) Get(ctx context.Context, accountID, statusID uint64) (hit bool, favourited bool, err error) {
	val, err := s.redis.Get(ctx, s.key(accountID, statusID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return true, val == "1", nil
}

// Set records the answer after a write to the database.
func (s *FavouriteStorage) Set(ctx context.Context, accountID, statusID uint64, favourited bool) error {
	val, ttl := s.value(favourited)
	return s.redis.Set(ctx, s.key(accountID, statusID), val, ttl).Err()
}

// Fill caches an answer read from the database. It never overwrites a value
// a concurrent write stored after that read.
func (s *FavouriteStorage) Fill(ctx context.Context, accountID, statusID uint64, favourited bool) error {
	val, ttl := s.value(favourited)
	return s.redis.SetNX(ctx, s.key(accountID, statusID), val, ttl).Err()
}

// Forget drops cached pairs, used when rows go away in bulk.
func (s *FavouriteStorage) Forget(ctx context.Context, accountID uint64, statusIDs ...uint64) error {
	if len(statusIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(statusIDs))
	for _, id := range statusIDs {
		keys = append(keys, s.key(accountID, id))
	}
	return s.redis.Del(ctx, keys...).Err()
}

func (s *FavouriteStorage) value(favourited bool) (string, time.Duration) {
	if favourited {
		return "1", s.ttl
	}
	return "0", s.negativeTTL
}

func (s *FavouriteStorage) key(accountID, statusID uint64) string {
	return fmt.Sprintf("favourite:account:%d:status:%d", accountID, statusID)
}
