package client

import (
	"Favour/config"
	"Favour/pkg/log"
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func NewRedisClient(conf *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr(),
		Password: conf.Redis.Password,
		Username: conf.Redis.Username,
		DB:       conf.Redis.Database,
	})
	if _, err := client.Ping(context.TODO()).Result(); err != nil {
		log.L.Error("connect redis error", zap.Error(err))
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	log.L.Info("redis client success", zap.String("addr", conf.Redis.Addr()))
	return client, nil
}
