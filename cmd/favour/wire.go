//go:build wireinject
// +build wireinject

package main

import (
	"Favour/config"
	"Favour/dao"
	"Favour/dao/cache"
	"Favour/pkg/client"
	"Favour/pkg/database"
	"Favour/pkg/rocketmq"
	"Favour/pkg/server"
	"Favour/service"

	"github.com/google/wire"
)

func InitApp(cfg *config.Config) (*server.AppProvider, func(), error) {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		config.ProvideSearchConfig,
		config.ProvideCacheConfig,
		config.ProvideRocketMQConfig,
		rocketmq.InitProducer,

		dao.ProviderSet,
		cache.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil, nil, nil
}
