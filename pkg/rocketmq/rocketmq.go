package rocketmq

import (
	"Favour/config"
	"Favour/pkg/log"
	"fmt"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

func init() {
	rlog.SetLogLevel("error")
}

// InitProducer starts the producer used for search reindex pushes. With
// search disabled no producer is started and nil is returned; the indexer
// falls back to a no-op.
func InitProducer(search *config.Search, cfg *config.RocketMQConfig) (rocketmq.Producer, func(), error) {
	if !search.Enabled {
		return nil, func() {}, nil
	}

	retry := cfg.Producer.Retry
	if retry <= 0 {
		retry = 2
	}
	p, err := rocketmq.NewProducer(
		producer.WithNameServer(primitive.NamesrvAddr(cfg.NameServer)),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(retry),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("new producer: %w", err)
	}
	if err := p.Start(); err != nil {
		return nil, nil, fmt.Errorf("start producer: %w", err)
	}
	log.L.Info("init producer success", zap.Strings("nameserver", cfg.NameServer))

	cleanup := func() {
		if err := p.Shutdown(); err != nil {
			log.L.Warn("shutdown producer", zap.Error(err))
		}
	}
	return p, cleanup, nil
}
