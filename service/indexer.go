package service

import (
	"Favour/config"
	"Favour/pkg/log"
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// StatusIndexer asks the search index to refresh a status document. Calls
// never fail the caller; delivery problems are only logged.
type StatusIndexer interface {
	Reindex(ctx context.Context, statusID uint64)
	ReindexMany(ctx context.Context, statusIDs []uint64)
}

var (
	_ StatusIndexer = NoopIndexer{}
	_ StatusIndexer = (*MQIndexer)(nil)
)

// NewStatusIndexer picks the indexer from config; without search or without
// a producer nothing is pushed.
func NewStatusIndexer(cfg *config.Search, producer rocketmq.Producer) StatusIndexer {
	if !cfg.Enabled || producer == nil {
		return NoopIndexer{}
	}
	return &MQIndexer{Producer: producer, Topic: cfg.Topic}
}

type NoopIndexer struct{}

func (NoopIndexer) Reindex(context.Context, uint64) {}

func (NoopIndexer) ReindexMany(context.Context, []uint64) {}

// AsyncSender is the part of rocketmq.Producer the indexer uses.
type AsyncSender interface {
	SendAsync(ctx context.Context, mq func(ctx context.Context, result *primitive.SendResult, err error),
		msg ...*primitive.Message) error
}

// ReindexEvent is the message body on the reindex topic.
type ReindexEvent struct {
	EventID     string    `json:"event_id"`
	StatusID    uint64    `json:"status_id"`
	RequestedAt time.Time `json:"requested_at"`
}

const reindexConcurrency = 8

type MQIndexer struct {
	Producer AsyncSender
	Topic    string
}

func (i *MQIndexer) Reindex(ctx context.Context, statusID uint64) {
	// the push outlives the caller's request
	ctx = context.WithoutCancel(ctx)

	event := ReindexEvent{
		EventID:     uuid.NewString(),
		StatusID:    statusID,
		RequestedAt: time.Now(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.L.Warn("marshal reindex event", zap.Uint64("status_id", statusID), zap.Error(err))
		return
	}

	msg := primitive.NewMessage(i.Topic, body)
	msg.WithKeys([]string{event.EventID})
	msg.WithShardingKey(strconv.FormatUint(statusID, 10))

	err = i.Producer.SendAsync(ctx, func(_ context.Context, res *primitive.SendResult, err error) {
		if err != nil {
			log.L.Warn("reindex push failed", zap.Uint64("status_id", statusID), zap.Error(err))
			return
		}
		log.L.Debug("reindex pushed", zap.Uint64("status_id", statusID), zap.String("msg_id", res.MsgID))
	}, msg)
	if err != nil {
		log.L.Warn("reindex push failed", zap.Uint64("status_id", statusID), zap.Error(err))
	}
}

func (i *MQIndexer) ReindexMany(ctx context.Context, statusIDs []uint64) {
	p := pool.New().WithMaxGoroutines(reindexConcurrency)
	for _, id := range statusIDs {
		id := id
		p.Go(func() {
			i.Reindex(ctx, id)
		})
	}
	p.Wait()
}
