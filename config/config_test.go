package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
app:
  env: prod
  node_id: 7
mysql:
  host: db.internal
  port: 3306
  username: favour
  password: secret
  database: social
redis:
  address: cache.internal
search:
  enabled: true
  topic: STATUS_INDEX
cache:
  ttl_seconds: 60
  negative_ttl_seconds: 5
metrics:
  push_gateway: http://pushgateway:9091
rocketmq:
  nameserver: ["10.0.0.1:9876"]
  producer:
    group: favour
    retry: 2
`)

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", conf.App.Env)
	assert.Equal(t, int64(7), conf.App.NodeID)
	assert.True(t, conf.Search.Enabled)
	assert.Equal(t, "STATUS_INDEX", conf.Search.Topic)
	assert.Equal(t, time.Minute, conf.Cache.TTL())
	assert.Equal(t, 5*time.Second, conf.Cache.NegativeTTL())
	assert.True(t, conf.Metrics.Enabled())
	assert.Equal(t, DefaultMetricsJob, conf.Metrics.Job)
	assert.Equal(t, "cache.internal:6379", conf.Redis.Addr())
	assert.Equal(t, []string{"10.0.0.1:9876"}, conf.RocketMQ.NameServer)
	assert.Equal(t, 2, conf.RocketMQ.Producer.Retry)
	assert.Equal(t,
		"favour:secret@tcp(db.internal:3306)/social?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		conf.MySQL.Dsn())
}

func TestLoadDefaults(t *testing.T) {
	conf, err := Load(writeConfig(t, "app:\n  debug: true\n"))
	require.NoError(t, err)

	assert.True(t, conf.Debug())
	assert.Equal(t, "dev", conf.App.Env)
	assert.Equal(t, int64(1), conf.App.NodeID)
	assert.False(t, conf.Search.Enabled)
	assert.Equal(t, DefaultSearchTopic, conf.Search.Topic)
	assert.Equal(t, time.Duration(DefaultCacheTTLSeconds)*time.Second, conf.Cache.TTL())
	assert.Equal(t, time.Duration(DefaultCacheNegativeTTLSeconds)*time.Second, conf.Cache.NegativeTTL())
	assert.False(t, conf.Metrics.Enabled())
	assert.NotNil(t, conf.MySQL)
	assert.NotNil(t, conf.Redis)
	assert.NotNil(t, conf.RocketMQ)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "app: [not, a, map"))
	assert.Error(t, err)

	assert.Panics(t, func() { New(filepath.Join(t.TempDir(), "missing.yaml")) })
}

func TestCacheNegativeTTLFallback(t *testing.T) {
	assert.Equal(t, 10*time.Second, (&Cache{TTLSeconds: 10}).NegativeTTL())
	assert.Equal(t, time.Minute, (&Cache{TTLSeconds: 3600}).NegativeTTL())
}
