package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the whole yaml file.
type Config struct {
	App      *App            `json:"app" yaml:"app"`
	MySQL    *MySQL          `json:"mysql" yaml:"mysql"`
	Redis    *Redis          `json:"redis" yaml:"redis"`
	RocketMQ *RocketMQConfig `json:"rocketmq" yaml:"rocketmq"`
	Search   *Search         `json:"search" yaml:"search"`
	Cache    *Cache          `json:"cache" yaml:"cache"`
	Metrics  *Metrics        `json:"metrics" yaml:"metrics"`
}

// New reads filename and panics if it cannot be loaded.
func New(filename string) *Config {
	conf, err := Load(filename)
	if err != nil {
		panic(err)
	}
	return conf
}

// Load reads and parses a yaml config file, filling in defaults for any
// section left out.
func Load(filename string) (*Config, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", filename, err)
	}

	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", filename, err)
	}
	conf.fill()

	return &conf, nil
}

func (c *Config) fill() {
	if c.App == nil {
		c.App = &App{}
	}
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.NodeID == 0 {
		c.App.NodeID = 1
	}
	if c.MySQL == nil {
		c.MySQL = &MySQL{}
	}
	if c.Redis == nil {
		c.Redis = &Redis{}
	}
	if c.RocketMQ == nil {
		c.RocketMQ = &RocketMQConfig{}
	}
	if c.Search == nil {
		c.Search = &Search{}
	}
	if c.Search.Topic == "" {
		c.Search.Topic = DefaultSearchTopic
	}
	if c.Cache == nil {
		c.Cache = &Cache{}
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = DefaultCacheTTLSeconds
	}
	if c.Cache.NegativeTTLSeconds == 0 {
		c.Cache.NegativeTTLSeconds = DefaultCacheNegativeTTLSeconds
	}
	if c.Metrics == nil {
		c.Metrics = &Metrics{}
	}
	if c.Metrics.Job == "" {
		c.Metrics.Job = DefaultMetricsJob
	}
}

// Debug reports whether the app runs in debug mode.
func (c *Config) Debug() bool {
	return c.App.Debug
}
