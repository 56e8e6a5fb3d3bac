package config

const DefaultSearchTopic = "STATUS_REINDEX"

// Search controls whether favourite changes push a reindex of the status
// document. Disabled means no producer is ever started.
type Search struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Topic   string `json:"topic" yaml:"topic"`
}

func ProvideSearchConfig(cfg *Config) *Search {
	return cfg.Search
}
