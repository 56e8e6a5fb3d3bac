package config

type App struct {
	Env   string `json:"env" yaml:"env"`
	Debug bool   `json:"debug" yaml:"debug"`
	// NodeID seeds the snowflake generator; every process writing ids needs its own.
	NodeID int64 `json:"node_id" yaml:"node_id"`
}
