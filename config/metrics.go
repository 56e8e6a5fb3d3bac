package config

const DefaultMetricsJob = "favour"

// Metrics points at a Prometheus pushgateway. Commands are short lived, so
// counters are pushed when a command ends; an empty gateway disables it.
type Metrics struct {
	PushGateway string `json:"push_gateway" yaml:"push_gateway"`
	Job         string `json:"job" yaml:"job"`
}

func (m *Metrics) Enabled() bool {
	return m.PushGateway != ""
}
