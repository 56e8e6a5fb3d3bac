package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	OpIncrement = "increment"
	OpDecrement = "decrement"
	OpSkip      = "skip"

	PathResident = "resident"
	PathDetached = "detached"
)

var (
	// CounterAdjustments counts favourites_count writes by operation and by
	// which target handled them.
	CounterAdjustments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favour_counter_adjustments_total",
			Help: "favourites_count adjustments by op and path",
		},
		[]string{"op", "path"},
	)

	Favourites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favour_favourites_total",
			Help: "favourite rows created or destroyed",
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(CounterAdjustments)
	prometheus.MustRegister(Favourites)
}

// Push sends the favour counters to a pushgateway under job, replacing what
// was pushed for that job before. Commands call it once, when they finish.
func Push(ctx context.Context, gateway, job string) error {
	return push.New(gateway, job).
		Collector(CounterAdjustments).
		Collector(Favourites).
		PushContext(ctx)
}
