package metrics

import "github.com/prometheus/client_golang/prometheus"

// Entity labels.
const (
	EntityPlayer = "player"
	EntityTest   = "test"
	EntityResult = "result"
)

// Mutation labels.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Service holds all the Prometheus metrics for the application.
type Service struct {
	Mutations          *prometheus.CounterVec
	ListDuration       *prometheus.HistogramVec
	PostFilterDropped  *prometheus.CounterVec
	EventsPublished    prometheus.Counter
	EventsFailed       prometheus.Counter
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
