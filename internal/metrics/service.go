package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rally_mutations_total",
			Help: "Successful creates, updates and deletes by entity.",
		}, []string{"entity", "op"}),
		ListDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rally_list_duration_seconds",
			Help:    "Latency of filtered list reads, including derivation.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"entity"}),
		PostFilterDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rally_post_filter_dropped_total",
			Help: "Candidate rows removed by filters on derived fields.",
		}, []string{"entity"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rally_events_published_total",
			Help: "The total number of result-recorded events published.",
		}),
		EventsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rally_events_publish_failed_total",
			Help: "The total number of result-recorded events that failed to publish.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rally_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rally_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rally_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Mutations,
		s.ListDuration,
		s.PostFilterDropped,
		s.EventsPublished,
		s.EventsFailed,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMutation(entity, op string) {
	s.Mutations.WithLabelValues(entity, op).Inc()
}

func (s *Service) ObserveListDuration(entity string, seconds float64) {
	s.ListDuration.WithLabelValues(entity).Observe(seconds)
}

func (s *Service) AddPostFilterDropped(entity string, n int) {
	if n <= 0 {
		return
	}
	s.PostFilterDropped.WithLabelValues(entity).Add(float64(n))
}

func (s *Service) IncEventPublished() {
	s.EventsPublished.Inc()
}

func (s *Service) IncEventPublishFailed() {
	s.EventsFailed.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
