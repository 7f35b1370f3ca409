package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMutation(entity, op string)
	ObserveListDuration(entity string, seconds float64)
	AddPostFilterDropped(entity string, n int)
	IncEventPublished()
	IncEventPublishFailed()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
