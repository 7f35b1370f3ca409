package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	mutations        map[string]int
	listDurations    map[string][]float64
	dropped          map[string]int
	eventsPublished  int
	eventsFailed     int
	slackNotifSent   int
	slackNotifFailed int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		mutations:     make(map[string]int),
		listDurations: make(map[string][]float64),
		dropped:       make(map[string]int),
	}
}

func (m *Mock) IncMutation(entity, op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutations[entity+"/"+op]++
}

func (m *Mock) ObserveListDuration(entity string, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listDurations[entity] = append(m.listDurations[entity], seconds)
}

func (m *Mock) AddPostFilterDropped(entity string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropped[entity] += n
}

func (m *Mock) IncEventPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished++
}

func (m *Mock) IncEventPublishFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsFailed++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Mutations returns how often IncMutation was called for entity and op.
func (m *Mock) Mutations(entity, op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mutations[entity+"/"+op]
}

// ListObservations returns how many list durations were observed for entity.
func (m *Mock) ListObservations(entity string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listDurations[entity])
}

// Dropped returns the post-filter drop total for entity.
func (m *Mock) Dropped(entity string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dropped[entity]
}

// EventsPublished returns the number of times IncEventPublished was called.
func (m *Mock) EventsPublished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished
}

// EventsFailed returns the number of times IncEventPublishFailed was called.
func (m *Mock) EventsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsFailed
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
