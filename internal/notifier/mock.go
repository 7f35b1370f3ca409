package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/rally-stats/internal/pubsub"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendResultNotificationFunc func(event pubsub.ResultRecorded, dryRun bool) error

	// Call records
	SendResultNotificationCalls []SendResultNotificationCall
}

// SendResultNotificationCall holds the arguments for a call to SendResultNotification.
type SendResultNotificationCall struct {
	Event  pubsub.ResultRecorded
	DryRun bool
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
}

func (m *Mock) SendResultNotification(_ context.Context, event pubsub.ResultRecorded, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, SendResultNotificationCall{Event: event, DryRun: dryRun})
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(event, dryRun)
	}
	return nil
}

// Calls returns a copy of the recorded SendResultNotification calls.
func (m *Mock) Calls() []SendResultNotificationCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SendResultNotificationCall(nil), m.SendResultNotificationCalls...)
}
