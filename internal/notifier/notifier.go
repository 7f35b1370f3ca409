package notifier

import (
	"context"

	"github.com/mauv0809/rally-stats/internal/pubsub"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For newly recorded test results
	SendResultNotification(ctx context.Context, event pubsub.ResultRecorded, dryRun bool) error
}
