// Package notify alerts dispatch when a submission is accepted. Delivery is
// best effort: failures are logged and counted, never surfaced to the form.
package notify

import (
	"context"

	"trucking-site/internal/common/logger"
)

// Event describes an accepted submission.
type Event struct {
	Kind    string // "contact" or "application"
	ID      string
	Name    string
	Email   string
	Phone   string
	Topic   string
	Summary string
	HasCDL  bool
}

// Notifier delivers dispatch alerts for accepted submissions.
type Notifier interface {
	SubmissionAccepted(ctx context.Context, event Event)
}

// NoopNotifier drops all events. Used when notifications are disabled.
type NoopNotifier struct{}

func (NoopNotifier) SubmissionAccepted(ctx context.Context, event Event) {}

// LoggingNotifier records events to the log only, for local runs where AWS
// credentials are absent.
type LoggingNotifier struct {
	Logger logger.Logger
}

func (n LoggingNotifier) SubmissionAccepted(ctx context.Context, event Event) {
	n.Logger.Info("submission accepted", map[string]interface{}{
		"kind": event.Kind,
		"id":   event.ID,
	})
}
