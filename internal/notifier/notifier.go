package notifier

import (
	"github.com/mboeker/gammonsync/internal/league"
)

// Notifier defines a high-level interface for sending notifications about run outcomes.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// SendRunReport sends a summary of a finished reconciliation run.
	SendRunReport(report *league.RunReport, dryRun bool) error
}

// Noop is a Notifier that does nothing. It is used when no notification
// provider is configured.
type Noop struct{}

var _ Notifier = Noop{}

func (Noop) SendRunReport(report *league.RunReport, dryRun bool) error {
	return nil
}
