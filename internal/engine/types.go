package engine

import (
	"io"

	"github.com/mboeker/gammonsync/internal/metrics"
)

// Options select what a run operates on and how it persists.
type Options struct {
	// League is the league code, e.g. "4d".
	League string
	// Season is the season number, e.g. "34".
	Season string
	// DryRun reconciles in memory but never saves the workbook or pushes
	// metrics.
	DryRun bool
	// Auto saves without asking. Required when a wrapper runs several
	// leagues in sequence.
	Auto bool
}

// Engine drives one reconciliation run against a grid store and the remote
// site.
type Engine struct {
	store    Store
	client   Client
	notifier Notifier
	metrics  metrics.Metrics
	journal  Journal

	// in answers attended save prompts; os.Stdin outside tests.
	in io.Reader
}
