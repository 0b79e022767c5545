package journal

import (
	"context"

	"github.com/mboeker/gammonsync/internal/league"
)

// Journal defines the interface for recording finished runs and querying
// past ones.
type Journal interface {
	// Record persists a finished run.
	Record(ctx context.Context, report *league.RunReport) error
	// History returns past runs, newest first, optionally restricted to one
	// league. A non-positive limit returns the full journal.
	History(ctx context.Context, leagueCode string, limit int) ([]*league.RunReport, error)
	// Close releases the underlying database handle.
	Close() error
}
