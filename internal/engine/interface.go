package engine

import (
	"context"

	"github.com/mboeker/gammonsync/internal/dailygammon"
	"github.com/mboeker/gammonsync/internal/grid"
	"github.com/mboeker/gammonsync/internal/league"
	"github.com/mboeker/gammonsync/internal/notifier"
)

// Store is the workbook surface the engine drives.
type Store interface {
	grid.Store
}

// Client is the remote surface the engine reads from.
type Client interface {
	dailygammon.Client
}

// Notifier delivers the run report.
// This is an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}

// Journal is the slice of the run journal the engine needs: it only appends.
type Journal interface {
	Record(ctx context.Context, report *league.RunReport) error
}
