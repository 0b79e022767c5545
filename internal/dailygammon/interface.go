package dailygammon

import (
	"context"

	"github.com/mboeker/gammonsync/internal/league"
)

// Client defines the interface for interacting with DailyGammon.
// This allows for mock implementations to be used in tests.
type Client interface {
	Login(ctx context.Context) error
	FetchMatchPage(ctx context.Context, id league.MatchID) (string, error)
	ListSeasonMatches(ctx context.Context, userID, seasonTag string) ([]SeasonMatch, error)
	FetchExport(ctx context.Context, id league.MatchID) ([]string, error)
}
