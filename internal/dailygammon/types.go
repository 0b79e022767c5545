package dailygammon

import "github.com/mboeker/gammonsync/internal/league"

// SeasonMatch is one row of a player's match list on their user page,
// filtered to the current season. Opponent fields describe the other side as
// the page lists them; Exportable reports whether the row carries an export
// link, which only finished matches do.
type SeasonMatch struct {
	Opponent   string
	OpponentID string
	MatchID    league.MatchID
	Exportable bool
}
