package grid

import "github.com/mboeker/gammonsync/internal/league"

// Store defines the workbook operations the sync engine needs. All writes are
// in-memory until Save; a dry run simply never saves.
type Store interface {
	// Roster reads the Players sheet: names plus the remote user id parsed
	// from each name's hyperlink.
	Roster() ([]league.Player, error)

	// Axis readers, in sheet order.
	RowPlayers() []string
	ColOpponents() []string
	MatchPlayers() []string

	// MatchID reads one identifier cell. The boolean reports presence; a
	// malformed value returns an error wrapping ErrBadIdentifier.
	MatchID(p league.Pairing) (league.MatchID, bool, error)
	// SetMatchID fills an identifier cell and its hyperlink. Occupied cells
	// are never overwritten; the boolean reports whether a write happened.
	SetMatchID(p league.Pairing, id league.MatchID, link string) (bool, error)

	Flag(p league.Pairing) league.ProcessedFlag
	SetFlag(p league.Pairing, f league.ProcessedFlag) error

	// Scores reads both score slots of a pairing.
	Scores(p league.Pairing) (league.ScoreCell, error)
	// WriteScores writes both slots unless the pairing is already finished;
	// the boolean reports whether a write happened.
	WriteScores(p league.Pairing, s league.ScorePair) (bool, error)
	// WriteFinal writes the terminal value to one axis under the same guard.
	WriteFinal(p league.Pairing, axis league.Axis) (bool, error)

	Completed() bool
	MarkCompleted() error

	Save() error
}
