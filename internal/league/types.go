package league

import (
	"fmt"
	"time"
)

// WinningScore is the terminal match score. A score cell holding this value
// marks its pairing as finished and must never be written again.
const WinningScore = 11

// MatchID is the numeric identifier of a match on the remote site.
type MatchID int

// Player is one roster entry. ExternalID is the remote numeric user id parsed
// from the roster sheet's hyperlink; when empty the player cannot seed
// discovery but still participates in name matching.
type Player struct {
	Name       string
	ExternalID string
}

// Pairing addresses one grid cell by its two participant names. (A,B) and
// (B,A) are distinct addresses even though they describe the same real match.
type Pairing struct {
	Row string
	Col string
}

func (p Pairing) String() string {
	return fmt.Sprintf("%s vs %s", p.Row, p.Col)
}

// Orientation records how the remote participant order relates to the grid
// pairing a match id is bound to.
type Orientation string

const (
	// OrientationNormal means the remote left participant is the row player.
	OrientationNormal Orientation = "NORMAL"
	// OrientationSwitched means the remote order is reversed; this is the
	// signature of a manually entered identifier.
	OrientationSwitched Orientation = "SWITCHED"
)

// Flip returns the orientation seen from the mirrored pairing. One match has
// one remote participant order, so its two grid addresses observe opposite
// orientations.
func (o Orientation) Flip() Orientation {
	if o == OrientationSwitched {
		return OrientationNormal
	}
	return OrientationSwitched
}

// MatchRecord binds a match id to one grid pairing with one orientation.
// Records are created during identity resolution and never mutated afterwards;
// rediscovering the same id must not rebind it.
type MatchRecord struct {
	ID MatchID
	Pairing
	Orientation Orientation
}

// ScoreLine is the most recent score row extracted from a match page, in
// remote order (left/right as displayed).
type ScoreLine struct {
	LeftName  string
	RightName string
	Left      int
	Right     int
}

// ScorePair is a score aligned to grid order: Row belongs to the row player.
type ScorePair struct {
	Row int
	Col int
}

// CellScore is one score slot as read from the grid. Set distinguishes an
// empty cell from a genuine zero.
type CellScore struct {
	Value int
	Set   bool
}

// ScoreCell is the pair of score slots for one pairing.
type ScoreCell struct {
	Row CellScore
	Col CellScore
}

// Finished reports whether either slot holds the terminal value.
func (c ScoreCell) Finished() bool {
	return (c.Row.Set && c.Row.Value == WinningScore) || (c.Col.Set && c.Col.Value == WinningScore)
}

// ProcessedFlag is the grid marker recording that a pairing's identifier was
// processed, so later runs can skip refetching. The literal values are what
// the flag sheet stores.
type ProcessedFlag string

const (
	FlagUnprocessed ProcessedFlag = ""
	FlagNormal      ProcessedFlag = "0"
	FlagSwitched    ProcessedFlag = "1"
)

// Orientation restores the orientation a set flag recorded. Unprocessed flags
// carry no evidence and report Normal.
func (f ProcessedFlag) Orientation() Orientation {
	if f == FlagSwitched {
		return OrientationSwitched
	}
	return OrientationNormal
}

// FlagFor returns the flag value recording the given orientation.
func FlagFor(o Orientation) ProcessedFlag {
	if o == OrientationSwitched {
		return FlagSwitched
	}
	return FlagNormal
}

// Axis names the side of a pairing a value belongs to: the row player's slot
// or the column opponent's slot.
type Axis string

const (
	AxisRow Axis = "ROW"
	AxisCol Axis = "COL"
)

// Flip returns the opposite axis.
func (a Axis) Flip() Axis {
	if a == AxisRow {
		return AxisCol
	}
	return AxisRow
}

// PairingState is the lifecycle state of one pairing, derived from grid
// content alone.
type PairingState string

const (
	StateNoID       PairingState = "NO_ID"
	StateIdentified PairingState = "IDENTIFIED"
	StateFinished   PairingState = "FINISHED"
)

// StateOf derives the pairing state from the identifier cell and score cell.
// Finished is absorbing: it is reported whenever a terminal score is present,
// identifier or not.
func StateOf(hasID bool, scores ScoreCell) PairingState {
	if scores.Finished() {
		return StateFinished
	}
	if hasID {
		return StateIdentified
	}
	return StateNoID
}

// RunReport summarizes one reconciliation run for the notifier, the journal
// and the CLI.
type RunReport struct {
	RunID      string
	League     string
	Season     string
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time

	KnownIDs      int
	DiscoveredIDs []MatchID
	Switched      int
	ScoresWritten int
	FinalsWritten int
	SkippedFinal  int
	Abstained     int
	Fetches       int
	CacheHits     int
	Completed     bool
	Saved         bool

	Warnings []string
}

// Warnf records a run-level warning.
func (r *RunReport) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Duration is the wall-clock time the run took.
func (r *RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
