package league

import "strings"

// Fold normalizes a player name for comparison: surrounding whitespace is
// dropped and case is ignored. Grid cells and remote pages disagree on both.
func Fold(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AlignmentKind classifies the outcome of comparing extracted names against a
// grid pairing.
type AlignmentKind string

const (
	AlignMatched   AlignmentKind = "MATCHED"
	AlignAmbiguous AlignmentKind = "AMBIGUOUS"
	AlignNotFound  AlignmentKind = "NOT_FOUND"
)

// Alignment is the result of an orientation probe. Orientation is only
// meaningful when Kind is AlignMatched; ambiguity is never silently treated
// as Switched.
type Alignment struct {
	Kind        AlignmentKind
	Orientation Orientation
}

// AlignNames compares an extracted (left, right) name pair against the grid's
// (row, col) order. Exact case-insensitive matches in grid order mean Normal,
// in reverse order Switched. When only some names line up the result is
// ambiguous, and when neither extracted name is a grid name at all it is
// NotFound; in both cases the caller keeps Normal and must not infer Switched.
func AlignNames(row, col, left, right string) Alignment {
	rp, cp := Fold(row), Fold(col)
	ln, rn := Fold(left), Fold(right)

	if ln == rp && rn == cp {
		return Alignment{Kind: AlignMatched, Orientation: OrientationNormal}
	}
	if ln == cp && rn == rp {
		return Alignment{Kind: AlignMatched, Orientation: OrientationSwitched}
	}
	if ln != rp && ln != cp && rn != rp && rn != cp {
		return Alignment{Kind: AlignNotFound, Orientation: OrientationNormal}
	}
	return Alignment{Kind: AlignAmbiguous, Orientation: OrientationNormal}
}

// MapScores aligns an extracted score line to grid order for the pairing
// (row, col). The boolean is false when the mapping abstains; abstention is
// never a zero score, callers must skip the write entirely.
//
// Rules, in order:
//  1. Switched orientation swaps unconditionally; the compensation is
//     independent of the literal names on the page.
//  2. Exact case-insensitive match in either order.
//  3. Substring fallback on the row player's name only; a column-name
//     containment on its own is not enough evidence.
//  4. Abstain.
func MapScores(row, col string, line ScoreLine, o Orientation) (ScorePair, bool) {
	if o == OrientationSwitched {
		return ScorePair{Row: line.Right, Col: line.Left}, true
	}

	rp, cp := Fold(row), Fold(col)
	ln, rn := Fold(line.LeftName), Fold(line.RightName)

	if ln == rp && rn == cp {
		return ScorePair{Row: line.Left, Col: line.Right}, true
	}
	if ln == cp && rn == rp {
		return ScorePair{Row: line.Right, Col: line.Left}, true
	}

	if strings.Contains(ln, rp) {
		return ScorePair{Row: line.Left, Col: line.Right}, true
	}
	if strings.Contains(rn, rp) {
		return ScorePair{Row: line.Right, Col: line.Left}, true
	}

	return ScorePair{}, false
}
