package engine

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mboeker/gammonsync/internal/dailygammon"
	"github.com/mboeker/gammonsync/internal/league"
)

// resolveState is the pairing-to-record mapping built for one run, plus the
// bookkeeping that keeps id bindings stable: a match is visible from both of
// its mirrored grid cells, and the first observation of an id fixes how later
// ones derive their orientation.
type resolveState struct {
	records map[league.Pairing]*league.MatchRecord
	order   []league.Pairing

	// first holds the first record seen per id; later observations never
	// rebind it.
	first map[league.MatchID]*league.MatchRecord
	// probed marks ids whose orientation rests on page evidence rather
	// than the Normal default.
	probed map[league.MatchID]bool
}

func newResolveState() *resolveState {
	return &resolveState{
		records: make(map[league.Pairing]*league.MatchRecord),
		first:   make(map[league.MatchID]*league.MatchRecord),
		probed:  make(map[league.MatchID]bool),
	}
}

func (rs *resolveState) add(rec *league.MatchRecord, probed bool) {
	if _, ok := rs.records[rec.Pairing]; ok {
		return
	}
	rs.records[rec.Pairing] = rec
	rs.order = append(rs.order, rec.Pairing)
	if _, ok := rs.first[rec.ID]; !ok {
		rs.first[rec.ID] = rec
	}
	if probed {
		rs.probed[rec.ID] = true
	}
}

// knownOrientation derives the orientation for a new record of id at pairing
// p from earlier page evidence for the same id. The mirrored pairing sees the
// opposite orientation. A default-Normal record is not evidence and is never
// propagated.
func (rs *resolveState) knownOrientation(id league.MatchID, p league.Pairing) league.Orientation {
	prev, ok := rs.first[id]
	if !ok || !rs.probed[id] {
		return league.OrientationNormal
	}
	if mirrorOf(p, prev.Pairing) {
		return prev.Orientation.Flip()
	}
	return prev.Orientation
}

// mirrorOf reports whether a and b address the same match from opposite
// sides.
func mirrorOf(a, b league.Pairing) bool {
	return league.Fold(a.Row) == league.Fold(b.Col) && league.Fold(a.Col) == league.Fold(b.Row)
}

func samePairing(a, b league.Pairing) bool {
	return league.Fold(a.Row) == league.Fold(b.Row) && league.Fold(a.Col) == league.Fold(b.Col)
}

// confirmPairings rebuilds the match record for every identifier already in
// the grid. With probe enabled, unflagged cells get their orientation from
// the match page: names aligned in grid order mean Normal, reversed order
// means Switched (a manually entered identifier), anything else keeps Normal
// with a warning. A stamped processed flag short-circuits the probe and
// restores the orientation it recorded. With probe disabled the grid state
// alone is used.
func (e *Engine) confirmPairings(ctx context.Context, cache *PageCache, report *league.RunReport, probe bool) *resolveState {
	rs := newResolveState()
	for _, row := range e.store.RowPlayers() {
		for _, col := range e.store.ColOpponents() {
			if league.Fold(row) == league.Fold(col) {
				continue
			}
			p := league.Pairing{Row: row, Col: col}
			id, ok, err := e.store.MatchID(p)
			if err != nil {
				report.Warnf("identifier at %s is unreadable: %v", p, err)
				log.Warn("Excluding pairing with unreadable identifier", "pairing", p.String(), "error", err)
				continue
			}
			if !ok {
				continue
			}
			report.KnownIDs++
			rec := &league.MatchRecord{ID: id, Pairing: p, Orientation: league.OrientationNormal}

			if flag := e.store.Flag(p); flag != league.FlagUnprocessed {
				rec.Orientation = flag.Orientation()
				log.Debug("Identifier already processed", "matchID", id, "pairing", p.String(), "orientation", rec.Orientation)
				rs.add(rec, flag == league.FlagSwitched)
				continue
			}
			if !probe {
				rs.add(rec, false)
				continue
			}

			html, err := cache.Page(ctx, id)
			if err != nil {
				log.Warn("Match page unavailable, keeping grid order", "matchID", id, "pairing", p.String(), "error", err)
				rs.add(rec, false)
				continue
			}
			line, found := dailygammon.ExtractLatestScore(html, []string{row, col})
			if !found {
				log.Debug("No score line yet, keeping grid order", "matchID", id, "pairing", p.String())
				rs.add(rec, false)
				continue
			}
			switch a := league.AlignNames(row, col, line.LeftName, line.RightName); a.Kind {
			case league.AlignMatched:
				rec.Orientation = a.Orientation
				if a.Orientation == league.OrientationSwitched {
					report.Switched++
					e.metrics.IncSwitchedDetected()
					log.Info("Manually entered match detected (reversed order)", "matchID", id, "pairing", p.String())
				}
				rs.add(rec, true)
			default:
				report.Warnf("match %d (%s): page shows %q vs %q, order unclear", id, p, line.LeftName, line.RightName)
				log.Warn("Unclear participant order, keeping grid order", "matchID", id, "pairing", p.String(), "left", line.LeftName, "right", line.RightName)
				rs.add(rec, false)
			}
		}
	}
	return rs
}

// discoverPairings fills identifier gaps from player pages. Every season
// match on a player's page whose pairing is still unmapped yields a record;
// its identifier is written to the grid (only into an empty cell) and the
// processed flag is stamped with the record's orientation.
func (e *Engine) discoverPairings(ctx context.Context, rs *resolveState, memo *seasonListMemo, report *league.RunReport) {
	roster, err := e.store.Roster()
	if err != nil {
		report.Warnf("roster unavailable: %v", err)
		log.Error("Failed to read roster", "error", err)
		return
	}
	for _, player := range roster {
		if player.ExternalID == "" {
			log.Debug("No user id on roster, skipping discovery", "player", player.Name)
			continue
		}
		if !missingOpponents(rs, roster, player.Name) {
			continue
		}
		seasonMatches, err := memo.For(ctx, player.ExternalID)
		if err != nil {
			report.Warnf("user page for %s unavailable: %v", player.Name, err)
			log.Error("Failed to list season matches", "player", player.Name, "error", err)
			continue
		}
		for _, sm := range seasonMatches {
			p := league.Pairing{Row: player.Name, Col: sm.Opponent}
			if _, ok := rs.records[p]; ok {
				continue
			}
			if prev, ok := rs.first[sm.MatchID]; ok && !mirrorOf(p, prev.Pairing) && !samePairing(p, prev.Pairing) {
				report.Warnf("match %d is bound to %s but also reported for %s", sm.MatchID, prev.Pairing, p)
				log.Warn("Match id reported for an unrelated pairing", "matchID", sm.MatchID, "bound", prev.Pairing.String(), "reported", p.String())
			}
			rec := &league.MatchRecord{ID: sm.MatchID, Pairing: p, Orientation: rs.knownOrientation(sm.MatchID, p)}
			rs.add(rec, false)
			report.DiscoveredIDs = append(report.DiscoveredIDs, sm.MatchID)
			e.metrics.IncIdentifiersDiscovered()

			link := fmt.Sprintf("%s/bg/game/%d/0/list#end", dailygammon.DefaultBaseURL, sm.MatchID)
			wrote, err := e.store.SetMatchID(p, sm.MatchID, link)
			if err != nil {
				report.Warnf("could not write identifier %d at %s: %v", sm.MatchID, p, err)
				log.Error("Failed to write identifier", "matchID", sm.MatchID, "pairing", p.String(), "error", err)
				continue
			}
			if wrote {
				log.Info("Missing match discovered and added", "matchID", sm.MatchID, "pairing", p.String())
			}
			if err := e.store.SetFlag(p, league.FlagFor(rec.Orientation)); err != nil {
				log.Error("Failed to stamp processed flag", "pairing", p.String(), "error", err)
			}
		}
	}
}

// missingOpponents reports whether any roster opponent of name still has no
// record from name's side of the grid.
func missingOpponents(rs *resolveState, roster []league.Player, name string) bool {
	for _, opp := range roster {
		if league.Fold(opp.Name) == league.Fold(name) {
			continue
		}
		if _, ok := rs.records[league.Pairing{Row: name, Col: opp.Name}]; !ok {
			return true
		}
	}
	return false
}
