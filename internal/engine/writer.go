package engine

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/mboeker/gammonsync/internal/dailygammon"
	"github.com/mboeker/gammonsync/internal/league"
)

// collectFinished determines the winner of every finished match visible from
// the roster's player pages. The first answer per match id wins; transcripts
// are cached, so an id listed on both players' pages is only pulled once.
func (e *Engine) collectFinished(ctx context.Context, cache *PageCache, memo *seasonListMemo, report *league.RunReport) map[league.MatchID]string {
	finished := make(map[league.MatchID]string)
	roster, err := e.store.Roster()
	if err != nil {
		report.Warnf("roster unavailable for finished-match scan: %v", err)
		log.Error("Failed to read roster for finished-match scan", "error", err)
		return finished
	}
	for _, player := range roster {
		if player.ExternalID == "" {
			continue
		}
		seasonMatches, err := memo.For(ctx, player.ExternalID)
		if err != nil {
			log.Warn("User page unavailable for finished-match scan", "player", player.Name, "error", err)
			continue
		}
		for _, sm := range seasonMatches {
			if !sm.Exportable {
				continue
			}
			if _, ok := finished[sm.MatchID]; ok {
				continue
			}
			lines, err := cache.Export(ctx, sm.MatchID)
			if err != nil {
				log.Warn("Export transcript unavailable", "matchID", sm.MatchID, "error", err)
				continue
			}
			winner, ok := dailygammon.DecideWinner(lines, player.Name, sm.Opponent)
			if !ok {
				continue
			}
			finished[sm.MatchID] = winner
			log.Debug("Finished match detected", "matchID", sm.MatchID, "winner", winner)
		}
	}
	return finished
}

// writeIntermediateScores updates every resolved pairing's score cells with
// the latest remote score. Finished pairings are left untouched, and an
// ambiguous name mapping abstains rather than guess.
func (e *Engine) writeIntermediateScores(ctx context.Context, cache *PageCache, rs *resolveState, report *league.RunReport) {
	candidates := e.store.MatchPlayers()
	for _, p := range rs.order {
		rec := rs.records[p]
		html, err := cache.Page(ctx, rec.ID)
		if err != nil {
			report.Warnf("match %d (%s): page unavailable, no score update", rec.ID, p)
			continue
		}
		line, found := dailygammon.ExtractLatestScore(html, candidates)
		if !found {
			log.Debug("No score line on match page", "matchID", rec.ID, "pairing", p.String())
			continue
		}
		scores, ok := league.MapScores(p.Row, p.Col, line, rec.Orientation)
		if !ok {
			report.Abstained++
			e.metrics.IncAbstentions()
			report.Warnf("match %d (%s): cannot map %q / %q to the grid, write skipped", rec.ID, p, line.LeftName, line.RightName)
			log.Warn("Abstaining from ambiguous score mapping", "matchID", rec.ID, "pairing", p.String(), "left", line.LeftName, "right", line.RightName)
			continue
		}
		wrote, err := e.store.WriteScores(p, scores)
		if err != nil {
			report.Warnf("match %d (%s): score write failed: %v", rec.ID, p, err)
			log.Error("Failed to write scores", "matchID", rec.ID, "pairing", p.String(), "error", err)
			continue
		}
		if wrote {
			report.ScoresWritten++
			e.metrics.IncScoreWrites()
			log.Info("Updated intermediate score", "matchID", rec.ID, "pairing", p.String(), "row", scores.Row, "col", scores.Col)
		} else {
			log.Debug("Pairing already finished, preserving final score", "matchID", rec.ID, "pairing", p.String())
		}
	}
}

// writeFinals sets the winner's slot to the terminal value for every decided
// match. The final is written once per match id, at the pairing the id was
// first bound to; the mirrored cell converges through the intermediate score
// path instead. A switched orientation flips which slot the winner owns,
// mirroring the swap the score mapper applies. A winner name matching
// neither participant is skipped, never guessed.
func (e *Engine) writeFinals(rs *resolveState, finished map[league.MatchID]string, report *league.RunReport) {
	for _, p := range rs.order {
		rec := rs.records[p]
		if rs.first[rec.ID] != rec {
			continue
		}
		winner, ok := finished[rec.ID]
		if !ok {
			continue
		}
		var axis league.Axis
		switch league.Fold(winner) {
		case league.Fold(p.Row):
			axis = league.AxisRow
		case league.Fold(p.Col):
			axis = league.AxisCol
		default:
			report.SkippedFinal++
			report.Warnf("match %d (%s): winner %q is neither participant, final not written", rec.ID, p, winner)
			log.Warn("Winner matches neither participant", "matchID", rec.ID, "pairing", p.String(), "winner", winner)
			continue
		}
		if rec.Orientation == league.OrientationSwitched {
			axis = axis.Flip()
		}
		wrote, err := e.store.WriteFinal(p, axis)
		if err != nil {
			report.Warnf("match %d (%s): final write failed: %v", rec.ID, p, err)
			log.Error("Failed to write final score", "matchID", rec.ID, "pairing", p.String(), "error", err)
			continue
		}
		if wrote {
			report.FinalsWritten++
			e.metrics.IncFinalWrites()
			log.Info("Set final winner score", "matchID", rec.ID, "pairing", p.String(), "winner", winner, "axis", axis)
		} else {
			log.Debug("Final already recorded", "matchID", rec.ID, "pairing", p.String())
		}
	}
}
