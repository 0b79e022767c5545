package engine

import (
	"github.com/charmbracelet/log"
	"github.com/mboeker/gammonsync/internal/league"
)

// trackCompletion records the completion sentinel once every off-diagonal
// identifier cell is populated, letting future runs skip identifier
// discovery entirely.
func (e *Engine) trackCompletion(report *league.RunReport) {
	if e.store.Completed() {
		report.Completed = true
		return
	}
	for _, row := range e.store.RowPlayers() {
		for _, col := range e.store.ColOpponents() {
			if league.Fold(row) == league.Fold(col) {
				continue
			}
			p := league.Pairing{Row: row, Col: col}
			_, ok, err := e.store.MatchID(p)
			if err != nil {
				// A malformed value still occupies its cell.
				continue
			}
			if !ok {
				log.Debug("Identifier grid not yet complete", "pairing", p.String())
				return
			}
		}
	}
	if err := e.store.MarkCompleted(); err != nil {
		log.Error("Failed to set completion marker", "error", err)
		return
	}
	report.Completed = true
	log.Info("All match identifiers filled, marking grid complete")
}
