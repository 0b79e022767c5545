package grid

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mboeker/gammonsync/internal/league"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrBadIdentifier marks an identifier cell whose content is not a
	// numeric match id. The pairing is excluded for the run, nothing else.
	ErrBadIdentifier = errors.New("malformed match identifier")
	// ErrUnknownPlayer marks a pairing whose participant is missing from the
	// addressed sheet.
	ErrUnknownPlayer = errors.New("player not on sheet")
)

// Open loads a league workbook from disk.
func Open(path string) (Store, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return newStore(f, path)
}

func newStore(f *excelize.File, path string) (*store, error) {
	s := &store{
		f:          f,
		path:       path,
		rowIndex:   make(map[string]int),
		colIndex:   make(map[string]int),
		matchIndex: make(map[string]int),
	}
	if err := s.loadAxes(); err != nil {
		return nil, err
	}
	if err := s.ensureFlagSheet(); err != nil {
		return nil, err
	}
	log.Debug("Opened workbook", "path", path, "rows", len(s.rowPlayers), "cols", len(s.colOpponents))
	return s, nil
}

// Ensure store implements the Store interface.
var _ Store = (*store)(nil)

func (s *store) loadAxes() error {
	for r := linksFirstRow; ; r++ {
		v, err := s.f.GetCellValue(SheetLinks, cellName(1, r))
		if err != nil {
			return fmt.Errorf("failed to read %s row players: %w", SheetLinks, err)
		}
		name := strings.TrimSpace(v)
		if name == "" {
			break
		}
		s.rowIndex[league.Fold(name)] = r
		s.rowPlayers = append(s.rowPlayers, name)
	}

	for c := linksFirstCol; ; c++ {
		v, err := s.f.GetCellValue(SheetLinks, cellName(c, 1))
		if err != nil {
			return fmt.Errorf("failed to read %s column opponents: %w", SheetLinks, err)
		}
		name := strings.TrimSpace(v)
		if name == "" {
			break
		}
		s.colIndex[league.Fold(name)] = c
		s.colOpponents = append(s.colOpponents, name)
	}

	for i := 0; ; i++ {
		v, err := s.f.GetCellValue(SheetMatches, cellName(1, matchesFirstRow+i))
		if err != nil {
			return fmt.Errorf("failed to read %s players: %w", SheetMatches, err)
		}
		name := strings.TrimSpace(v)
		if name == "" {
			break
		}
		s.matchIndex[league.Fold(name)] = i
		s.matchPlayers = append(s.matchPlayers, name)
	}
	return nil
}

// ensureFlagSheet creates the flag sheet when absent and mirrors the Links
// axes into its headers, so flag cells share coordinates with their
// identifier cells.
func (s *store) ensureFlagSheet() error {
	if err := s.ensureSheet(SheetFlags); err != nil {
		return err
	}
	for i, name := range s.colOpponents {
		if err := s.f.SetCellValue(SheetFlags, cellName(linksFirstCol+i, 1), name); err != nil {
			return fmt.Errorf("failed to write %s header: %w", SheetFlags, err)
		}
	}
	for i, name := range s.rowPlayers {
		if err := s.f.SetCellValue(SheetFlags, cellName(1, linksFirstRow+i), name); err != nil {
			return fmt.Errorf("failed to write %s header: %w", SheetFlags, err)
		}
	}
	return nil
}

func (s *store) ensureSheet(name string) error {
	idx, err := s.f.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("failed to look up sheet %s: %w", name, err)
	}
	if idx == -1 {
		if _, err := s.f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		log.Debug("Created missing sheet", "sheet", name)
	}
	return nil
}

// Roster reads the Players sheet. A name cell without a hyperlink yields a
// player with an empty ExternalID, which excludes them from discovery.
func (s *store) Roster() ([]league.Player, error) {
	var players []league.Player
	for r := linksFirstRow; ; r++ {
		cell := cellName(1, r)
		v, err := s.f.GetCellValue(SheetPlayers, cell)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s sheet: %w", SheetPlayers, err)
		}
		name := strings.TrimSpace(v)
		if name == "" {
			break
		}
		p := league.Player{Name: name}
		if ok, target, err := s.f.GetCellHyperLink(SheetPlayers, cell); err == nil && ok {
			p.ExternalID = lastPathSegment(target)
		}
		players = append(players, p)
	}
	return players, nil
}

func (s *store) RowPlayers() []string   { return s.rowPlayers }
func (s *store) ColOpponents() []string { return s.colOpponents }
func (s *store) MatchPlayers() []string { return s.matchPlayers }

func (s *store) MatchID(p league.Pairing) (league.MatchID, bool, error) {
	r, c, err := s.linksCoords(p)
	if err != nil {
		return 0, false, err
	}
	v, err := s.f.GetCellValue(SheetLinks, cellName(c, r))
	if err != nil {
		return 0, false, fmt.Errorf("failed to read identifier cell for %s: %w", p, err)
	}
	raw := strings.TrimSpace(v)
	if raw == "" {
		return 0, false, nil
	}
	id, err := parseMatchID(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q at %s", ErrBadIdentifier, raw, p)
	}
	return id, true, nil
}

func (s *store) SetMatchID(p league.Pairing, id league.MatchID, link string) (bool, error) {
	r, c, err := s.linksCoords(p)
	if err != nil {
		return false, err
	}
	cell := cellName(c, r)
	v, err := s.f.GetCellValue(SheetLinks, cell)
	if err != nil {
		return false, fmt.Errorf("failed to read identifier cell for %s: %w", p, err)
	}
	if strings.TrimSpace(v) != "" {
		log.Debug("Identifier cell already populated, leaving untouched", "pairing", p.String(), "matchID", id)
		return false, nil
	}
	if err := s.f.SetCellValue(SheetLinks, cell, strconv.Itoa(int(id))); err != nil {
		return false, fmt.Errorf("failed to write identifier for %s: %w", p, err)
	}
	if link != "" {
		if err := s.f.SetCellHyperLink(SheetLinks, cell, link, "External"); err != nil {
			return false, fmt.Errorf("failed to set identifier hyperlink for %s: %w", p, err)
		}
	}
	return true, nil
}

func (s *store) Flag(p league.Pairing) league.ProcessedFlag {
	r, c, err := s.linksCoords(p)
	if err != nil {
		return league.FlagUnprocessed
	}
	v, err := s.f.GetCellValue(SheetFlags, cellName(c, r))
	if err != nil {
		return league.FlagUnprocessed
	}
	switch strings.TrimSpace(v) {
	case string(league.FlagNormal):
		return league.FlagNormal
	case string(league.FlagSwitched):
		return league.FlagSwitched
	}
	return league.FlagUnprocessed
}

func (s *store) SetFlag(p league.Pairing, f league.ProcessedFlag) error {
	r, c, err := s.linksCoords(p)
	if err != nil {
		return err
	}
	if err := s.f.SetCellValue(SheetFlags, cellName(c, r), string(f)); err != nil {
		return fmt.Errorf("failed to write flag for %s: %w", p, err)
	}
	return nil
}

func (s *store) Scores(p league.Pairing) (league.ScoreCell, error) {
	r, left, err := s.matchesCoords(p)
	if err != nil {
		return league.ScoreCell{}, err
	}
	rowVal, err := s.f.GetCellValue(SheetMatches, cellName(left, r))
	if err != nil {
		return league.ScoreCell{}, fmt.Errorf("failed to read score cell for %s: %w", p, err)
	}
	colVal, err := s.f.GetCellValue(SheetMatches, cellName(left+1, r))
	if err != nil {
		return league.ScoreCell{}, fmt.Errorf("failed to read score cell for %s: %w", p, err)
	}
	return league.ScoreCell{Row: parseScore(rowVal), Col: parseScore(colVal)}, nil
}

func (s *store) WriteScores(p league.Pairing, sp league.ScorePair) (bool, error) {
	cell, err := s.Scores(p)
	if err != nil {
		return false, err
	}
	if cell.Finished() {
		log.Debug("Pairing already finished, preserving final score", "pairing", p.String())
		return false, nil
	}
	r, left, err := s.matchesCoords(p)
	if err != nil {
		return false, err
	}
	if err := s.f.SetCellValue(SheetMatches, cellName(left, r), sp.Row); err != nil {
		return false, fmt.Errorf("failed to write row score for %s: %w", p, err)
	}
	if err := s.f.SetCellValue(SheetMatches, cellName(left+1, r), sp.Col); err != nil {
		return false, fmt.Errorf("failed to write column score for %s: %w", p, err)
	}
	return true, nil
}

func (s *store) WriteFinal(p league.Pairing, axis league.Axis) (bool, error) {
	cell, err := s.Scores(p)
	if err != nil {
		return false, err
	}
	if cell.Finished() {
		log.Debug("Pairing already finished, preserving final score", "pairing", p.String())
		return false, nil
	}
	r, left, err := s.matchesCoords(p)
	if err != nil {
		return false, err
	}
	col := left
	if axis == league.AxisCol {
		col = left + 1
	}
	if err := s.f.SetCellValue(SheetMatches, cellName(col, r), league.WinningScore); err != nil {
		return false, fmt.Errorf("failed to write final score for %s: %w", p, err)
	}
	return true, nil
}

func (s *store) Completed() bool {
	v, err := s.f.GetCellValue(SheetControl, "A1")
	if err != nil {
		return false
	}
	return strings.TrimSpace(v) == completionSentinel
}

func (s *store) MarkCompleted() error {
	if err := s.ensureSheet(SheetControl); err != nil {
		return err
	}
	if err := s.f.SetCellValue(SheetControl, "A1", completionSentinel); err != nil {
		return fmt.Errorf("failed to write completion sentinel: %w", err)
	}
	return nil
}

func (s *store) Save() error {
	if s.path == "" {
		return errors.New("workbook has no backing file")
	}
	if err := s.f.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	log.Info("Saved workbook", "path", s.path)
	return nil
}

func (s *store) linksCoords(p league.Pairing) (int, int, error) {
	r, ok := s.rowIndex[league.Fold(p.Row)]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q on %s", ErrUnknownPlayer, p.Row, SheetLinks)
	}
	c, ok := s.colIndex[league.Fold(p.Col)]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q on %s", ErrUnknownPlayer, p.Col, SheetLinks)
	}
	return r, c, nil
}

func (s *store) matchesCoords(p league.Pairing) (int, int, error) {
	ri, ok := s.matchIndex[league.Fold(p.Row)]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q on %s", ErrUnknownPlayer, p.Row, SheetMatches)
	}
	ci, ok := s.matchIndex[league.Fold(p.Col)]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q on %s", ErrUnknownPlayer, p.Col, SheetMatches)
	}
	return matchesFirstRow + ri, matchesScoreCol + ci*scoreColsPerPair, nil
}

func parseMatchID(raw string) (league.MatchID, error) {
	if id, err := strconv.Atoi(raw); err == nil {
		return league.MatchID(id), nil
	}
	// Numeric cells can surface in float notation.
	fv, err := strconv.ParseFloat(raw, 64)
	if err != nil || fv != math.Trunc(fv) {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	return league.MatchID(int(fv)), nil
}

func parseScore(raw string) league.CellScore {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return league.CellScore{}
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return league.CellScore{}
	}
	return league.CellScore{Value: v, Set: true}
}

func lastPathSegment(u string) string {
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
