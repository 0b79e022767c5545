package grid

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mboeker/gammonsync/internal/league"
	"github.com/xuri/excelize/v2"
)

// CreateWorkbook writes a fresh league workbook laid out for the given
// roster: Players with user-page hyperlinks, the Links/match_flag axes, the
// Matches score block and an empty control sheet. An existing file is never
// overwritten.
func CreateWorkbook(path, baseURL string, players []league.Player) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("workbook %s already exists", path)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPlayers); err != nil {
		return fmt.Errorf("failed to name %s sheet: %w", SheetPlayers, err)
	}
	for _, name := range []string{SheetLinks, SheetMatches, SheetFlags, SheetControl} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	if err := f.SetCellValue(SheetPlayers, "A1", "Player"); err != nil {
		return fmt.Errorf("failed to write roster header: %w", err)
	}
	for i, p := range players {
		cell := cellName(1, linksFirstRow+i)
		if err := f.SetCellValue(SheetPlayers, cell, p.Name); err != nil {
			return fmt.Errorf("failed to write roster entry %q: %w", p.Name, err)
		}
		if p.ExternalID != "" {
			link := fmt.Sprintf("%s/bg/user/%s", baseURL, p.ExternalID)
			if err := f.SetCellHyperLink(SheetPlayers, cell, link, "External"); err != nil {
				return fmt.Errorf("failed to link roster entry %q: %w", p.Name, err)
			}
		}
	}

	for _, sheet := range []string{SheetLinks, SheetFlags} {
		for i, p := range players {
			if err := f.SetCellValue(sheet, cellName(1, linksFirstRow+i), p.Name); err != nil {
				return fmt.Errorf("failed to write %s axis: %w", sheet, err)
			}
			if err := f.SetCellValue(sheet, cellName(linksFirstCol+i, 1), p.Name); err != nil {
				return fmt.Errorf("failed to write %s axis: %w", sheet, err)
			}
		}
	}

	for i, p := range players {
		if err := f.SetCellValue(SheetMatches, cellName(1, matchesFirstRow+i), p.Name); err != nil {
			return fmt.Errorf("failed to write %s axis: %w", SheetMatches, err)
		}
		// Opponent header above each two-column score block.
		if err := f.SetCellValue(SheetMatches, cellName(matchesScoreCol+i*scoreColsPerPair, matchesFirstRow-1), p.Name); err != nil {
			return fmt.Errorf("failed to write %s header: %w", SheetMatches, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook %s: %w", path, err)
	}
	log.Info("Created workbook", "path", path, "players", len(players))
	return nil
}
