package grid

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names inside a league workbook.
const (
	SheetPlayers = "Players"
	SheetLinks   = "Links"
	SheetMatches = "Matches"
	SheetFlags   = "match_flag"
	SheetControl = "control"
)

// completionSentinel is the control-sheet marker meaning every identifier
// cell is filled, letting later runs skip discovery entirely.
const completionSentinel = "All match IDs filled"

// Grid geometry. The Links and match_flag sheets list row players in column A
// from row 2 and opponents in row 1 from column B. The Matches sheet lists
// players in column A from row 4 and reserves two score columns per opponent
// starting at column B.
const (
	linksFirstRow    = 2
	linksFirstCol    = 2
	matchesFirstRow  = 4
	matchesScoreCol  = 2
	scoreColsPerPair = 2
)

// store is the excelize-backed workbook store. Axis indices are loaded once
// at open; all lookups go through folded names.
type store struct {
	f    *excelize.File
	path string

	rowPlayers   []string
	colOpponents []string
	matchPlayers []string

	rowIndex   map[string]int // folded name -> Links/match_flag row
	colIndex   map[string]int // folded name -> Links/match_flag column
	matchIndex map[string]int // folded name -> ordinal on the Matches sheet
}

// WorkbookName builds the canonical league workbook file name, e.g.
// "34th_Backgammon-championships_4d.xlsx".
func WorkbookName(seasonNumber, leagueCode string) string {
	return fmt.Sprintf("%sth_Backgammon-championships_%s.xlsx", seasonNumber, leagueCode)
}
