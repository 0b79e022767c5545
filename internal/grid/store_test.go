package grid

import (
	"path/filepath"
	"testing"

	"github.com/mboeker/gammonsync/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildTestWorkbook lays out a three-player league: Alice vs Bob already has
// an identifier and intermediate scores, Bob vs Carol is finished, and one
// identifier cell is malformed.
func buildTestWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SheetPlayers))
	for _, sheet := range []string{SheetLinks, SheetMatches} {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}

	require.NoError(t, f.SetCellValue(SheetPlayers, "A1", "Player"))
	require.NoError(t, f.SetCellValue(SheetPlayers, "A2", "Alice"))
	require.NoError(t, f.SetCellHyperLink(SheetPlayers, "A2", "http://www.dailygammon.com/bg/user/31672", "External"))
	require.NoError(t, f.SetCellValue(SheetPlayers, "A3", "Bob"))
	require.NoError(t, f.SetCellHyperLink(SheetPlayers, "A3", "http://www.dailygammon.com/bg/user/28914", "External"))
	require.NoError(t, f.SetCellValue(SheetPlayers, "A4", "Carol"))

	names := []string{"Alice", "Bob", "Carol"}
	for i, n := range names {
		require.NoError(t, f.SetCellValue(SheetLinks, cellName(1, linksFirstRow+i), n))
		require.NoError(t, f.SetCellValue(SheetLinks, cellName(linksFirstCol+i, 1), n))
		require.NoError(t, f.SetCellValue(SheetMatches, cellName(1, matchesFirstRow+i), n))
	}

	// Alice vs Bob has an identifier, Bob vs Carol a malformed one.
	require.NoError(t, f.SetCellValue(SheetLinks, "C2", "4528964"))
	require.NoError(t, f.SetCellValue(SheetLinks, "D3", "not-a-number"))

	// Alice vs Bob is running at 5:3, Bob vs Carol finished 11:2.
	require.NoError(t, f.SetCellValue(SheetMatches, "D4", 5))
	require.NoError(t, f.SetCellValue(SheetMatches, "E4", 3))
	require.NoError(t, f.SetCellValue(SheetMatches, "F5", 11))
	require.NoError(t, f.SetCellValue(SheetMatches, "G5", 2))

	return f
}

func newTestStore(t *testing.T) *store {
	t.Helper()
	s, err := newStore(buildTestWorkbook(t), "")
	require.NoError(t, err)
	return s
}

func TestOpenLoadsAxes(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, s.RowPlayers())
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, s.ColOpponents())
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, s.MatchPlayers())
}

func TestOpenCreatesFlagSheet(t *testing.T) {
	s := newTestStore(t)

	idx, err := s.f.GetSheetIndex(SheetFlags)
	require.NoError(t, err)
	assert.NotEqual(t, -1, idx, "flag sheet should be created on open")

	v, err := s.f.GetCellValue(SheetFlags, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Alice", v, "flag sheet mirrors the Links axes")
}

func TestRoster(t *testing.T) {
	s := newTestStore(t)

	players, err := s.Roster()
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.Equal(t, league.Player{Name: "Alice", ExternalID: "31672"}, players[0])
	assert.Equal(t, league.Player{Name: "Bob", ExternalID: "28914"}, players[1])
	assert.Equal(t, "", players[2].ExternalID, "player without hyperlink has no external id")
}

func TestMatchID(t *testing.T) {
	s := newTestStore(t)

	t.Run("present identifier", func(t *testing.T) {
		id, ok, err := s.MatchID(league.Pairing{Row: "Alice", Col: "Bob"})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, league.MatchID(4528964), id)
	})

	t.Run("empty cell", func(t *testing.T) {
		_, ok, err := s.MatchID(league.Pairing{Row: "Carol", Col: "Alice"})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("malformed identifier", func(t *testing.T) {
		_, _, err := s.MatchID(league.Pairing{Row: "Bob", Col: "Carol"})
		assert.ErrorIs(t, err, ErrBadIdentifier)
	})

	t.Run("unknown player", func(t *testing.T) {
		_, _, err := s.MatchID(league.Pairing{Row: "Mallory", Col: "Bob"})
		assert.ErrorIs(t, err, ErrUnknownPlayer)
	})

	t.Run("lookups fold case", func(t *testing.T) {
		id, ok, err := s.MatchID(league.Pairing{Row: "alice", Col: "BOB"})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, league.MatchID(4528964), id)
	})
}

func TestSetMatchID(t *testing.T) {
	t.Run("fills an empty cell with value and hyperlink", func(t *testing.T) {
		s := newTestStore(t)
		p := league.Pairing{Row: "Alice", Col: "Carol"}

		wrote, err := s.SetMatchID(p, 123456, "http://www.dailygammon.com/bg/game/123456/0/list#end")
		require.NoError(t, err)
		assert.True(t, wrote)

		id, ok, err := s.MatchID(p)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, league.MatchID(123456), id)

		has, link, err := s.f.GetCellHyperLink(SheetLinks, "D2")
		require.NoError(t, err)
		require.True(t, has)
		assert.Contains(t, link, "/bg/game/123456/0/list#end")
	})

	t.Run("never overwrites a populated cell", func(t *testing.T) {
		s := newTestStore(t)
		p := league.Pairing{Row: "Alice", Col: "Bob"}

		wrote, err := s.SetMatchID(p, 999999, "")
		require.NoError(t, err)
		assert.False(t, wrote)

		id, _, err := s.MatchID(p)
		require.NoError(t, err)
		assert.Equal(t, league.MatchID(4528964), id, "existing identifier must survive")
	})
}

func TestFlags(t *testing.T) {
	s := newTestStore(t)
	p := league.Pairing{Row: "Alice", Col: "Bob"}

	assert.Equal(t, league.FlagUnprocessed, s.Flag(p))

	require.NoError(t, s.SetFlag(p, league.FlagSwitched))
	assert.Equal(t, league.FlagSwitched, s.Flag(p))

	require.NoError(t, s.SetFlag(p, league.FlagNormal))
	assert.Equal(t, league.FlagNormal, s.Flag(p))

	assert.Equal(t, league.FlagUnprocessed, s.Flag(league.Pairing{Row: "Mallory", Col: "Bob"}))
}

func TestScores(t *testing.T) {
	s := newTestStore(t)

	t.Run("both slots set", func(t *testing.T) {
		cell, err := s.Scores(league.Pairing{Row: "Alice", Col: "Bob"})
		require.NoError(t, err)
		assert.Equal(t, league.CellScore{Value: 5, Set: true}, cell.Row)
		assert.Equal(t, league.CellScore{Value: 3, Set: true}, cell.Col)
		assert.False(t, cell.Finished())
	})

	t.Run("empty slots", func(t *testing.T) {
		cell, err := s.Scores(league.Pairing{Row: "Carol", Col: "Alice"})
		require.NoError(t, err)
		assert.False(t, cell.Row.Set)
		assert.False(t, cell.Col.Set)
	})

	t.Run("finished pairing", func(t *testing.T) {
		cell, err := s.Scores(league.Pairing{Row: "Bob", Col: "Carol"})
		require.NoError(t, err)
		assert.True(t, cell.Finished())
	})

	t.Run("unknown player", func(t *testing.T) {
		_, err := s.Scores(league.Pairing{Row: "Mallory", Col: "Bob"})
		assert.ErrorIs(t, err, ErrUnknownPlayer)
	})
}

func TestWriteScores(t *testing.T) {
	t.Run("writes both slots", func(t *testing.T) {
		s := newTestStore(t)
		p := league.Pairing{Row: "Alice", Col: "Bob"}

		wrote, err := s.WriteScores(p, league.ScorePair{Row: 7, Col: 4})
		require.NoError(t, err)
		assert.True(t, wrote)

		cell, err := s.Scores(p)
		require.NoError(t, err)
		assert.Equal(t, 7, cell.Row.Value)
		assert.Equal(t, 4, cell.Col.Value)
	})

	t.Run("finished pairing rejects the write", func(t *testing.T) {
		s := newTestStore(t)
		p := league.Pairing{Row: "Bob", Col: "Carol"}

		wrote, err := s.WriteScores(p, league.ScorePair{Row: 4, Col: 9})
		require.NoError(t, err)
		assert.False(t, wrote)

		cell, err := s.Scores(p)
		require.NoError(t, err)
		assert.Equal(t, 11, cell.Row.Value, "terminal score must survive")
		assert.Equal(t, 2, cell.Col.Value)
	})
}

func TestWriteFinal(t *testing.T) {
	t.Run("row axis", func(t *testing.T) {
		s := newTestStore(t)
		p := league.Pairing{Row: "Alice", Col: "Bob"}

		wrote, err := s.WriteFinal(p, league.AxisRow)
		require.NoError(t, err)
		assert.True(t, wrote)

		cell, err := s.Scores(p)
		require.NoError(t, err)
		assert.Equal(t, league.WinningScore, cell.Row.Value)
		assert.Equal(t, 3, cell.Col.Value, "loser keeps the intermediate score")
	})

	t.Run("column axis", func(t *testing.T) {
		s := newTestStore(t)
		p := league.Pairing{Row: "Alice", Col: "Bob"}

		wrote, err := s.WriteFinal(p, league.AxisCol)
		require.NoError(t, err)
		assert.True(t, wrote)

		cell, err := s.Scores(p)
		require.NoError(t, err)
		assert.Equal(t, 5, cell.Row.Value)
		assert.Equal(t, league.WinningScore, cell.Col.Value)
	})

	t.Run("finished pairing rejects the write", func(t *testing.T) {
		s := newTestStore(t)
		p := league.Pairing{Row: "Bob", Col: "Carol"}

		wrote, err := s.WriteFinal(p, league.AxisCol)
		require.NoError(t, err)
		assert.False(t, wrote)

		cell, err := s.Scores(p)
		require.NoError(t, err)
		assert.Equal(t, 2, cell.Col.Value)
	})

	t.Run("write is idempotent across runs", func(t *testing.T) {
		s := newTestStore(t)
		p := league.Pairing{Row: "Alice", Col: "Bob"}

		wrote, err := s.WriteFinal(p, league.AxisRow)
		require.NoError(t, err)
		require.True(t, wrote)

		wrote, err = s.WriteFinal(p, league.AxisCol)
		require.NoError(t, err)
		assert.False(t, wrote, "second final write must be a no-op")
	})
}

func TestCompletion(t *testing.T) {
	s := newTestStore(t)

	assert.False(t, s.Completed())
	require.NoError(t, s.MarkCompleted())
	assert.True(t, s.Completed())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "34th_Backgammon-championships_4d.xlsx")
	s, err := newStore(buildTestWorkbook(t), path)
	require.NoError(t, err)

	_, err = s.SetMatchID(league.Pairing{Row: "Alice", Col: "Carol"}, 123456, "")
	require.NoError(t, err)
	require.NoError(t, s.MarkCompleted())
	require.NoError(t, s.Save())

	reopened, err := Open(path)
	require.NoError(t, err)
	id, ok, err := reopened.MatchID(league.Pairing{Row: "Alice", Col: "Carol"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, league.MatchID(123456), id)
	assert.True(t, reopened.Completed())
}

func TestParseMatchID(t *testing.T) {
	id, err := parseMatchID("4528964")
	require.NoError(t, err)
	assert.Equal(t, league.MatchID(4528964), id)

	id, err = parseMatchID("4528964.0")
	require.NoError(t, err)
	assert.Equal(t, league.MatchID(4528964), id)

	_, err = parseMatchID("45.5")
	assert.Error(t, err)

	_, err = parseMatchID("abc")
	assert.Error(t, err)
}

func TestWorkbookName(t *testing.T) {
	assert.Equal(t, "34th_Backgammon-championships_4d.xlsx", WorkbookName("34", "4d"))
}

func TestCreateWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), WorkbookName("34", "2b"))
	players := []league.Player{
		{Name: "Alice", ExternalID: "31672"},
		{Name: "Bob", ExternalID: "28914"},
	}

	require.NoError(t, CreateWorkbook(path, "http://www.dailygammon.com", players))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, s.RowPlayers())
	assert.Equal(t, []string{"Alice", "Bob"}, s.ColOpponents())
	assert.Equal(t, []string{"Alice", "Bob"}, s.MatchPlayers())

	roster, err := s.Roster()
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "31672", roster[0].ExternalID)

	assert.Error(t, CreateWorkbook(path, "http://www.dailygammon.com", players), "existing workbook must not be overwritten")
}
