package grid

import (
	"sync"

	"github.com/mboeker/gammonsync/internal/league"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	RosterFunc        func() ([]league.Player, error)
	RowPlayersFunc    func() []string
	ColOpponentsFunc  func() []string
	MatchPlayersFunc  func() []string
	MatchIDFunc       func(p league.Pairing) (league.MatchID, bool, error)
	SetMatchIDFunc    func(p league.Pairing, id league.MatchID, link string) (bool, error)
	FlagFunc          func(p league.Pairing) league.ProcessedFlag
	SetFlagFunc       func(p league.Pairing, f league.ProcessedFlag) error
	ScoresFunc        func(p league.Pairing) (league.ScoreCell, error)
	WriteScoresFunc   func(p league.Pairing, s league.ScorePair) (bool, error)
	WriteFinalFunc    func(p league.Pairing, axis league.Axis) (bool, error)
	CompletedFunc     func() bool
	MarkCompletedFunc func() error
	SaveFunc          func() error

	// Call records
	SetMatchIDCalls []struct {
		Pairing league.Pairing
		ID      league.MatchID
		Link    string
	}
	SetFlagCalls []struct {
		Pairing league.Pairing
		Flag    league.ProcessedFlag
	}
	WriteScoresCalls []struct {
		Pairing league.Pairing
		Scores  league.ScorePair
	}
	WriteFinalCalls []struct {
		Pairing league.Pairing
		Axis    league.Axis
	}
	MarkCompletedCalls int
	SaveCalls          int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetMatchIDCalls = nil
	m.SetFlagCalls = nil
	m.WriteScoresCalls = nil
	m.WriteFinalCalls = nil
	m.MarkCompletedCalls = 0
	m.SaveCalls = 0
}

func (m *MockStore) Roster() ([]league.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RosterFunc != nil {
		return m.RosterFunc()
	}
	return nil, nil
}

func (m *MockStore) RowPlayers() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RowPlayersFunc != nil {
		return m.RowPlayersFunc()
	}
	return nil
}

func (m *MockStore) ColOpponents() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ColOpponentsFunc != nil {
		return m.ColOpponentsFunc()
	}
	return nil
}

func (m *MockStore) MatchPlayers() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MatchPlayersFunc != nil {
		return m.MatchPlayersFunc()
	}
	return nil
}

func (m *MockStore) MatchID(p league.Pairing) (league.MatchID, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MatchIDFunc != nil {
		return m.MatchIDFunc(p)
	}
	return 0, false, nil
}

func (m *MockStore) SetMatchID(p league.Pairing, id league.MatchID, link string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetMatchIDCalls = append(m.SetMatchIDCalls, struct {
		Pairing league.Pairing
		ID      league.MatchID
		Link    string
	}{p, id, link})
	if m.SetMatchIDFunc != nil {
		return m.SetMatchIDFunc(p, id, link)
	}
	return true, nil
}

func (m *MockStore) Flag(p league.Pairing) league.ProcessedFlag {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FlagFunc != nil {
		return m.FlagFunc(p)
	}
	return league.FlagUnprocessed
}

func (m *MockStore) SetFlag(p league.Pairing, f league.ProcessedFlag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetFlagCalls = append(m.SetFlagCalls, struct {
		Pairing league.Pairing
		Flag    league.ProcessedFlag
	}{p, f})
	if m.SetFlagFunc != nil {
		return m.SetFlagFunc(p, f)
	}
	return nil
}

func (m *MockStore) Scores(p league.Pairing) (league.ScoreCell, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ScoresFunc != nil {
		return m.ScoresFunc(p)
	}
	return league.ScoreCell{}, nil
}

func (m *MockStore) WriteScores(p league.Pairing, s league.ScorePair) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteScoresCalls = append(m.WriteScoresCalls, struct {
		Pairing league.Pairing
		Scores  league.ScorePair
	}{p, s})
	if m.WriteScoresFunc != nil {
		return m.WriteScoresFunc(p, s)
	}
	return true, nil
}

func (m *MockStore) WriteFinal(p league.Pairing, axis league.Axis) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteFinalCalls = append(m.WriteFinalCalls, struct {
		Pairing league.Pairing
		Axis    league.Axis
	}{p, axis})
	if m.WriteFinalFunc != nil {
		return m.WriteFinalFunc(p, axis)
	}
	return true, nil
}

func (m *MockStore) Completed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CompletedFunc != nil {
		return m.CompletedFunc()
	}
	return false
}

func (m *MockStore) MarkCompleted() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MarkCompletedCalls++
	if m.MarkCompletedFunc != nil {
		return m.MarkCompletedFunc()
	}
	return nil
}

func (m *MockStore) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveFunc != nil {
		return m.SaveFunc()
	}
	return nil
}
