package journal

import (
	"context"
	"sync"

	"github.com/mboeker/gammonsync/internal/league"
)

// Mock is a mock implementation of the Journal interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	RecordFunc  func(ctx context.Context, report *league.RunReport) error
	HistoryFunc func(ctx context.Context, leagueCode string, limit int) ([]*league.RunReport, error)

	// Call records
	RecordCalls  []*league.RunReport
	HistoryCalls []struct {
		League string
		Limit  int
	}
	CloseCalls int
}

var _ Journal = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordCalls = nil
	m.HistoryCalls = nil
	m.CloseCalls = 0
}

func (m *Mock) Record(ctx context.Context, report *league.RunReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordCalls = append(m.RecordCalls, report)
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, report)
	}
	return nil
}

func (m *Mock) History(ctx context.Context, leagueCode string, limit int) ([]*league.RunReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HistoryCalls = append(m.HistoryCalls, struct {
		League string
		Limit  int
	}{leagueCode, limit})
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, leagueCode, limit)
	}
	return nil, nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalls++
	return nil
}
