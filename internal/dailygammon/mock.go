package dailygammon

import (
	"context"
	"sync"

	"github.com/mboeker/gammonsync/internal/league"
)

// MockClient is a mock implementation of the Client interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	LoginFunc             func(ctx context.Context) error
	FetchMatchPageFunc    func(ctx context.Context, id league.MatchID) (string, error)
	ListSeasonMatchesFunc func(ctx context.Context, userID, seasonTag string) ([]SeasonMatch, error)
	FetchExportFunc       func(ctx context.Context, id league.MatchID) ([]string, error)

	// Call records
	LoginCalls             int
	FetchMatchPageCalls    []league.MatchID
	ListSeasonMatchesCalls []string
	FetchExportCalls       []league.MatchID
}

// NewMock creates a new mock instance.
func NewMock() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginCalls = 0
	m.FetchMatchPageCalls = nil
	m.ListSeasonMatchesCalls = nil
	m.FetchExportCalls = nil
}

func (m *MockClient) Login(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginCalls++
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx)
	}
	return nil
}

func (m *MockClient) FetchMatchPage(ctx context.Context, id league.MatchID) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchMatchPageCalls = append(m.FetchMatchPageCalls, id)
	if m.FetchMatchPageFunc != nil {
		return m.FetchMatchPageFunc(ctx, id)
	}
	return "", nil
}

func (m *MockClient) ListSeasonMatches(ctx context.Context, userID, seasonTag string) ([]SeasonMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListSeasonMatchesCalls = append(m.ListSeasonMatchesCalls, userID)
	if m.ListSeasonMatchesFunc != nil {
		return m.ListSeasonMatchesFunc(ctx, userID, seasonTag)
	}
	return nil, nil
}

func (m *MockClient) FetchExport(ctx context.Context, id league.MatchID) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchExportCalls = append(m.FetchExportCalls, id)
	if m.FetchExportFunc != nil {
		return m.FetchExportFunc(ctx, id)
	}
	return nil, nil
}
