package notifier

import (
	"sync"

	"github.com/mboeker/gammonsync/internal/league"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendRunReportCalls []struct {
		Report *league.RunReport
		DryRun bool
	}

	// SendRunReportFunc is a spy for SendRunReport calls.
	SendRunReportFunc func(report *league.RunReport, dryRun bool) error
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRunReportCalls = nil
}

func (m *Mock) SendRunReport(report *league.RunReport, dryRun bool) error {
	m.mu.Lock()
	m.SendRunReportCalls = append(m.SendRunReportCalls, struct {
		Report *league.RunReport
		DryRun bool
	}{report, dryRun})
	fn := m.SendRunReportFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(report, dryRun)
	}
	return nil
}
