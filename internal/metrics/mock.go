package metrics

import (
	"context"
	"sync"
)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                    sync.Mutex
	runs                  int
	fetches               int
	cacheHits             int
	identifiersDiscovered int
	switchedDetected      int
	scoreWrites           int
	finalWrites           int
	abstentions           int
	slackNotifSent        int
	slackNotifFailed      int
	runDuration           float64
	pushes                int

	// PushFunc is a spy for Push calls.
	PushFunc func(ctx context.Context) error
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs++
}

func (m *Mock) IncFetches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
}

func (m *Mock) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

func (m *Mock) IncIdentifiersDiscovered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.identifiersDiscovered++
}

func (m *Mock) IncSwitchedDetected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.switchedDetected++
}

func (m *Mock) IncScoreWrites() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoreWrites++
}

func (m *Mock) IncFinalWrites() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finalWrites++
}

func (m *Mock) IncAbstentions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.abstentions++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) ObserveRunDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runDuration = seconds
}

func (m *Mock) Push(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pushes++
	if m.PushFunc != nil {
		return m.PushFunc(ctx)
	}
	return nil
}

// Runs returns the number of times IncRuns was called.
func (m *Mock) Runs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs
}

// Fetches returns the number of times IncFetches was called.
func (m *Mock) Fetches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetches
}

// CacheHits returns the number of times IncCacheHits was called.
func (m *Mock) CacheHits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheHits
}

// IdentifiersDiscovered returns the number of times IncIdentifiersDiscovered was called.
func (m *Mock) IdentifiersDiscovered() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identifiersDiscovered
}

// SwitchedDetected returns the number of times IncSwitchedDetected was called.
func (m *Mock) SwitchedDetected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.switchedDetected
}

// ScoreWrites returns the number of times IncScoreWrites was called.
func (m *Mock) ScoreWrites() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scoreWrites
}

// FinalWrites returns the number of times IncFinalWrites was called.
func (m *Mock) FinalWrites() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finalWrites
}

// Abstentions returns the number of times IncAbstentions was called.
func (m *Mock) Abstentions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.abstentions
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// RunDuration returns the last observed run duration.
func (m *Mock) RunDuration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runDuration
}

// Pushes returns the number of times Push was called.
func (m *Mock) Pushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pushes
}

var _ Metrics = (*Mock)(nil)
