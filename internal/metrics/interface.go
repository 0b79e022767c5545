package metrics

import "context"

// Metrics defines the interface for collecting run metrics.
// This decouples the engine from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncRuns()
	IncFetches()
	IncCacheHits()
	IncIdentifiersDiscovered()
	IncSwitchedDetected()
	IncScoreWrites()
	IncFinalWrites()
	IncAbstentions()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	ObserveRunDuration(seconds float64)

	// Push delivers the collected values to the configured Pushgateway.
	// Called once at the end of a run; a no-op when no gateway is set.
	Push(ctx context.Context) error
}
