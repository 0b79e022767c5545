package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	Runs                  prometheus.Counter
	Fetches               prometheus.Counter
	CacheHits             prometheus.Counter
	IdentifiersDiscovered prometheus.Counter
	SwitchedDetected      prometheus.Counter
	ScoreWrites           prometheus.Counter
	FinalWrites           prometheus.Counter
	Abstentions           prometheus.Counter
	SlackNotifSent        prometheus.Counter
	SlackNotifFailed      prometheus.Counter
	RunDurationSeconds    prometheus.Gauge

	registry *prometheus.Registry
	pushURL  string
}
