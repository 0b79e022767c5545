package metrics

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

var _ Metrics = (*Service)(nil)

const pushJobName = "gammonsync"

// NewService creates and registers the Prometheus metrics. A private
// registry is used unless one is provided, so repeated construction in tests
// cannot collide. pushURL may be empty, in which case Push is a no-op.
func NewService(pushURL string, registry ...*prometheus.Registry) *Service {
	reg := prometheus.NewRegistry()
	if len(registry) > 0 {
		reg = registry[0]
	}

	s := &Service{
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gammonsync_runs_total",
			Help: "The total number of reconciliation runs started.",
		}),
		Fetches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gammonsync_fetches_total",
			Help: "The total number of remote documents fetched.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gammonsync_cache_hits_total",
			Help: "The total number of document requests answered from the run cache.",
		}),
		IdentifiersDiscovered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gammonsync_identifiers_discovered_total",
			Help: "The total number of match identifiers discovered on player pages.",
		}),
		SwitchedDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gammonsync_switched_detected_total",
			Help: "The total number of manually entered matches detected in reversed order.",
		}),
		ScoreWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gammonsync_score_writes_total",
			Help: "The total number of intermediate score cell updates.",
		}),
		FinalWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gammonsync_final_writes_total",
			Help: "The total number of final winner scores written.",
		}),
		Abstentions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gammonsync_abstentions_total",
			Help: "The total number of score writes skipped because names could not be mapped.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gammonsync_slack_notifications_sent_total",
			Help: "The total number of Slack notifications sent successfully.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gammonsync_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		RunDurationSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gammonsync_run_duration_seconds",
			Help: "The duration of the last reconciliation run in seconds.",
		}),
		registry: reg,
		pushURL:  pushURL,
	}

	reg.MustRegister(
		s.Runs,
		s.Fetches,
		s.CacheHits,
		s.IdentifiersDiscovered,
		s.SwitchedDetected,
		s.ScoreWrites,
		s.FinalWrites,
		s.Abstentions,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.RunDurationSeconds,
	)

	return s
}

func (s *Service) IncRuns() {
	s.Runs.Inc()
}

func (s *Service) IncFetches() {
	s.Fetches.Inc()
}

func (s *Service) IncCacheHits() {
	s.CacheHits.Inc()
}

func (s *Service) IncIdentifiersDiscovered() {
	s.IdentifiersDiscovered.Inc()
}

func (s *Service) IncSwitchedDetected() {
	s.SwitchedDetected.Inc()
}

func (s *Service) IncScoreWrites() {
	s.ScoreWrites.Inc()
}

func (s *Service) IncFinalWrites() {
	s.FinalWrites.Inc()
}

func (s *Service) IncAbstentions() {
	s.Abstentions.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) ObserveRunDuration(seconds float64) {
	s.RunDurationSeconds.Set(seconds)
}

// Push sends the collected values to the Pushgateway, the usual pattern for
// short-lived batch jobs that have no scrape endpoint.
func (s *Service) Push(ctx context.Context) error {
	if s.pushURL == "" {
		log.Debug("No pushgateway configured, skipping metrics push")
		return nil
	}
	return push.New(s.pushURL, pushJobName).
		Gatherer(s.registry).
		PushContext(ctx)
}
