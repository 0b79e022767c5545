package engine

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mboeker/gammonsync/internal/league"
	"github.com/mboeker/gammonsync/internal/metrics"
)

// New creates a new Engine.
func New(store Store, client Client, notifier Notifier, metrics metrics.Metrics, journal Journal) *Engine {
	return &Engine{
		store:    store,
		client:   client,
		notifier: notifier,
		metrics:  metrics,
		journal:  journal,
		in:       os.Stdin,
	}
}

// Run executes one reconciliation pass: resolve identifiers, collect
// finished matches, write intermediate and final scores, then persist the
// workbook according to the run mode. Only login and workbook-save failures
// are fatal; everything else degrades to a warning on the report.
func (e *Engine) Run(ctx context.Context, opts Options) (*league.RunReport, error) {
	report := &league.RunReport{
		RunID:     uuid.NewString(),
		League:    opts.League,
		Season:    opts.Season,
		DryRun:    opts.DryRun,
		StartedAt: time.Now(),
	}
	seasonTag := league.SeasonTag(opts.Season, opts.League)
	e.metrics.IncRuns()
	log.Info("Starting reconciliation run", "runID", report.RunID, "season", seasonTag, "dryRun", opts.DryRun, "auto", opts.Auto)

	if err := e.client.Login(ctx); err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	cache := NewPageCache(e.client, e.metrics)
	memo := newSeasonListMemo(e.client, seasonTag)

	complete := e.store.Completed()
	if complete {
		log.Info("All match identifiers already filled. Skipping identifier discovery.")
	}
	rs := e.confirmPairings(ctx, cache, report, !complete)
	if !complete {
		e.discoverPairings(ctx, rs, memo, report)
	}

	finished := e.collectFinished(ctx, cache, memo, report)
	e.writeIntermediateScores(ctx, cache, rs, report)
	e.writeFinals(rs, finished, report)
	e.trackCompletion(report)

	report.Fetches = cache.Fetches
	report.CacheHits = cache.Hits
	report.FinishedAt = time.Now()
	e.metrics.ObserveRunDuration(report.Duration().Seconds())

	if err := e.persist(report, opts); err != nil {
		return report, err
	}

	if err := e.notifier.SendRunReport(report, opts.DryRun); err != nil {
		log.Error("Failed to send run report", "error", err)
	}
	if err := e.journal.Record(ctx, report); err != nil {
		log.Error("Failed to journal run", "error", err)
	}
	if opts.DryRun {
		log.Info("[Dry Run] Would push run metrics")
	} else if err := e.metrics.Push(ctx); err != nil {
		log.Warn("Failed to push run metrics", "error", err)
	}

	log.Info("Run finished",
		"runID", report.RunID,
		"known", report.KnownIDs,
		"discovered", len(report.DiscoveredIDs),
		"scores", report.ScoresWritten,
		"finals", report.FinalsWritten,
		"warnings", len(report.Warnings),
		"saved", report.Saved,
		"duration", report.Duration())
	return report, nil
}

// persist decides whether the in-memory workbook mutations become durable.
// Dry runs never save; attended runs ask on stdin; auto runs save
// immediately.
func (e *Engine) persist(report *league.RunReport, opts Options) error {
	switch {
	case opts.DryRun:
		log.Info("[Dry Run] Would save workbook", "league", opts.League)
		return nil
	case !opts.Auto:
		printSummary(report)
		if !e.confirmSave() {
			log.Info("Workbook left unsaved", "league", opts.League)
			return nil
		}
	}
	if err := e.store.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	report.Saved = true
	log.Info("Workbook saved", "league", opts.League)
	return nil
}

// printSummary shows the operator what changed before the save prompt.
func printSummary(report *league.RunReport) {
	fmt.Printf("\nRun summary for league %s, season %s\n", report.League, report.Season)
	fmt.Printf("  known ids       %d\n", report.KnownIDs)
	fmt.Printf("  discovered      %d\n", len(report.DiscoveredIDs))
	fmt.Printf("  scores written  %d\n", report.ScoresWritten)
	fmt.Printf("  finals written  %d\n", report.FinalsWritten)
	for _, w := range report.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
}

// confirmSave asks the operator on stdin whether to keep the changes.
func (e *Engine) confirmSave() bool {
	fmt.Print("Save workbook? [y/N] ")
	sc := bufio.NewScanner(e.in)
	if !sc.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(sc.Text()))
	return answer == "y" || answer == "yes"
}
