package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mboeker/gammonsync/internal/league"
	"github.com/mboeker/gammonsync/internal/metrics"
	"github.com/mboeker/gammonsync/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Slack truncates overly long section blocks, so only the first few warnings
// make it into the message.
const maxWarningLines = 10

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendRunReport sends a summary of a finished reconciliation run.
func (s *Notifier) SendRunReport(report *league.RunReport, dryRun bool) error {
	msg := s.formatRunReport(report)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// formatRunReport creates the Slack message summarising a run using Block Kit.
func (s *Notifier) formatRunReport(report *league.RunReport) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	title := "🎲 Score sync complete! 🎲"
	if report.DryRun {
		title = "🎲 Score sync dry run 🎲"
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", title, true, false)))

	// Details
	detailsText := fmt.Sprintf("League: %s\nSeason: %s\nDuration: %s", report.League, report.Season, report.Duration().Round(time.Second))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, false, false), nil, nil))

	// Counts
	countsText := fmt.Sprintf("> *Known matches*: %d\n> *Discovered*: %d\n> *Scores written*: %d\n> *Finals written*: %d",
		report.KnownIDs,
		len(report.DiscoveredIDs),
		report.ScoresWritten,
		report.FinalsWritten,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", countsText, false, false), nil, nil))

	// Discovered matches
	if len(report.DiscoveredIDs) > 0 {
		var ids []string
		for _, id := range report.DiscoveredIDs {
			ids = append(ids, fmt.Sprintf("• %d", id))
		}
		discoveredText := "Discovered matches:\n" + strings.Join(ids, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", discoveredText, true, false), nil, nil))
	}

	// Warnings
	if len(report.Warnings) > 0 {
		shown := report.Warnings
		var extra int
		if len(shown) > maxWarningLines {
			extra = len(shown) - maxWarningLines
			shown = shown[:maxWarningLines]
		}
		var lines []string
		for _, w := range shown {
			lines = append(lines, fmt.Sprintf("• %s", w))
		}
		if extra > 0 {
			lines = append(lines, fmt.Sprintf("• and %d more", extra))
		}
		warningsText := "Warnings:\n" + strings.Join(lines, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", warningsText, true, false), nil, nil))
	}

	// Context - For simpler, single-line info.
	var contextElements []slack.MixedElement
	switch {
	case report.DryRun:
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", "🧪 Dry run, nothing was saved.", true, false))
	case report.Saved:
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", "💾 Workbook saved.", true, false))
	default:
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", "📝 Workbook left unsaved.", true, false))
	}
	if report.Completed {
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", "🏁 All match identifiers filled.", true, false))
	}
	blocks = append(blocks, slack.NewContextBlock("", contextElements...))

	return slack.NewBlockMessage(blocks...)
}
