package slack

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mboeker/gammonsync/internal/league"
	"github.com/mboeker/gammonsync/internal/metrics"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	postMessageCalled := false
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

// Test the public method to ensure it calls the private sender.
func TestSendRunReport_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	report := &league.RunReport{
		League: "4d",
		Season: "34th-season-4d",
	}

	err := notifier.SendRunReport(report, false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendRunReport")
}

func TestFormatRunReport(t *testing.T) {
	report := &league.RunReport{
		RunID:         "run-1",
		League:        "4d",
		Season:        "34th-season-4d",
		StartedAt:     time.Date(2025, 7, 9, 20, 0, 0, 0, time.UTC),
		FinishedAt:    time.Date(2025, 7, 9, 20, 0, 12, 0, time.UTC),
		KnownIDs:      30,
		DiscoveredIDs: []league.MatchID{4528964, 4529001},
		ScoresWritten: 5,
		FinalsWritten: 1,
		Saved:         true,
	}
	client := &Notifier{channelID: "C123"}
	msg := client.formatRunReport(report)
	require.Len(t, msg.Blocks.BlockSet, 5, "Expected 5 blocks")

	// 1. Header Block
	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "First block should be a HeaderBlock")
	assert.Equal(t, "🎲 Score sync complete! 🎲", header.Text.Text)
	assert.True(t, *header.Text.Emoji)

	// 2. Details Section
	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok, "Second block should be a SectionBlock")
	assert.Equal(t, "League: 4d\nSeason: 34th-season-4d\nDuration: 12s", details.Text.Text)

	// 3. Counts Section
	counts, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok, "Third block should be a SectionBlock")
	assert.Contains(t, counts.Text.Text, "> *Known matches*: 30")
	assert.Contains(t, counts.Text.Text, "> *Discovered*: 2")
	assert.Contains(t, counts.Text.Text, "> *Scores written*: 5")
	assert.Contains(t, counts.Text.Text, "> *Finals written*: 1")

	// 4. Discovered Section
	discovered, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
	require.True(t, ok, "Fourth block should be a SectionBlock")
	assert.Equal(t, "Discovered matches:\n• 4528964\n• 4529001", discovered.Text.Text)

	// 5. Context Section
	contextBlock, ok := msg.Blocks.BlockSet[4].(*slackapi.ContextBlock)
	require.True(t, ok, "Fifth block should be a ContextBlock")
	require.Len(t, contextBlock.ContextElements.Elements, 1)

	savedElement, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "💾 Workbook saved.", savedElement.Text)
}

func TestFormatRunReport_Context(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	t.Run("dry run", func(t *testing.T) {
		report := &league.RunReport{League: "4d", DryRun: true}
		msg := client.formatRunReport(report)
		require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks (no discoveries, no warnings)")

		header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		require.True(t, ok)
		assert.Equal(t, "🎲 Score sync dry run 🎲", header.Text.Text)

		contextBlock, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
		require.True(t, ok)
		require.Len(t, contextBlock.ContextElements.Elements, 1)
		element, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
		require.True(t, ok)
		assert.Equal(t, "🧪 Dry run, nothing was saved.", element.Text)
	})

	t.Run("unsaved workbook", func(t *testing.T) {
		report := &league.RunReport{League: "4d"}
		msg := client.formatRunReport(report)

		contextBlock, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
		require.True(t, ok)
		element, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
		require.True(t, ok)
		assert.Equal(t, "📝 Workbook left unsaved.", element.Text)
	})

	t.Run("completed grid adds a second element", func(t *testing.T) {
		report := &league.RunReport{League: "4d", Saved: true, Completed: true}
		msg := client.formatRunReport(report)

		contextBlock, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
		require.True(t, ok)
		require.Len(t, contextBlock.ContextElements.Elements, 2)
		element, ok := contextBlock.ContextElements.Elements[1].(*slackapi.TextBlockObject)
		require.True(t, ok)
		assert.Equal(t, "🏁 All match identifiers filled.", element.Text)
	})
}

func TestFormatRunReport_WarningsCapped(t *testing.T) {
	report := &league.RunReport{League: "4d", Saved: true}
	for i := 0; i < maxWarningLines+2; i++ {
		report.Warnf("warning %d", i)
	}

	client := &Notifier{channelID: "C123"}
	msg := client.formatRunReport(report)
	require.Len(t, msg.Blocks.BlockSet, 5, "Expected 5 blocks (header, details, counts, warnings, context)")

	warnings, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, warnings.Text.Text, "• warning 0")
	assert.Contains(t, warnings.Text.Text, fmt.Sprintf("• warning %d", maxWarningLines-1))
	assert.NotContains(t, warnings.Text.Text, fmt.Sprintf("• warning %d", maxWarningLines))
	assert.Contains(t, warnings.Text.Text, "• and 2 more")
}
