package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/rally-stats/internal/analytics"
	"github.com/mauv0809/rally-stats/internal/metrics"
	"github.com/mauv0809/rally-stats/internal/notifier"
	"github.com/mauv0809/rally-stats/internal/pubsub"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

const sendTimeout = 10 * time.Second

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
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

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendResultNotification(ctx context.Context, event pubsub.ResultRecorded, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatResultNotification(event), dryRun)
	return err
}

var categoryEmoji = map[string]string{
	analytics.CategoryExcellent:    "🏆",
	analytics.CategoryGood:         "💪",
	analytics.CategoryAverage:      "👍",
	analytics.CategoryBelowAverage: "🌱",
}

// formatResultNotification creates the Slack message for a recorded result using Block Kit.
func (s *Notifier) formatResultNotification(event pubsub.ResultRecorded) slack.Message {
	blocks := make([]slack.Block, 0, 4)

	headerText := slack.NewTextBlockObject("plain_text", "🏸 New test result! 🏸", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	player := event.PlayerName
	if event.AgeGroup != "" {
		player = fmt.Sprintf("%s (%s)", event.PlayerName, event.AgeGroup)
	}
	detailsText := fmt.Sprintf("%s\n%s on %s", player, event.TestName, event.DateConducted)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Total*\n%d", event.TotalScore), false, false),
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Average*\n%.2f", event.AverageScore), false, false),
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Category*\n%s", categoryLabel(event.Category)), false, false),
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))

	balance := "Hands and strokes are balanced"
	if !event.Balanced {
		balance = "Uneven hand or stroke scores"
	}
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", balance, true, false)))

	return slack.NewBlockMessage(blocks...)
}

func categoryLabel(category string) string {
	label := strings.ReplaceAll(category, "-", " ")
	if emoji, ok := categoryEmoji[category]; ok {
		return emoji + " " + label
	}
	return label
}
