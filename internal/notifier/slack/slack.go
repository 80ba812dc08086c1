package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/darts-scoreboard/internal/metrics"
	"github.com/mauv0809/darts-scoreboard/internal/notifier"
	"github.com/mauv0809/darts-scoreboard/internal/profile"
	"github.com/mauv0809/darts-scoreboard/internal/session"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

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

// NewNotifierWithAPI creates a new Notifier with a specific slack client.
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
		return "dry-run-channel", "dry-run-ts", nil
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
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// AnnounceSession posts the turn order of a freshly started session.
func (s *Notifier) AnnounceSession(sess *session.Session, roster []profile.PlayerProfile, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatSession(sess, roster), dryRun)
	return err
}

// SendPlayerStats posts one player's counters.
func (s *Notifier) SendPlayerStats(p profile.PlayerProfile, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatPlayerStats(p), dryRun)
	return err
}

func (s *Notifier) formatSession(sess *session.Session, roster []profile.PlayerProfile) slack.Message {
	blocks := make([]slack.Block, 0, 3)

	headerText := slack.NewTextBlockObject("plain_text", "🎯 Game on! 🎯", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	lines := make([]string, 0, len(roster))
	for i, p := range roster {
		lines = append(lines, fmt.Sprintf("%d. %s (%dW / %dL)", i+1, p.Username, p.Wins, p.Losses))
	}
	playersText := "Throwing order:\n" + strings.Join(lines, "\n")
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playersText, true, false), nil, nil))

	contextText := fmt.Sprintf("Session %s · %s", sess.ID, sess.StartedAt.Format("Monday 02 Jan, 15:04"))
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, false, false)))

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatPlayerStats(p profile.PlayerProfile) slack.Message {
	blocks := make([]slack.Block, 0, 3)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🎯 Stats for %s", p.Username), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Games*\n%d", p.GamesPlayed), false, false),
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Wins*\n%d", p.Wins), false, false),
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Losses*\n%d", p.Losses), false, false),
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Hits*\n%d", p.TotalHits()), false, false),
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))

	var hit []string
	for _, label := range profile.Labels {
		if n := p.Stats[label]; n > 0 {
			hit = append(hit, fmt.Sprintf("%s×%d", label, n))
		}
	}
	if len(hit) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", strings.Join(hit, "  "), false, false)))
	}

	return slack.NewBlockMessage(blocks...)
}
