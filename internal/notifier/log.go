package notifier

import (
	"github.com/charmbracelet/log"
	"github.com/mauv0809/darts-scoreboard/internal/profile"
	"github.com/mauv0809/darts-scoreboard/internal/roster"
	"github.com/mauv0809/darts-scoreboard/internal/session"
)

var _ Notifier = (*LogNotifier)(nil)

// LogNotifier writes announcements to the application log. It is used when no
// Slack token is configured.
type LogNotifier struct{}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) AnnounceSession(sess *session.Session, players []profile.PlayerProfile, dryRun bool) error {
	log.Info("Game on", "session", sess.ID, "turn_order", roster.Usernames(players), "dry_run", dryRun)
	return nil
}

func (n *LogNotifier) SendPlayerStats(p profile.PlayerProfile, dryRun bool) error {
	log.Info("Player stats", "username", p.Username, "games", p.GamesPlayed, "wins", p.Wins, "losses", p.Losses, "hits", p.TotalHits(), "dry_run", dryRun)
	return nil
}
