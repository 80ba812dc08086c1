package notifier

import (
	"github.com/mauv0809/darts-scoreboard/internal/profile"
	"github.com/mauv0809/darts-scoreboard/internal/session"
)

// Notifier defines a high-level interface for announcing darts events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For a roster handed to the game engine
	AnnounceSession(sess *session.Session, roster []profile.PlayerProfile, dryRun bool) error
	// For sharing one player's raw counters
	SendPlayerStats(p profile.PlayerProfile, dryRun bool) error
}
