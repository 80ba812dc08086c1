package session

import "github.com/mauv0809/darts-scoreboard/internal/profile"

// Store records game sessions as they are started.
type Store interface {
	Start(roster []profile.PlayerProfile) (*Session, error)
	List(limit int) ([]Session, error)
}

// Metrics is the subset of the application metrics the session log reports to.
type Metrics interface {
	IncSessionsStarted()
}
