package roster

import "github.com/mauv0809/darts-scoreboard/internal/profile"

// ProfileSource is the part of the profile repository the selector reads from.
type ProfileSource interface {
	Get(username string) (profile.PlayerProfile, error)
}

// Metrics is the subset of the application metrics the selector reports to.
type Metrics interface {
	IncRostersSelected()
}
