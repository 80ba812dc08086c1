package roster

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/darts-scoreboard/internal/profile"
)

// Selector turns a chosen list of usernames into the ordered roster for one game.
// It holds no state between calls.
type Selector struct {
	profiles ProfileSource
	metrics  Metrics
}

// New creates a Selector. metrics may be nil.
func New(profiles ProfileSource, metrics Metrics) *Selector {
	return &Selector{
		profiles: profiles,
		metrics:  metrics,
	}
}

// SelectRoster validates chosen against candidates and returns the matching
// profiles in chosen order, which is the turn order for the game.
func (s *Selector) SelectRoster(candidates, chosen []string) ([]profile.PlayerProfile, error) {
	if len(candidates) == 0 {
		return nil, ErrNoPlayersAvailable
	}
	if len(chosen) == 0 {
		return nil, ErrEmptySelection
	}

	available := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		available[c] = struct{}{}
	}

	picked := make(map[string]struct{}, len(chosen))
	roster := make([]profile.PlayerProfile, 0, len(chosen))
	for _, username := range chosen {
		if _, ok := available[username]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotACandidate, username)
		}
		if _, dup := picked[username]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSelection, username)
		}
		picked[username] = struct{}{}

		p, err := s.profiles.Get(username)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s for roster: %w", username, err)
		}
		roster = append(roster, p)
	}

	if s.metrics != nil {
		s.metrics.IncRostersSelected()
	}
	log.Info("Roster selected", "players", len(roster))
	return roster, nil
}

// Usernames returns the usernames of roster in order.
func Usernames(roster []profile.PlayerProfile) []string {
	names := make([]string, len(roster))
	for i, p := range roster {
		names[i] = p.Username
	}
	return names
}
