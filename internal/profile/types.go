package profile

import (
	"fmt"
	"strings"
	"sync"
)

// store keeps each player profile as a JSON document inside a single directory.
type store struct {
	dir     string
	mu      sync.Mutex
	metrics Metrics
	onSkip  SkipHandler
}

// record is a decoded profile together with the files carrying its username.
// path is the copy that wins when there is more than one.
type record struct {
	profile PlayerProfile
	path    string
	paths   []string
}

// snapshot is one read of the data directory.
type snapshot struct {
	records map[string]record
	// owners maps a file path to the username stored in it.
	owners map[string]string
}

// Labels is the fixed set of scoring segments tracked for every player:
// singles, doubles, trebles, outer bull, bullseye and a miss.
var Labels = [...]string{
	"1", "2", "3", "4", "5", "6", "7", "8", "9", "10",
	"11", "12", "13", "14", "15", "16", "17", "18", "19", "20",
	"D1", "D2", "D3", "D4", "D5", "D6", "D7", "D8", "D9", "D10",
	"D11", "D12", "D13", "D14", "D15", "D16", "D17", "D18", "D19", "D20",
	"T1", "T2", "T3", "T4", "T5", "T6", "T7", "T8", "T9", "T10",
	"T11", "T12", "T13", "T14", "T15", "T16", "T17", "T18", "T19", "T20",
	"OB", "B", "miss",
}

var labelSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Labels))
	for _, l := range Labels {
		set[l] = struct{}{}
	}
	return set
}()

// IsLabel reports whether label is one of the tracked scoring segments.
func IsLabel(label string) bool {
	_, ok := labelSet[label]
	return ok
}

// PlayerProfile is a player's persisted identity plus cumulative statistics.
type PlayerProfile struct {
	Username    string         `json:"username"`
	GamesPlayed int            `json:"gamesPlayed"`
	Wins        int            `json:"wins"`
	Losses      int            `json:"losses"`
	Stats       map[string]int `json:"stats"`
}

// NewProfile returns a profile for username with every counter at zero.
func NewProfile(username string) PlayerProfile {
	stats := make(map[string]int, len(Labels))
	for _, l := range Labels {
		stats[l] = 0
	}
	return PlayerProfile{
		Username: username,
		Stats:    stats,
	}
}

// Clone returns a deep copy so callers can mutate stats without touching the original.
func (p PlayerProfile) Clone() PlayerProfile {
	c := p
	c.Stats = make(map[string]int, len(p.Stats))
	for k, v := range p.Stats {
		c.Stats[k] = v
	}
	return c
}

// RecordHit adds one hit on label.
func (p *PlayerProfile) RecordHit(label string) error {
	if !IsLabel(label) {
		return fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	if p.Stats == nil {
		return fmt.Errorf("%w: profile %q has no stats", ErrInvalidProfile, p.Username)
	}
	p.Stats[label]++
	return nil
}

// RecordResult counts a finished game as a win or a loss.
func (p *PlayerProfile) RecordResult(won bool) {
	p.GamesPlayed++
	if won {
		p.Wins++
	} else {
		p.Losses++
	}
}

// TotalHits sums every label except misses.
func (p PlayerProfile) TotalHits() int {
	total := 0
	for label, n := range p.Stats {
		if label == "miss" {
			continue
		}
		total += n
	}
	return total
}

// Validate checks the profile against the fixed schema.
func (p PlayerProfile) Validate() error {
	if err := ValidateUsername(p.Username); err != nil {
		return err
	}
	if p.GamesPlayed < 0 || p.Wins < 0 || p.Losses < 0 {
		return fmt.Errorf("%w: negative game counters", ErrInvalidProfile)
	}
	if len(p.Stats) != len(Labels) {
		return fmt.Errorf("%w: expected %d stats labels, got %d", ErrInvalidProfile, len(Labels), len(p.Stats))
	}
	for label, n := range p.Stats {
		if !IsLabel(label) {
			return fmt.Errorf("%w: %q", ErrUnknownLabel, label)
		}
		if n < 0 {
			return fmt.Errorf("%w: negative count for %q", ErrInvalidProfile, label)
		}
	}
	return nil
}

// ValidateUsername rejects names that cannot double as a file name in the data directory.
func ValidateUsername(username string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: username is empty", ErrInvalidUsername)
	case strings.TrimSpace(username) == "":
		return fmt.Errorf("%w: username is blank", ErrInvalidUsername)
	case username == "." || username == "..":
		return fmt.Errorf("%w: %q", ErrInvalidUsername, username)
	case strings.ContainsAny(username, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidUsername, username)
	case strings.ContainsRune(username, 0):
		return fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidUsername, username)
	}
	return nil
}
