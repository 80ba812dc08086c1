package roster

import "errors"

var (
	ErrNoPlayersAvailable = errors.New("no players available")
	ErrEmptySelection     = errors.New("no players selected")
	ErrNotACandidate      = errors.New("player is not available for selection")
	ErrDuplicateSelection = errors.New("player selected more than once")
)
