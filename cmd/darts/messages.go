package main

import (
	"errors"

	"github.com/mauv0809/darts-scoreboard/internal/profile"
	"github.com/mauv0809/darts-scoreboard/internal/roster"
)

// userMessage turns an operation error into the short line shown to the operator.
func userMessage(err error) string {
	switch {
	case errors.Is(err, profile.ErrDuplicateUsername):
		return "That username already exists."
	case errors.Is(err, profile.ErrNotFound):
		return "That player does not exist."
	case errors.Is(err, profile.ErrInvalidUsername):
		return "That is not a valid username: " + err.Error()
	case errors.Is(err, profile.ErrStorageKeyConflict):
		return "Another player's record already uses that name: " + err.Error()
	case errors.Is(err, roster.ErrNoPlayersAvailable):
		return "No players available. Add players first."
	case errors.Is(err, roster.ErrEmptySelection):
		return "No players selected."
	case errors.Is(err, roster.ErrNotACandidate), errors.Is(err, roster.ErrDuplicateSelection):
		return "Invalid selection: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}
