package profile

import "errors"

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrNotFound          = errors.New("player not found")
	ErrInvalidUsername   = errors.New("invalid username")
	ErrInvalidProfile    = errors.New("invalid profile")
	ErrUnknownLabel      = errors.New("unknown stats label")
	// ErrStorageKeyConflict means the file for a username is already taken by another record.
	ErrStorageKeyConflict = errors.New("storage key already in use")
	// ErrMalformedRecord marks a stored document that could not be decoded into a valid profile.
	ErrMalformedRecord = errors.New("malformed profile record")
)
