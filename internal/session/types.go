package session

import (
	"database/sql"
	"sync"
	"time"
)

// store handles the sessions table.
type store struct {
	db      *sql.DB
	mu      sync.Mutex
	now     func() time.Time
	metrics Metrics
}

// Session is one roster handed to the game engine.
type Session struct {
	ID        string
	StartedAt time.Time
	// Players holds usernames in turn order.
	Players []string
}
