package session

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/darts-scoreboard/internal/profile"
	"github.com/mauv0809/darts-scoreboard/internal/roster"
	"github.com/vmihailenco/msgpack/v5"
)

// New creates a session Store on an initialized database.
func New(db *sql.DB, metrics Metrics) Store {
	return &store{
		db:      db,
		now:     time.Now,
		metrics: metrics,
	}
}

// Start records roster as a new session. The roster is assumed to be validated already.
func (s *store) Start(players []profile.PlayerProfile) (*Session, error) {
	if len(players) == 0 {
		return nil, roster.ErrEmptySelection
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{
		ID:        uuid.New().String(),
		StartedAt: s.now().UTC().Truncate(time.Second),
		Players:   roster.Usernames(players),
	}
	blob, err := msgpack.Marshal(sess.Players)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session players: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO sessions (id, started_at, player_count, players) VALUES (?, ?, ?, ?)`,
		sess.ID,
		sess.StartedAt.Unix(),
		len(sess.Players),
		blob,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	if s.metrics != nil {
		s.metrics.IncSessionsStarted()
	}
	log.Info("Session started", "id", sess.ID, "players", sess.Players)
	return sess, nil
}

// List returns up to limit sessions, newest first. A limit <= 0 returns all of them.
func (s *store) List(limit int) ([]Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT id, started_at, players FROM sessions ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var (
			sess      Session
			startedAt int64
			blob      []byte
		)
		if err := rows.Scan(&sess.ID, &startedAt, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if err := msgpack.Unmarshal(blob, &sess.Players); err != nil {
			log.Warn("Skipping session with unreadable players", "id", sess.ID, "error", err)
			continue
		}
		sess.StartedAt = time.Unix(startedAt, 0).UTC()
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}
