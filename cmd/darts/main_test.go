package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mauv0809/darts-scoreboard/internal/profile"
	"github.com/mauv0809/darts-scoreboard/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv points the CLI at a fresh data directory and database.
func setupEnv(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	chdirWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(root); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(chdirWD) })
	dir := filepath.Join(root, "data")
	t.Setenv("DATA_DIR", dir)
	t.Setenv("DB_NAME", filepath.Join(root, "darts.db"))
	t.Setenv("SLACK_BOT_TOKEN", "")
	t.Setenv("SLACK_CHANNEL_ID", "")
	t.Setenv("TURSO_PRIMARY_URL", "")
	t.Setenv("METRICS_TEXTFILE", filepath.Join(root, "darts.prom"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DRY_RUN", "")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPlayersLifecycle(t *testing.T) {
	dir := setupEnv(t)

	out, err := run(t, "players", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No players yet")

	out, err = run(t, "players", "add", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "User 'Alice' added.\n", out)

	_, err = run(t, "players", "add", "Bob")
	require.NoError(t, err)
	_, err = run(t, "players", "add", "Bob")
	assert.ErrorIs(t, err, profile.ErrDuplicateUsername)

	out, err = run(t, "players", "rename", "Alice", "Carol")
	require.NoError(t, err)
	assert.Equal(t, "User 'Alice' renamed to 'Carol'.\n", out)

	out, err = run(t, "players", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Carol")
	assert.Contains(t, out, "Bob")
	assert.NotContains(t, out, "Alice")

	_, err = run(t, "players", "remove", "Carol")
	require.NoError(t, err)
	_, err = run(t, "players", "remove", "Carol")
	assert.ErrorIs(t, err, profile.ErrNotFound)

	_, err = os.Stat(filepath.Join(dir, "Bob.json"))
	assert.NoError(t, err)
}

func TestPlayersList_ReportsSkippedRecords(t *testing.T) {
	dir := setupEnv(t)

	_, err := run(t, "players", "add", "Alice")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{"), 0o644))

	out, err := run(t, "players", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "1 unreadable record(s)")
}

func TestPlayersShow(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "players", "add", "Alice")
	require.NoError(t, err)

	out, err := run(t, "players", "show", "Alice", "--share", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Games: 0  Wins: 0  Losses: 0  Hits: 0")
	assert.Contains(t, out, "T20:0")
	assert.Contains(t, out, "miss:0")

	_, err = run(t, "players", "show", "Nobody")
	assert.ErrorIs(t, err, profile.ErrNotFound)
}

func TestPlay(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "play")
	assert.ErrorIs(t, err, roster.ErrNoPlayersAvailable)

	for _, name := range []string{"Alice", "Bob", "Carol"} {
		_, err := run(t, "players", "add", name)
		require.NoError(t, err)
	}

	_, err = run(t, "play")
	assert.ErrorIs(t, err, roster.ErrEmptySelection)

	_, err = run(t, "play", "Dave")
	assert.ErrorIs(t, err, roster.ErrNotACandidate)

	out, err := run(t, "play", "Carol", "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Players selected (2):\n- Carol\n- Alice\n")

	out, err = run(t, "sessions")
	require.NoError(t, err)
	assert.Contains(t, out, "Carol, Alice")

	out, err = run(t, "metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "profiles_created")
	assert.Contains(t, out, "sessions_started")
	assert.Contains(t, out, "rosters_selected")
}

func TestMetricsTextfileIsWritten(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "players", "add", "Alice")
	require.NoError(t, err)

	data, err := os.ReadFile("darts.prom")
	require.NoError(t, err)
	assert.Contains(t, string(data), "darts_profiles_created_total 1")
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: Bob", profile.ErrDuplicateUsername), "That username already exists."},
		{fmt.Errorf("%w: Bob", profile.ErrNotFound), "That player does not exist."},
		{fmt.Errorf("%w: Carol.json already exists", profile.ErrStorageKeyConflict),
			"Another player's record already uses that name: storage key already in use: Carol.json already exists"},
		{roster.ErrNoPlayersAvailable, "No players available. Add players first."},
		{roster.ErrEmptySelection, "No players selected."},
		{errors.New("disk full"), "Error: disk full"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, userMessage(tt.err))
	}
}
