package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A hard link gives one file two names, like "alice.json" and "Alice.json"
// on a case-insensitive filesystem.
func linkedPair(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	orig := filepath.Join(dir, "alice.json")
	require.NoError(t, os.WriteFile(orig, []byte("{}"), 0o644))
	alias := filepath.Join(dir, "Alice.json")
	if err := os.Link(orig, alias); err != nil {
		t.Skipf("hard links unsupported: %s", err)
	}
	return orig, alias
}

func TestRemoveStale_KeepsSameFileUnderOtherName(t *testing.T) {
	orig, alias := linkedPair(t)
	other := filepath.Join(filepath.Dir(orig), "alice-backup.json")
	require.NoError(t, os.WriteFile(other, []byte("{}"), 0o644))

	require.NoError(t, removeStale([]string{orig, other}, alias))

	_, err := os.Stat(orig)
	assert.NoError(t, err)
	_, err = os.Stat(other)
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveStale_MissingKeepRemovesNothing(t *testing.T) {
	orig, _ := linkedPair(t)

	err := removeStale([]string{orig}, filepath.Join(filepath.Dir(orig), "gone.json"))
	require.Error(t, err)
	_, err = os.Stat(orig)
	assert.NoError(t, err)
}

func TestCheckKey(t *testing.T) {
	orig, alias := linkedPair(t)
	dir := filepath.Dir(orig)
	snap := snapshot{owners: map[string]string{orig: "alice"}}

	t.Run("free name", func(t *testing.T) {
		assert.NoError(t, snap.checkKey(filepath.Join(dir, "Bob.json"), nil))
	})

	t.Run("own file under another name", func(t *testing.T) {
		assert.NoError(t, snap.checkKey(alias, []string{orig}))
	})

	t.Run("file of another record", func(t *testing.T) {
		err := snap.checkKey(orig, nil)
		assert.ErrorIs(t, err, ErrStorageKeyConflict)
		assert.Contains(t, err.Error(), "alice")
	})
}

func TestWrite_FailureLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	s := &store{dir: dir}
	blocker := filepath.Join(dir, "Carol.json")
	require.NoError(t, os.Mkdir(blocker, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(blocker, "keep"), []byte("x"), 0o644))

	err := s.write(NewProfile("Carol"), blocker)
	require.Error(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
