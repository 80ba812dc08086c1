package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	counts map[string]int
}

func (m *memStore) Increment(key string) {
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[key]++
}

func (m *memStore) GetAll() (map[string]int, error) {
	return m.counts, nil
}

func TestService_CountersMirrorToStore(t *testing.T) {
	reg := prometheus.NewRegistry()
	persisted := &memStore{}
	svc := NewService(persisted, reg)

	svc.IncProfilesCreated()
	svc.IncProfilesCreated()
	svc.IncProfilesRemoved()
	svc.IncMalformedRecords()
	svc.IncRostersSelected()
	svc.IncSlackNotifFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(svc.ProfilesCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.ProfilesRemoved))
	assert.Equal(t, 0.0, testutil.ToFloat64(svc.ProfilesRenamed))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.MalformedRecords))

	assert.Equal(t, map[string]int{
		KeyProfilesCreated:  2,
		KeyProfilesRemoved:  1,
		KeyMalformedRecords: 1,
		KeyRostersSelected:  1,
		KeySlackNotifFailed: 1,
	}, persisted.counts)
}

func TestService_WithoutStore(t *testing.T) {
	svc := NewService(nil, prometheus.NewRegistry())
	assert.NotPanics(t, func() {
		svc.IncSessionsStarted()
		svc.IncSlackNotifSent()
	})
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.SessionsStarted))
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(nil, reg)
	svc.IncProfilesRenamed()

	path := filepath.Join(t.TempDir(), "darts.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "darts_profiles_renamed_total 1"))
}
