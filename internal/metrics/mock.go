package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		counts: make(map[string]int),
	}
}

func (m *Mock) inc(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
}

func (m *Mock) get(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key]
}

func (m *Mock) IncProfilesCreated()  { m.inc(KeyProfilesCreated) }
func (m *Mock) IncProfilesRenamed()  { m.inc(KeyProfilesRenamed) }
func (m *Mock) IncProfilesRemoved()  { m.inc(KeyProfilesRemoved) }
func (m *Mock) IncMalformedRecords() { m.inc(KeyMalformedRecords) }
func (m *Mock) IncRostersSelected()  { m.inc(KeyRostersSelected) }
func (m *Mock) IncSessionsStarted()  { m.inc(KeySessionsStarted) }
func (m *Mock) IncSlackNotifSent()   { m.inc(KeySlackNotifSent) }
func (m *Mock) IncSlackNotifFailed() { m.inc(KeySlackNotifFailed) }

// ProfilesCreated returns the number of times IncProfilesCreated was called.
func (m *Mock) ProfilesCreated() int { return m.get(KeyProfilesCreated) }

// ProfilesRenamed returns the number of times IncProfilesRenamed was called.
func (m *Mock) ProfilesRenamed() int { return m.get(KeyProfilesRenamed) }

// ProfilesRemoved returns the number of times IncProfilesRemoved was called.
func (m *Mock) ProfilesRemoved() int { return m.get(KeyProfilesRemoved) }

// MalformedRecords returns the number of times IncMalformedRecords was called.
func (m *Mock) MalformedRecords() int { return m.get(KeyMalformedRecords) }

// RostersSelected returns the number of times IncRostersSelected was called.
func (m *Mock) RostersSelected() int { return m.get(KeyRostersSelected) }

// SessionsStarted returns the number of times IncSessionsStarted was called.
func (m *Mock) SessionsStarted() int { return m.get(KeySessionsStarted) }

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int { return m.get(KeySlackNotifSent) }

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int { return m.get(KeySlackNotifFailed) }
