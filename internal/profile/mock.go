package profile

import (
	"fmt"
	"sync"
)

var _ Repository = (*MockStore)(nil)

// MockStore is an in-memory Repository for tests. Setting a *Func field overrides
// the default map-backed behaviour for that method.
// It is safe for concurrent use.
type MockStore struct {
	mu       sync.Mutex
	profiles map[string]PlayerProfile

	ListAllFunc func() (map[string]PlayerProfile, error)
	GetFunc     func(username string) (PlayerProfile, error)
	CreateFunc  func(username string) (PlayerProfile, error)
	RenameFunc  func(oldUsername, newUsername string) (PlayerProfile, error)
	RemoveFunc  func(username string) error
	SaveFunc    func(p PlayerProfile) error

	GetCalls    []string
	CreateCalls []string
	RemoveCalls []string
	SaveCalls   []PlayerProfile
}

// NewMock creates a MockStore seeded with zeroed profiles for usernames.
func NewMock(usernames ...string) *MockStore {
	m := &MockStore{profiles: make(map[string]PlayerProfile, len(usernames))}
	for _, u := range usernames {
		m.profiles[u] = NewProfile(u)
	}
	return m
}

func (m *MockStore) ListAll() (map[string]PlayerProfile, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]PlayerProfile, len(m.profiles))
	for k, v := range m.profiles {
		out[k] = v.Clone()
	}
	return out, nil
}

func (m *MockStore) Get(username string) (PlayerProfile, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, username)
	m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(username)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[username]
	if !ok {
		return PlayerProfile{}, fmt.Errorf("%w: %s", ErrNotFound, username)
	}
	return p.Clone(), nil
}

func (m *MockStore) Create(username string) (PlayerProfile, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, username)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(username)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[username]; ok {
		return PlayerProfile{}, fmt.Errorf("%w: %s", ErrDuplicateUsername, username)
	}
	p := NewProfile(username)
	m.profiles[username] = p
	return p.Clone(), nil
}

func (m *MockStore) Rename(oldUsername, newUsername string) (PlayerProfile, error) {
	if m.RenameFunc != nil {
		return m.RenameFunc(oldUsername, newUsername)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[oldUsername]
	if !ok {
		return PlayerProfile{}, fmt.Errorf("%w: %s", ErrNotFound, oldUsername)
	}
	if _, ok := m.profiles[newUsername]; ok {
		return PlayerProfile{}, fmt.Errorf("%w: %s", ErrDuplicateUsername, newUsername)
	}
	p.Username = newUsername
	m.profiles[newUsername] = p
	delete(m.profiles, oldUsername)
	return p.Clone(), nil
}

func (m *MockStore) Remove(username string) error {
	m.mu.Lock()
	m.RemoveCalls = append(m.RemoveCalls, username)
	m.mu.Unlock()
	if m.RemoveFunc != nil {
		return m.RemoveFunc(username)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[username]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, username)
	}
	delete(m.profiles, username)
	return nil
}

func (m *MockStore) Save(p PlayerProfile) error {
	m.mu.Lock()
	m.SaveCalls = append(m.SaveCalls, p)
	m.mu.Unlock()
	if m.SaveFunc != nil {
		return m.SaveFunc(p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[p.Username]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, p.Username)
	}
	m.profiles[p.Username] = p.Clone()
	return nil
}
