package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
)

const fileExt = ".json"

// Option configures the profile store.
type Option func(*store)

// WithMetrics reports create/rename/remove and skipped records to m.
func WithMetrics(m Metrics) Option {
	return func(s *store) {
		s.metrics = m
	}
}

// WithSkipHandler registers a callback for records ListAll leaves out.
func WithSkipHandler(h SkipHandler) Option {
	return func(s *store) {
		s.onSkip = h
	}
}

// NewStore creates a Repository backed by dir, creating the directory if needed.
func NewStore(dir string, opts ...Option) (Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile directory %s: %w", dir, err)
	}
	s := &store{dir: dir}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ListAll re-reads the data directory and returns every valid profile keyed by username.
// Records it leaves out are reported to the skip handler and metrics.
func (s *store) ListAll() (map[string]PlayerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(true)
	if err != nil {
		return nil, err
	}
	profiles := make(map[string]PlayerProfile, len(snap.records))
	for username, rec := range snap.records {
		profiles[username] = rec.profile
	}
	return profiles, nil
}

// Get returns the profile stored for username.
func (s *store) Get(username string) (PlayerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(false)
	if err != nil {
		return PlayerProfile{}, err
	}
	rec, ok := snap.records[username]
	if !ok {
		return PlayerProfile{}, fmt.Errorf("%w: %s", ErrNotFound, username)
	}
	return rec.profile, nil
}

// Create persists a fresh profile with zeroed stats.
func (s *store) Create(username string) (PlayerProfile, error) {
	if err := ValidateUsername(username); err != nil {
		return PlayerProfile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(false)
	if err != nil {
		return PlayerProfile{}, err
	}
	if _, exists := snap.records[username]; exists {
		return PlayerProfile{}, fmt.Errorf("%w: %s", ErrDuplicateUsername, username)
	}
	path := s.pathFor(username)
	if err := snap.checkKey(path, nil); err != nil {
		return PlayerProfile{}, err
	}

	p := NewProfile(username)
	if err := s.write(p, path); err != nil {
		return PlayerProfile{}, err
	}
	if s.metrics != nil {
		s.metrics.IncProfilesCreated()
	}
	log.Info("Created player profile", "username", username)
	return p, nil
}

// Rename moves a profile to a new username. The new record is written before the
// old ones are removed, so an interruption can leave two copies but never zero.
func (s *store) Rename(oldUsername, newUsername string) (PlayerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(false)
	if err != nil {
		return PlayerProfile{}, err
	}
	rec, ok := snap.records[oldUsername]
	if !ok {
		return PlayerProfile{}, fmt.Errorf("%w: %s", ErrNotFound, oldUsername)
	}
	if err := ValidateUsername(newUsername); err != nil {
		return PlayerProfile{}, err
	}
	if _, exists := snap.records[newUsername]; exists {
		return PlayerProfile{}, fmt.Errorf("%w: %s", ErrDuplicateUsername, newUsername)
	}
	newPath := s.pathFor(newUsername)
	if err := snap.checkKey(newPath, rec.paths); err != nil {
		return PlayerProfile{}, err
	}

	renamed := rec.profile.Clone()
	renamed.Username = newUsername
	if err := s.write(renamed, newPath); err != nil {
		return PlayerProfile{}, err
	}
	if err := removeStale(rec.paths, newPath); err != nil {
		return PlayerProfile{}, err
	}
	if s.metrics != nil {
		s.metrics.IncProfilesRenamed()
	}
	log.Info("Renamed player profile", "from", oldUsername, "to", newUsername)
	return renamed, nil
}

// Remove deletes every record carrying username. There is no undo.
func (s *store) Remove(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(false)
	if err != nil {
		return err
	}
	rec, ok := snap.records[username]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, username)
	}
	for _, path := range rec.paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove profile record %s: %w", path, err)
		}
	}
	if s.metrics != nil {
		s.metrics.IncProfilesRemoved()
	}
	log.Info("Removed player profile", "username", username)
	return nil
}

// Save overwrites an existing profile, e.g. after recording game results.
func (s *store) Save(p PlayerProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(false)
	if err != nil {
		return err
	}
	rec, ok := snap.records[p.Username]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, p.Username)
	}
	// rec.path is the copy load keeps, so the saved values stay the visible ones.
	if err := s.write(p, rec.path); err != nil {
		return err
	}
	log.Debug("Saved player profile", "username", p.Username)
	return nil
}

func (s *store) pathFor(username string) string {
	return filepath.Join(s.dir, username+fileExt)
}

// load must be called with s.mu held. Skipped records are only reported when report is set.
func (s *store) load(report bool) (snapshot, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return snapshot{}, fmt.Errorf("failed to read profile directory %s: %w", s.dir, err)
	}
	// ReadDir sorts by name; keep that explicit since later duplicates win.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	snap := snapshot{
		records: make(map[string]record, len(entries)),
		owners:  make(map[string]string, len(entries)),
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != fileExt {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		p, err := readProfile(path)
		if err != nil {
			if errors.Is(err, ErrMalformedRecord) {
				s.skip(path, err, report)
				continue
			}
			return snapshot{}, err
		}

		rec, dup := snap.records[p.Username]
		if dup {
			log.Warn("Username stored in more than one record", "username", p.Username, "kept", path, "ignored", rec.path)
		}
		rec.profile = p
		rec.path = path
		rec.paths = append(rec.paths, path)
		snap.records[p.Username] = rec
		snap.owners[path] = p.Username
	}
	return snap, nil
}

// checkKey fails when path already holds a file that is not one of own.
func (snap snapshot) checkKey(path string, own []string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to inspect profile record %s: %w", path, err)
	}
	for _, p := range own {
		if sameFile(info, p) {
			return nil
		}
	}
	if owner, ok := snap.owners[path]; ok {
		return fmt.Errorf("%w: %s holds the profile of %s", ErrStorageKeyConflict, filepath.Base(path), owner)
	}
	return fmt.Errorf("%w: %s already exists", ErrStorageKeyConflict, filepath.Base(path))
}

// removeStale deletes every path that is not the same file as keep. Paths are
// compared by file identity, so case-insensitive names for keep survive.
func removeStale(paths []string, keep string) error {
	keepInfo, err := os.Stat(keep)
	if err != nil {
		return fmt.Errorf("failed to inspect profile record %s: %w", keep, err)
	}
	for _, path := range paths {
		if sameFile(keepInfo, path) {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove old profile record %s: %w", path, err)
		}
	}
	return nil
}

func sameFile(info os.FileInfo, path string) bool {
	other, err := os.Stat(path)
	if err != nil {
		return false
	}
	return os.SameFile(info, other)
}

func (s *store) skip(path string, err error, report bool) {
	log.Debug("Skipping profile record", "path", path, "error", err)
	if !report {
		return
	}
	if s.metrics != nil {
		s.metrics.IncMalformedRecords()
	}
	if s.onSkip != nil {
		s.onSkip(path, err)
	}
}

func readProfile(path string) (PlayerProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PlayerProfile{}, fmt.Errorf("failed to read profile record %s: %w", path, err)
	}
	var p PlayerProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return PlayerProfile{}, fmt.Errorf("%w: %s: %w", ErrMalformedRecord, path, err)
	}
	if p.Username == "" {
		return PlayerProfile{}, fmt.Errorf("%w: %s: missing username", ErrMalformedRecord, path)
	}
	if err := p.Validate(); err != nil {
		return PlayerProfile{}, fmt.Errorf("%w: %s: %w", ErrMalformedRecord, path, err)
	}
	return p, nil
}

// write replaces path atomically through a temp file in the same directory.
func (s *store) write(p PlayerProfile, path string) error {
	data, err := json.MarshalIndent(p, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode profile %s: %w", p.Username, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", p.Username, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("failed to write profile %s: %w", p.Username, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync profile %s: %w", p.Username, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		cleanup()
		return fmt.Errorf("failed to set permissions on profile %s: %w", p.Username, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close profile %s: %w", p.Username, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to store profile %s: %w", p.Username, err)
	}
	return nil
}
