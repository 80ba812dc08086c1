package profile

// Repository defines the interface for the player profile store.
// Every call re-reads the backing directory, so results are never cached.
type Repository interface {
	ListAll() (map[string]PlayerProfile, error)
	Get(username string) (PlayerProfile, error)
	Create(username string) (PlayerProfile, error)
	Rename(oldUsername, newUsername string) (PlayerProfile, error)
	Remove(username string) error
	Save(p PlayerProfile) error
}

// Metrics is the subset of the application metrics the store reports to.
type Metrics interface {
	IncProfilesCreated()
	IncProfilesRenamed()
	IncProfilesRemoved()
	IncMalformedRecords()
}

// SkipHandler is called for every stored record ListAll leaves out.
type SkipHandler func(path string, err error)
