package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncProfilesCreated()
	IncProfilesRenamed()
	IncProfilesRemoved()
	IncMalformedRecords()
	IncRostersSelected()
	IncSessionsStarted()
	IncSlackNotifSent()
	IncSlackNotifFailed()
}

// MetricsStore keeps lifetime counters across CLI invocations.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
