package metrics

import "github.com/prometheus/client_golang/prometheus"

// Persistent counter keys, mirrored from the Prometheus counters.
const (
	KeyProfilesCreated  = "profiles_created"
	KeyProfilesRenamed  = "profiles_renamed"
	KeyProfilesRemoved  = "profiles_removed"
	KeyMalformedRecords = "malformed_records_skipped"
	KeyRostersSelected  = "rosters_selected"
	KeySessionsStarted  = "sessions_started"
	KeySlackNotifSent   = "slack_notifications_sent"
	KeySlackNotifFailed = "slack_notifications_failed"
)

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	ProfilesCreated  prometheus.Counter
	ProfilesRenamed  prometheus.Counter
	ProfilesRemoved  prometheus.Counter
	MalformedRecords prometheus.Counter
	RostersSelected  prometheus.Counter
	SessionsStarted  prometheus.Counter
	SlackNotifSent   prometheus.Counter
	SlackNotifFailed prometheus.Counter

	store MetricsStore
}
