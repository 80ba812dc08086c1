package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Metrics = (*Service)(nil)

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
// When store is non-nil every increment is also persisted under its Key* name.
func NewService(store MetricsStore, registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "darts",
			Name:      name,
			Help:      help,
		})
	}

	s := &Service{
		ProfilesCreated:  counter("profiles_created_total", "The total number of player profiles created."),
		ProfilesRenamed:  counter("profiles_renamed_total", "The total number of player profiles renamed."),
		ProfilesRemoved:  counter("profiles_removed_total", "The total number of player profiles removed."),
		MalformedRecords: counter("malformed_records_skipped_total", "The total number of stored profile records skipped while listing."),
		RostersSelected:  counter("rosters_selected_total", "The total number of rosters validated for a game."),
		SessionsStarted:  counter("sessions_started_total", "The total number of game sessions handed to the engine."),
		SlackNotifSent:   counter("slack_notifications_sent_total", "The total number of Slack notifications successfully sent."),
		SlackNotifFailed: counter("slack_notifications_failed_total", "The total number of Slack notifications that failed to send."),
		store:            store,
	}

	reg.MustRegister(
		s.ProfilesCreated,
		s.ProfilesRenamed,
		s.ProfilesRemoved,
		s.MalformedRecords,
		s.RostersSelected,
		s.SessionsStarted,
		s.SlackNotifSent,
		s.SlackNotifFailed,
	)

	return s
}

// WriteTextfile dumps everything gathered by g in the node exporter textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}

func (s *Service) inc(c prometheus.Counter, key string) {
	c.Inc()
	if s.store != nil {
		s.store.Increment(key)
	}
}

func (s *Service) IncProfilesCreated() {
	s.inc(s.ProfilesCreated, KeyProfilesCreated)
}

func (s *Service) IncProfilesRenamed() {
	s.inc(s.ProfilesRenamed, KeyProfilesRenamed)
}

func (s *Service) IncProfilesRemoved() {
	s.inc(s.ProfilesRemoved, KeyProfilesRemoved)
}

func (s *Service) IncMalformedRecords() {
	s.inc(s.MalformedRecords, KeyMalformedRecords)
}

func (s *Service) IncRostersSelected() {
	s.inc(s.RostersSelected, KeyRostersSelected)
}

func (s *Service) IncSessionsStarted() {
	s.inc(s.SessionsStarted, KeySessionsStarted)
}

func (s *Service) IncSlackNotifSent() {
	s.inc(s.SlackNotifSent, KeySlackNotifSent)
}

func (s *Service) IncSlackNotifFailed() {
	s.inc(s.SlackNotifFailed, KeySlackNotifFailed)
}
