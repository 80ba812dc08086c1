package main

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/darts-scoreboard/internal/config"
	"github.com/mauv0809/darts-scoreboard/internal/database"
	"github.com/mauv0809/darts-scoreboard/internal/metrics"
	"github.com/mauv0809/darts-scoreboard/internal/notifier"
	"github.com/mauv0809/darts-scoreboard/internal/notifier/slack"
	"github.com/mauv0809/darts-scoreboard/internal/profile"
	"github.com/mauv0809/darts-scoreboard/internal/roster"
	"github.com/mauv0809/darts-scoreboard/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// app is the set of collaborators one command invocation works with.
type app struct {
	cfg      config.Config
	profiles profile.Repository
	selector *roster.Selector
	sessions session.Store
	notifier notifier.Notifier
	counters metrics.MetricsStore
	registry *prometheus.Registry
	teardown func()
	skipped  map[string]error
}

func newApp(cfg config.Config) (*app, error) {
	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	counters := metrics.NewStore(db)
	registry := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(counters, registry)

	a := &app{
		cfg:      cfg,
		counters: counters,
		registry: registry,
		teardown: teardown,
		skipped:  make(map[string]error),
	}

	profiles, err := profile.NewStore(cfg.DataDir,
		profile.WithMetrics(metricsSvc),
		profile.WithSkipHandler(func(path string, err error) {
			a.skipped[path] = err
		}),
	)
	if err != nil {
		teardown()
		return nil, err
	}
	a.profiles = profiles
	a.selector = roster.New(profiles, metricsSvc)
	a.sessions = session.New(db, metricsSvc)

	if cfg.SlackEnabled() {
		a.notifier = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		a.notifier = notifier.NewLogNotifier()
	}
	return a, nil
}

func (a *app) close() {
	if a.cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(a.cfg.MetricsTextfile, a.registry); err != nil {
			log.Warn("Could not export metrics", "error", err)
		}
	}
	a.teardown()
}

// candidates lists the current usernames, sorted for stable output.
func (a *app) candidates() ([]string, error) {
	profiles, err := a.profiles.ListAll()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// withApp builds the collaborators for one command run and always releases them.
func withApp(run func(a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.close()
		return run(a, cmd, args)
	}
}
