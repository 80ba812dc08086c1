package main

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/darts-scoreboard/internal/config"
	"github.com/mauv0809/darts-scoreboard/internal/database"
	"github.com/mauv0809/darts-scoreboard/internal/metrics"
	"github.com/mauv0809/darts-scoreboard/internal/profile"
	"github.com/mauv0809/darts-scoreboard/internal/roster"
	"github.com/mauv0809/darts-scoreboard/internal/session"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	numGames       = 50
	dartsPerPlayer = 30
)

var seedPlayers = []string{"Seeder Player A", "Seeder Player B", "Seeder Player C", "Seeder Player D"}

func main() {
	log.Info("Starting profile seeder...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	metricsSvc := metrics.NewService(metrics.NewStore(db), prometheus.NewRegistry())
	profiles, err := profile.NewStore(cfg.DataDir, profile.WithMetrics(metricsSvc))
	if err != nil {
		log.Fatalf("Failed to open profile store: %s", err)
	}
	sessions := session.New(db, metricsSvc)
	selector := roster.New(profiles, metricsSvc)

	for _, name := range seedPlayers {
		if _, err := profiles.Create(name); err != nil && !errors.Is(err, profile.ErrDuplicateUsername) {
			log.Fatalf("Failed to create seed player %s: %s", name, err)
		}
	}
	log.Info("Ensured seed players exist.", "data_dir", cfg.DataDir)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	startTime := time.Now()
	for i := 0; i < numGames; i++ {
		if err := seedGame(rng, profiles, selector, sessions); err != nil {
			log.Fatalf("Failed to seed game %d: %s", i+1, err)
		}
		if (i+1)%10 == 0 {
			log.Info("Seeded games", "completed", i+1, "total", numGames)
		}
	}
	log.Info("Successfully seeded all games.", "duration", time.Since(startTime))
}

// seedGame picks two to four players in random order, throws random darts for each
// and records one winner.
func seedGame(rng *rand.Rand, profiles profile.Repository, selector *roster.Selector, sessions session.Store) error {
	order := rng.Perm(len(seedPlayers))[:2+rng.Intn(len(seedPlayers)-1)]
	chosen := make([]string, len(order))
	for i, idx := range order {
		chosen[i] = seedPlayers[idx]
	}

	players, err := selector.SelectRoster(seedPlayers, chosen)
	if err != nil {
		return err
	}
	if _, err := sessions.Start(players); err != nil {
		return err
	}

	winner := rng.Intn(len(players))
	for i, p := range players {
		for d := 0; d < dartsPerPlayer; d++ {
			if err := p.RecordHit(profile.Labels[rng.Intn(len(profile.Labels))]); err != nil {
				return err
			}
		}
		p.RecordResult(i == winner)
		if err := profiles.Save(p); err != nil {
			return fmt.Errorf("failed to save %s: %w", p.Username, err)
		}
	}
	return nil
}
