package main

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/bowlpool/go/clients/espn_client"
	"github.com/mcdev12/bowlpool/go/internal/clock"
	"github.com/mcdev12/bowlpool/go/internal/contests"
	"github.com/mcdev12/bowlpool/go/internal/events"
	"github.com/mcdev12/bowlpool/go/internal/lock"
	"github.com/mcdev12/bowlpool/go/internal/participants"
	"github.com/mcdev12/bowlpool/go/internal/picks"
	"github.com/mcdev12/bowlpool/go/internal/scoresync"
	"github.com/mcdev12/bowlpool/go/internal/scoring"
)

type Services struct {
	Clock        *clock.Service
	Lock         *lock.Service
	Contests     *contests.Service
	Participants *participants.Service
	Picks        *picks.Service
	Leaderboard  *scoring.Service
	Sync         *scoresync.Service
}

// Routes mounts every service on r.
func (s *Services) Routes(r chi.Router) {
	s.Clock.Routes(r)
	s.Lock.Routes(r)
	s.Contests.Routes(r)
	s.Participants.Routes(r)
	s.Picks.Routes(r)
	s.Leaderboard.Routes(r)
	s.Sync.Routes(r)
}

// setupServices wires the services. publisher may be nil.
func setupServices(database *sql.DB, config *Config, publisher events.Publisher) *Services {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer

	// Clock
	clockRepo := clock.NewRepository(database)
	clockApp := clock.NewApp(clockRepo, clockwork.NewRealClock())
	clockService := clock.NewService(clockApp)

	// Lock
	lockRepo := lock.NewRepository(database)
	lockController := lock.NewController(lockRepo, clockApp)
	lockService := lock.NewService(lockController)

	// Contests
	contestRepo := contests.NewRepository(database)
	contestApp := contests.NewApp(contestRepo)
	contestService := contests.NewService(contestApp)

	// Participants
	participantRepo := participants.NewRepository(database)
	participantApp := participants.NewApp(participantRepo)
	participantService := participants.NewService(participantApp)

	// Picks
	pickRepo := picks.NewRepository(database)
	pickApp := picks.NewApp(pickRepo, contestRepo, participantRepo, lockController)
	pickService := picks.NewService(pickApp)

	// Leaderboard
	scoringApp := scoring.NewApp(participantRepo, contestRepo, pickRepo, lockController)
	scoringService := scoring.NewService(scoringApp)

	// Score sync
	espnClient := espn_client.NewESPNClient(config.Feed.BaseURL)
	espnClient.SetTimeout(config.Feed.Timeout)
	syncRepo := scoresync.NewRepository(database)
	syncOpts := []scoresync.Option{scoresync.WithRecorder(syncRepo)}
	if publisher != nil {
		syncOpts = append(syncOpts, scoresync.WithPublisher(publisher))
	}
	syncApp := scoresync.NewApp(syncRepo, scoresync.NewESPNFeed(espnClient, config.Feed.Group), syncOpts...)
	syncService := scoresync.NewService(syncApp, syncRepo)

	return &Services{
		Clock:        clockService,
		Lock:         lockService,
		Contests:     contestService,
		Participants: participantService,
		Picks:        pickService,
		Leaderboard:  scoringService,
		Sync:         syncService,
	}
}
