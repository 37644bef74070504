package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mcdev12/bowlpool/go/internal/lock"
	"github.com/mcdev12/bowlpool/go/internal/models"
)

// ParticipantReader lists every participant, active or not
type ParticipantReader interface {
	ListParticipants(ctx context.Context) ([]models.Participant, error)
}

// ContestReader lists every contest
type ContestReader interface {
	ListContests(ctx context.Context) ([]models.Contest, error)
}

// PickReader lists every pick
type PickReader interface {
	ListPicks(ctx context.Context) ([]models.Pick, error)
}

// LockReader reports the current lock state
type LockReader interface {
	Status(ctx context.Context) (*lock.Status, error)
}

// App builds the leaderboard from the latest stored state
type App struct {
	participants ParticipantReader
	contests     ContestReader
	picks        PickReader
	lock         LockReader
}

func NewApp(participants ParticipantReader, contests ContestReader, picks PickReader, lock LockReader) *App {
	return &App{
		participants: participants,
		contests:     contests,
		picks:        picks,
		lock:         lock,
	}
}

// Leaderboard is the score matrix plus the lock state it was computed under.
// Locked is the kickoff lock only. A round can be locked before kickoff by an
// administrator; Rounds carries the effective flag for each round.
type Leaderboard struct {
	Matrix    *Matrix          `json:"matrix"`
	Standings []ParticipantRow `json:"standings"`
	Locked    bool             `json:"locked"`
	Rounds    []RoundState     `json:"rounds"`
	AsOf      time.Time        `json:"as_of"`
}

// RoundState reports whether pick writes to a round are rejected.
type RoundState struct {
	Round  string `json:"round"`
	Locked bool   `json:"locked"`
}

func roundStates(status *lock.Status) []RoundState {
	rounds := make([]RoundState, 0, len(status.Rounds))
	for _, rl := range status.Rounds {
		rounds = append(rounds, RoundState{Round: rl.Round, Locked: status.RoundLocked(rl.Round)})
	}
	return rounds
}

// Leaderboard loads participants, contests, picks and the lock state concurrently and scores them.
// The reads are not one snapshot; a pick or result landing mid-load shows up on the next call.
func (a *App) Leaderboard(ctx context.Context) (*Leaderboard, error) {
	var (
		participants []models.Participant
		contests     []models.Contest
		picks        []models.Pick
		status       *lock.Status
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if participants, err = a.participants.ListParticipants(gctx); err != nil {
			return fmt.Errorf("failed to list participants: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if contests, err = a.contests.ListContests(gctx); err != nil {
			return fmt.Errorf("failed to list contests: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if picks, err = a.picks.ListPicks(gctx); err != nil {
			return fmt.Errorf("failed to list picks: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if status, err = a.lock.Status(gctx); err != nil {
			return fmt.Errorf("failed to get lock status: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m := Compute(participants, contests, picks)
	log.Debug().
		Int("participants", len(m.Rows)).
		Int("contests", len(m.Contests)).
		Int("picks", len(picks)).
		Msg("leaderboard computed")

	return &Leaderboard{
		Matrix:    m,
		Standings: m.Standings(),
		Locked:    status.KickoffLocked,
		Rounds:    roundStates(status),
		AsOf:      status.Now,
	}, nil
}
