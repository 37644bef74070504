// Package lock decides whether pick writes are still accepted.
//
// Two signals lock picks. The kickoff lock engages for every round once "now"
// reaches the earliest kickoff of any contest. A round lock is an explicit
// administrator flag. Either one is enough to reject a write.
package lock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/bowlpool/go/internal/models"
)

// Repository defines what the controller needs from storage
type Repository interface {
	EarliestKickoff(ctx context.Context) (*time.Time, error)
	ListRoundLocks(ctx context.Context) ([]models.RoundLock, error)
	UpsertRoundLock(ctx context.Context, lock models.RoundLock) error
}

// Clock is the source of "now". Satisfied by *clock.App.
type Clock interface {
	Now(ctx context.Context) (time.Time, error)
}

// Controller evaluates the lock state machine.
type Controller struct {
	repo  Repository
	clock Clock
}

func NewController(repo Repository, clock Clock) *Controller {
	return &Controller{
		repo:  repo,
		clock: clock,
	}
}

// Status is a snapshot of every lock signal.
type Status struct {
	Now           time.Time          `json:"now"`
	FirstKickoff  *time.Time         `json:"first_kickoff,omitempty"`
	KickoffLocked bool               `json:"kickoff_locked"`
	Rounds        []models.RoundLock `json:"rounds"`
}

// RoundLocked reports whether writes to round are rejected under this snapshot.
func (s *Status) RoundLocked(round string) bool {
	return s.KickoffLocked || s.roundFlag(round)
}

func (s *Status) roundFlag(round string) bool {
	for _, rl := range s.Rounds {
		if rl.Round == round {
			return rl.Locked
		}
	}
	return false
}

// Status loads the current lock state.
func (c *Controller) Status(ctx context.Context) (*Status, error) {
	now, err := c.clock.Now(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read clock: %w", err)
	}

	first, err := c.repo.EarliestKickoff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get earliest kickoff: %w", err)
	}

	rounds, err := c.repo.ListRoundLocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list round locks: %w", err)
	}

	return &Status{
		Now:           now,
		FirstKickoff:  first,
		KickoffLocked: first != nil && !now.Before(*first),
		Rounds:        rounds,
	}, nil
}

// IsLocked reports whether pick writes for round are rejected.
func (c *Controller) IsLocked(ctx context.Context, round string) (bool, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return false, err
	}
	return status.RoundLocked(round), nil
}

// Check returns a *LockedError if writes to any of rounds are rejected.
// With no rounds only the kickoff lock is consulted.
func (c *Controller) Check(ctx context.Context, rounds ...string) error {
	status, err := c.Status(ctx)
	if err != nil {
		return err
	}

	if status.KickoffLocked {
		return &LockedError{Reason: ReasonKickoff, At: *status.FirstKickoff}
	}
	for _, round := range rounds {
		if status.roundFlag(round) {
			return &LockedError{Reason: ReasonRound, Round: round}
		}
	}
	return nil
}

// ListRoundLocks returns every round lock record ordered for display.
func (c *Controller) ListRoundLocks(ctx context.Context) ([]models.RoundLock, error) {
	rounds, err := c.repo.ListRoundLocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list round locks: %w", err)
	}
	sort.SliceStable(rounds, func(i, j int) bool {
		if rounds[i].DisplayOrder != rounds[j].DisplayOrder {
			return rounds[i].DisplayOrder < rounds[j].DisplayOrder
		}
		return rounds[i].Round < rounds[j].Round
	})
	return rounds, nil
}

// SetRoundLock sets the administrator flag for round, creating the record if needed.
func (c *Controller) SetRoundLock(ctx context.Context, round string, locked bool) error {
	round = strings.TrimSpace(round)
	if round == "" {
		return fmt.Errorf("%w: round is required", models.ErrValidation)
	}

	err := c.repo.UpsertRoundLock(ctx, models.RoundLock{
		Round:        round,
		Locked:       locked,
		DisplayOrder: models.DefaultRoundOrder(round),
	})
	if err != nil {
		return fmt.Errorf("failed to set round lock: %w", err)
	}

	log.Info().Str("round", round).Bool("locked", locked).Msg("round lock updated")
	return nil
}
