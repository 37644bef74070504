// Package clock is the single source of "now" for lock decisions.
// An administrator may pin the pool to a fixed instant; otherwise the wall clock is used.
package clock

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/bowlpool/go/internal/models"
)

// OverrideRepository defines what the clock app needs from storage
type OverrideRepository interface {
	GetOverride(ctx context.Context) (*time.Time, error)
	SetOverride(ctx context.Context, at *time.Time) error
}

// App resolves the current time, honouring a persisted override.
type App struct {
	repo OverrideRepository
	base clockwork.Clock
}

// NewApp creates a new clock App. In production pass clockwork.NewRealClock(), in tests a FakeClock.
func NewApp(repo OverrideRepository, base clockwork.Clock) *App {
	if base == nil {
		base = clockwork.NewRealClock()
	}
	return &App{
		repo: repo,
		base: base,
	}
}

// Now returns the override instant when one is set, otherwise the base clock in UTC.
func (a *App) Now(ctx context.Context) (time.Time, error) {
	override, err := a.repo.GetOverride(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get clock override: %w", err)
	}
	if override != nil {
		return override.UTC(), nil
	}
	return a.base.Now().UTC(), nil
}

// Override returns the persisted override, or nil when the wall clock is in use.
func (a *App) Override(ctx context.Context) (*time.Time, error) {
	override, err := a.repo.GetOverride(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get clock override: %w", err)
	}
	return override, nil
}

// SetOverride pins "now" to at until cleared.
func (a *App) SetOverride(ctx context.Context, at time.Time) error {
	if at.IsZero() {
		return fmt.Errorf("%w: override instant is required", models.ErrValidation)
	}
	at = at.UTC()
	if err := a.repo.SetOverride(ctx, &at); err != nil {
		return fmt.Errorf("failed to set clock override: %w", err)
	}
	log.Info().Time("at", at).Msg("clock override set")
	return nil
}

// ClearOverride returns to wall-clock time.
func (a *App) ClearOverride(ctx context.Context) error {
	if err := a.repo.SetOverride(ctx, nil); err != nil {
		return fmt.Errorf("failed to clear clock override: %w", err)
	}
	log.Info().Msg("clock override cleared")
	return nil
}
