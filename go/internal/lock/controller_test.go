package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/bowlpool/go/internal/models"
)

type memRepository struct {
	first  *time.Time
	rounds map[string]models.RoundLock
	err    error
}

func newMemRepository(first *time.Time) *memRepository {
	return &memRepository{first: first, rounds: make(map[string]models.RoundLock)}
}

func (m *memRepository) EarliestKickoff(context.Context) (*time.Time, error) {
	return m.first, m.err
}

func (m *memRepository) ListRoundLocks(context.Context) ([]models.RoundLock, error) {
	var out []models.RoundLock
	for _, rl := range m.rounds {
		out = append(out, rl)
	}
	return out, m.err
}

func (m *memRepository) UpsertRoundLock(_ context.Context, rl models.RoundLock) error {
	if existing, ok := m.rounds[rl.Round]; ok {
		rl.DisplayOrder = existing.DisplayOrder
	}
	m.rounds[rl.Round] = rl
	return m.err
}

type fakeClock struct {
	*clockwork.FakeClock
}

func (c fakeClock) Now(context.Context) (time.Time, error) {
	return c.FakeClock.Now(), nil
}

var firstKickoff = time.Date(2025, 12, 20, 17, 0, 0, 0, time.UTC)

func setup(t *testing.T, now time.Time) (*Controller, *memRepository, fakeClock) {
	t.Helper()
	first := firstKickoff
	repo := newMemRepository(&first)
	clk := fakeClock{clockwork.NewFakeClockAt(now)}
	return NewController(repo, clk), repo, clk
}

func TestKickoffLock(t *testing.T) {
	ctx := context.Background()
	c, _, clk := setup(t, firstKickoff.Add(-time.Minute))

	locked, err := c.IsLocked(ctx, models.DefaultRound)
	require.NoError(t, err)
	assert.False(t, locked)
	require.NoError(t, c.Check(ctx, models.DefaultRound))

	// exactly at kickoff counts as locked
	clk.Advance(time.Minute)
	locked, err = c.IsLocked(ctx, "championship")
	require.NoError(t, err)
	assert.True(t, locked)

	err = c.Check(ctx, models.DefaultRound)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLocked))
	assert.True(t, errors.Is(err, models.ErrLocked))

	var lockedErr *LockedError
	require.True(t, errors.As(err, &lockedErr))
	assert.Equal(t, ReasonKickoff, lockedErr.Reason)
	assert.True(t, lockedErr.At.Equal(firstKickoff))
}

func TestNoContestsNeverKickoffLocked(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository(nil)
	c := NewController(repo, fakeClock{clockwork.NewFakeClockAt(firstKickoff.AddDate(1, 0, 0))})

	status, err := c.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.KickoffLocked)
	assert.Nil(t, status.FirstKickoff)
	assert.NoError(t, c.Check(ctx))
}

func TestRoundLockCombinesWithKickoff(t *testing.T) {
	ctx := context.Background()
	c, _, clk := setup(t, firstKickoff.Add(-24*time.Hour))

	require.NoError(t, c.SetRoundLock(ctx, "quarterfinals", true))

	locked, err := c.IsLocked(ctx, "quarterfinals")
	require.NoError(t, err)
	assert.True(t, locked)

	locked, err = c.IsLocked(ctx, models.DefaultRound)
	require.NoError(t, err)
	assert.False(t, locked)

	err = c.Check(ctx, models.DefaultRound, "quarterfinals")
	var lockedErr *LockedError
	require.True(t, errors.As(err, &lockedErr))
	assert.Equal(t, ReasonRound, lockedErr.Reason)
	assert.Equal(t, "quarterfinals", lockedErr.Round)

	// unlocking the round does not lift the kickoff lock
	require.NoError(t, c.SetRoundLock(ctx, "quarterfinals", false))
	clk.Advance(25 * time.Hour)
	locked, err = c.IsLocked(ctx, "quarterfinals")
	require.NoError(t, err)
	assert.True(t, locked)
}

func TestUnknownRoundIsUnlocked(t *testing.T) {
	ctx := context.Background()
	c, _, _ := setup(t, firstKickoff.Add(-time.Hour))

	locked, err := c.IsLocked(ctx, "consolation")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestSetRoundLock(t *testing.T) {
	ctx := context.Background()
	c, repo, _ := setup(t, firstKickoff.Add(-time.Hour))

	require.NoError(t, c.SetRoundLock(ctx, "championship", true))
	require.NoError(t, c.SetRoundLock(ctx, " semifinals ", false))
	assert.Equal(t, 4, repo.rounds["championship"].DisplayOrder)
	assert.Contains(t, repo.rounds, "semifinals")

	rounds, err := c.ListRoundLocks(ctx)
	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, "semifinals", rounds[0].Round)
	assert.Equal(t, "championship", rounds[1].Round)

	assert.ErrorIs(t, c.SetRoundLock(ctx, "  ", true), models.ErrValidation)
}

func TestStoreErrorsAreNotLocks(t *testing.T) {
	ctx := context.Background()
	c, repo, _ := setup(t, firstKickoff.Add(-time.Hour))
	repo.err = errors.New("connection reset")

	err := c.Check(ctx, models.DefaultRound)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrLocked))
}
