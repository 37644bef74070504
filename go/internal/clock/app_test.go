package clock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/bowlpool/go/internal/models"
)

type mockOverrideRepository struct {
	mock.Mock
}

func (m *mockOverrideRepository) GetOverride(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(*time.Time), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOverrideRepository) SetOverride(ctx context.Context, at *time.Time) error {
	return m.Called(ctx, at).Error(0)
}

func TestNowUsesBaseClockWithoutOverride(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 12, 19, 12, 0, 0, 0, time.UTC)
	fake := clockwork.NewFakeClockAt(base)

	repo := &mockOverrideRepository{}
	repo.On("GetOverride", ctx).Return(nil, nil)

	app := NewApp(repo, fake)
	now, err := app.Now(ctx)
	require.NoError(t, err)
	assert.True(t, now.Equal(base))

	fake.Advance(time.Hour)
	now, err = app.Now(ctx)
	require.NoError(t, err)
	assert.True(t, now.Equal(base.Add(time.Hour)))
}

func TestNowPrefersOverride(t *testing.T) {
	ctx := context.Background()
	fake := clockwork.NewFakeClockAt(time.Date(2025, 12, 19, 12, 0, 0, 0, time.UTC))
	pinned := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("EST", -5*3600))

	repo := &mockOverrideRepository{}
	repo.On("GetOverride", ctx).Return(&pinned, nil)

	now, err := NewApp(repo, fake).Now(ctx)
	require.NoError(t, err)
	assert.True(t, now.Equal(pinned))
	assert.Equal(t, time.UTC, now.Location())
}

func TestNowPropagatesStoreErrors(t *testing.T) {
	ctx := context.Background()
	repo := &mockOverrideRepository{}
	repo.On("GetOverride", ctx).Return(nil, errors.New("connection refused"))

	_, err := NewApp(repo, clockwork.NewFakeClock()).Now(ctx)
	assert.Error(t, err)
}

func TestSetAndClearOverride(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 12, 20, 16, 59, 0, 0, time.UTC)

	repo := &mockOverrideRepository{}
	repo.On("SetOverride", ctx, mock.MatchedBy(func(v *time.Time) bool { return v != nil && v.Equal(at) })).Return(nil).Once()
	repo.On("SetOverride", ctx, (*time.Time)(nil)).Return(nil).Once()

	app := NewApp(repo, clockwork.NewFakeClock())
	require.NoError(t, app.SetOverride(ctx, at))
	require.NoError(t, app.ClearOverride(ctx))
	repo.AssertExpectations(t)

	err := app.SetOverride(ctx, time.Time{})
	assert.ErrorIs(t, err, models.ErrValidation)
}
