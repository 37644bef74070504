package lock

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/bowlpool/go/internal/contests"
	"github.com/mcdev12/bowlpool/go/internal/models"
	"github.com/mcdev12/bowlpool/go/internal/testutil"
)

var testDB *sql.DB

func TestMain(m *testing.M) {
	testutil.RunWithPostgres(m, func(db *sql.DB) { testDB = db })
}

func TestRepositoryEarliestKickoff(t *testing.T) {
	db := testutil.RequireDB(t, testDB)
	ctx := context.Background()
	repo := NewRepository(db)

	first, err := repo.EarliestKickoff(ctx)
	require.NoError(t, err)
	assert.Nil(t, first)

	early := time.Date(2025, 12, 20, 17, 0, 0, 0, time.UTC)
	for _, kickoff := range []time.Time{early.Add(48 * time.Hour), early} {
		_, err := contests.NewRepository(db).CreateContest(ctx, models.Contest{
			Name:        "Bowl",
			Kickoff:     kickoff,
			FavoredTeam: "Georgia",
			Opponent:    "Texas",
			Spread:      decimal.RequireFromString("-7"),
			Status:      models.ContestStatusNotStarted,
			Round:       models.DefaultRound,
		})
		require.NoError(t, err)
	}

	first, err = repo.EarliestKickoff(ctx)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, first.Equal(early))
}

func TestRepositoryUpsertKeepsDisplayOrder(t *testing.T) {
	db := testutil.RequireDB(t, testDB)
	ctx := context.Background()
	repo := NewRepository(db)

	require.NoError(t, repo.UpsertRoundLock(ctx, models.RoundLock{Round: "championship", Locked: true, DisplayOrder: 4}))
	require.NoError(t, repo.UpsertRoundLock(ctx, models.RoundLock{Round: "first_round", Locked: false, DisplayOrder: 1}))
	require.NoError(t, repo.UpsertRoundLock(ctx, models.RoundLock{Round: "championship", Locked: false, DisplayOrder: 999}))

	locks, err := repo.ListRoundLocks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.RoundLock{
		{Round: "first_round", Locked: false, DisplayOrder: 1},
		{Round: "championship", Locked: false, DisplayOrder: 4},
	}, locks)
}
