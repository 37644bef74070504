package spread

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mcdev12/bowlpool/go/internal/models"
)

func intPtr(v int) *int { return &v }

func contest(status models.ContestStatus, spread string, fav, opp *int) models.Contest {
	return models.Contest{
		FavoredTeam:   "Ohio State",
		Opponent:      "Oregon",
		Spread:        decimal.RequireFromString(spread),
		Status:        status,
		FavoredScore:  fav,
		OpponentScore: opp,
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		contest models.Contest
		want    models.Outcome
	}{
		{
			name:    "favored covers",
			contest: contest(models.ContestStatusFinal, "-3.5", intPtr(24), intPtr(20)),
			want:    models.OutcomeFavored,
		},
		{
			name:    "upset against the spread",
			contest: contest(models.ContestStatusFinal, "-3.5", intPtr(23), intPtr(20)),
			want:    models.OutcomeOpponent,
		},
		{
			name:    "whole point spread lands on the number",
			contest: contest(models.ContestStatusFinal, "-7", intPtr(27), intPtr(20)),
			want:    models.OutcomePush,
		},
		{
			name:    "positive spread on the favored side",
			contest: contest(models.ContestStatusFinal, "2.5", intPtr(20), intPtr(22)),
			want:    models.OutcomeFavored,
		},
		{
			name:    "canceled is a push regardless of scores",
			contest: contest(models.ContestStatusCanceled, "-3.5", intPtr(30), intPtr(0)),
			want:    models.OutcomePush,
		},
		{
			name: "ignored is a push regardless of scores",
			contest: func() models.Contest {
				c := contest(models.ContestStatusFinal, "-3.5", intPtr(30), intPtr(0))
				c.Ignored = true
				return c
			}(),
			want: models.OutcomePush,
		},
		{
			name:    "mid game score is not final",
			contest: contest(models.ContestStatusInProgress, "-3.5", intPtr(10), intPtr(7)),
			want:    models.OutcomeUndetermined,
		},
		{
			name:    "not started",
			contest: contest(models.ContestStatusNotStarted, "-3.5", nil, nil),
			want:    models.OutcomeUndetermined,
		},
		{
			name:    "final with a missing score",
			contest: contest(models.ContestStatusFinal, "-3.5", intPtr(24), nil),
			want:    models.OutcomeUndetermined,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.contest))
		})
	}
}

func TestResultFor(t *testing.T) {
	c := contest(models.ContestStatusFinal, "-3.5", intPtr(24), intPtr(20))
	assert.Equal(t, PickWon, ResultFor(c, models.SideFavored))
	assert.Equal(t, PickLost, ResultFor(c, models.SideOpponent))

	c.Status = models.ContestStatusInProgress
	assert.Equal(t, PickNone, ResultFor(c, models.SideFavored))
}
