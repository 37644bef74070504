package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContestStatus(t *testing.T) {
	for _, s := range []string{"not_started", "in_progress", "final", "canceled", " final "} {
		_, err := ParseContestStatus(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseContestStatus("FINAL")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestParseSide(t *testing.T) {
	side, err := ParseSide("Favored")
	require.NoError(t, err)
	assert.Equal(t, SideFavored, side)

	_, err = ParseSide("home")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseSide("")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestContestResultMatches(t *testing.T) {
	fav, opp := 21, 17
	c := Contest{Status: ContestStatusFinal, FavoredScore: &fav, OpponentScore: &opp}

	assert.True(t, ContestResult{Status: ContestStatusFinal, FavoredScore: 21, OpponentScore: 17}.Matches(c))
	assert.False(t, ContestResult{Status: ContestStatusInProgress, FavoredScore: 21, OpponentScore: 17}.Matches(c))
	assert.False(t, ContestResult{Status: ContestStatusFinal, FavoredScore: 24, OpponentScore: 17}.Matches(c))
	assert.False(t, ContestResult{Status: ContestStatusNotStarted}.Matches(Contest{Status: ContestStatusNotStarted}))
}

func TestDisplayName(t *testing.T) {
	nick := "JJ"
	assert.Equal(t, "JJ", Participant{Name: "John Smith", Nickname: &nick}.DisplayName())

	empty := ""
	assert.Equal(t, "John Smith", Participant{Name: "John Smith", Nickname: &empty}.DisplayName())
	assert.Equal(t, "John Smith", Participant{Name: "John Smith"}.DisplayName())
}

func TestDefaultRoundOrder(t *testing.T) {
	assert.Equal(t, 1, DefaultRoundOrder("first_round"))
	assert.Equal(t, 4, DefaultRoundOrder("championship"))
	assert.Equal(t, 999, DefaultRoundOrder("consolation"))
}
