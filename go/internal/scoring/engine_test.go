package scoring

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/bowlpool/go/internal/models"
)

var kickoff = time.Date(2025, 12, 20, 17, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func participant(name string, active bool) models.Participant {
	return models.Participant{ID: uuid.New(), Name: name, IsActive: active}
}

func finalContest(offset time.Duration, spread string, fav, opp int) models.Contest {
	return models.Contest{
		ID:            uuid.New(),
		Name:          "Bowl",
		Kickoff:       kickoff.Add(offset),
		FavoredTeam:   "Ohio State",
		Opponent:      "Oregon",
		Spread:        decimal.RequireFromString(spread),
		FavoredScore:  intPtr(fav),
		OpponentScore: intPtr(opp),
		Status:        models.ContestStatusFinal,
		Round:         models.DefaultRound,
	}
}

func pick(p models.Participant, c models.Contest, side models.Side) models.Pick {
	return models.Pick{ParticipantID: p.ID, ContestID: c.ID, Side: side}
}

func sumScores(m *Matrix, contestID uuid.UUID) int {
	sum := 0
	for _, r := range m.Rows {
		sum += r.Scores[contestID]
	}
	return sum
}

func TestComputeZeroSum(t *testing.T) {
	alice, bob, carol, dave := participant("Alice", true), participant("Bob", true), participant("Carol", true), participant("Dave", true)
	// favored covers: 24 - 3.5 > 20
	c := finalContest(0, "-3.5", 24, 20)

	m := Compute(
		[]models.Participant{alice, bob, carol, dave},
		[]models.Contest{c},
		[]models.Pick{
			pick(alice, c, models.SideFavored),
			pick(bob, c, models.SideFavored),
			pick(carol, c, models.SideFavored),
			pick(dave, c, models.SideOpponent),
		},
	)

	require.Len(t, m.Rows, 4)
	assert.Equal(t, 1, m.Row(alice.ID).Scores[c.ID])
	assert.Equal(t, 1, m.Row(bob.ID).Scores[c.ID])
	assert.Equal(t, 1, m.Row(carol.ID).Scores[c.ID])
	assert.Equal(t, -3, m.Row(dave.ID).Scores[c.ID])
	assert.Equal(t, 0, sumScores(m, c.ID))

	require.Len(t, m.Contests, 1)
	assert.Equal(t, models.OutcomeFavored, m.Contests[0].Outcome)
	assert.Equal(t, PickCounts{Favored: 3, Opponent: 1}, m.Contests[0].PickCounts)
}

func TestComputeSkipsMissingPicks(t *testing.T) {
	alice, bob, carol := participant("Alice", true), participant("Bob", true), participant("Carol", true)
	c := finalContest(0, "-3.5", 23, 20)

	m := Compute(
		[]models.Participant{alice, bob, carol},
		[]models.Contest{c},
		[]models.Pick{
			pick(alice, c, models.SideFavored),
			pick(bob, c, models.SideOpponent),
		},
	)

	assert.Equal(t, -1, m.Row(alice.ID).Scores[c.ID])
	assert.Equal(t, 1, m.Row(bob.ID).Scores[c.ID])
	assert.Equal(t, 0, m.Row(carol.ID).Scores[c.ID])
	assert.Equal(t, 0, m.Row(carol.ID).Total)
	_, picked := m.Row(carol.ID).Picks[c.ID]
	assert.False(t, picked)
}

func TestComputeUnanimousScoresZero(t *testing.T) {
	alice, bob := participant("Alice", true), participant("Bob", true)
	c := finalContest(0, "-3.5", 24, 20)

	m := Compute(
		[]models.Participant{alice, bob},
		[]models.Contest{c},
		[]models.Pick{pick(alice, c, models.SideFavored), pick(bob, c, models.SideFavored)},
	)

	assert.Equal(t, 0, m.Row(alice.ID).Scores[c.ID])
	assert.Equal(t, 0, m.Row(bob.ID).Scores[c.ID])

	// everyone lost
	m = Compute(
		[]models.Participant{alice, bob},
		[]models.Contest{c},
		[]models.Pick{pick(alice, c, models.SideOpponent), pick(bob, c, models.SideOpponent)},
	)
	assert.Equal(t, 0, m.Row(alice.ID).Scores[c.ID])
	assert.Equal(t, 0, m.Row(bob.ID).Scores[c.ID])
}

func TestComputeNonDecidedContestsScoreZero(t *testing.T) {
	alice, bob := participant("Alice", true), participant("Bob", true)

	push := finalContest(0, "-7", 27, 20)
	canceled := finalContest(time.Hour, "-3.5", 30, 0)
	canceled.Status = models.ContestStatusCanceled
	live := finalContest(2*time.Hour, "-3.5", 14, 3)
	live.Status = models.ContestStatusInProgress
	ignored := finalContest(3*time.Hour, "-3.5", 40, 0)
	ignored.Ignored = true

	contests := []models.Contest{push, canceled, live, ignored}
	var picks []models.Pick
	for _, c := range contests {
		picks = append(picks, pick(alice, c, models.SideFavored), pick(bob, c, models.SideOpponent))
	}

	m := Compute([]models.Participant{alice, bob}, contests, picks)
	for _, c := range contests {
		assert.Equal(t, 0, m.Row(alice.ID).Scores[c.ID])
		assert.Equal(t, 0, m.Row(bob.ID).Scores[c.ID])
	}
	assert.Equal(t, 0, m.Row(alice.ID).Total)
}

func TestComputeOnlyActiveParticipants(t *testing.T) {
	alice, bob, inactive := participant("Alice", true), participant("Bob", true), participant("Zed", false)
	c := finalContest(0, "-3.5", 24, 20)

	m := Compute(
		[]models.Participant{alice, bob, inactive},
		[]models.Contest{c},
		[]models.Pick{
			pick(alice, c, models.SideFavored),
			pick(bob, c, models.SideOpponent),
			pick(inactive, c, models.SideOpponent),
		},
	)

	require.Len(t, m.Rows, 2)
	assert.Nil(t, m.Row(inactive.ID))
	assert.Equal(t, 1, m.Row(alice.ID).Scores[c.ID])
	assert.Equal(t, -1, m.Row(bob.ID).Scores[c.ID])
	assert.Equal(t, PickCounts{Favored: 1, Opponent: 1}, m.Contests[0].PickCounts)
}

func TestComputeTotalsAndRanks(t *testing.T) {
	alice, bob, carol := participant("Alice", true), participant("Bob", true), participant("Carol", true)
	// first goes to the favored side, second to the opponent
	first := finalContest(0, "-3.5", 24, 20)
	second := finalContest(time.Hour, "3", 10, 20)

	m := Compute(
		[]models.Participant{carol, bob, alice},
		[]models.Contest{second, first},
		[]models.Pick{
			pick(alice, first, models.SideFavored),
			pick(bob, first, models.SideFavored),
			pick(carol, first, models.SideOpponent),
			pick(alice, second, models.SideFavored),
			pick(bob, second, models.SideFavored),
			pick(carol, second, models.SideOpponent),
		},
	)

	// first: alice +1, bob +1, carol -2; second: alice -1, bob -1, carol +2
	assert.Equal(t, 0, m.Row(alice.ID).Total)
	assert.Equal(t, 0, m.Row(bob.ID).Total)
	assert.Equal(t, 0, m.Row(carol.ID).Total)
	for _, r := range m.Rows {
		assert.Equal(t, 1, r.Rank)
	}

	assert.Equal(t, first.ID, m.Contests[0].Contest.ID)
	assert.Equal(t, second.ID, m.Contests[1].Contest.ID)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, []string{
		m.Rows[0].Participant.Name, m.Rows[1].Participant.Name, m.Rows[2].Participant.Name,
	})
}

func TestComputeCompetitionRanking(t *testing.T) {
	alice, bob, carol, dave := participant("Alice", true), participant("Bob", true), participant("Carol", true), participant("Dave", true)
	c := finalContest(0, "-3.5", 24, 20)

	m := Compute(
		[]models.Participant{alice, bob, carol, dave},
		[]models.Contest{c},
		[]models.Pick{
			pick(alice, c, models.SideFavored),
			pick(bob, c, models.SideFavored),
			pick(carol, c, models.SideOpponent),
		},
	)

	assert.Equal(t, 1, m.Row(alice.ID).Rank)
	assert.Equal(t, 1, m.Row(bob.ID).Rank)
	assert.Equal(t, 3, m.Row(dave.ID).Rank)
	assert.Equal(t, 4, m.Row(carol.ID).Rank)

	standings := m.Standings()
	assert.Equal(t, carol.ID, standings[3].Participant.ID)
	assert.Equal(t, dave.ID, standings[2].Participant.ID)
}

func TestComputeIsDeterministic(t *testing.T) {
	alice, bob := participant("Alice", true), participant("Bob", true)
	nick := "Ace"
	bob.Nickname = &nick
	c1 := finalContest(0, "-3.5", 24, 20)
	c2 := finalContest(time.Hour, "-1", 3, 7)
	picks := []models.Pick{
		pick(alice, c1, models.SideFavored),
		pick(bob, c1, models.SideOpponent),
		pick(alice, c2, models.SideOpponent),
		pick(bob, c2, models.SideFavored),
	}

	a := Compute([]models.Participant{alice, bob}, []models.Contest{c1, c2}, picks)
	b := Compute(
		[]models.Participant{bob, alice},
		[]models.Contest{c2, c1},
		[]models.Pick{picks[3], picks[2], picks[1], picks[0]},
	)

	assert.Equal(t, a, b)
	// nickname sorts before the name
	assert.Equal(t, bob.ID, a.Rows[0].Participant.ID)
}

func TestComputeEmpty(t *testing.T) {
	m := Compute(nil, nil, nil)
	assert.Empty(t, m.Rows)
	assert.Empty(t, m.Contests)

	alice := participant("Alice", true)
	c := finalContest(0, "-3.5", 24, 20)
	m = Compute([]models.Participant{alice}, []models.Contest{c}, nil)
	assert.Equal(t, 0, m.Row(alice.ID).Total)
	assert.Equal(t, 1, m.Row(alice.ID).Rank)
}
