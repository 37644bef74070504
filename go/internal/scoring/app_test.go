package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/bowlpool/go/internal/lock"
	"github.com/mcdev12/bowlpool/go/internal/models"
)

type stubStore struct {
	participants []models.Participant
	contests     []models.Contest
	picks        []models.Pick
	status       *lock.Status
	err          error
}

func (s *stubStore) ListParticipants(context.Context) ([]models.Participant, error) {
	return s.participants, nil
}

func (s *stubStore) ListContests(context.Context) ([]models.Contest, error) {
	return s.contests, nil
}

func (s *stubStore) ListPicks(context.Context) ([]models.Pick, error) {
	return s.picks, s.err
}

func (s *stubStore) Status(context.Context) (*lock.Status, error) {
	return s.status, nil
}

func newStore() *stubStore {
	alice, bob := participant("Alice", true), participant("Bob", true)
	c := finalContest(0, "-3.5", 24, 20)
	return &stubStore{
		participants: []models.Participant{alice, bob},
		contests:     []models.Contest{c},
		picks:        []models.Pick{pick(alice, c, models.SideFavored), pick(bob, c, models.SideOpponent)},
		status:       &lock.Status{Now: kickoff.Add(time.Hour), KickoffLocked: true},
	}
}

func TestLeaderboard(t *testing.T) {
	store := newStore()
	app := NewApp(store, store, store, store)

	board, err := app.Leaderboard(context.Background())
	require.NoError(t, err)
	assert.True(t, board.Locked)
	assert.True(t, board.AsOf.Equal(kickoff.Add(time.Hour)))
	require.Len(t, board.Standings, 2)
	assert.Equal(t, "Alice", board.Standings[0].Participant.Name)
	assert.Equal(t, 1, board.Standings[0].Total)
	assert.Equal(t, -1, board.Standings[1].Total)
}

func TestLeaderboardRoundLocksBeforeKickoff(t *testing.T) {
	store := newStore()
	store.status = &lock.Status{
		Now: kickoff.Add(-time.Hour),
		Rounds: []models.RoundLock{
			{Round: models.DefaultRound, Locked: true, DisplayOrder: 1},
			{Round: "championship", Locked: false, DisplayOrder: 4},
		},
	}

	board, err := NewApp(store, store, store, store).Leaderboard(context.Background())
	require.NoError(t, err)
	assert.False(t, board.Locked)
	assert.Equal(t, []RoundState{
		{Round: models.DefaultRound, Locked: true},
		{Round: "championship", Locked: false},
	}, board.Rounds)

	// kickoff locks every round regardless of its flag
	store.status.KickoffLocked = true
	board, err = NewApp(store, store, store, store).Leaderboard(context.Background())
	require.NoError(t, err)
	assert.True(t, board.Locked)
	for _, rs := range board.Rounds {
		assert.True(t, rs.Locked, rs.Round)
	}
}

func TestLeaderboardLoadError(t *testing.T) {
	store := newStore()
	store.err = errors.New("boom")

	_, err := NewApp(store, store, store, store).Leaderboard(context.Background())
	assert.Error(t, err)
}

func TestLeaderboardHandler(t *testing.T) {
	store := newStore()
	r := chi.NewRouter()
	NewService(NewApp(store, store, store, store)).Routes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Locked    bool `json:"locked"`
		Rounds    []struct {
			Round  string `json:"round"`
			Locked bool   `json:"locked"`
		} `json:"rounds"`
		Standings []struct {
			Rank  int `json:"rank"`
			Total int `json:"total"`
		} `json:"standings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Locked)
	assert.NotNil(t, body.Rounds)
	require.Len(t, body.Standings, 2)
	assert.Equal(t, 1, body.Standings[0].Rank)
	assert.Equal(t, 2, body.Standings[1].Rank)
}
