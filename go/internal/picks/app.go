// Package picks owns every pick write path. Each write is validated, then
// checked against the lock state for every round it touches, then stored.
package picks

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/bowlpool/go/internal/models"
	"github.com/mcdev12/bowlpool/go/internal/spread"
)

// PickRepository defines what the picks app needs from pick storage
type PickRepository interface {
	SavePicks(ctx context.Context, participantID uuid.UUID, picks []models.Pick, complete bool) error
	DeletePicksByParticipant(ctx context.Context, participantID uuid.UUID) (int, error)
	ListPicksByParticipant(ctx context.Context, participantID uuid.UUID) ([]models.Pick, error)
}

// ContestReader is the read side of contest storage
type ContestReader interface {
	ListContests(ctx context.Context) ([]models.Contest, error)
}

// ParticipantReader is the read side of participant storage
type ParticipantReader interface {
	GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
}

// LockChecker rejects writes to locked rounds. Satisfied by *lock.Controller.
type LockChecker interface {
	Check(ctx context.Context, rounds ...string) error
}

// App handles pick business logic
type App struct {
	repo         PickRepository
	contests     ContestReader
	participants ParticipantReader
	lock         LockChecker

	// rng is shared by concurrent requests; *rand.Rand is not safe for concurrent use
	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures an App
type Option func(*App)

// WithRand sets the source used by RandomFill.
func WithRand(rng *rand.Rand) Option {
	return func(a *App) { a.rng = rng }
}

// NewApp creates a new picks App
func NewApp(repo PickRepository, contests ContestReader, participants ParticipantReader, lock LockChecker, opts ...Option) *App {
	a := &App{
		repo:         repo,
		contests:     contests,
		participants: participants,
		lock:         lock,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		seed := uint64(time.Now().UnixNano())
		a.rng = rand.New(rand.NewPCG(seed, seed>>17|1))
	}
	return a
}

// GetPicks returns the participant's picks ordered by contest id.
func (a *App) GetPicks(ctx context.Context, participantID uuid.UUID) ([]models.Pick, error) {
	if _, err := a.participants.GetParticipant(ctx, participantID); err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	picks, err := a.repo.ListPicksByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}
	sortPicks(picks)
	return picks, nil
}

// PickResults returns the participant's picks with how each has fared so far.
func (a *App) PickResults(ctx context.Context, participantID uuid.UUID) ([]ScoredPick, error) {
	picks, err := a.GetPicks(ctx, participantID)
	if err != nil {
		return nil, err
	}
	contests, err := a.contests.ListContests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contests: %w", err)
	}
	byID := make(map[uuid.UUID]models.Contest, len(contests))
	for _, c := range contests {
		byID[c.ID] = c
	}

	out := make([]ScoredPick, 0, len(picks))
	for _, p := range picks {
		result := spread.PickNone
		if c, ok := byID[p.ContestID]; ok {
			result = spread.ResultFor(c, p.Side)
		}
		out = append(out, ScoredPick{Pick: p, Result: result})
	}
	return out, nil
}

// SavePick sets a single side. Last write wins.
func (a *App) SavePick(ctx context.Context, req SavePickRequest) (*WriteResult, error) {
	side, err := models.ParseSide(req.Side)
	if err != nil {
		return nil, err
	}

	contests, existing, err := a.loadForWrite(ctx, req.ParticipantID)
	if err != nil {
		return nil, err
	}

	contest, ok := contests[req.ContestID]
	if !ok {
		return nil, fmt.Errorf("contest %s: %w", req.ContestID, models.ErrNotFound)
	}

	if err := a.lock.Check(ctx, contest.Round); err != nil {
		return nil, err
	}

	pick := models.Pick{ParticipantID: req.ParticipantID, ContestID: req.ContestID, Side: side}
	existing[req.ContestID] = side
	complete := isComplete(contests, existing)

	if err := a.repo.SavePicks(ctx, req.ParticipantID, []models.Pick{pick}, complete); err != nil {
		return nil, fmt.Errorf("failed to save pick: %w", err)
	}

	log.Info().
		Str("participant_id", req.ParticipantID.String()).
		Str("contest_id", req.ContestID.String()).
		Str("side", string(side)).
		Msg("pick saved")
	return &WriteResult{Picks: []models.Pick{pick}, Complete: complete}, nil
}

// SubmitPicks stores a complete pick set. Every contest needs a valid side; a
// partial or malformed set is rejected as a whole and nothing is written.
func (a *App) SubmitPicks(ctx context.Context, req SubmitPicksRequest) (*WriteResult, error) {
	contests, _, err := a.loadForWrite(ctx, req.ParticipantID)
	if err != nil {
		return nil, err
	}

	picks, err := a.validateSubmission(contests, req)
	if err != nil {
		return nil, err
	}

	if err := a.lock.Check(ctx, roundsOf(contests, picks)...); err != nil {
		return nil, err
	}

	if err := a.repo.SavePicks(ctx, req.ParticipantID, picks, true); err != nil {
		return nil, fmt.Errorf("failed to submit picks: %w", err)
	}

	log.Info().
		Str("participant_id", req.ParticipantID.String()).
		Int("picks", len(picks)).
		Msg("pick set submitted")
	return &WriteResult{Picks: picks, Complete: true}, nil
}

// ClearPicks deletes every pick the participant holds.
func (a *App) ClearPicks(ctx context.Context, participantID uuid.UUID) (int, error) {
	contests, existing, err := a.loadForWrite(ctx, participantID)
	if err != nil {
		return 0, err
	}

	held := make([]models.Pick, 0, len(existing))
	for contestID := range existing {
		held = append(held, models.Pick{ContestID: contestID})
	}
	if err := a.lock.Check(ctx, roundsOf(contests, held)...); err != nil {
		return 0, err
	}

	n, err := a.repo.DeletePicksByParticipant(ctx, participantID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear picks: %w", err)
	}

	log.Info().Str("participant_id", participantID.String()).Int("deleted", n).Msg("picks cleared")
	return n, nil
}

// RandomFill picks a random side for every contest the participant has not picked.
// Existing picks are left alone.
func (a *App) RandomFill(ctx context.Context, participantID uuid.UUID) (*WriteResult, error) {
	contests, existing, err := a.loadForWrite(ctx, participantID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(contests))
	for id := range contests {
		if _, picked := existing[id]; !picked {
			ids = append(ids, id)
		}
	}
	// map order is random; sort so a seeded source gives repeatable fills
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	picks := make([]models.Pick, 0, len(ids))
	a.rngMu.Lock()
	for _, id := range ids {
		side := models.SideFavored
		if a.rng.IntN(2) == 1 {
			side = models.SideOpponent
		}
		picks = append(picks, models.Pick{ParticipantID: participantID, ContestID: id, Side: side})
	}
	a.rngMu.Unlock()

	if len(picks) == 0 {
		return &WriteResult{Picks: picks, Complete: len(contests) > 0}, nil
	}

	if err := a.lock.Check(ctx, roundsOf(contests, picks)...); err != nil {
		return nil, err
	}

	if err := a.repo.SavePicks(ctx, participantID, picks, true); err != nil {
		return nil, fmt.Errorf("failed to save random picks: %w", err)
	}

	log.Info().Str("participant_id", participantID.String()).Int("filled", len(picks)).Msg("random picks filled")
	return &WriteResult{Picks: picks, Complete: true}, nil
}

// loadForWrite returns contests by id and the participant's current sides by contest id.
func (a *App) loadForWrite(ctx context.Context, participantID uuid.UUID) (map[uuid.UUID]models.Contest, map[uuid.UUID]models.Side, error) {
	if _, err := a.participants.GetParticipant(ctx, participantID); err != nil {
		return nil, nil, fmt.Errorf("failed to get participant: %w", err)
	}

	list, err := a.contests.ListContests(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list contests: %w", err)
	}
	contests := make(map[uuid.UUID]models.Contest, len(list))
	for _, c := range list {
		contests[c.ID] = c
	}

	picks, err := a.repo.ListPicksByParticipant(ctx, participantID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list picks: %w", err)
	}
	existing := make(map[uuid.UUID]models.Side, len(picks))
	for _, p := range picks {
		existing[p.ContestID] = p.Side
	}
	return contests, existing, nil
}

func (a *App) validateSubmission(contests map[uuid.UUID]models.Contest, req SubmitPicksRequest) ([]models.Pick, error) {
	if len(contests) == 0 {
		return nil, fmt.Errorf("%w: there are no contests to pick", models.ErrValidation)
	}

	var problems []string
	for id := range req.Picks {
		if _, ok := contests[id]; !ok {
			problems = append(problems, fmt.Sprintf("unknown contest %s", id))
		}
	}

	picks := make([]models.Pick, 0, len(contests))
	for id, c := range contests {
		raw, ok := req.Picks[id]
		if !ok {
			problems = append(problems, fmt.Sprintf("must pick a side for %s", c.Name))
			continue
		}
		side, err := models.ParseSide(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("invalid side %q for %s", raw, c.Name))
			continue
		}
		picks = append(picks, models.Pick{ParticipantID: req.ParticipantID, ContestID: id, Side: side})
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return nil, fmt.Errorf("%w: %s", models.ErrValidation, strings.Join(problems, "; "))
	}
	sortPicks(picks)
	return picks, nil
}

func isComplete(contests map[uuid.UUID]models.Contest, sides map[uuid.UUID]models.Side) bool {
	if len(contests) == 0 {
		return false
	}
	for id := range contests {
		if _, ok := sides[id]; !ok {
			return false
		}
	}
	return true
}

// roundsOf returns the distinct rounds of the contests the picks touch, sorted.
func roundsOf(contests map[uuid.UUID]models.Contest, picks []models.Pick) []string {
	seen := make(map[string]struct{})
	var rounds []string
	for _, p := range picks {
		c, ok := contests[p.ContestID]
		if !ok {
			continue
		}
		if _, dup := seen[c.Round]; dup {
			continue
		}
		seen[c.Round] = struct{}{}
		rounds = append(rounds, c.Round)
	}
	sort.Strings(rounds)
	return rounds
}

func sortPicks(picks []models.Pick) {
	sort.Slice(picks, func(i, j int) bool { return picks[i].ContestID.String() < picks[j].ContestID.String() })
}
