// Package scoresync reconciles stored contest results with the live-score feed.
//
// A run is stateless: it loads every unsettled contest, makes one feed request
// covering their kickoff dates, matches feed events to contests by team name and
// writes status and scores for each contest whose stored values differ. A failed
// fetch changes nothing. Runs are triggered externally; nothing here retries.
package scoresync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/bowlpool/go/internal/events"
	"github.com/mcdev12/bowlpool/go/internal/models"
	"github.com/mcdev12/bowlpool/go/internal/spread"
)

// ContestStore defines what a sync run needs from contest storage
type ContestStore interface {
	ListUnsettledContests(ctx context.Context) ([]models.Contest, error)
	// UpdateResult writes result unless the stored row already holds it.
	// It reports whether a write happened.
	UpdateResult(ctx context.Context, contestID uuid.UUID, result models.ContestResult) (bool, error)
}

// RunRecorder keeps the audit trail of sync runs
type RunRecorder interface {
	RecordSyncRun(ctx context.Context, run SyncRun) error
}

// App runs score synchronization
type App struct {
	store     ContestStore
	feed      Feed
	recorder  RunRecorder
	publisher events.Publisher
	clock     clockwork.Clock
}

// Option configures an App
type Option func(*App)

func WithRecorder(r RunRecorder) Option {
	return func(a *App) { a.recorder = r }
}

func WithPublisher(p events.Publisher) Option {
	return func(a *App) { a.publisher = p }
}

func WithClock(c clockwork.Clock) Option {
	return func(a *App) { a.clock = c }
}

func NewApp(store ContestStore, feed Feed, opts ...Option) *App {
	a := &App{
		store: store,
		feed:  feed,
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run performs one synchronization pass.
// Per-contest problems are counted in the result; only a store read failure or
// ErrUpstreamUnavailable is returned as an error.
func (a *App) Run(ctx context.Context) (*Result, error) {
	started := a.clock.Now().UTC()

	contests, err := a.store.ListUnsettledContests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsettled contests: %w", err)
	}

	result := &Result{Candidates: len(contests)}
	if len(contests) == 0 {
		log.Info().Msg("no unsettled contests, skipping feed fetch")
		return result, nil
	}

	start, end := fetchWindow(contests)
	feedEvents, err := a.feed.Events(ctx, start, end)
	if err != nil {
		log.Error().Err(err).
			Time("start", start).
			Time("end", end).
			Msg("score feed unavailable, no contests changed")
		a.record(ctx, started, result, err)
		return result, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	result.Events = len(feedEvents)

	for _, c := range contests {
		a.syncContest(ctx, c, feedEvents, result)
	}

	log.Info().
		Int("candidates", result.Candidates).
		Int("events", result.Events).
		Int("matched", result.Matched).
		Int("updated", result.Updated).
		Int("unchanged", result.Unchanged).
		Int("unmatched", result.Unmatched).
		Int("ambiguous", result.Ambiguous).
		Int("incomplete", result.Incomplete).
		Int("failed", result.Failed).
		Dur("took", a.clock.Since(started)).
		Msg("score sync finished")

	a.record(ctx, started, result, nil)
	return result, nil
}

func (a *App) syncContest(ctx context.Context, c models.Contest, feedEvents []FeedEvent, result *Result) {
	logger := log.With().Str("contest_id", c.ID.String()).Str("contest", c.Name).Logger()

	match, err := matchEvent(c, feedEvents)
	switch {
	case errors.Is(err, ErrNoMatch):
		result.Unmatched++
		logger.Debug().Msg("no feed event for contest")
		return
	case errors.Is(err, ErrNoConfidentMatch):
		result.Ambiguous++
		logger.Warn().Msg("several feed events match contest, skipping")
		return
	}
	result.Matched++

	if match.substringUsed {
		logger.Debug().
			Str("event_id", match.event.ID).
			Str("feed_favored", match.event.Competitors[match.favoredSlot].Name).
			Str("feed_opponent", match.event.Competitors[match.opponentSlot].Name).
			Msg("matched on partial team name")
	}

	favScore := match.event.Competitors[match.favoredSlot].Score
	oppScore := match.event.Competitors[match.opponentSlot].Score
	if favScore == nil || oppScore == nil {
		result.Incomplete++
		logger.Debug().Str("event_id", match.event.ID).Msg("feed scores not numeric, leaving contest untouched")
		return
	}

	next := models.ContestResult{
		Status:        MapStatus(match.event.Status),
		FavoredScore:  *favScore,
		OpponentScore: *oppScore,
	}
	if next.Matches(c) {
		result.Unchanged++
		return
	}

	written, err := a.store.UpdateResult(ctx, c.ID, next)
	if err != nil {
		result.Failed++
		logger.Error().Err(err).Msg("failed to update contest result")
		return
	}
	if !written {
		result.Unchanged++
		return
	}

	result.Updated++
	update := ContestUpdate{
		ContestID:      c.ID,
		Name:           c.Name,
		PreviousStatus: c.Status,
		Result:         next,
	}
	result.Updates = append(result.Updates, update)

	logger.Info().
		Str("status", string(next.Status)).
		Int("favored_score", next.FavoredScore).
		Int("opponent_score", next.OpponentScore).
		Msg("contest result updated")

	a.publish(ctx, c, update)
}

// fetchWindow spans the earliest kickoff date through the day after the latest, in UTC.
func fetchWindow(contests []models.Contest) (time.Time, time.Time) {
	first, last := contests[0].Kickoff.UTC(), contests[0].Kickoff.UTC()
	for _, c := range contests[1:] {
		k := c.Kickoff.UTC()
		if k.Before(first) {
			first = k
		}
		if k.After(last) {
			last = k
		}
	}
	return truncateDay(first), truncateDay(last).AddDate(0, 0, 1)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (a *App) publish(ctx context.Context, c models.Contest, update ContestUpdate) {
	if a.publisher == nil {
		return
	}

	settled := c
	settled.Status = update.Result.Status
	settled.FavoredScore = &update.Result.FavoredScore
	settled.OpponentScore = &update.Result.OpponentScore

	now := a.clock.Now()
	ev, err := events.NewEvent(events.ContestResultUpdated, c.ID, events.ContestResultUpdatedPayload{
		ContestID:      c.ID.String(),
		Name:           c.Name,
		PreviousStatus: string(update.PreviousStatus),
		Status:         string(update.Result.Status),
		FavoredTeam:    c.FavoredTeam,
		FavoredScore:   update.Result.FavoredScore,
		Opponent:       c.Opponent,
		OpponentScore:  update.Result.OpponentScore,
		Outcome:        string(spread.Resolve(settled)),
		UpdatedAt:      now.UTC(),
	}, now)
	if err != nil {
		log.Error().Err(err).Str("contest_id", c.ID.String()).Msg("failed to build result event")
		return
	}
	if err := a.publisher.Publish(ctx, ev); err != nil {
		log.Error().Err(err).Str("contest_id", c.ID.String()).Msg("failed to publish result event")
	}
}

// record stores the run audit row. Failures are logged only.
func (a *App) record(ctx context.Context, started time.Time, result *Result, runErr error) {
	if a.recorder == nil {
		return
	}

	run := SyncRun{
		ID:         uuid.New(),
		StartedAt:  started,
		FinishedAt: a.clock.Now().UTC(),
		Result:     *result,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := a.recorder.RecordSyncRun(ctx, run); err != nil {
		log.Warn().Err(err).Msg("failed to record sync run")
	}
}
