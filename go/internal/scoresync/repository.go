package scoresync

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/mcdev12/bowlpool/go/internal/contests"
	"github.com/mcdev12/bowlpool/go/internal/models"
	"github.com/mcdev12/bowlpool/go/internal/sqlutil"
)

type Repository struct {
	db       *sql.DB
	contests *contests.Repository
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db:       db,
		contests: contests.NewRepository(db),
	}
}

func (r *Repository) ListUnsettledContests(ctx context.Context) ([]models.Contest, error) {
	return r.contests.ListUnsettledContests(ctx)
}

// UpdateResult locks the contest row, compares, and writes only on a difference.
// Each call is its own transaction so one failing contest never rolls back another.
func (r *Repository) UpdateResult(ctx context.Context, contestID uuid.UUID, result models.ContestResult) (bool, error) {
	written := false
	err := sqlutil.Run(ctx, r.db, func(tx *sql.Tx) *sql.Tx { return tx }, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `SELECT `+contests.Columns+` FROM contests WHERE id = $1 FOR UPDATE`, contestID)
		current, err := contests.ScanContest(row)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("contest %s: %w", contestID, models.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to lock contest: %w", err)
		}
		if result.Matches(*current) {
			return nil
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE contests
			SET status = $2, favored_score = $3, opponent_score = $4, updated_at = now()
			WHERE id = $1`,
			contestID, string(result.Status), result.FavoredScore, result.OpponentScore,
		)
		if err != nil {
			return fmt.Errorf("failed to update contest: %w", err)
		}
		written = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to update result: %w", err)
	}
	return written, nil
}

func (r *Repository) RecordSyncRun(ctx context.Context, run SyncRun) error {
	details, err := json.Marshal(run.Result.Updates)
	if err != nil {
		return fmt.Errorf("failed to marshal sync details: %w", err)
	}

	var runErr *string
	if run.Error != "" {
		runErr = &run.Error
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sync_runs (id, started_at, finished_at, candidates, matched, updated, failed, error, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		run.ID, run.StartedAt, run.FinishedAt,
		run.Result.Candidates, run.Result.Matched, run.Result.Updated, run.Result.Failed,
		sqlutil.ToSqlString(runErr),
		pqtype.NullRawMessage{RawMessage: details, Valid: len(run.Result.Updates) > 0},
	)
	if err != nil {
		return fmt.Errorf("failed to insert sync run: %w", err)
	}
	return nil
}

// LatestSyncRun returns the most recent run, or nil when none was recorded.
func (r *Repository) LatestSyncRun(ctx context.Context) (*SyncRun, error) {
	var (
		run     SyncRun
		runErr  sql.NullString
		details pqtype.NullRawMessage
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, candidates, matched, updated, failed, error, details
		FROM sync_runs ORDER BY started_at DESC LIMIT 1`).
		Scan(&run.ID, &run.StartedAt, &run.FinishedAt,
			&run.Result.Candidates, &run.Result.Matched, &run.Result.Updated, &run.Result.Failed,
			&runErr, &details)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query sync runs: %w", err)
	}

	run.Error = sqlutil.FromSqlString(runErr, "")
	if details.Valid {
		if err := json.Unmarshal(details.RawMessage, &run.Result.Updates); err != nil {
			return nil, fmt.Errorf("failed to decode sync details: %w", err)
		}
	}
	return &run, nil
}
