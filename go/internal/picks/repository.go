package picks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/bowlpool/go/internal/models"
	"github.com/mcdev12/bowlpool/go/internal/sqlutil"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// queries binds the pick statements to one transaction.
type queries struct {
	tx *sql.Tx
}

func newQueries(tx *sql.Tx) *queries {
	return &queries{tx: tx}
}

// upsertPick writes a pick; a second write for the same (participant, contest) replaces the side.
func (q *queries) upsertPick(ctx context.Context, p models.Pick) error {
	_, err := q.tx.ExecContext(ctx, `
		INSERT INTO picks (participant_id, contest_id, side, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (participant_id, contest_id) DO UPDATE
		SET side = EXCLUDED.side, updated_at = now()`,
		p.ParticipantID, p.ContestID, string(p.Side),
	)
	return err
}

func (q *queries) setActive(ctx context.Context, participantID uuid.UUID, active bool) error {
	res, err := q.tx.ExecContext(ctx, `UPDATE participants SET is_active = $2 WHERE id = $1`, participantID, active)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("participant %s: %w", participantID, models.ErrNotFound)
	}
	return nil
}

// SavePicks upserts picks and records whether the participant's set is complete, in one transaction.
func (r *Repository) SavePicks(ctx context.Context, participantID uuid.UUID, picks []models.Pick, complete bool) error {
	err := sqlutil.Run(ctx, r.db, newQueries, func(q *queries) error {
		for _, p := range picks {
			if err := q.upsertPick(ctx, p); err != nil {
				return fmt.Errorf("failed to upsert pick for contest %s: %w", p.ContestID, err)
			}
		}
		return q.setActive(ctx, participantID, complete)
	})
	if err != nil {
		return fmt.Errorf("failed to save picks: %w", err)
	}
	return nil
}

// DeletePicksByParticipant removes every pick and marks the participant inactive.
func (r *Repository) DeletePicksByParticipant(ctx context.Context, participantID uuid.UUID) (int, error) {
	var deleted int64
	err := sqlutil.Run(ctx, r.db, newQueries, func(q *queries) error {
		res, err := q.tx.ExecContext(ctx, `DELETE FROM picks WHERE participant_id = $1`, participantID)
		if err != nil {
			return err
		}
		if deleted, err = res.RowsAffected(); err != nil {
			return err
		}
		return q.setActive(ctx, participantID, false)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete picks: %w", err)
	}
	return int(deleted), nil
}

func (r *Repository) ListPicks(ctx context.Context) ([]models.Pick, error) {
	return r.list(ctx, `SELECT participant_id, contest_id, side, updated_at FROM picks`)
}

func (r *Repository) ListPicksByParticipant(ctx context.Context, participantID uuid.UUID) ([]models.Pick, error) {
	return r.list(ctx, `
		SELECT participant_id, contest_id, side, updated_at
		FROM picks WHERE participant_id = $1`, participantID)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]models.Pick, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks: %w", err)
	}
	defer rows.Close()

	var picks []models.Pick
	for rows.Next() {
		var (
			p    models.Pick
			side string
		)
		if err := rows.Scan(&p.ParticipantID, &p.ContestID, &side, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		if p.Side, err = models.ParseSide(side); err != nil {
			return nil, fmt.Errorf("pick %s/%s: %w", p.ParticipantID, p.ContestID, err)
		}
		picks = append(picks, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate picks: %w", err)
	}
	return picks, nil
}
