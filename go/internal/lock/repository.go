package lock

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mcdev12/bowlpool/go/internal/models"
	"github.com/mcdev12/bowlpool/go/internal/sqlutil"
)

type SQLRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) EarliestKickoff(ctx context.Context) (*time.Time, error) {
	var first sql.NullTime
	if err := r.db.QueryRowContext(ctx, `SELECT MIN(kickoff) FROM contests`).Scan(&first); err != nil {
		return nil, fmt.Errorf("failed to query earliest kickoff: %w", err)
	}
	return sqlutil.FromSqlTime(first), nil
}

func (r *SQLRepository) ListRoundLocks(ctx context.Context) ([]models.RoundLock, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT round, locked, display_order
		FROM round_locks
		ORDER BY display_order, round`)
	if err != nil {
		return nil, fmt.Errorf("failed to query round locks: %w", err)
	}
	defer rows.Close()

	var locks []models.RoundLock
	for rows.Next() {
		var rl models.RoundLock
		if err := rows.Scan(&rl.Round, &rl.Locked, &rl.DisplayOrder); err != nil {
			return nil, fmt.Errorf("failed to scan round lock: %w", err)
		}
		locks = append(locks, rl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate round locks: %w", err)
	}
	return locks, nil
}

// UpsertRoundLock keeps an existing display order; it is only set on insert.
func (r *SQLRepository) UpsertRoundLock(ctx context.Context, lock models.RoundLock) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO round_locks (round, locked, display_order)
		VALUES ($1, $2, $3)
		ON CONFLICT (round) DO UPDATE SET locked = EXCLUDED.locked`,
		lock.Round, lock.Locked, lock.DisplayOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert round lock: %w", err)
	}
	return nil
}
