package clock

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mcdev12/bowlpool/go/internal/sqlutil"
)

// Repository stores the clock override in the singleton settings row.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetOverride(ctx context.Context) (*time.Time, error) {
	var at sql.NullTime
	err := r.db.QueryRowContext(ctx, `SELECT clock_override FROM settings WHERE id = 1`).Scan(&at)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	return sqlutil.FromSqlTime(at), nil
}

func (r *Repository) SetOverride(ctx context.Context, at *time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (id, clock_override, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE
		SET clock_override = EXCLUDED.clock_override, updated_at = now()`,
		sqlutil.ToSqlTime(at),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	return nil
}
