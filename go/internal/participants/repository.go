package participants

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/bowlpool/go/internal/models"
	"github.com/mcdev12/bowlpool/go/internal/sqlutil"
)

const participantColumns = `id, name, nickname, email, is_admin, is_active`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanParticipant(row scanner) (*models.Participant, error) {
	var (
		p        models.Participant
		nickname sql.NullString
		email    sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &nickname, &email, &p.IsAdmin, &p.IsActive); err != nil {
		return nil, err
	}
	p.Nickname = sqlutil.FromSqlStringPtr(nickname)
	p.Email = sqlutil.FromSqlStringPtr(email)
	return &p, nil
}

func (r *Repository) CreateParticipant(ctx context.Context, p models.Participant) (*models.Participant, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO participants (id, name, nickname, email, is_admin, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+participantColumns,
		p.ID, p.Name, sqlutil.ToSqlString(p.Nickname), sqlutil.ToSqlString(p.Email), p.IsAdmin, p.IsActive,
	)
	created, err := scanParticipant(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}
	return created, nil
}

func (r *Repository) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+participantColumns+` FROM participants WHERE id = $1`, id)
	p, err := scanParticipant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("participant %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return p, nil
}

func (r *Repository) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+participantColumns+` FROM participants ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// SetActive marks whether the participant is scored.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE participants SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("failed to update participant: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("participant %s: %w", id, models.ErrNotFound)
	}
	return nil
}
