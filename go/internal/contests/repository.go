package contests

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/bowlpool/go/internal/models"
	"github.com/mcdev12/bowlpool/go/internal/sqlutil"
)

// Columns is the select list ScanContest expects.
const Columns = `id, name, kickoff, favored_team, opponent, spread, favored_score, opponent_score, status, ignored, round, tv_channel`

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ScanContest reads one row selected with the contest column list.
// The status column is validated on the way out.
func ScanContest(row Scanner) (*models.Contest, error) {
	var (
		c             models.Contest
		status        string
		favoredScore  sql.NullInt32
		opponentScore sql.NullInt32
		tvChannel     sql.NullString
	)
	err := row.Scan(&c.ID, &c.Name, &c.Kickoff, &c.FavoredTeam, &c.Opponent, &c.Spread,
		&favoredScore, &opponentScore, &status, &c.Ignored, &c.Round, &tvChannel)
	if err != nil {
		return nil, err
	}

	c.Status, err = models.ParseContestStatus(status)
	if err != nil {
		return nil, fmt.Errorf("contest %s: %w", c.ID, err)
	}
	c.Kickoff = c.Kickoff.UTC()
	c.FavoredScore = sqlutil.FromSqlInt32(favoredScore)
	c.OpponentScore = sqlutil.FromSqlInt32(opponentScore)
	c.TVChannel = sqlutil.FromSqlStringPtr(tvChannel)
	return &c, nil
}

func (r *Repository) CreateContest(ctx context.Context, c models.Contest) (*models.Contest, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO contests (id, name, kickoff, favored_team, opponent, spread, favored_score, opponent_score, status, ignored, round, tv_channel)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+Columns,
		c.ID, c.Name, c.Kickoff.UTC(), c.FavoredTeam, c.Opponent, c.Spread,
		sqlutil.ToSqlInt32(c.FavoredScore), sqlutil.ToSqlInt32(c.OpponentScore),
		string(c.Status), c.Ignored, c.Round, sqlutil.ToSqlString(c.TVChannel),
	)
	created, err := ScanContest(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create contest: %w", err)
	}
	return created, nil
}

func (r *Repository) GetContest(ctx context.Context, id uuid.UUID) (*models.Contest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+Columns+` FROM contests WHERE id = $1`, id)
	c, err := ScanContest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("contest %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contest: %w", err)
	}
	return c, nil
}

func (r *Repository) ListContests(ctx context.Context) ([]models.Contest, error) {
	return r.list(ctx, `SELECT `+Columns+` FROM contests ORDER BY kickoff, id`)
}

// ListUnsettledContests returns contests the live feed may still change.
func (r *Repository) ListUnsettledContests(ctx context.Context) ([]models.Contest, error) {
	return r.list(ctx, `
		SELECT `+Columns+` FROM contests
		WHERE status NOT IN ('final', 'canceled')
		ORDER BY kickoff, id`)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]models.Contest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contests: %w", err)
	}
	defer rows.Close()

	var contests []models.Contest
	for rows.Next() {
		c, err := ScanContest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contest: %w", err)
		}
		contests = append(contests, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contests: %w", err)
	}
	return contests, nil
}
