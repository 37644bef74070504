package contests

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/bowlpool/go/internal/models"
)

// ContestRepository defines what the contests app needs from storage
type ContestRepository interface {
	CreateContest(ctx context.Context, c models.Contest) (*models.Contest, error)
	GetContest(ctx context.Context, id uuid.UUID) (*models.Contest, error)
	ListContests(ctx context.Context) ([]models.Contest, error)
}

// App handles contest reads and creation
type App struct {
	repo ContestRepository
}

func NewApp(repo ContestRepository) *App {
	return &App{repo: repo}
}

// CreateContest validates and stores a new contest. Scores and status start empty.
func (a *App) CreateContest(ctx context.Context, c models.Contest) (*models.Contest, error) {
	if err := a.validateContest(&c); err != nil {
		return nil, err
	}

	created, err := a.repo.CreateContest(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to create contest: %w", err)
	}
	log.Info().Str("contest_id", created.ID.String()).Str("name", created.Name).Msg("contest created")
	return created, nil
}

func (a *App) GetContest(ctx context.Context, id uuid.UUID) (*models.Contest, error) {
	c, err := a.repo.GetContest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get contest: %w", err)
	}
	return c, nil
}

func (a *App) ListContests(ctx context.Context) ([]models.Contest, error) {
	contests, err := a.repo.ListContests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contests: %w", err)
	}
	return contests, nil
}

func (a *App) validateContest(c *models.Contest) error {
	c.FavoredTeam = strings.TrimSpace(c.FavoredTeam)
	c.Opponent = strings.TrimSpace(c.Opponent)
	c.Name = strings.TrimSpace(c.Name)

	if c.FavoredTeam == "" || c.Opponent == "" {
		return fmt.Errorf("%w: both team names are required", models.ErrValidation)
	}
	if strings.EqualFold(c.FavoredTeam, c.Opponent) {
		return fmt.Errorf("%w: a team cannot play itself", models.ErrValidation)
	}
	if c.Kickoff.IsZero() {
		return fmt.Errorf("%w: kickoff is required", models.ErrValidation)
	}
	if c.Name == "" {
		c.Name = c.FavoredTeam + " vs " + c.Opponent
	}
	if c.Round == "" {
		c.Round = models.DefaultRound
	}
	if c.Status == "" {
		c.Status = models.ContestStatusNotStarted
	}
	if _, err := models.ParseContestStatus(string(c.Status)); err != nil {
		return err
	}
	return nil
}
