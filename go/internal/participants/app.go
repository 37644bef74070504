package participants

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/bowlpool/go/internal/models"
)

// ParticipantRepository defines what the participants app needs from storage
type ParticipantRepository interface {
	CreateParticipant(ctx context.Context, p models.Participant) (*models.Participant, error)
	GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	ListParticipants(ctx context.Context) ([]models.Participant, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type App struct {
	repo ParticipantRepository
}

func NewApp(repo ParticipantRepository) *App {
	return &App{repo: repo}
}

func (a *App) CreateParticipant(ctx context.Context, p models.Participant) (*models.Participant, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, fmt.Errorf("%w: participant name is required", models.ErrValidation)
	}

	created, err := a.repo.CreateParticipant(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}
	log.Info().Str("participant_id", created.ID.String()).Str("name", created.Name).Msg("participant created")
	return created, nil
}

func (a *App) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	p, err := a.repo.GetParticipant(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return p, nil
}

func (a *App) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	participants, err := a.repo.ListParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}

// SetActive marks a participant as scored (complete pick set) or not.
func (a *App) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := a.repo.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("failed to set participant active: %w", err)
	}
	log.Info().Str("participant_id", id.String()).Bool("active", active).Msg("participant activity updated")
	return nil
}
