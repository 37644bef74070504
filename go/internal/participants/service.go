package participants

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mcdev12/bowlpool/go/internal/httputil"
	"github.com/mcdev12/bowlpool/go/internal/models"
)

// ParticipantsApp defines what the HTTP service needs from the participants app
type ParticipantsApp interface {
	GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	ListParticipants(ctx context.Context) ([]models.Participant, error)
}

type Service struct {
	app ParticipantsApp
}

func NewService(app ParticipantsApp) *Service {
	return &Service{app: app}
}

func (s *Service) Routes(r chi.Router) {
	r.Get("/api/participants", s.ListParticipants)
	r.Get("/api/participants/{participantID}", s.GetParticipant)
}

func (s *Service) ListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := s.app.ListParticipants(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{"participants": participants})
}

func (s *Service) GetParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.UUIDParam(r, "participantID")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	p, err := s.app.GetParticipant(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{"participant": p})
}
