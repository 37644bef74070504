package picks

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mcdev12/bowlpool/go/internal/httputil"
)

// PicksApp defines what the HTTP service needs from the picks app
type PicksApp interface {
	PickResults(ctx context.Context, participantID uuid.UUID) ([]ScoredPick, error)
	SavePick(ctx context.Context, req SavePickRequest) (*WriteResult, error)
	SubmitPicks(ctx context.Context, req SubmitPicksRequest) (*WriteResult, error)
	ClearPicks(ctx context.Context, participantID uuid.UUID) (int, error)
	RandomFill(ctx context.Context, participantID uuid.UUID) (*WriteResult, error)
}

type Service struct {
	app PicksApp
}

func NewService(app PicksApp) *Service {
	return &Service{app: app}
}

func (s *Service) Routes(r chi.Router) {
	r.Route("/api/participants/{participantID}/picks", func(r chi.Router) {
		r.Get("/", s.GetPicks)
		r.Put("/", s.SubmitPicks)
		r.Delete("/", s.ClearPicks)
		r.Post("/random", s.RandomFill)
		r.Put("/{contestID}", s.SavePick)
	})
}

func (s *Service) GetPicks(w http.ResponseWriter, r *http.Request) {
	participantID, err := httputil.UUIDParam(r, "participantID")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	picks, err := s.app.PickResults(r.Context(), participantID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{"picks": picks})
}

type savePickRequest struct {
	Side string `json:"side"`
}

func (s *Service) SavePick(w http.ResponseWriter, r *http.Request) {
	participantID, err := httputil.UUIDParam(r, "participantID")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	contestID, err := httputil.UUIDParam(r, "contestID")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	var body savePickRequest
	if err := httputil.ReadJSON(w, r, &body); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	res, err := s.app.SavePick(r.Context(), SavePickRequest{
		ParticipantID: participantID,
		ContestID:     contestID,
		Side:          body.Side,
	})
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

type submitPicksRequest struct {
	Picks map[uuid.UUID]string `json:"picks"`
}

func (s *Service) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	participantID, err := httputil.UUIDParam(r, "participantID")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	var body submitPicksRequest
	if err := httputil.ReadJSON(w, r, &body); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	res, err := s.app.SubmitPicks(r.Context(), SubmitPicksRequest{
		ParticipantID: participantID,
		Picks:         body.Picks,
	})
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (s *Service) ClearPicks(w http.ResponseWriter, r *http.Request) {
	participantID, err := httputil.UUIDParam(r, "participantID")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	n, err := s.app.ClearPicks(r.Context(), participantID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{"deleted": n})
}

func (s *Service) RandomFill(w http.ResponseWriter, r *http.Request) {
	participantID, err := httputil.UUIDParam(r, "participantID")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	res, err := s.app.RandomFill(r.Context(), participantID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}
