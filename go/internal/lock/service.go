package lock

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mcdev12/bowlpool/go/internal/httputil"
	"github.com/mcdev12/bowlpool/go/internal/models"
)

// LockApp defines what the HTTP service needs from the lock controller
type LockApp interface {
	Status(ctx context.Context) (*Status, error)
	ListRoundLocks(ctx context.Context) ([]models.RoundLock, error)
	SetRoundLock(ctx context.Context, round string, locked bool) error
}

type Service struct {
	app LockApp
}

func NewService(app LockApp) *Service {
	return &Service{app: app}
}

func (s *Service) Routes(r chi.Router) {
	r.Get("/api/lock", s.GetStatus)
	r.Get("/api/admin/rounds", s.ListRoundLocks)
	r.Put("/api/admin/rounds/{round}/lock", s.SetRoundLock)
}

func (s *Service) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.app.Status(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}

func (s *Service) ListRoundLocks(w http.ResponseWriter, r *http.Request) {
	rounds, err := s.app.ListRoundLocks(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{"rounds": rounds})
}

type setRoundLockRequest struct {
	Locked bool `json:"locked"`
}

func (s *Service) SetRoundLock(w http.ResponseWriter, r *http.Request) {
	var req setRoundLockRequest
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	round := chi.URLParam(r, "round")
	if err := s.app.SetRoundLock(r.Context(), round, req.Locked); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{"round": round, "locked": req.Locked})
}
