package clock

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mcdev12/bowlpool/go/internal/httputil"
)

// ClockApp defines what the HTTP service needs from the clock application
type ClockApp interface {
	Now(ctx context.Context) (time.Time, error)
	Override(ctx context.Context) (*time.Time, error)
	SetOverride(ctx context.Context, at time.Time) error
	ClearOverride(ctx context.Context) error
}

// Service exposes clock administration over HTTP.
type Service struct {
	app ClockApp
}

func NewService(app ClockApp) *Service {
	return &Service{app: app}
}

// Routes mounts the handlers under /api/admin/clock.
func (s *Service) Routes(r chi.Router) {
	r.Get("/api/admin/clock", s.GetClock)
	r.Put("/api/admin/clock", s.SetOverride)
	r.Delete("/api/admin/clock", s.ClearOverride)
}

type clockResponse struct {
	Now      time.Time  `json:"now"`
	Override *time.Time `json:"override,omitempty"`
}

type setOverrideRequest struct {
	At time.Time `json:"at"`
}

func (s *Service) GetClock(w http.ResponseWriter, r *http.Request) {
	s.writeClock(w, r, http.StatusOK)
}

func (s *Service) SetOverride(w http.ResponseWriter, r *http.Request) {
	var req setOverrideRequest
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if err := s.app.SetOverride(r.Context(), req.At); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	s.writeClock(w, r, http.StatusOK)
}

func (s *Service) ClearOverride(w http.ResponseWriter, r *http.Request) {
	if err := s.app.ClearOverride(r.Context()); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	s.writeClock(w, r, http.StatusOK)
}

func (s *Service) writeClock(w http.ResponseWriter, r *http.Request, status int) {
	now, err := s.app.Now(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	override, err := s.app.Override(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, status, clockResponse{Now: now, Override: override})
}
