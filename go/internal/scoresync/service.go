package scoresync

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mcdev12/bowlpool/go/internal/httputil"
)

// SyncApp defines what the HTTP service needs from score sync
type SyncApp interface {
	Run(ctx context.Context) (*Result, error)
}

// RunHistory reads the audit trail
type RunHistory interface {
	LatestSyncRun(ctx context.Context) (*SyncRun, error)
}

type Service struct {
	app     SyncApp
	history RunHistory
}

func NewService(app SyncApp, history RunHistory) *Service {
	return &Service{app: app, history: history}
}

func (s *Service) Routes(r chi.Router) {
	r.Post("/api/sync", s.TriggerSync)
	r.Get("/api/sync/latest", s.LatestRun)
}

// TriggerSync runs one synchronization pass for an external scheduler.
func (s *Service) TriggerSync(w http.ResponseWriter, r *http.Request) {
	result, err := s.app.Run(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (s *Service) LatestRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.history.LatestSyncRun(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if run == nil {
		httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{"run": nil})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{"run": httputil.Envelope{
		"id":          run.ID,
		"started_at":  run.StartedAt,
		"finished_at": run.FinishedAt,
		"result":      run.Result,
		"error":       run.Error,
	}})
}
