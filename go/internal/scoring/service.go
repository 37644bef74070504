package scoring

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mcdev12/bowlpool/go/internal/httputil"
)

// LeaderboardApp defines what the HTTP service needs from the scoring app
type LeaderboardApp interface {
	Leaderboard(ctx context.Context) (*Leaderboard, error)
}

type Service struct {
	app LeaderboardApp
}

func NewService(app LeaderboardApp) *Service {
	return &Service{app: app}
}

func (s *Service) Routes(r chi.Router) {
	r.Get("/api/leaderboard", s.GetLeaderboard)
}

func (s *Service) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := s.app.Leaderboard(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, board)
}
