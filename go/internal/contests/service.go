package contests

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mcdev12/bowlpool/go/internal/httputil"
	"github.com/mcdev12/bowlpool/go/internal/models"
	"github.com/mcdev12/bowlpool/go/internal/spread"
)

// ContestsApp defines what the HTTP service needs from the contests app
type ContestsApp interface {
	GetContest(ctx context.Context, id uuid.UUID) (*models.Contest, error)
	ListContests(ctx context.Context) ([]models.Contest, error)
}

type Service struct {
	app ContestsApp
}

func NewService(app ContestsApp) *Service {
	return &Service{app: app}
}

func (s *Service) Routes(r chi.Router) {
	r.Get("/api/contests", s.ListContests)
	r.Get("/api/contests/{contestID}", s.GetContest)
}

// contestView adds the derived outcome to a stored contest.
type contestView struct {
	models.Contest
	Outcome models.Outcome `json:"outcome"`
}

func toView(c models.Contest) contestView {
	return contestView{Contest: c, Outcome: spread.Resolve(c)}
}

func (s *Service) ListContests(w http.ResponseWriter, r *http.Request) {
	contests, err := s.app.ListContests(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	views := make([]contestView, len(contests))
	for i, c := range contests {
		views[i] = toView(c)
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{"contests": views})
}

func (s *Service) GetContest(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.UUIDParam(r, "contestID")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	c, err := s.app.GetContest(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{"contest": toView(*c)})
}
