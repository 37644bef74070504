package testutil

import (
	"embed"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

//go:embed espndata
var espndata embed.FS

// FakeESPNServer serves canned scoreboard responses and records the queries it saw.
type FakeESPNServer struct {
	s *httptest.Server

	mu       sync.Mutex
	fixture  string
	status   int
	requests []ScoreboardRequest
}

// ScoreboardRequest is the query string of one scoreboard request.
type ScoreboardRequest struct {
	Groups string
	Dates  string
	Limit  string
}

func NewFakeESPNServer() *FakeESPNServer {
	f := &FakeESPNServer{fixture: "scoreboard_bowls.json", status: http.StatusOK}

	r := chi.NewRouter()
	r.Route("/apis/site/v2/sports/football", func(r chi.Router) {
		r.Get("/college-football/scoreboard", f.scoreboardHandler)
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeESPNServer) Close() {
	f.s.Close()
}

func (f *FakeESPNServer) URL() string {
	return f.s.URL
}

// SetFixture switches the scoreboard body to another file under espndata/.
func (f *FakeESPNServer) SetFixture(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fixture = name
}

// SetStatus makes the scoreboard answer with status and an error body when it is not 200.
func (f *FakeESPNServer) SetStatus(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

// Requests returns every scoreboard request received so far.
func (f *FakeESPNServer) Requests() []ScoreboardRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ScoreboardRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *FakeESPNServer) scoreboardHandler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	q := r.URL.Query()
	f.requests = append(f.requests, ScoreboardRequest{
		Groups: q.Get("groups"),
		Dates:  q.Get("dates"),
		Limit:  q.Get("limit"),
	})
	fixture, status := f.fixture, f.status
	f.mu.Unlock()

	if status != http.StatusOK {
		w.WriteHeader(status)
		w.Write([]byte(`{"code":500,"message":"upstream error"}`))
		return
	}
	serveFile(w, fixture)
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := espndata.ReadFile(fmt.Sprintf("espndata/%s", name))
	if err != nil {
		log.Error().Err(err).Str("file", name).Msg("error reading fixture")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
