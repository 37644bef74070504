package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContestStatus defines where a contest is in its lifecycle.
type ContestStatus string

const (
	ContestStatusNotStarted ContestStatus = "not_started"
	ContestStatusInProgress ContestStatus = "in_progress"
	ContestStatusFinal      ContestStatus = "final"
	ContestStatusCanceled   ContestStatus = "canceled"
)

// DefaultRound is the round a contest belongs to when none is given.
const DefaultRound = "first_round"

// ParseContestStatus validates a stored or submitted status value.
func ParseContestStatus(s string) (ContestStatus, error) {
	switch st := ContestStatus(strings.TrimSpace(s)); st {
	case ContestStatusNotStarted, ContestStatusInProgress, ContestStatusFinal, ContestStatusCanceled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown contest status %q", ErrValidation, s)
	}
}

// IsTerminal reports whether no further feed updates are expected.
func (s ContestStatus) IsTerminal() bool {
	return s == ContestStatusFinal || s == ContestStatusCanceled
}

// Contest is a single scheduled game that participants pick against the spread.
type Contest struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Kickoff       time.Time       `json:"kickoff"`
	FavoredTeam   string          `json:"favored_team"`
	Opponent      string          `json:"opponent"`
	Spread        decimal.Decimal `json:"spread"` // added to the favored score, e.g. -3.5
	FavoredScore  *int            `json:"favored_score,omitempty"`
	OpponentScore *int            `json:"opponent_score,omitempty"`
	Status        ContestStatus   `json:"status"`
	Ignored       bool            `json:"ignored"`
	Round         string          `json:"round"`
	TVChannel     *string         `json:"tv_channel,omitempty"`
}

// TeamName returns the team name for a side of the contest.
func (c Contest) TeamName(side Side) string {
	if side == SideFavored {
		return c.FavoredTeam
	}
	return c.Opponent
}

// ContestResult is the set of fields the live feed is allowed to write.
type ContestResult struct {
	Status        ContestStatus `json:"status"`
	FavoredScore  int           `json:"favored_score"`
	OpponentScore int           `json:"opponent_score"`
}

// Matches reports whether the contest already holds exactly this result.
func (r ContestResult) Matches(c Contest) bool {
	return c.Status == r.Status &&
		c.FavoredScore != nil && *c.FavoredScore == r.FavoredScore &&
		c.OpponentScore != nil && *c.OpponentScore == r.OpponentScore
}
