package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Side is the side of the spread a participant picked.
type Side string

const (
	SideFavored  Side = "favored"
	SideOpponent Side = "opponent"
)

// ParseSide validates a stored or submitted side value.
func ParseSide(s string) (Side, error) {
	switch side := Side(strings.ToLower(strings.TrimSpace(s))); side {
	case SideFavored, SideOpponent:
		return side, nil
	default:
		return "", fmt.Errorf("%w: unknown pick side %q", ErrValidation, s)
	}
}

// Pick is a participant's chosen side for one contest. At most one exists per (participant, contest).
type Pick struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	ContestID     uuid.UUID `json:"contest_id"`
	Side          Side      `json:"side"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Outcome is the result of a contest against the spread.
type Outcome string

const (
	OutcomeFavored      Outcome = "favored"
	OutcomeOpponent     Outcome = "opponent"
	OutcomePush         Outcome = "push"
	OutcomeUndetermined Outcome = "undetermined"
)

// Decided reports whether the outcome has a winning side.
func (o Outcome) Decided() bool {
	return o == OutcomeFavored || o == OutcomeOpponent
}

// WinningSide returns the side that won. Only meaningful when Decided is true.
func (o Outcome) WinningSide() Side {
	if o == OutcomeFavored {
		return SideFavored
	}
	return SideOpponent
}
