package scoresync

import (
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/bowlpool/go/internal/models"
)

// Result counts what one run did with each candidate contest.
type Result struct {
	Candidates int             `json:"candidates"` // unsettled contests considered
	Events     int             `json:"events"`     // well-formed feed events received
	Matched    int             `json:"matched"`
	Updated    int             `json:"updated"`
	Unchanged  int             `json:"unchanged"`
	Unmatched  int             `json:"unmatched"`
	Ambiguous  int             `json:"ambiguous"`
	Incomplete int             `json:"incomplete"` // matched but scores not numeric
	Failed     int             `json:"failed"`
	Updates    []ContestUpdate `json:"updates,omitempty"`
}

// ContestUpdate is one applied result change.
type ContestUpdate struct {
	ContestID      uuid.UUID            `json:"contest_id"`
	Name           string               `json:"name"`
	PreviousStatus models.ContestStatus `json:"previous_status"`
	Result         models.ContestResult `json:"result"`
}

// SyncRun is the audit record of one run that reached the feed.
type SyncRun struct {
	ID         uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	Result     Result
	Error      string
}
