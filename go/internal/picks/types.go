package picks

import (
	"github.com/google/uuid"

	"github.com/mcdev12/bowlpool/go/internal/models"
	"github.com/mcdev12/bowlpool/go/internal/spread"
)

// SavePickRequest sets one participant's side on one contest.
type SavePickRequest struct {
	ParticipantID uuid.UUID
	ContestID     uuid.UUID
	Side          string
}

// SubmitPicksRequest is a complete pick set: one side per contest.
type SubmitPicksRequest struct {
	ParticipantID uuid.UUID
	Picks         map[uuid.UUID]string
}

// WriteResult describes what a pick write changed.
type WriteResult struct {
	Picks    []models.Pick `json:"picks"`
	Complete bool          `json:"complete"` // participant now has a side on every contest
}

// ScoredPick is a pick plus its result against the spread.
type ScoredPick struct {
	models.Pick
	Result spread.PickResult `json:"result"`
}
