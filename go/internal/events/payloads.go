package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	ContestResultUpdated = "contest.result_updated"
)

// Event is a published domain event. Payload is the JSON-encoded payload struct.
type Event struct {
	ID        uuid.UUID
	Type      string
	EntityID  uuid.UUID
	Payload   []byte
	CreatedAt time.Time
}

// NewEvent encodes payload and stamps a fresh event id.
func NewEvent(eventType string, entityID uuid.UUID, payload any, at time.Time) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{
		ID:        uuid.New(),
		Type:      eventType,
		EntityID:  entityID,
		Payload:   data,
		CreatedAt: at.UTC(),
	}, nil
}

// ContestResultUpdatedPayload is the payload for a ContestResultUpdated event
type ContestResultUpdatedPayload struct {
	ContestID      string    `json:"contest_id"`
	Name           string    `json:"name"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
	FavoredTeam    string    `json:"favored_team"`
	FavoredScore   int       `json:"favored_score"`
	Opponent       string    `json:"opponent"`
	OpponentScore  int       `json:"opponent_score"`
	Outcome        string    `json:"outcome"`
	UpdatedAt      time.Time `json:"updated_at"`
}
