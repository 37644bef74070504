package models

import (
	"github.com/google/uuid"
)

// Participant represents a member of the pool
type Participant struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Nickname *string   `json:"nickname,omitempty"`
	Email    *string   `json:"email,omitempty"`
	IsAdmin  bool      `json:"is_admin"`
	IsActive bool      `json:"is_active"` // has a complete pick set and is scored
}

// DisplayName returns the nickname when set, otherwise the name.
func (p Participant) DisplayName() string {
	if p.Nickname != nil && *p.Nickname != "" {
		return *p.Nickname
	}
	return p.Name
}
