package models

import "time"

// RoundLock is the administrator controlled lock flag for a round of contests.
type RoundLock struct {
	Round        string `json:"round"`
	Locked       bool   `json:"locked"`
	DisplayOrder int    `json:"display_order"`
}

var defaultRoundOrder = map[string]int{
	"first_round":   1,
	"quarterfinals": 2,
	"semifinals":    3,
	"championship":  4,
}

// DefaultRoundOrder returns the display order used when a round lock is first created.
func DefaultRoundOrder(round string) int {
	if order, ok := defaultRoundOrder[round]; ok {
		return order
	}
	return 999
}

// ClockOverride replaces wall-clock time everywhere "now" is needed while set.
type ClockOverride struct {
	At *time.Time `json:"at,omitempty"`
}
