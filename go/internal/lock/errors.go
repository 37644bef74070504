package lock

import (
	"fmt"
	"time"

	"github.com/mcdev12/bowlpool/go/internal/models"
)

// ErrLocked matches every *LockedError through errors.Is.
var ErrLocked = models.ErrLocked

// Reason names the signal that locked a write.
type Reason string

const (
	ReasonKickoff Reason = "kickoff"
	ReasonRound   Reason = "round"
)

// LockedError is returned when a pick write is rejected.
type LockedError struct {
	Reason Reason
	Round  string    // set when Reason is ReasonRound
	At     time.Time // first kickoff, set when Reason is ReasonKickoff
}

func (e *LockedError) Error() string {
	if e.Reason == ReasonRound {
		return fmt.Sprintf("%s: round %q is locked", ErrLocked, e.Round)
	}
	return fmt.Sprintf("%s: first kickoff was at %s", ErrLocked, e.At.Format(time.RFC3339))
}

func (e *LockedError) Is(target error) bool {
	return target == ErrLocked
}
