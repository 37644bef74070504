// Package spread decides contest outcomes against the spread.
package spread

import (
	"github.com/shopspring/decimal"

	"github.com/mcdev12/bowlpool/go/internal/models"
)

// Resolve returns the outcome of a contest against its spread.
// Canceled and ignored contests are always a push, whatever the scores say.
// Anything short of a final with both scores reported is undetermined.
func Resolve(c models.Contest) models.Outcome {
	if c.Ignored || c.Status == models.ContestStatusCanceled {
		return models.OutcomePush
	}
	if c.Status != models.ContestStatusFinal {
		return models.OutcomeUndetermined
	}
	if c.FavoredScore == nil || c.OpponentScore == nil {
		return models.OutcomeUndetermined
	}

	adjusted := decimal.NewFromInt(int64(*c.FavoredScore)).Add(c.Spread)
	switch adjusted.Cmp(decimal.NewFromInt(int64(*c.OpponentScore))) {
	case 1:
		return models.OutcomeFavored
	case -1:
		return models.OutcomeOpponent
	default:
		return models.OutcomePush
	}
}

// PickResult is how a single pick fared.
type PickResult string

const (
	PickWon  PickResult = "won"
	PickLost PickResult = "lost"
	PickNone PickResult = "none" // push or not decided yet
)

// ResultFor reports whether picking side on c won, lost, or neither.
func ResultFor(c models.Contest, side models.Side) PickResult {
	outcome := Resolve(c)
	if !outcome.Decided() {
		return PickNone
	}
	if outcome.WinningSide() == side {
		return PickWon
	}
	return PickLost
}
