package scoresync

import (
	"strings"
	"time"

	"github.com/mcdev12/bowlpool/go/internal/models"
)

var nameNoise = []string{" football", "university", "college"}

// normalizeTeamName lowercases a team name and strips words the feed and the
// pool disagree on.
func normalizeTeamName(name string) string {
	n := strings.ToLower(name)
	for _, noise := range nameNoise {
		n = strings.ReplaceAll(n, noise, "")
	}
	return strings.TrimSpace(n)
}

// teamsMatch reports whether a feed name and a pool name refer to the same team.
// Containment in either direction counts, so "Ohio State Buckeyes" matches "Ohio State".
// Containment can also pair distinct teams ("Miami" inside "Miami (OH)"), so
// matches that needed it are logged.
func teamsMatch(feedName, poolName string) bool {
	f, p := normalizeTeamName(feedName), normalizeTeamName(poolName)
	if f == "" || p == "" {
		return false
	}
	return f == p || strings.Contains(f, p) || strings.Contains(p, f)
}

func exactMatch(feedName, poolName string) bool {
	f := normalizeTeamName(feedName)
	return f != "" && f == normalizeTeamName(poolName)
}

// resolveSlot returns the side a feed competitor name stands for. It fails when
// the name matches neither side or both.
func resolveSlot(c models.Contest, name string) (models.Side, bool) {
	fav, opp := teamsMatch(name, c.FavoredTeam), teamsMatch(name, c.Opponent)
	switch {
	case fav && !opp:
		return models.SideFavored, true
	case opp && !fav:
		return models.SideOpponent, true
	default:
		return "", false
	}
}

// assignment maps an event's competitor slots onto the contest's sides.
type assignment struct {
	event         FeedEvent
	favoredSlot   int
	opponentSlot  int
	substringUsed bool
}

// assign resolves both competitor slots. Each slot must resolve to exactly one
// side and the two slots must resolve to different sides.
func assign(c models.Contest, ev FeedEvent) (assignment, bool) {
	a, b := ev.Competitors[0], ev.Competitors[1]
	sideA, okA := resolveSlot(c, a.Name)
	sideB, okB := resolveSlot(c, b.Name)
	if !okA || !okB || sideA == sideB {
		return assignment{}, false
	}

	res := assignment{event: ev, favoredSlot: 0, opponentSlot: 1}
	if sideA == models.SideOpponent {
		res.favoredSlot, res.opponentSlot = 1, 0
	}
	res.substringUsed = !exactMatch(ev.Competitors[res.favoredSlot].Name, c.FavoredTeam) ||
		!exactMatch(ev.Competitors[res.opponentSlot].Name, c.Opponent)
	return res, true
}

// matchEvent finds the feed event for a contest. With several candidates the one
// starting closest to the contest kickoff wins; if that cannot be decided the
// contest is skipped with ErrNoConfidentMatch.
func matchEvent(c models.Contest, events []FeedEvent) (assignment, error) {
	var candidates []assignment
	for _, ev := range events {
		if a, ok := assign(c, ev); ok {
			candidates = append(candidates, a)
		}
	}

	switch len(candidates) {
	case 0:
		return assignment{}, ErrNoMatch
	case 1:
		return candidates[0], nil
	}

	best, bestGap, tied := -1, time.Duration(0), false
	for i, cand := range candidates {
		if cand.event.Start == nil {
			return assignment{}, ErrNoConfidentMatch
		}
		gap := cand.event.Start.Sub(c.Kickoff)
		if gap < 0 {
			gap = -gap
		}
		switch {
		case best == -1 || gap < bestGap:
			best, bestGap, tied = i, gap, false
		case gap == bestGap:
			tied = true
		}
	}
	if tied {
		return assignment{}, ErrNoConfidentMatch
	}
	return candidates[best], nil
}
