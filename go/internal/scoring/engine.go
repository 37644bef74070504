package scoring

import (
	"sort"

	"github.com/google/uuid"

	"github.com/mcdev12/bowlpool/go/internal/models"
	"github.com/mcdev12/bowlpool/go/internal/spread"
)

// ContestColumn is one contest in the score matrix.
type ContestColumn struct {
	Contest    models.Contest `json:"contest"`
	Outcome    models.Outcome `json:"outcome"`
	Winners    int            `json:"winners"`
	Losers     int            `json:"losers"`
	PickCounts PickCounts     `json:"pick_counts"`
}

// PickCounts is how the active participants split on a contest.
type PickCounts struct {
	Favored  int `json:"favored"`
	Opponent int `json:"opponent"`
}

// ParticipantRow is one active participant's line in the score matrix.
type ParticipantRow struct {
	Participant models.Participant        `json:"participant"`
	Rank        int                       `json:"rank"`
	Scores      map[uuid.UUID]int         `json:"scores"` // keyed by contest id
	Picks       map[uuid.UUID]models.Side `json:"picks,omitempty"`
	Total       int                       `json:"total"`
}

// Matrix holds every active participant's score per contest plus totals.
type Matrix struct {
	Contests []ContestColumn  `json:"contests"`
	Rows     []ParticipantRow `json:"rows"`
}

// Row returns the row for a participant, or nil when they are not scored.
func (m *Matrix) Row(participantID uuid.UUID) *ParticipantRow {
	for i := range m.Rows {
		if m.Rows[i].Participant.ID == participantID {
			return &m.Rows[i]
		}
	}
	return nil
}

// Compute builds the zero-sum score matrix.
//
// On every decided contest each winner collects one point from each loser, so a
// winner scores the number of losers and a loser gives up the number of winners.
// Pushes, undecided contests, and contests with nobody on one side score zero for
// everyone. Participants without a pick on a contest sit that contest out.
// Only active participants are scored. The result does not depend on input order.
func Compute(participants []models.Participant, contests []models.Contest, picks []models.Pick) *Matrix {
	active := make([]models.Participant, 0, len(participants))
	for _, p := range participants {
		if p.IsActive {
			active = append(active, p)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		a, b := active[i].DisplayName(), active[j].DisplayName()
		if a != b {
			return a < b
		}
		return active[i].ID.String() < active[j].ID.String()
	})

	ordered := make([]models.Contest, len(contests))
	copy(ordered, contests)
	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].Kickoff.Equal(ordered[j].Kickoff) {
			return ordered[i].Kickoff.Before(ordered[j].Kickoff)
		}
		return ordered[i].ID.String() < ordered[j].ID.String()
	})

	// picksByContest[contest][participant] = side
	picksByContest := make(map[uuid.UUID]map[uuid.UUID]models.Side, len(ordered))
	for _, p := range picks {
		byParticipant, ok := picksByContest[p.ContestID]
		if !ok {
			byParticipant = make(map[uuid.UUID]models.Side)
			picksByContest[p.ContestID] = byParticipant
		}
		byParticipant[p.ParticipantID] = p.Side
	}

	m := &Matrix{
		Contests: make([]ContestColumn, 0, len(ordered)),
		Rows:     make([]ParticipantRow, len(active)),
	}
	for i, p := range active {
		m.Rows[i] = ParticipantRow{
			Participant: p,
			Scores:      make(map[uuid.UUID]int, len(ordered)),
			Picks:       make(map[uuid.UUID]models.Side),
		}
	}

	for _, c := range ordered {
		col := ContestColumn{Contest: c, Outcome: spread.Resolve(c)}
		contestPicks := picksByContest[c.ID]

		for i := range m.Rows {
			side, picked := contestPicks[m.Rows[i].Participant.ID]
			if !picked {
				continue
			}
			m.Rows[i].Picks[c.ID] = side
			if side == models.SideFavored {
				col.PickCounts.Favored++
			} else {
				col.PickCounts.Opponent++
			}
			if col.Outcome.Decided() {
				if side == col.Outcome.WinningSide() {
					col.Winners++
				} else {
					col.Losers++
				}
			}
		}

		for i := range m.Rows {
			m.Rows[i].Scores[c.ID] = contestScore(col, contestPicks[m.Rows[i].Participant.ID])
			m.Rows[i].Total += m.Rows[i].Scores[c.ID]
		}
		m.Contests = append(m.Contests, col)
	}

	rank(m.Rows)
	return m
}

func contestScore(col ContestColumn, side models.Side) int {
	if !col.Outcome.Decided() || side == "" || col.Winners == 0 || col.Losers == 0 {
		return 0
	}
	if side == col.Outcome.WinningSide() {
		return col.Losers
	}
	return -col.Winners
}

// rank assigns standard competition ranks (1, 1, 3) by total, highest first.
// Row order is left untouched.
func rank(rows []ParticipantRow) {
	totals := make([]int, len(rows))
	for i, r := range rows {
		totals[i] = r.Total
	}
	for i := range rows {
		higher := 0
		for _, t := range totals {
			if t > rows[i].Total {
				higher++
			}
		}
		rows[i].Rank = higher + 1
	}
}

// Standings returns the rows ordered by rank, ties in matrix order.
func (m *Matrix) Standings() []ParticipantRow {
	out := make([]ParticipantRow, len(m.Rows))
	copy(out, m.Rows)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out
}
