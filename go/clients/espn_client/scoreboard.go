package espn_client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type ScoreboardResponse struct {
	Events []Event `json:"events"`
	// Skipped lists events that did not decode. They are left out of Events.
	Skipped []SkippedEvent `json:"-"`
}

// SkippedEvent is an entry of the events array that does not fit Event.
type SkippedEvent struct {
	Index int
	Err   error
}

// UnmarshalJSON decodes events one at a time so a single malformed event
// does not take the rest of the scoreboard down with it.
func (r *ScoreboardResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Events []json.RawMessage `json:"events"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Events = make([]Event, 0, len(raw.Events))
	r.Skipped = nil
	for i, msg := range raw.Events {
		var ev Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			r.Skipped = append(r.Skipped, SkippedEvent{Index: i, Err: err})
			continue
		}
		r.Events = append(r.Events, ev)
	}
	return nil
}

type Event struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Date         string        `json:"date"`
	Competitions []Competition `json:"competitions"`
}

type Competition struct {
	ID          string       `json:"id"`
	Competitors []Competitor `json:"competitors"`
	Status      Status       `json:"status"`
}

type Competitor struct {
	ID       string          `json:"id"`
	HomeAway string          `json:"homeAway"`
	Score    json.RawMessage `json:"score"`
	Team     Team            `json:"team"`
}

type Team struct {
	ID               string `json:"id"`
	DisplayName      string `json:"displayName"`
	ShortDisplayName string `json:"shortDisplayName"`
	Abbreviation     string `json:"abbreviation"`
}

type Status struct {
	Type StatusType `json:"type"`
}

type StatusType struct {
	Name        string `json:"name"`
	State       string `json:"state"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
}

// ScoreValue returns the competitor's score. The feed sends it as a string
// ("24") but numbers are accepted too. Missing or non-numeric scores report false.
func (c Competitor) ScoreValue() (int, bool) {
	raw := strings.TrimSpace(string(c.Score))
	if raw == "" || raw == "null" {
		return 0, false
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	score, err := strconv.Atoi(raw)
	if err != nil || score < 0 {
		return 0, false
	}
	return score, true
}

var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
}

// StartTime parses the event date. The feed omits seconds ("2025-12-20T17:00Z").
func (e Event) StartTime() (time.Time, bool) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, e.Date); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

type ScoreboardQuery struct {
	Group int
	Start time.Time
	End   time.Time
	Limit int
}

func (q ScoreboardQuery) endpoint() string {
	group := q.Group
	if group == 0 {
		group = FBSGroup
	}
	limit := q.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	params := url.Values{}
	params.Set("groups", strconv.Itoa(group))
	params.Set("dates", q.Start.UTC().Format(DateFormat)+"-"+q.End.UTC().Format(DateFormat))
	params.Set("limit", strconv.Itoa(limit))
	return CollegeFootballScoreboardEndpoint + "?" + params.Encode()
}

// GetCollegeFootballScoreboard fetches every event in the query's date range with one request.
func (c *ESPNClient) GetCollegeFootballScoreboard(ctx context.Context, q ScoreboardQuery) (*ScoreboardResponse, error) {
	body, err := c.Get(ctx, q.endpoint())
	if err != nil {
		return nil, fmt.Errorf("failed to get scoreboard: %w", err)
	}

	var response ScoreboardResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &response, nil
}
