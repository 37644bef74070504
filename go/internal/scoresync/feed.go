package scoresync

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/bowlpool/go/clients/espn_client"
)

// FeedEvent is one game from the live-score feed with exactly two competitors.
type FeedEvent struct {
	ID          string
	Start       *time.Time
	Status      string
	Competitors [2]FeedCompetitor
}

// FeedCompetitor is one side of a feed event. Score is nil when the feed did not report a number.
type FeedCompetitor struct {
	Name  string
	Score *int
}

// Feed fetches every event between two UTC dates, inclusive, with a single request.
type Feed interface {
	Events(ctx context.Context, start, end time.Time) ([]FeedEvent, error)
}

// ScoreboardClient is the slice of the ESPN client the feed needs.
type ScoreboardClient interface {
	GetCollegeFootballScoreboard(ctx context.Context, q espn_client.ScoreboardQuery) (*espn_client.ScoreboardResponse, error)
}

// ESPNFeed adapts the ESPN scoreboard to Feed.
type ESPNFeed struct {
	client ScoreboardClient
	group  int
}

func NewESPNFeed(client ScoreboardClient, group int) *ESPNFeed {
	return &ESPNFeed{client: client, group: group}
}

func (f *ESPNFeed) Events(ctx context.Context, start, end time.Time) ([]FeedEvent, error) {
	resp, err := f.client.GetCollegeFootballScoreboard(ctx, espn_client.ScoreboardQuery{
		Group: f.group,
		Start: start,
		End:   end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scoreboard: %w", err)
	}

	for _, skipped := range resp.Skipped {
		log.Debug().Err(skipped.Err).Int("index", skipped.Index).Msg("skipping undecodable feed event")
	}

	events := make([]FeedEvent, 0, len(resp.Events))
	for _, ev := range resp.Events {
		fe, ok := toFeedEvent(ev)
		if !ok {
			log.Debug().Str("event_id", ev.ID).Str("name", ev.Name).Msg("skipping malformed feed event")
			continue
		}
		events = append(events, fe)
	}
	return events, nil
}

// toFeedEvent keeps only events whose first competition has exactly two competitors.
func toFeedEvent(ev espn_client.Event) (FeedEvent, bool) {
	if len(ev.Competitions) == 0 {
		return FeedEvent{}, false
	}
	comp := ev.Competitions[0]
	if len(comp.Competitors) != 2 {
		return FeedEvent{}, false
	}

	fe := FeedEvent{ID: ev.ID, Status: comp.Status.Type.Name}
	if start, ok := ev.StartTime(); ok {
		fe.Start = &start
	}
	for i, c := range comp.Competitors {
		fe.Competitors[i].Name = c.Team.DisplayName
		if score, ok := c.ScoreValue(); ok {
			fe.Competitors[i].Score = &score
		}
	}
	return fe, true
}
