package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mcdev12/bowlpool/go/internal/dbconfig"
	"github.com/mcdev12/bowlpool/go/internal/models"
)

// Snapshot mirrors the seed JSON
type Snapshot struct {
	Rounds []struct {
		Round        string `json:"round"`
		DisplayOrder int    `json:"display_order"`
	} `json:"rounds"`
	Participants []struct {
		Name     string  `json:"name"`
		Nickname *string `json:"nickname"`
		Email    *string `json:"email"`
		IsAdmin  bool    `json:"is_admin"`
	} `json:"participants"`
	Contests []struct {
		Name         string          `json:"name"`
		KickoffAfter string          `json:"kickoff_after"` // offset from -start
		FavoredTeam  string          `json:"favored_team"`
		Opponent     string          `json:"opponent"`
		Spread       decimal.Decimal `json:"spread"`
		Round        string          `json:"round"`
		TVChannel    *string         `json:"tv_channel"`
	} `json:"contests"`
}

type counts struct {
	inserted, skipped, errs int
}

func (c *counts) add(rows int64, err error) {
	switch {
	case err != nil:
		c.errs++
	case rows == 1:
		c.inserted++
	default:
		c.skipped++
	}
}

func main() {
	path := flag.String("file", "go/internal/assets/pool.json", "seed snapshot")
	start := flag.String("start", "", "RFC3339 kickoff of the first contest (default: a week from now)")
	reset := flag.Bool("reset", false, "delete existing contests and participants first")
	flag.Parse()

	// 1) Load the JSON snapshot
	data, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read JSON: %v\n", err)
		os.Exit(1)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal JSON: %v\n", err)
		os.Exit(1)
	}

	base := time.Now().UTC().Add(7 * 24 * time.Hour).Truncate(time.Hour)
	if *start != "" {
		if base, err = time.Parse(time.RFC3339, *start); err != nil {
			fmt.Fprintf(os.Stderr, "parse -start: %v\n", err)
			os.Exit(1)
		}
	}

	// 2) Connect using shared dbconfig
	ctx := context.Background()
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if *reset {
		if _, err := pool.Exec(ctx, `TRUNCATE picks, contests, participants`); err != nil {
			fmt.Fprintf(os.Stderr, "reset: %v\n", err)
			os.Exit(1)
		}
	}

	// 3) Upsert and count
	var rounds, participants, contests counts

	for _, r := range snap.Rounds {
		tag, err := pool.Exec(ctx, `
            INSERT INTO round_locks (round, locked, display_order)
            VALUES ($1, FALSE, $2)
            ON CONFLICT (round) DO NOTHING
        `, r.Round, r.DisplayOrder)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting round %s: %v\n", r.Round, err)
		}
		rounds.add(tag.RowsAffected(), err)
	}

	for _, p := range snap.Participants {
		tag, err := pool.Exec(ctx, `
            INSERT INTO participants (id, name, nickname, email, is_admin)
            VALUES ($1, $2, $3, $4, $5)
            ON CONFLICT (name) DO NOTHING
        `, uuid.New(), p.Name, p.Nickname, p.Email, p.IsAdmin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting participant %s: %v\n", p.Name, err)
		}
		participants.add(tag.RowsAffected(), err)
	}

	// contests have no natural key, so a name already present is skipped
	batch := &pgx.Batch{}
	for _, c := range snap.Contests {
		offset, err := time.ParseDuration(c.KickoffAfter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error parsing kickoff for %s: %v\n", c.Name, err)
			contests.errs++
			continue
		}
		round := c.Round
		if round == "" {
			round = models.DefaultRound
		}
		batch.Queue(`
            INSERT INTO contests (id, name, kickoff, favored_team, opponent, spread, round, tv_channel)
            SELECT $1::uuid, $2::text, $3::timestamptz, $4::text, $5::text, $6::numeric, $7::text, $8::text
            WHERE NOT EXISTS (SELECT 1 FROM contests WHERE name = $2::text)
        `, uuid.New(), c.Name, base.Add(offset), c.FavoredTeam, c.Opponent, c.Spread, round, c.TVChannel,
		).Exec(func(tag pgconn.CommandTag) error {
			contests.add(tag.RowsAffected(), nil)
			return nil
		})
	}
	if err := pool.SendBatch(ctx, batch).Close(); err != nil {
		fmt.Fprintf(os.Stderr, "error inserting contests: %v\n", err)
		contests.errs++
	}

	// 4) Print summary
	for _, line := range []struct {
		what string
		c    counts
	}{{"Rounds", rounds}, {"Participants", participants}, {"Contests", contests}} {
		fmt.Printf("%s seed complete: %d inserted, %d skipped, %d errors\n",
			line.what, line.c.inserted, line.c.skipped, line.c.errs)
	}
	fmt.Printf("First kickoff: %s\n", base.Format(time.RFC3339))
}
