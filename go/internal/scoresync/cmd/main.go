// Command scoresync runs one score sync against the live feed and exits.
// Schedule it externally (cron, k8s CronJob) at whatever cadence is wanted.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/bowlpool/go/clients/espn_client"
	"github.com/mcdev12/bowlpool/go/internal/dbconfig"
	"github.com/mcdev12/bowlpool/go/internal/events"
	"github.com/mcdev12/bowlpool/go/internal/scoresync"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && level != zerolog.NoLevel {
		zerolog.SetGlobalLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := syncConfig{
		feedURL:     getEnv("FEED_BASE_URL", espn_client.BaseURL),
		feedGroup:   getEnvAsInt("FEED_GROUP", espn_client.FBSGroup),
		feedTimeout: getEnvAsDuration("FEED_TIMEOUT", 10*time.Second),
		natsURL:     os.Getenv("NATS_URL"),
	}
	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("score sync failed")
		stop()
		os.Exit(1)
	}
}

type syncConfig struct {
	feedURL     string
	feedGroup   int
	feedTimeout time.Duration
	natsURL     string
}

func run(ctx context.Context, cfg syncConfig) error {
	// Database configuration
	dbCfg := dbconfig.NewConfigFromEnv()
	db, err := sql.Open("postgres", dbCfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	dbCfg.ApplyPool(db)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().
		Str("database", dbCfg.Database).
		Str("feed_url", cfg.feedURL).
		Int("feed_group", cfg.feedGroup).
		Msg("starting score sync")

	client := espn_client.NewESPNClient(cfg.feedURL)
	client.SetTimeout(cfg.feedTimeout)

	repo := scoresync.NewRepository(db)
	opts := []scoresync.Option{scoresync.WithRecorder(repo)}
	if cfg.natsURL != "" {
		jsCfg := events.DefaultJetStreamConfig()
		jsCfg.URL = cfg.natsURL
		publisher, err := events.NewJetStreamPublisher(ctx, jsCfg)
		if err != nil {
			return fmt.Errorf("failed to connect event publisher: %w", err)
		}
		defer publisher.Close()
		opts = append(opts, scoresync.WithPublisher(publisher))
	}

	app := scoresync.NewApp(repo, scoresync.NewESPNFeed(client, cfg.feedGroup), opts...)
	result, err := app.Run(ctx)
	if err != nil {
		return err
	}

	log.Info().
		Int("candidates", result.Candidates).
		Int("matched", result.Matched).
		Int("updated", result.Updated).
		Int("failed", result.Failed).
		Msg("score sync finished")
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration falls back to defaultValue for unparsable or non-positive
// durations. A zero client timeout would mean no timeout at all.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", value).Dur("default", defaultValue).Msg("ignoring invalid duration")
		return defaultValue
	}
	return d
}
