package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/adapters/observability"
	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/adapters/upstream"
	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/app"
	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/domain"
	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/shared"
	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/storage/csvfile"
	mysqlrepo "github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	_ = godotenv.Load()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Int("workers", cfg.Workers).
		Int("batch_size", cfg.BatchSize).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	// prefer the upstream file host when URLs are configured
	var src domain.DatasetSource
	if cfg.ReviewsURL != "" && cfg.RatingsURL != "" {
		src = upstream.NewSource(upstream.NewClient(cfg.FetchRPS), cfg.ReviewsURL, cfg.RatingsURL)
	} else {
		src = csvfile.New(cfg.ReviewsCSV, cfg.RatingsCSV)
	}

	ing := app.NewIngestionService(src, repo)
	if err := ing.Run(ctx, cfg.Workers, cfg.BatchSize); err != nil {
		log.Fatal().Err(err).Msg("ingestion failed")
	}
	log.Info().Msg("ingestion completed")
}
