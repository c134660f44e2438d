package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	server "github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/adapters/http_server"
	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/adapters/observability"
	redisad "github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/adapters/redis"
	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/app"
	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/domain"
	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/shared"
	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/storage/csvfile"
	mysqlrepo "github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/storage/mysql"
)

func main() {
	_ = godotenv.Load()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// dataset snapshot, loaded once for the process lifetime
	var src domain.DatasetSource
	switch cfg.DataBackend {
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		src = mysqlrepo.New(db)
	default:
		src = csvfile.New(cfg.ReviewsCSV, cfg.RatingsCSV)
	}

	ds, err := src.LoadDataset(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("dataset load failed")
	}
	log.Info().
		Int("reviews", len(ds.Reviews)).
		Int("products", len(ds.Aggregates)).
		Msg("dataset loaded")

	// deps
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	q := app.NewAnalysisService(ds, cache, cfg.CacheTTL)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
