package shared

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DataBackend string // csv | mysql
	ReviewsCSV  string
	RatingsCSV  string
	ReviewsURL  string
	RatingsURL  string
	FetchRPS    int
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	Workers     int
	BatchSize   int
	CacheTTL    time.Duration
}

// Load builds the config in three layers: defaults, then the optional
// YAML file named by ANALYZER_CONFIG, then environment variables.
func Load() Config {
	c := Config{
		AppEnv:      "prod",
		HTTPAddr:    ":8080",
		DataBackend: "csv",
		ReviewsCSV:  "final_reviews_with_analysis.csv",
		RatingsCSV:  "product_ratings_analysis.csv",
		FetchRPS:    5,
		MySQLDSN:    "root:root@tcp(localhost:3306)/reviews?parseTime=true&charset=utf8mb4,utf8&loc=UTC",
		RedisAddr:   "localhost:6379",
		Workers:     4,
		BatchSize:   500,
		CacheTTL:    900 * time.Second,
	}
	if path := os.Getenv("ANALYZER_CONFIG"); path != "" {
		if err := c.applyFile(path); err != nil {
			log.Warn().Str("path", path).Err(err).Msg("config file ignored")
		}
	}
	c.applyEnv()
	return c
}

// fileConfig mirrors Config with optional fields, so the file only
// overrides what it names.
type fileConfig struct {
	AppEnv      *string `yaml:"app_env"`
	HTTPAddr    *string `yaml:"http_addr"`
	DataBackend *string `yaml:"data_backend"`
	ReviewsCSV  *string `yaml:"reviews_csv"`
	RatingsCSV  *string `yaml:"ratings_csv"`
	ReviewsURL  *string `yaml:"reviews_url"`
	RatingsURL  *string `yaml:"ratings_url"`
	FetchRPS    *int    `yaml:"fetch_rps"`
	MySQLDSN    *string `yaml:"mysql_dsn"`
	RedisAddr   *string `yaml:"redis_addr"`
	RedisDB     *int    `yaml:"redis_db"`
	RedisPass   *string `yaml:"redis_password"`
	Workers     *int    `yaml:"ingest_workers"`
	BatchSize   *int    `yaml:"ingest_batch_size"`
	CacheTTLSec *int    `yaml:"cache_ttl_seconds"`
}

func (c *Config) applyFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	setStr := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	setStr(&c.AppEnv, fc.AppEnv)
	setStr(&c.HTTPAddr, fc.HTTPAddr)
	setStr(&c.DataBackend, fc.DataBackend)
	setStr(&c.ReviewsCSV, fc.ReviewsCSV)
	setStr(&c.RatingsCSV, fc.RatingsCSV)
	setStr(&c.ReviewsURL, fc.ReviewsURL)
	setStr(&c.RatingsURL, fc.RatingsURL)
	setInt(&c.FetchRPS, fc.FetchRPS)
	setStr(&c.MySQLDSN, fc.MySQLDSN)
	setStr(&c.RedisAddr, fc.RedisAddr)
	setInt(&c.RedisDB, fc.RedisDB)
	setStr(&c.RedisPass, fc.RedisPass)
	setInt(&c.Workers, fc.Workers)
	setInt(&c.BatchSize, fc.BatchSize)
	if fc.CacheTTLSec != nil {
		c.CacheTTL = time.Duration(*fc.CacheTTLSec) * time.Second
	}
	return nil
}

func (c *Config) applyEnv() {
	env := func(dst *string, k string) {
		if v := os.Getenv(k); v != "" {
			*dst = v
		}
	}
	atoi := func(dst *int, k string) {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	env(&c.AppEnv, "APP_ENV")
	env(&c.HTTPAddr, "HTTP_ADDR")
	env(&c.DataBackend, "DATA_BACKEND")
	env(&c.ReviewsCSV, "REVIEWS_CSV")
	env(&c.RatingsCSV, "RATINGS_CSV")
	env(&c.ReviewsURL, "REVIEWS_URL")
	env(&c.RatingsURL, "RATINGS_URL")
	atoi(&c.FetchRPS, "FETCH_RPS")
	env(&c.MySQLDSN, "MYSQL_DSN")
	env(&c.RedisAddr, "REDIS_ADDR")
	atoi(&c.RedisDB, "REDIS_DB")
	env(&c.RedisPass, "REDIS_PASSWORD")
	atoi(&c.Workers, "INGEST_WORKERS")
	atoi(&c.BatchSize, "INGEST_BATCH_SIZE")
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.CacheTTL = time.Duration(n) * time.Second
		}
	}
}
