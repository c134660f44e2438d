// Package csvfile is the load boundary for the two precomputed flat
// files produced by the upstream preprocessing pipeline. Schema checks
// happen once here; everything downstream can assume well-formed
// records.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/domain"
)

// Column layouts written by the preprocessing step.
var (
	reviewColumns = []string{"asin", "reviewText_english", "sentiment_label", "reviewerName", "overall", "detected_language"}
	ratingColumns = []string{"avg_rating", "combined_rating", "avg_sentiment", "review_count"}
)

// Source loads the dataset from two local CSV files.
type Source struct {
	ReviewsPath string
	RatingsPath string
}

func New(reviewsPath, ratingsPath string) *Source {
	return &Source{ReviewsPath: reviewsPath, RatingsPath: ratingsPath}
}

// LoadDataset reads both files concurrently and returns the in-memory
// snapshot. Any schema or parse problem fails the whole load with a
// descriptive error naming the file.
func (s *Source) LoadDataset(ctx context.Context) (*domain.Dataset, error) {
	ds := &domain.Dataset{}
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		rs, err := loadFile(s.ReviewsPath, ParseReviews)
		ds.Reviews = rs
		return err
	})
	g.Go(func() error {
		as, err := loadFile(s.RatingsPath, ParseRatings)
		ds.Aggregates = as
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ds, nil
}

func loadFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset file: %w", err)
	}
	defer f.Close()
	out, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// ParseReviews reads the per-review table. Required columns: asin,
// reviewText_english, sentiment_label, reviewerName, overall,
// detected_language. Extra columns are ignored.
func ParseReviews(r io.Reader) ([]domain.Review, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := headerIndex(header, reviewColumns)
	if err != nil {
		return nil, err
	}

	var out []domain.Review
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rating, err := parseIntField(rec[idx["overall"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: overall: %w", line, err)
		}
		label, err := parseSentiment(rec[idx["sentiment_label"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, domain.Review{
			ASIN:      strings.TrimSpace(rec[idx["asin"]]),
			Text:      rec[idx["reviewText_english"]],
			Sentiment: label,
			Reviewer:  rec[idx["reviewerName"]],
			Rating:    rating,
			Language:  strings.TrimSpace(rec[idx["detected_language"]]),
		})
	}
	return out, nil
}

// ParseRatings reads the per-product aggregate table. The first column
// is the ASIN index (its header name does not matter; pandas leaves it
// blank); the named columns are avg_rating, combined_rating,
// avg_sentiment and review_count.
func ParseRatings(r io.Reader) ([]domain.ProductAggregate, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := headerIndex(header, ratingColumns)
	if err != nil {
		return nil, err
	}

	var out []domain.ProductAggregate
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		agg := domain.ProductAggregate{ASIN: strings.TrimSpace(rec[0])}
		if agg.AvgRating, err = parseFloatField(rec[idx["avg_rating"]]); err != nil {
			return nil, fmt.Errorf("line %d: avg_rating: %w", line, err)
		}
		if agg.CombinedRating, err = parseFloatField(rec[idx["combined_rating"]]); err != nil {
			return nil, fmt.Errorf("line %d: combined_rating: %w", line, err)
		}
		if agg.AvgSentiment, err = parseFloatField(rec[idx["avg_sentiment"]]); err != nil {
			return nil, fmt.Errorf("line %d: avg_sentiment: %w", line, err)
		}
		if agg.ReviewCount, err = parseIntField(rec[idx["review_count"]]); err != nil {
			return nil, fmt.Errorf("line %d: review_count: %w", line, err)
		}
		out = append(out, agg)
	}
	return out, nil
}

func headerIndex(header, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseSentiment(s string) (domain.Sentiment, error) {
	switch label := domain.Sentiment(strings.ToLower(strings.TrimSpace(s))); label {
	case domain.SentimentPositive, domain.SentimentNegative, domain.SentimentNeutral:
		return label, nil
	default:
		return "", fmt.Errorf("unknown sentiment label %q", s)
	}
}

// pandas writes integers from float columns as "5.0"; accept both forms.
func parseIntField(s string) (int, error) {
	f, err := parseFloatField(s)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func parseFloatField(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}
