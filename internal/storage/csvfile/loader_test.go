package csvfile_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/domain"
	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/storage/csvfile"
)

const reviewsCSV = `asin,reviewText_english,sentiment_label,reviewerName,overall,detected_language
B0001,"Great strings. Love them.",positive,Ana,5.0,en
B0001,"Broke fast.",negative,Ben,2,en
B0002,"Fine capo.",neutral,Cleo,3.0,es
`

const ratingsCSV = `,avg_rating,combined_rating,avg_sentiment,review_count
B0001,3.5,3.75,0.41,2.0
B0002,3.0,3.1,0.0,1
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDataset(t *testing.T) {
	src := csvfile.New(
		writeTemp(t, "reviews.csv", reviewsCSV),
		writeTemp(t, "ratings.csv", ratingsCSV),
	)
	ds, err := src.LoadDataset(context.Background())
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if len(ds.Reviews) != 3 || len(ds.Aggregates) != 2 {
		t.Fatalf("rows: %d reviews, %d aggregates", len(ds.Reviews), len(ds.Aggregates))
	}
	first := ds.Reviews[0]
	if first.ASIN != "B0001" || first.Rating != 5 || first.Sentiment != domain.SentimentPositive || first.Language != "en" {
		t.Fatalf("first review: %+v", first)
	}
	agg := ds.Aggregates[0]
	if agg.ASIN != "B0001" || agg.CombinedRating != 3.75 || agg.ReviewCount != 2 {
		t.Fatalf("first aggregate: %+v", agg)
	}
}

func TestParseReviews_MissingColumn(t *testing.T) {
	bad := `asin,reviewText_english,reviewerName,overall,detected_language
B0001,"text",Ana,5,en
`
	_, err := csvfile.ParseReviews(strings.NewReader(bad))
	if err == nil || !strings.Contains(err.Error(), "sentiment_label") {
		t.Fatalf("err = %v, want missing sentiment_label", err)
	}
}

func TestParseReviews_EmptyFile(t *testing.T) {
	_, err := csvfile.ParseReviews(strings.NewReader(""))
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("err = %v, want empty-file error", err)
	}
}

func TestParseReviews_BadLabel(t *testing.T) {
	bad := reviewsCSV + "B0003,text,happy,Dee,4,en\n"
	_, err := csvfile.ParseReviews(strings.NewReader(bad))
	if err == nil || !strings.Contains(err.Error(), "sentiment") {
		t.Fatalf("err = %v, want sentiment label error", err)
	}
	if !strings.Contains(err.Error(), "line 5") {
		t.Fatalf("error should name the line: %v", err)
	}
}

func TestParseRatings_BadNumber(t *testing.T) {
	bad := `,avg_rating,combined_rating,avg_sentiment,review_count
B0001,high,3.75,0.41,2
`
	_, err := csvfile.ParseRatings(strings.NewReader(bad))
	if err == nil || !strings.Contains(err.Error(), "avg_rating") {
		t.Fatalf("err = %v, want avg_rating error", err)
	}
}

func TestLoadDataset_MissingFile(t *testing.T) {
	src := csvfile.New(filepath.Join(t.TempDir(), "absent.csv"), writeTemp(t, "ratings.csv", ratingsCSV))
	if _, err := src.LoadDataset(context.Background()); err == nil {
		t.Fatal("expected error for missing reviews file")
	}
}
