package httpserver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	httpserver "github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/adapters/http_server"
	redisad "github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/adapters/redis"
	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/app"
	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/domain"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	ds := &domain.Dataset{
		Reviews: []domain.Review{
			{ASIN: "B0001", Text: "Great strings. Warm tone. Highly recommended.", Sentiment: domain.SentimentPositive, Reviewer: "Ana", Rating: 5, Language: "en"},
			{ASIN: "B0001", Text: "Strings broke fast.", Sentiment: domain.SentimentNegative, Reviewer: "Ben", Rating: 2, Language: "en"},
			{ASIN: "B0002", Text: "Fine capo.", Sentiment: domain.SentimentNeutral, Reviewer: "Cleo", Rating: 3, Language: "es"},
		},
		Aggregates: []domain.ProductAggregate{
			{ASIN: "B0001", AvgRating: 3.5, CombinedRating: 3.75, AvgSentiment: 0.2, ReviewCount: 2},
			{ASIN: "B0002", AvgRating: 3.0, CombinedRating: 3.1, AvgSentiment: 0.0, ReviewCount: 1},
		},
	}
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	q := app.NewAnalysisService(ds, cache, 10*time.Minute)

	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{Q: q})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func TestGetProduct_OK(t *testing.T) {
	ts := testServer(t)

	res, err := http.Get(ts.URL + "/v1/products/B0001")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	if res.Header.Get("ETag") == "" {
		t.Fatal("expected ETag header")
	}

	var body domain.ProductAnalysis
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ASIN != "B0001" || body.TotalReviews != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.SentimentPercents[domain.SentimentPositive] != 50.0 {
		t.Fatalf("positive percent = %f", body.SentimentPercents[domain.SentimentPositive])
	}
	if body.Rating.CombinedRating != 3.75 {
		t.Fatalf("rating pass-through: %+v", body.Rating)
	}
}

func TestGetProduct_ETag304(t *testing.T) {
	ts := testServer(t)

	res, err := http.Get(ts.URL + "/v1/products/B0001")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	etag := res.Header.Get("ETag")

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/products/B0001", nil)
	req.Header.Set("If-None-Match", etag)
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET with If-None-Match: %v", err)
	}
	res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("status %d, want 304", res2.StatusCode)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	ts := testServer(t)

	res, err := http.Get(ts.URL + "/v1/products/B9999")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d, want 404", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content type %q", ct)
	}
	var p struct {
		Status int    `json:"status"`
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Status != 404 || p.Detail == "" {
		t.Fatalf("unexpected problem: %+v", p)
	}
}

func TestOverviewAndProducts(t *testing.T) {
	ts := testServer(t)

	res, err := http.Get(ts.URL + "/v1/overview")
	if err != nil {
		t.Fatalf("GET overview: %v", err)
	}
	defer res.Body.Close()
	var sum domain.DatasetSummary
	if err := json.NewDecoder(res.Body).Decode(&sum); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sum.TotalReviews != 3 || sum.DistinctProducts != 2 || sum.DistinctLanguages != 2 {
		t.Fatalf("unexpected overview: %+v", sum)
	}
	if len(sum.TopProducts) != 2 || sum.TopProducts[0].ASIN != "B0001" {
		t.Fatalf("top products: %+v", sum.TopProducts)
	}

	res2, err := http.Get(ts.URL + "/v1/products")
	if err != nil {
		t.Fatalf("GET products: %v", err)
	}
	defer res2.Body.Close()
	var listing []domain.ProductListing
	if err := json.NewDecoder(res2.Body).Decode(&listing); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listing) != 2 || listing[0].ASIN != "B0001" || listing[0].ReviewCount != 2 {
		t.Fatalf("unexpected listing: %+v", listing)
	}
}
