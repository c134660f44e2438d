// Package upstream downloads the precomputed dataset files from the
// preprocessing pipeline's file host, so the ingestor can mirror a
// snapshot it does not have on local disk.
package upstream

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/adapters/observability"
	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/domain"
	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/storage/csvfile"
)

var (
	ErrNotFound     = errors.New("upstream: not found")
	ErrUnauthorized = errors.New("upstream: unauthorized")
	ErrForbidden    = errors.New("upstream: forbidden")
)

type Client struct {
	hc *http.Client
	rl *rate.Limiter
}

func NewClient(rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		hc: &http.Client{Timeout: 60 * time.Second},
		rl: rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// FetchCSV downloads url with client-side rate limiting and retries.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) FetchCSV(ctx context.Context, name, url string) ([]byte, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/csv")
		req.Header.Set("User-Agent", "reviews-analyzer/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return nil, lastErr
		}
		observability.ObserveFetch(name, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			b, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, err
			}
			return b, nil

		case http.StatusNotFound:
			resp.Body.Close()
			return nil, ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return nil, ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return nil, ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return nil, lastErr
}

// Source implements domain.DatasetSource by downloading both files and
// handing them to the csvfile parsers.
type Source struct {
	client     *Client
	reviewsURL string
	ratingsURL string
}

func NewSource(client *Client, reviewsURL, ratingsURL string) *Source {
	return &Source{client: client, reviewsURL: reviewsURL, ratingsURL: ratingsURL}
}

func (s *Source) LoadDataset(ctx context.Context) (*domain.Dataset, error) {
	ds := &domain.Dataset{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.client.FetchCSV(ctx, "reviews", s.reviewsURL)
		if err != nil {
			return fmt.Errorf("fetch reviews: %w", err)
		}
		ds.Reviews, err = csvfile.ParseReviews(bytes.NewReader(b))
		if err != nil {
			return fmt.Errorf("%s: %w", s.reviewsURL, err)
		}
		return nil
	})
	g.Go(func() error {
		b, err := s.client.FetchCSV(ctx, "ratings", s.ratingsURL)
		if err != nil {
			return fmt.Errorf("fetch ratings: %w", err)
		}
		ds.Aggregates, err = csvfile.ParseRatings(bytes.NewReader(b))
		if err != nil {
			return fmt.Errorf("%s: %w", s.ratingsURL, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ds, nil
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if
// absent or invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential delay (200ms, 400ms, 800ms...) with up
// to +50% jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
