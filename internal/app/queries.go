package app

import (
	"context"
	"time"

	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/analysis"
	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/domain"
)

// AnalysisService answers dashboard queries over the loaded snapshot.
// Results are pure functions of the snapshot, so identical calls are
// memoized through the cache by key.
type AnalysisService struct {
	ds       *domain.Dataset
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewAnalysisService(ds *domain.Dataset, c domain.Cache, ttl time.Duration) *AnalysisService {
	return &AnalysisService{ds: ds, cache: c, cacheTTL: ttl}
}

// Product returns the per-product analysis. Not-found results are not
// cached; they are cheap to recompute and carry the reason.
func (s *AnalysisService) Product(ctx context.Context, asin string) (domain.ProductAnalysis, error) {
	key := "product:" + asin
	var pa domain.ProductAnalysis
	if ok, _ := s.cache.Get(ctx, key, &pa); ok {
		return pa, nil
	}
	pa, err := analysis.Analyze(s.ds.Reviews, s.ds.Aggregates, asin)
	if err != nil {
		return domain.ProductAnalysis{}, err
	}
	_ = s.cache.Set(ctx, key, pa, int(s.cacheTTL.Seconds()))
	return pa, nil
}

// Overview returns the dataset-wide summary.
func (s *AnalysisService) Overview(ctx context.Context) (domain.DatasetSummary, error) {
	const key = "overview"
	var out domain.DatasetSummary
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	out = analysis.Overview(s.ds.Reviews, s.ds.Aggregates)
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

// Products returns the product picker listing.
func (s *AnalysisService) Products(ctx context.Context) ([]domain.ProductListing, error) {
	const key = "products"
	var out []domain.ProductListing
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	out = analysis.Products(s.ds.Reviews)
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}
