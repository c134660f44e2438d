package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/domain"
)

// IngestionService mirrors a dataset snapshot from a source (flat files
// or the upstream file host) into the repository.
type IngestionService struct {
	src  domain.DatasetSource
	repo domain.DatasetRepository
}

func NewIngestionService(src domain.DatasetSource, repo domain.DatasetRepository) *IngestionService {
	return &IngestionService{src: src, repo: repo}
}

// Run loads the snapshot and writes it through: the aggregate table in
// one statement, the review table in bounded concurrent batches keyed by
// row position so re-runs are idempotent.
func (s *IngestionService) Run(ctx context.Context, workers, batchSize int) error {
	ds, err := s.src.LoadDataset(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	log.Info().
		Int("reviews", len(ds.Reviews)).
		Int("products", len(ds.Aggregates)).
		Msg("snapshot loaded")

	if err := s.repo.UpsertAggregates(ctx, ds.Aggregates); err != nil {
		return fmt.Errorf("upsert aggregates: %w", err)
	}

	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	var failed atomic.Int32

	for start := 0; start < len(ds.Reviews); start += batchSize {
		end := min(start+batchSize, len(ds.Reviews))
		batch := ds.Reviews[start:end]

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return err
		}

		wg.Add(1)
		go func(pos int, batch []domain.Review) {
			defer wg.Done()
			defer sem.Release(1)

			if err := s.repo.UpsertReviews(ctx, pos, batch); err != nil {
				log.Warn().Int("pos", pos).Int("rows", len(batch)).Err(err).Msg("review batch failed")
				failed.Add(1)
				return
			}
		}(start, batch)
	}
	wg.Wait()

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d review batches failed", n)
	}
	return nil
}
