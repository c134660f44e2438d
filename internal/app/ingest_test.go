package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/app"
	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/domain"
)

type fakeSource struct {
	ds  *domain.Dataset
	err error
}

func (f *fakeSource) LoadDataset(ctx context.Context) (*domain.Dataset, error) {
	return f.ds, f.err
}

type fakeRepo struct {
	mu         sync.Mutex
	reviews    map[int]domain.Review // by position
	aggregates []domain.ProductAggregate
	failWrites bool
}

func (f *fakeRepo) UpsertReviews(ctx context.Context, pos int, rs []domain.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return errors.New("boom")
	}
	if f.reviews == nil {
		f.reviews = map[int]domain.Review{}
	}
	for i, r := range rs {
		f.reviews[pos+i] = r
	}
	return nil
}

func (f *fakeRepo) UpsertAggregates(ctx context.Context, as []domain.ProductAggregate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aggregates = as
	return nil
}

func (f *fakeRepo) LoadDataset(ctx context.Context) (*domain.Dataset, error) {
	return nil, errors.New("not implemented")
}

func TestIngestion_Run(t *testing.T) {
	ds := fixtureDataset()
	repo := &fakeRepo{}
	ing := app.NewIngestionService(&fakeSource{ds: ds}, repo)

	// batch size 2 over 3 reviews exercises a partial last batch
	if err := ing.Run(context.Background(), 2, 2); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(repo.aggregates) != 2 {
		t.Fatalf("aggregates written: %d", len(repo.aggregates))
	}
	if len(repo.reviews) != len(ds.Reviews) {
		t.Fatalf("reviews written: %d, want %d", len(repo.reviews), len(ds.Reviews))
	}
	for i, want := range ds.Reviews {
		if got := repo.reviews[i]; got != want {
			t.Fatalf("review at pos %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestIngestion_SourceError(t *testing.T) {
	srcErr := errors.New("no files")
	ing := app.NewIngestionService(&fakeSource{err: srcErr}, &fakeRepo{})
	if err := ing.Run(context.Background(), 1, 10); !errors.Is(err, srcErr) {
		t.Fatalf("err = %v, want wrapped source error", err)
	}
}

func TestIngestion_BatchFailureSurfaces(t *testing.T) {
	repo := &fakeRepo{failWrites: true}
	ing := app.NewIngestionService(&fakeSource{ds: fixtureDataset()}, repo)
	if err := ing.Run(context.Background(), 2, 1); err == nil {
		t.Fatal("expected error when review batches fail")
	}
}
