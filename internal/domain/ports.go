package domain

import "context"

// DatasetSource loads the precomputed snapshot from wherever it lives:
// the two flat files, the upstream file host, or the MySQL mirror.
type DatasetSource interface {
	LoadDataset(ctx context.Context) (*Dataset, error)
}

// DatasetRepository mirrors the snapshot into durable storage.
// UpsertReviews writes a contiguous batch; pos is the table position of
// the batch's first row, so re-ingesting is idempotent and the original
// row order survives concurrent batches.
type DatasetRepository interface {
	UpsertReviews(ctx context.Context, pos int, rs []Review) error
	UpsertAggregates(ctx context.Context, as []ProductAggregate) error
	LoadDataset(ctx context.Context) (*Dataset, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
