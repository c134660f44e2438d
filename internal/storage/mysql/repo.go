package mysql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// UpsertReviews writes one contiguous batch of the review table; pos is
// the table position of the first row, which keys the rows so re-runs
// overwrite instead of duplicating.
func (r *Repo) UpsertReviews(ctx context.Context, pos int, rs []domain.Review) error {
	if len(rs) == 0 {
		return nil
	}
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*7)
	for i, rv := range rs {
		values = append(values, "(?,?,?,?,?,?,?)")
		args = append(args,
			pos+i,
			rv.ASIN,
			rv.Reviewer,
			rv.Rating,
			string(rv.Sentiment),
			rv.Language,
			rv.Text,
		)
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// UpsertAggregates writes the whole per-product ratings table in one
// statement; row positions follow the slice order.
func (r *Repo) UpsertAggregates(ctx context.Context, as []domain.ProductAggregate) error {
	if len(as) == 0 {
		return nil
	}
	values := make([]string, 0, len(as))
	args := make([]any, 0, len(as)*6)
	for i, a := range as {
		values = append(values, "(?,?,?,?,?,?)")
		args = append(args,
			i,
			a.ASIN,
			a.AvgRating,
			a.CombinedRating,
			a.AvgSentiment,
			a.ReviewCount,
		)
	}
	sqlStr := insertRatingsPrefix + strings.Join(values, ",") + insertRatingsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// LoadDataset reads both tables back in original order.
func (r *Repo) LoadDataset(ctx context.Context) (*domain.Dataset, error) {
	reviews, err := r.loadReviews(ctx)
	if err != nil {
		return nil, err
	}
	aggregates, err := r.loadAggregates(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Dataset{Reviews: reviews, Aggregates: aggregates}, nil
}

func (r *Repo) loadReviews(ctx context.Context) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, loadReviewsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		var sentiment string
		var text sql.NullString
		if err := rows.Scan(&rv.ASIN, &rv.Reviewer, &rv.Rating, &sentiment, &rv.Language, &text); err != nil {
			return nil, err
		}
		rv.Sentiment = domain.Sentiment(sentiment)
		if text.Valid {
			rv.Text = text.String
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *Repo) loadAggregates(ctx context.Context) ([]domain.ProductAggregate, error) {
	rows, err := r.db.QueryContext(ctx, loadRatingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ProductAggregate
	for rows.Next() {
		var a domain.ProductAggregate
		if err := rows.Scan(&a.ASIN, &a.AvgRating, &a.CombinedRating, &a.AvgSentiment, &a.ReviewCount); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
