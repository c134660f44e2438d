package analysis

import (
	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/domain"
)

const (
	topWordCount    = 5
	sampleSize      = 3
	sampleTextLimit = 200
)

// Analyze filters the review table down to one ASIN and derives the
// per-product dashboard view. An ASIN with no reviews reports
// domain.ErrNoReviews; reviews without a matching aggregate row report
// domain.ErrNoAggregate. Both match domain.ErrNotFound.
func Analyze(reviews []domain.Review, aggregates []domain.ProductAggregate, asin string) (domain.ProductAnalysis, error) {
	var matched []domain.Review
	for _, r := range reviews {
		if r.ASIN == asin {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		return domain.ProductAnalysis{}, domain.ErrNoReviews
	}

	agg, ok := aggregateFor(aggregates, asin)
	if !ok {
		return domain.ProductAnalysis{}, domain.ErrNoAggregate
	}

	counts := map[domain.Sentiment]int{
		domain.SentimentPositive: 0,
		domain.SentimentNegative: 0,
		domain.SentimentNeutral:  0,
	}
	texts := make([]string, len(matched))
	for i, r := range matched {
		counts[r.Sentiment]++
		texts[i] = r.Text
	}

	total := len(matched)
	percents := make(map[domain.Sentiment]float64, len(counts))
	for label, c := range counts {
		percents[label] = float64(c) / float64(total) * 100
	}

	samples := matched
	if len(samples) > sampleSize {
		samples = samples[:sampleSize]
	}
	out := domain.ProductAnalysis{
		ASIN:              asin,
		TotalReviews:      total,
		SentimentCounts:   counts,
		SentimentPercents: percents,
		TopWords:          TopWords(texts, topWordCount),
		Summary:           Summarize(texts, DefaultSummaryLength),
		Rating: domain.RatingInfo{
			AvgRating:      agg.AvgRating,
			CombinedRating: agg.CombinedRating,
			AvgSentiment:   agg.AvgSentiment,
			ReviewCount:    agg.ReviewCount,
		},
		Samples: make([]domain.SampleReview, 0, len(samples)),
	}
	for _, r := range samples {
		out.Samples = append(out.Samples, domain.SampleReview{
			Reviewer:  r.Reviewer,
			Rating:    r.Rating,
			Sentiment: r.Sentiment,
			Text:      clip(r.Text, sampleTextLimit),
		})
	}
	return out, nil
}

func aggregateFor(aggregates []domain.ProductAggregate, asin string) (domain.ProductAggregate, bool) {
	for _, a := range aggregates {
		if a.ASIN == asin {
			return a, true
		}
	}
	return domain.ProductAggregate{}, false
}

// clip returns at most limit runes of s, so multi-byte text never gets
// cut mid-character.
func clip(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
