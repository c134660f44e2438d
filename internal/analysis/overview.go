package analysis

import (
	"sort"

	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/domain"
)

// topProductCount caps the "top products by review volume" table.
const topProductCount = 10

// Overview computes the corpus-wide stats shown when no product is
// selected. An empty review table yields zeros, never a division fault.
func Overview(reviews []domain.Review, aggregates []domain.ProductAggregate) domain.DatasetSummary {
	products := make(map[string]struct{})
	languages := make(map[string]struct{})
	counts := map[domain.Sentiment]int{
		domain.SentimentPositive: 0,
		domain.SentimentNegative: 0,
		domain.SentimentNeutral:  0,
	}
	for _, r := range reviews {
		products[r.ASIN] = struct{}{}
		languages[r.Language] = struct{}{}
		counts[r.Sentiment]++
	}

	var avg float64
	if len(products) > 0 {
		avg = float64(len(reviews)) / float64(len(products))
	}

	top := make([]domain.ProductAggregate, len(aggregates))
	copy(top, aggregates)
	sort.SliceStable(top, func(i, j int) bool { return top[i].ReviewCount > top[j].ReviewCount })
	if len(top) > topProductCount {
		top = top[:topProductCount]
	}

	return domain.DatasetSummary{
		TotalReviews:         len(reviews),
		DistinctProducts:     len(products),
		AvgReviewsPerProduct: avg,
		DistinctLanguages:    len(languages),
		SentimentCounts:      counts,
		TopProducts:          top,
	}
}

// Products lists every distinct ASIN with its review volume, in
// first-seen order. This feeds the product picker.
func Products(reviews []domain.Review) []domain.ProductListing {
	index := make(map[string]int)
	var out []domain.ProductListing
	for _, r := range reviews {
		i, ok := index[r.ASIN]
		if !ok {
			i = len(out)
			index[r.ASIN] = i
			out = append(out, domain.ProductListing{ASIN: r.ASIN})
		}
		out[i].ReviewCount++
	}
	return out
}
