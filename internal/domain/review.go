package domain

// Sentiment is the precomputed review label supplied by the upstream
// preprocessing pipeline. This service never classifies text itself.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Review is one row of the review table. Many reviews share one ASIN.
type Review struct {
	ASIN      string
	Text      string
	Sentiment Sentiment
	Reviewer  string
	Rating    int    // 1..5 stars
	Language  string // ISO-like code detected upstream
}

// ProductAggregate is one row of the per-product ratings table,
// computed upstream; one row per distinct ASIN.
type ProductAggregate struct {
	ASIN           string  `json:"asin"`
	AvgRating      float64 `json:"avg_rating"`
	CombinedRating float64 `json:"combined_rating"`
	AvgSentiment   float64 `json:"avg_sentiment"`
	ReviewCount    int     `json:"review_count"`
}

// Dataset is the read-only snapshot both analysis entry points operate
// on. It is loaded once per process and never mutated afterwards, so it
// can be shared without locking.
type Dataset struct {
	Reviews    []Review
	Aggregates []ProductAggregate
}
