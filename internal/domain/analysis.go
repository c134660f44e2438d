package domain

// Read models returned by the analysis entry points.

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// SampleReview is a display row: reviewer, stars, label and the leading
// part of the review text.
type SampleReview struct {
	Reviewer  string    `json:"reviewer"`
	Rating    int       `json:"rating"`
	Sentiment Sentiment `json:"sentiment"`
	Text      string    `json:"text"`
}

// RatingInfo is the pass-through of the aggregate table's numeric
// columns for one product.
type RatingInfo struct {
	AvgRating      float64 `json:"avg_rating"`
	CombinedRating float64 `json:"combined_rating"`
	AvgSentiment   float64 `json:"avg_sentiment"`
	ReviewCount    int     `json:"review_count"`
}

// ProductAnalysis is everything the dashboard shows for one selected
// product.
type ProductAnalysis struct {
	ASIN              string                `json:"asin"`
	TotalReviews      int                   `json:"total_reviews"`
	SentimentCounts   map[Sentiment]int     `json:"sentiment_counts"`
	SentimentPercents map[Sentiment]float64 `json:"sentiment_percents"`
	TopWords          []WordCount           `json:"top_words"`
	Summary           string                `json:"summary"`
	Rating            RatingInfo            `json:"rating"`
	Samples           []SampleReview        `json:"samples"`
}

// ProductListing is one entry of the product picker: an ASIN and its
// review volume.
type ProductListing struct {
	ASIN        string `json:"asin"`
	ReviewCount int    `json:"review_count"`
}

// DatasetSummary is the corpus-wide view shown when no product is
// selected.
type DatasetSummary struct {
	TotalReviews         int                `json:"total_reviews"`
	DistinctProducts     int                `json:"distinct_products"`
	AvgReviewsPerProduct float64            `json:"avg_reviews_per_product"`
	DistinctLanguages    int                `json:"distinct_languages"`
	SentimentCounts      map[Sentiment]int  `json:"sentiment_counts"`
	TopProducts          []ProductAggregate `json:"top_products"`
}
