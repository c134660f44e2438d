package mysql

// Note: `text` is reserved; keep it quoted everywhere.
const insertReviewsPrefix = "INSERT INTO reviews\n  (pos, asin, reviewer, rating, sentiment, lang, `text`)\nVALUES "

const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  asin      = VALUES(asin),\n" +
	"  reviewer  = VALUES(reviewer),\n" +
	"  rating    = VALUES(rating),\n" +
	"  sentiment = VALUES(sentiment),\n" +
	"  lang      = VALUES(lang),\n" +
	"  `text`    = VALUES(`text`)\n"

const insertRatingsPrefix = "INSERT INTO product_ratings\n  (pos, asin, avg_rating, combined_rating, avg_sentiment, review_count)\nVALUES "

const insertRatingsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  asin            = VALUES(asin),\n" +
	"  avg_rating      = VALUES(avg_rating),\n" +
	"  combined_rating = VALUES(combined_rating),\n" +
	"  avg_sentiment   = VALUES(avg_sentiment),\n" +
	"  review_count    = VALUES(review_count)\n"

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Snapshot loads keep the original table order; analysis tie-breaking
// depends on it.
const loadReviewsSQL = "SELECT asin, reviewer, rating, sentiment, lang, `text` FROM reviews ORDER BY pos"

const loadRatingsSQL = `SELECT asin, avg_rating, combined_rating, avg_sentiment, review_count
FROM product_ratings ORDER BY pos`
