package domain

import "time"

// Rating records a single anonymous rating submission for a category.
// A rater token may rate each category at most once; the record is
// never updated or deleted afterwards.
type Rating struct {
	ID         string
	CategoryID string
	Value      int
	RaterToken string
	CreatedAt  time.Time
}

// RatingSummary provides the mean and count over a category's ratings.
type RatingSummary struct {
	AverageRating float64
	TotalRatings  int64
}
