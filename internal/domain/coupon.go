package domain

import "time"

// Coupon is a discount offer, optionally attached to a category.
type Coupon struct {
	ID          string
	Title       string
	Description *string
	Code        string
	URL         *string
	CategoryID  *string
	Category    *Category
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
