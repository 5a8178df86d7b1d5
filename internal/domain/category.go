package domain

import "time"

// Category represents one rateable brand category in the directory.
type Category struct {
	ID        string
	Title     string
	Slug      string
	ImagePath string
	CreatedAt time.Time
	UpdatedAt time.Time
}
