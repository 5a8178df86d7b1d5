package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dealhive/dealhive/internal/domain"
)

// RatingsRepository provides persistence helpers for category ratings.
type RatingsRepository struct {
	pool *pgxpool.Pool
}

// RatingInsertParams captures the payload required to record a rating.
type RatingInsertParams struct {
	CategoryID string
	RaterToken string
	Value      int
}

// Insert records a new rating event, or fails with ErrDuplicateRating when
// the rater already rated the category. The composite unique index on
// (category_id, rater_token) is the source of truth, so two concurrent
// submissions from the same token cannot both succeed.
func (r *RatingsRepository) Insert(ctx context.Context, params RatingInsertParams) (domain.Rating, error) {
	const query = `
        INSERT INTO ratings (category_id, rating, rater_token)
        VALUES ($1,$2,$3)
        ON CONFLICT (category_id, rater_token) DO NOTHING
        RETURNING id, category_id, rating, rater_token, created_at
    `

	var rating domain.Rating
	err := r.pool.QueryRow(ctx, query, params.CategoryID, params.Value, params.RaterToken).Scan(
		&rating.ID,
		&rating.CategoryID,
		&rating.Value,
		&rating.RaterToken,
		&rating.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Rating{}, ErrDuplicateRating
		}
		return domain.Rating{}, err
	}

	return rating, nil
}

// Aggregate returns the rating average (two decimal places) and count for
// a category. Categories without ratings yield a zero summary.
func (r *RatingsRepository) Aggregate(ctx context.Context, categoryID string) (domain.RatingSummary, error) {
	const query = `
        SELECT COALESCE(ROUND(AVG(rating)::numeric, 2), 0)::float8 AS average,
               COUNT(*)::int8 AS total
        FROM ratings
        WHERE category_id = $1
    `

	var summary domain.RatingSummary
	err := r.pool.QueryRow(ctx, query, categoryID).Scan(&summary.AverageRating, &summary.TotalRatings)
	if err != nil {
		return domain.RatingSummary{}, fmt.Errorf("aggregate ratings: %w", err)
	}
	return summary, nil
}

// Get retrieves a rating for a specific rater/category combination.
func (r *RatingsRepository) Get(ctx context.Context, categoryID, raterToken string) (domain.Rating, error) {
	const query = `
        SELECT id, category_id, rating, rater_token, created_at
        FROM ratings
        WHERE category_id = $1 AND rater_token = $2
    `
	var rating domain.Rating
	err := r.pool.QueryRow(ctx, query, categoryID, raterToken).Scan(
		&rating.ID,
		&rating.CategoryID,
		&rating.Value,
		&rating.RaterToken,
		&rating.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Rating{}, ErrNotFound
		}
		return domain.Rating{}, err
	}
	return rating, nil
}
