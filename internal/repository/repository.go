package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dealhive/dealhive/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("repository: not found")

// ErrConflict indicates a unique constraint rejected the write.
var ErrConflict = errors.New("repository: conflict")

// ErrDuplicateRating indicates the rater already rated the category.
var ErrDuplicateRating = errors.New("repository: duplicate rating")

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Categories *CategoriesRepository
	Coupons    *CouponsRepository
	Ratings    *RatingsRepository
	Admins     *AdminsRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Categories: &CategoriesRepository{pool: pool},
		Coupons:    &CouponsRepository{pool: pool},
		Ratings:    &RatingsRepository{pool: pool},
		Admins:     &AdminsRepository{pool: pool},
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
