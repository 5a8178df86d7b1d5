// Package rating implements the anonymous one-rating-per-category
// subsystem: input validation, category existence checks, duplicate-safe
// persistence, and summary recomputation.
package rating

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dealhive/dealhive/internal/domain"
	"github.com/dealhive/dealhive/internal/repository"
)

var (
	// ErrInvalidCategoryID indicates a syntactically malformed category id.
	ErrInvalidCategoryID = errors.New("rating: invalid category id")
	// ErrInvalidRating indicates a value outside the integers 1..5.
	ErrInvalidRating = errors.New("rating: invalid rating value")
	// ErrMissingIdentity indicates no rater token was supplied.
	ErrMissingIdentity = errors.New("rating: missing identity token")
	// ErrCategoryNotFound indicates the category does not currently exist.
	ErrCategoryNotFound = errors.New("rating: category not found")
	// ErrAlreadyRated indicates this identity already rated the category.
	ErrAlreadyRated = errors.New("rating: already rated this category")
)

// Store is the durable record of rating events.
type Store interface {
	Insert(ctx context.Context, params repository.RatingInsertParams) (domain.Rating, error)
	Aggregate(ctx context.Context, categoryID string) (domain.RatingSummary, error)
}

// CategoryChecker reports whether a category currently exists.
type CategoryChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service exposes the two rating operations used by callers.
type Service struct {
	store      Store
	categories CategoryChecker
}

// New creates a rating service.
func New(store Store, categories CategoryChecker) *Service {
	return &Service{store: store, categories: categories}
}

// GetSummary returns the current summary for a category. A deleted category
// with historical ratings still reports its summary; only malformed ids fail.
func (s *Service) GetSummary(ctx context.Context, categoryID string) (domain.RatingSummary, error) {
	if !validCategoryID(categoryID) {
		return domain.RatingSummary{}, ErrInvalidCategoryID
	}
	summary, err := s.store.Aggregate(ctx, categoryID)
	if err != nil {
		return domain.RatingSummary{}, fmt.Errorf("summarize category %s: %w", categoryID, err)
	}
	return summary, nil
}

// Submit records one rating for a category on behalf of an anonymous
// identity and returns the freshly recomputed summary. Validation happens
// before any write; the duplicate check is left to the store's unique
// constraint so concurrent submissions from the same identity cannot both
// land.
func (s *Service) Submit(ctx context.Context, categoryID string, value float64, identity string) (domain.RatingSummary, error) {
	if !validCategoryID(categoryID) {
		return domain.RatingSummary{}, ErrInvalidCategoryID
	}
	intValue := int(value)
	if float64(intValue) != value || intValue < 1 || intValue > 5 {
		return domain.RatingSummary{}, ErrInvalidRating
	}
	if identity == "" {
		return domain.RatingSummary{}, ErrMissingIdentity
	}

	exists, err := s.categories.Exists(ctx, categoryID)
	if err != nil {
		return domain.RatingSummary{}, fmt.Errorf("check category %s: %w", categoryID, err)
	}
	if !exists {
		return domain.RatingSummary{}, ErrCategoryNotFound
	}

	_, err = s.store.Insert(ctx, repository.RatingInsertParams{
		CategoryID: categoryID,
		RaterToken: identity,
		Value:      intValue,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRating) {
			return domain.RatingSummary{}, ErrAlreadyRated
		}
		return domain.RatingSummary{}, fmt.Errorf("insert rating: %w", err)
	}

	summary, err := s.store.Aggregate(ctx, categoryID)
	if err != nil {
		return domain.RatingSummary{}, fmt.Errorf("recompute summary: %w", err)
	}
	return summary, nil
}

func validCategoryID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
