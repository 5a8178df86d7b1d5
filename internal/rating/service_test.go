package rating

import (
	"context"
	"errors"
	"testing"

	"github.com/dealhive/dealhive/internal/domain"
	"github.com/dealhive/dealhive/internal/repository"
)

const testCategoryID = "2b1c8f1e-6f43-4b9a-bb6d-3f0a9c3f7a01"

type fakeStore struct {
	inserted  []repository.RatingInsertParams
	insertErr error
	summary   domain.RatingSummary
	aggErr    error
}

func (f *fakeStore) Insert(_ context.Context, params repository.RatingInsertParams) (domain.Rating, error) {
	if f.insertErr != nil {
		return domain.Rating{}, f.insertErr
	}
	f.inserted = append(f.inserted, params)
	return domain.Rating{
		ID:         "event-1",
		CategoryID: params.CategoryID,
		Value:      params.Value,
		RaterToken: params.RaterToken,
	}, nil
}

func (f *fakeStore) Aggregate(context.Context, string) (domain.RatingSummary, error) {
	if f.aggErr != nil {
		return domain.RatingSummary{}, f.aggErr
	}
	return f.summary, nil
}

type fakeCategories struct {
	exists bool
	err    error
}

func (f *fakeCategories) Exists(context.Context, string) (bool, error) {
	return f.exists, f.err
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name     string
		category string
		value    float64
		identity string
		exists   bool
		wantErr  error
	}{
		{"malformed category id", "not-a-uuid", 4, "tok", true, ErrInvalidCategoryID},
		{"value below range", testCategoryID, 0, "tok", true, ErrInvalidRating},
		{"value above range", testCategoryID, 6, "tok", true, ErrInvalidRating},
		{"non-integral value", testCategoryID, 3.5, "tok", true, ErrInvalidRating},
		{"missing identity", testCategoryID, 4, "", true, ErrMissingIdentity},
		{"unknown category", testCategoryID, 4, "tok", false, ErrCategoryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			svc := New(store, &fakeCategories{exists: tt.exists})

			_, err := svc.Submit(context.Background(), tt.category, tt.value, tt.identity)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Submit() error = %v, want %v", err, tt.wantErr)
			}
			if len(store.inserted) != 0 {
				t.Fatalf("validation failure still wrote %d events", len(store.inserted))
			}
		})
	}
}

func TestSubmitSuccess(t *testing.T) {
	store := &fakeStore{summary: domain.RatingSummary{AverageRating: 4.00, TotalRatings: 3}}
	svc := New(store, &fakeCategories{exists: true})

	summary, err := svc.Submit(context.Background(), testCategoryID, 4, "tok")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if summary.TotalRatings != 3 || summary.AverageRating != 4.00 {
		t.Fatalf("summary = %+v, want {4 3}", summary)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d events, want 1", len(store.inserted))
	}
	got := store.inserted[0]
	if got.CategoryID != testCategoryID || got.Value != 4 || got.RaterToken != "tok" {
		t.Fatalf("insert params = %+v", got)
	}
}

func TestSubmitDuplicateMapsToAlreadyRated(t *testing.T) {
	store := &fakeStore{insertErr: repository.ErrDuplicateRating}
	svc := New(store, &fakeCategories{exists: true})

	_, err := svc.Submit(context.Background(), testCategoryID, 4, "tok")
	if !errors.Is(err, ErrAlreadyRated) {
		t.Fatalf("Submit() error = %v, want ErrAlreadyRated", err)
	}
}

func TestSubmitPropagatesStoreFailure(t *testing.T) {
	storeErr := errors.New("connection refused")
	store := &fakeStore{insertErr: storeErr}
	svc := New(store, &fakeCategories{exists: true})

	_, err := svc.Submit(context.Background(), testCategoryID, 4, "tok")
	if !errors.Is(err, storeErr) {
		t.Fatalf("Submit() error = %v, want wrapped %v", err, storeErr)
	}
}

func TestGetSummary(t *testing.T) {
	store := &fakeStore{summary: domain.RatingSummary{AverageRating: 4.33, TotalRatings: 6}}
	svc := New(store, &fakeCategories{exists: false})

	// The category checker reports not-found, but summaries do not require
	// the category to currently exist.
	summary, err := svc.GetSummary(context.Background(), testCategoryID)
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if summary.AverageRating != 4.33 || summary.TotalRatings != 6 {
		t.Fatalf("summary = %+v", summary)
	}

	if _, err := svc.GetSummary(context.Background(), "nope"); !errors.Is(err, ErrInvalidCategoryID) {
		t.Fatalf("GetSummary(malformed) error = %v, want ErrInvalidCategoryID", err)
	}
}
