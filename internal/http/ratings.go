package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dealhive/dealhive/internal/domain"
	"github.com/dealhive/dealhive/internal/rating"
)

type ratingRequest struct {
	Rating float64 `json:"rating"`
}

type ratingSummaryResponse struct {
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
}

func (s *Server) handleGetRatingSummary(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")

	summary, err := s.ratings.GetSummary(r.Context(), categoryID)
	if err != nil {
		if errors.Is(err, rating.ErrInvalidCategoryID) {
			s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid category id")
			return
		}
		s.logger.Printf("rating summary error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load rating")
		return
	}
	s.respondJSON(w, http.StatusOK, toRatingSummaryResponse(summary))
}

func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")

	var req ratingRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	summary, err := s.ratings.Submit(r.Context(), categoryID, req.Rating, raterToken(r))
	if err != nil {
		switch {
		case errors.Is(err, rating.ErrInvalidCategoryID):
			s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid category id")
		case errors.Is(err, rating.ErrInvalidRating):
			s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "rating must be an integer between 1 and 5")
		case errors.Is(err, rating.ErrMissingIdentity):
			s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Rating token required")
		case errors.Is(err, rating.ErrCategoryNotFound):
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Category not found")
		case errors.Is(err, rating.ErrAlreadyRated):
			s.respondError(w, http.StatusConflict, "CONFLICT", "You already rated this category")
		default:
			s.logger.Printf("submit rating error: %v", err)
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process rating")
		}
		return
	}
	s.respondJSON(w, http.StatusOK, toRatingSummaryResponse(summary))
}

func toRatingSummaryResponse(summary domain.RatingSummary) ratingSummaryResponse {
	return ratingSummaryResponse{
		AverageRating: summary.AverageRating,
		TotalRatings:  summary.TotalRatings,
	}
}
