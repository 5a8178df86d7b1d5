package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dealhive/dealhive/internal/domain"
	"github.com/dealhive/dealhive/internal/repository"
)

type couponCreateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Code        string  `json:"code"`
	URL         *string `json:"url"`
	CategoryID  *string `json:"category"`
}

type couponUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Code        *string `json:"code"`
	URL         *string `json:"url"`
	CategoryID  *string `json:"category"`
}

type couponListResponse struct {
	Items      []couponResponse `json:"items"`
	NextCursor *string          `json:"nextCursor,omitempty"`
}

type couponResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description,omitempty"`
	Code        string            `json:"code"`
	URL         *string           `json:"url,omitempty"`
	Category    *categoryResponse `json:"category,omitempty"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
}

func (s *Server) handleListCoupons(w http.ResponseWriter, r *http.Request) {
	filters, err := buildCouponFilters(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	result, err := s.repo.Coupons.List(r.Context(), filters)
	if err != nil {
		s.logger.Printf("list coupons error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list coupons")
		return
	}

	items := make([]couponResponse, 0, len(result.Items))
	for _, coupon := range result.Items {
		items = append(items, toCouponResponse(coupon))
	}
	s.respondJSON(w, http.StatusOK, couponListResponse{
		Items:      items,
		NextCursor: result.NextCursor,
	})
}

func buildCouponFilters(r *http.Request) (repository.CouponListFilters, error) {
	var filters repository.CouponListFilters

	if val := strings.TrimSpace(r.URL.Query().Get("limit")); val != "" {
		limit, err := strconv.Atoi(val)
		if err != nil {
			return filters, errors.New("invalid limit value")
		}
		filters.Limit = limit
	}
	if val := strings.TrimSpace(r.URL.Query().Get("cursor")); val != "" {
		cursor, err := repository.DecodeCouponCursor(val)
		if err != nil {
			return filters, errors.New("invalid cursor")
		}
		filters.Cursor = cursor
	}
	return filters, nil
}

func (s *Server) handleCreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	title := strings.TrimSpace(req.Title)
	code := strings.TrimSpace(req.Code)
	if title == "" || code == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title and code are required")
		return
	}

	coupon, err := s.repo.Coupons.Create(r.Context(), repository.CouponCreateParams{
		Title:       title,
		Description: normalizeStringPtr(req.Description),
		Code:        code,
		URL:         normalizeStringPtr(req.URL),
		CategoryID:  normalizeStringPtr(req.CategoryID),
	})
	if err != nil {
		s.logger.Printf("create coupon error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create coupon")
		return
	}
	s.respondJSON(w, http.StatusCreated, toCouponResponse(coupon))
}

func (s *Server) handleUpdateCoupon(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req couponUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	coupon, err := s.repo.Coupons.Update(r.Context(), id, repository.CouponUpdateParams{
		Title:       normalizeStringPtr(req.Title),
		Description: normalizeStringPtr(req.Description),
		Code:        normalizeStringPtr(req.Code),
		URL:         normalizeStringPtr(req.URL),
		CategoryID:  normalizeStringPtr(req.CategoryID),
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("update coupon error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update coupon")
		return
	}
	s.respondJSON(w, http.StatusOK, toCouponResponse(coupon))
}

func (s *Server) handleDeleteCoupon(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.repo.Coupons.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("delete coupon error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete coupon")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "Coupon deleted"})
}

func toCouponResponse(coupon domain.Coupon) couponResponse {
	resp := couponResponse{
		ID:          coupon.ID,
		Title:       coupon.Title,
		Description: coupon.Description,
		Code:        coupon.Code,
		URL:         coupon.URL,
		CreatedAt:   coupon.CreatedAt.Format(timeLayout),
		UpdatedAt:   coupon.UpdatedAt.Format(timeLayout),
	}
	if coupon.Category != nil {
		category := toCategoryResponse(*coupon.Category)
		resp.Category = &category
	}
	return resp
}
