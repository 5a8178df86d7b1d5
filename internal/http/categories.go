package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dealhive/dealhive/internal/domain"
	"github.com/dealhive/dealhive/internal/repository"
)

type categoryCreateRequest struct {
	Title     string `json:"title"`
	ImagePath string `json:"imagePath"`
}

type categoryUpdateRequest struct {
	Title     *string `json:"title"`
	ImagePath *string `json:"imagePath"`
}

type categoryResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	ImagePath string `json:"imagePath"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.repo.Categories.List(r.Context())
	if err != nil {
		s.logger.Printf("list categories error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list categories")
		return
	}

	items := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, toCategoryResponse(category))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	title := strings.TrimSpace(req.Title)
	imagePath := strings.TrimSpace(req.ImagePath)
	if title == "" || imagePath == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title and imagePath are required")
		return
	}

	category, err := s.repo.Categories.Create(r.Context(), repository.CategoryCreateParams{
		Title:     title,
		Slug:      slugify(title),
		ImagePath: imagePath,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.respondError(w, http.StatusConflict, "CONFLICT", "A category with this slug already exists")
			return
		}
		s.logger.Printf("create category error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create category")
		return
	}
	s.respondJSON(w, http.StatusCreated, toCategoryResponse(category))
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req categoryUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	params := repository.CategoryUpdateParams{
		ImagePath: normalizeStringPtr(req.ImagePath),
	}
	if title := normalizeStringPtr(req.Title); title != nil {
		slug := slugify(*title)
		params.Title = title
		params.Slug = &slug
	}

	category, err := s.repo.Categories.Update(r.Context(), id, params)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		case errors.Is(err, repository.ErrConflict):
			s.respondError(w, http.StatusConflict, "CONFLICT", "A category with this slug already exists")
		default:
			s.logger.Printf("update category error: %v", err)
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update category")
		}
		return
	}
	s.respondJSON(w, http.StatusOK, toCategoryResponse(category))
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.repo.Categories.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("delete category error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete category")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}

func toCategoryResponse(category domain.Category) categoryResponse {
	return categoryResponse{
		ID:        category.ID,
		Title:     category.Title,
		Slug:      category.Slug,
		ImagePath: category.ImagePath,
		CreatedAt: category.CreatedAt.Format(timeLayout),
		UpdatedAt: category.UpdatedAt.Format(timeLayout),
	}
}

// slugify turns a title into a URL slug: lowercase, whitespace runs become
// a single dash, everything outside [a-z0-9-] is dropped.
func slugify(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	lastDash := false
	for _, r := range lowered {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-':
			b.WriteRune(r)
			lastDash = false
		}
	}
	return strings.TrimRight(b.String(), "-")
}
