package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dealhive/dealhive/internal/auth"
	"github.com/dealhive/dealhive/internal/repository"
)

const sessionCookie = "token"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Email   string `json:"email"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	admin, err := s.repo.Admins.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid credentials")
			return
		}
		s.logger.Printf("login lookup error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		return
	}
	if !auth.CheckPassword(req.Password, admin.PasswordHash) {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid credentials")
		return
	}

	token, err := auth.SignToken([]byte(s.cfg.JWTSecret), admin.ID, admin.Email)
	if err != nil {
		s.logger.Printf("sign token error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.respondJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   token,
		Email:   admin.Email,
	})
}

// requireAdmin guards mutating routes. The session token is accepted either
// as a Bearer header (API clients) or the dashboard's session cookie.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			if cookie, err := r.Cookie(sessionCookie); err == nil {
				token = cookie.Value
			}
		}
		if token == "" {
			s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
			return
		}
		if _, err := auth.ParseToken([]byte(s.cfg.JWTSecret), token); err != nil {
			s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
