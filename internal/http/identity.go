package httpserver

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// identityCookie is the long-lived anonymous credential correlating a
// browser across visits. It carries no account semantics.
const identityCookie = "rating_token"

const identityMaxAge = 5 * 365 * 24 * time.Hour

// ensureIdentity guarantees the client holds a rater token before it
// reaches the rating endpoints. Clients that already present one are left
// untouched.
func (s *Server) ensureIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.issueIdentity(w, r)
		next.ServeHTTP(w, r)
	})
}

// issueIdentity sets a fresh rater token cookie when none is present and
// returns the token the client now holds.
func (s *Server) issueIdentity(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(identityCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	token := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     identityCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(identityMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

// raterToken extracts the identity the client presented with the request.
// A token issued on this same request does not count: the submission must
// carry a pre-existing credential.
func raterToken(r *http.Request) string {
	cookie, err := r.Cookie(identityCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}
