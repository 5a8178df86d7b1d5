package httpserver

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dealhive/dealhive/internal/auth"
)

// handleBrandPage serves the SEO-friendly brand page shell; the client
// loads the category data for the slug itself.
func (s *Server) handleBrandPage(w http.ResponseWriter, r *http.Request) {
	s.issueIdentity(w, r)
	s.servePage(w, r, "brand.html", http.StatusOK)
}

// handleStatic is the fallthrough for everything outside /api: the public
// site, with the dashboard page gated behind a valid admin session.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.serveNotFound(w, r)
		return
	}

	rel := path.Clean("/" + r.URL.Path)
	if rel == "/" {
		rel = "/auth.html"
	}

	if s.isProtectedPage(rel) && !s.hasValidSession(r) {
		http.Redirect(w, r, "/auth.html", http.StatusSeeOther)
		return
	}

	s.issueIdentity(w, r)

	file := filepath.Join(s.cfg.PublicDir, filepath.FromSlash(strings.TrimPrefix(rel, "/")))
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		s.serveNotFound(w, r)
		return
	}
	http.ServeFile(w, r, file)
}

func (s *Server) isProtectedPage(rel string) bool {
	return rel == "/dashboard.html"
}

func (s *Server) hasValidSession(r *http.Request) bool {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return false
	}
	_, err = auth.ParseToken([]byte(s.cfg.JWTSecret), cookie.Value)
	return err == nil
}

func (s *Server) serveNotFound(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, "404.html", http.StatusNotFound)
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request, name string, status int) {
	file := filepath.Join(s.cfg.PublicDir, name)
	payload, err := os.ReadFile(file)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = w.Write(payload)
	}
}
