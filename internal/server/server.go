package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"
)

// Server implements the storage contract: GET returns the stored snapshot,
// POST overwrites it when the x-auth-password header matches the configured
// credential. No accounts, no versioning; concurrent clients clobber each
// other and the last write wins.
type Server struct {
	storage      *Storage
	passwordHash []byte
	router       *chi.Mux
}

func New(storage *Storage, password string) (*Server, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s := &Server{
		storage:      storage,
		passwordHash: hash,
		router:       chi.NewRouter(),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Get("/health", s.healthHandler)

	limiter := NewRateLimiter(60, time.Minute)
	s.router.Route("/api/storage", func(r chi.Router) {
		r.Get("/", s.getStorageHandler)
		r.With(limiter.Middleware, s.authMiddleware).Post("/", s.postStorageHandler)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("x-auth-password")
		if token == "" {
			jsonError(w, "missing auth password", http.StatusUnauthorized)
			return
		}
		if bcrypt.CompareHashAndPassword(s.passwordHash, []byte(token)) != nil {
			jsonError(w, "invalid auth password", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func jsonResponse(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, message string, status int) {
	jsonResponse(w, map[string]string{"error": message}, status)
}
