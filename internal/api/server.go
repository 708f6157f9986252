// Package api exposes the planning application over HTTP. All
// endpoints except /health require a bearer token signed with the
// shared API secret.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"daily-meal-planner/internal/app"
	"daily-meal-planner/internal/config"
	"daily-meal-planner/internal/metrics"
)

// Server wires the application into an HTTP handler.
type Server struct {
	app *app.App
	cfg *config.Config
}

// NewServer creates a new API server.
func NewServer(application *app.App, cfg *config.Config) *Server {
	return &Server{app: application, cfg: cfg}
}

// Routes registers all endpoints on a new mux and returns it.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("POST /api/plan", s.requireAuth(s.handlePlan))
	mux.Handle("GET /api/recipes", s.requireAuth(s.handleRecipes))
	mux.Handle("GET /api/shopping", s.requireAuth(s.handleShopping))
	return mux
}

// requireAuth validates the Authorization bearer token as an HS256 JWT
// signed with the API secret.
func (s *Server) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(s.cfg.APISecret), nil
		})
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"system": metrics.GetSysHealth("data"),
	})
}

type planRequest struct {
	Date string `json:"date"` // YYYY-MM-DD, empty means today
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	result, err := s.app.PlanDay(r.Context(), date)
	if err != nil {
		log.Printf("Error planning day: %v", err)
		writeError(w, http.StatusInternalServerError, "planning failed")
		return
	}

	// A complete run that misses tolerance is still 200; only
	// candidate exhaustion maps to 422.
	status := http.StatusOK
	if result.Plan == nil {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, result)
}

func (s *Server) handleRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := s.app.ListRecipes(r.Context())
	if err != nil {
		log.Printf("Error listing recipes: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list recipes")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recipes": recipes, "count": len(recipes)})
}

func (s *Server) handleShopping(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	list, err := s.app.LatestShoppingList(r.Context(), date)
	if err != nil {
		log.Printf("Error fetching shopping list: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch shopping list")
		return
	}
	if list == nil {
		writeError(w, http.StatusNotFound, "no shopping list for this date")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// IssueToken mints a short-lived token for the API. It backs the CLI
// "token" command so scripts can call the HTTP endpoints.
func IssueToken(secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
