package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"githubsearch/github"
	"githubsearch/logger"
	"githubsearch/models"
)

// ReadyMessage is served on GET /
const ReadyMessage = "server is ready"

// ProfileProvider is the proxy logic behind the user and explore routes
type ProfileProvider interface {
	GetUserProfileAndRepos(ctx context.Context, username string) (*models.ProfileResponse, error)
	ExploreRepos(ctx context.Context, language string) (*models.ExploreResponse, error)
}

// HealthChecker reports the state of the optional database connection
type HealthChecker interface {
	Status(ctx context.Context) string
}

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Handler serves the HTTP API
type Handler struct {
	profiles ProfileProvider
	health   HealthChecker
}

// NewHandler creates a Handler
func NewHandler(profiles ProfileProvider, health HealthChecker) *Handler {
	return &Handler{profiles: profiles, health: health}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Get("/users/profile/{username}", h.handleUserProfile)
		r.Get("/explore/repos/{language}", h.handleExploreRepos)
	})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, ReadyMessage)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	database := "disabled"
	if h.health != nil {
		database = h.health.Status(r.Context())
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Database: database})
}

func (h *Handler) handleUserProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	resp, err := h.profiles.GetUserProfileAndRepos(r.Context(), username)
	if err != nil {
		writeError(w, err, zap.String("username", username))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleExploreRepos(w http.ResponseWriter, r *http.Request) {
	language := chi.URLParam(r, "language")

	resp, err := h.profiles.ExploreRepos(r.Context(), language)
	if err != nil {
		writeError(w, err, zap.String("language", language))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// statusFor maps an error to the status code returned to the client
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, github.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, github.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error, fields ...zap.Field) {
	status := statusFor(err)
	apiErrorsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	logger.Warn("Request failed", append(fields, zap.Error(err), zap.Int("status", status))...)
	writeJSON(w, status, models.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}
