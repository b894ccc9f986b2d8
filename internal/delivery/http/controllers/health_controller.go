package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	h "fleetadmin/internal/delivery/http/helpers"
)

// Pinger checks a backing dependency, e.g. *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the data payload for GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
}

type HealthController struct {
	Logger   *slog.Logger
	DB       Pinger
	Provider string
}

// NewHealthController returns a health endpoint. db is nil when running on the mock provider.
func NewHealthController(logger *slog.Logger, db Pinger, provider string) *HealthController {
	return &HealthController{Logger: logger, DB: db, Provider: provider}
}

// Health godoc
// @Summary Liveness and database check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status is ok"
// @Failure 503 {object} helpers.APIResponse "error.code: internal_error"
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if c.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := c.DB.PingContext(ctx); err != nil {
			c.Logger.ErrorContext(r.Context(), "health check failed", "err", err)
			h.WriteJSONError(w, http.StatusServiceUnavailable, h.ErrCodeUnavailable, "database unavailable")
			return
		}
	}
	h.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok", Provider: c.Provider})
}
