package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves GET /health.
type HealthHandler struct {
	db      Pinger
	timeout time.Duration
	logger  zerolog.Logger
}

// NewHealthHandler creates a health handler that pings db within timeout.
func NewHealthHandler(db Pinger, timeout time.Duration, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		timeout: timeout,
		logger:  logger.With().Str("handler", "health").Logger(),
	}
}

// ServeHTTP reports healthy when the database answers a ping.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error().Err(err).Msg("database ping failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "database": "unreachable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "database": "ok"})
}
