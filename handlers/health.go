package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/cmartsolutions/bookstore-api/utils"
	"go.uber.org/zap"
)

// Pinger is the readiness probe dependency (satisfied by postgres.DB)
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles liveness and readiness probes
type HealthHandler struct {
	db     Pinger
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, map[string]string{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.db == nil {
		utils.WriteErrorText(w, http.StatusServiceUnavailable, "database not initialized")
		return
	}
	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("readiness check failed", zap.Error(err))
		utils.WriteErrorText(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	_ = utils.WriteOK(w, map[string]string{"status": "ready"})
}
