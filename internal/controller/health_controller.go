package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/commercebridge/ondc-adapter/internal/platform"
)

type HealthController struct {
	platform platform.Client
}

func NewHealthController(client platform.Client) *HealthController {
	return &HealthController{platform: client}
}

func (h *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthController) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness probes the commerce platform. A bridge that cannot reach its
// platform can ACK but never complete a pipeline, so it reports not ready.
func (h *HealthController) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.platform.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "platform unavailable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
