package handlers

import (
	"net/http"

	"route-optimizer-service/internal/platform/logger"
)

// HealthHandler provides a minimal liveness check endpoint.
type HealthHandler struct {
	Log *logger.Logger
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(h.Log, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]string{"status": "ok"}
	writeJSON(h.Log, w, r, http.StatusOK, res)
}
