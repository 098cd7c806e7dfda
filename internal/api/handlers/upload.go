package handlers

import (
	"net/http"

	"route-optimizer-service/internal/adapters/ingest"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/platform/logger"
)

// Spreadsheets beyond this size are almost certainly not delivery manifests.
const maxUploadBytes = 5 << 20

// UploadHandler parses delivery manifests uploaded as CSV.
type UploadHandler struct {
	Log *logger.Logger
}

// Upload handles POST /api/deliveries/upload with a multipart "file" part.
// Parsed rows are echoed back in optimize-request shape.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(h.Log, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, `multipart form must include a "file" part`)
		return
	}
	defer file.Close()

	stops, err := ingest.ParseDeliveries(file)
	if err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, err.Error())
		return
	}

	res := dto.UploadResponse{Count: len(stops), Deliveries: make([]dto.DeliveryRequest, 0, len(stops))}
	for _, s := range stops {
		res.Deliveries = append(res.Deliveries, toDeliveryRequest(s))
	}
	writeJSON(h.Log, w, r, http.StatusOK, res)
}
