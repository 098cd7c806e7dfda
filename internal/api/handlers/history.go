package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/logger"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/render"
)

// HistoryHandler serves saved optimization reports and their exports.
// Email is optional; without it the email endpoint reports 503.
type HistoryHandler struct {
	Repo  ports.ReportRepository
	Email *render.EmailSender
	Log   *logger.Logger
}

// List handles GET /api/history.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(h.Log, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entries, err := h.Repo.ListReports(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("list reports failed")
		writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.HistoryListResponse{Reports: make([]dto.HistorySummaryResponse, 0, len(entries))}
	for _, entry := range entries {
		res.Reports = append(res.Reports, toHistorySummary(entry))
	}
	writeJSON(h.Log, w, r, http.StatusOK, res)
}

// Detail handles /api/history/{id} (GET, DELETE) and the export
// subresources /api/history/{id}/sheet (GET) and /api/history/{id}/email
// (POST).
func (h *HistoryHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/history/")

	if rest, ok := strings.CutSuffix(id, "/sheet"); ok {
		h.sheet(w, r, rest)
		return
	}
	if rest, ok := strings.CutSuffix(id, "/email"); ok {
		h.email(w, r, rest)
		return
	}
	if id == "" || strings.Contains(id, "/") {
		writeError(h.Log, w, r, http.StatusNotFound, "report not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		w.Header().Set("Allow", "GET, DELETE")
		writeError(h.Log, w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *HistoryHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	entry, err := h.load(w, r, id)
	if err != nil {
		return
	}

	res := dto.HistoryDetailResponse{
		HistorySummaryResponse: toHistorySummary(entry),
		Report:                 toOptimizeResponse(&entry.Report, nil, entry.ID),
	}
	writeJSON(h.Log, w, r, http.StatusOK, res)
}

// sheet renders the report's plain-text driver route sheets.
func (h *HistoryHandler) sheet(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(h.Log, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entry, err := h.load(w, r, id)
	if err != nil {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, render.ReportSheets(entry.Depot, entry.Report)); err != nil {
		h.Log.WithError(err).WithField("report_id", id).Error("write route sheets failed")
	}
}

// email mails the report's route sheets to the requested recipients.
func (h *HistoryHandler) email(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(h.Log, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.Email == nil || !h.Email.Configured() {
		writeError(h.Log, w, r, http.StatusServiceUnavailable, "email delivery is not configured")
		return
	}

	var req struct {
		Recipients []string `json:"recipients"`
	}
	if err := decodeStrict(r, &req); err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, "invalid json body: "+err.Error())
		return
	}
	if len(req.Recipients) == 0 {
		writeError(h.Log, w, r, http.StatusBadRequest, "recipients is required")
		return
	}

	entry, err := h.load(w, r, id)
	if err != nil {
		return
	}

	if err := h.Email.SendSheets(req.Recipients, entry.Depot, entry.Report); err != nil {
		h.Log.WithError(err).WithField("report_id", id).Error("send route sheets failed")
		writeError(h.Log, w, r, http.StatusBadGateway, "email delivery failed")
		return
	}
	writeJSON(h.Log, w, r, http.StatusOK, map[string]any{"sent": req.Recipients})
}

// load fetches one report, writing the error response itself on failure.
func (h *HistoryHandler) load(w http.ResponseWriter, r *http.Request, id string) (domain.HistoryEntry, error) {
	if id == "" || strings.Contains(id, "/") {
		writeError(h.Log, w, r, http.StatusNotFound, "report not found")
		return domain.HistoryEntry{}, ports.ErrNotFound
	}

	entry, err := h.Repo.GetReport(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(h.Log, w, r, http.StatusNotFound, "report not found")
		return domain.HistoryEntry{}, err
	}
	if err != nil {
		h.Log.WithError(err).WithField("report_id", id).Error("get report failed")
		writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		return domain.HistoryEntry{}, err
	}
	return entry, nil
}

func (h *HistoryHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.Repo.DeleteReport(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(h.Log, w, r, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		h.Log.WithError(err).WithField("report_id", id).Error("delete report failed")
		writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(h.Log, w, r, http.StatusOK, map[string]string{"deleted": id})
}
