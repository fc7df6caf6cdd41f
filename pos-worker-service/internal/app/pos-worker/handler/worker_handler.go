package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"webpos/pkg/logger"
	"webpos/pos-worker-service/internal/app/pos-worker/entity"
	"webpos/pos-worker-service/internal/app/pos-worker/repository"
	"webpos/pos-worker-service/internal/app/pos-worker/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// WorkerHandler exposes daily stats and the backup archive.
type WorkerHandler struct {
	stats   service.SalesStatsServiceInterface
	backups service.BackupArchiveServiceInterface
}

func NewWorkerHandler(stats service.SalesStatsServiceInterface, backups service.BackupArchiveServiceInterface) *WorkerHandler {
	return &WorkerHandler{
		stats:   stats,
		backups: backups,
	}
}

func (h *WorkerHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /stats/daily", h.DailyStats)
	mux.HandleFunc("GET /archives", h.ListArchives)
	mux.HandleFunc("POST /archives/{id}/restore", h.RestoreArchive)
}

// DailyStats handles GET /stats/daily?date=YYYY-MM-DD; today (UTC) when date is omitted.
func (h *WorkerHandler) DailyStats(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format(entity.DateLayout)
	}

	stats, err := h.stats.GetDaily(r.Context(), date)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *WorkerHandler) ListArchives(w http.ResponseWriter, r *http.Request) {
	archives, err := h.backups.ListArchives(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, archives)
}

func (h *WorkerHandler) RestoreArchive(w http.ResponseWriter, r *http.Request) {
	result, err := h.backups.RestoreArchive(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *WorkerHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidDate), errors.Is(err, service.ErrInvalidArchiveID):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrArchiveNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrPOSUnavailable):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("Request failed")
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error().Err(err).Msg("Failed to encode response")
	}
}
