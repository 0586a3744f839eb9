package backup

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/contaflow-erp/contaflow/internal/platform/httpx"
)

// 4 MiB is generous for journal-sized snapshots.
const maxSnapshotBytes = 4 << 20

// Handler exposes snapshot download and restore endpoints.
type Handler struct {
	logger  *slog.Logger
	manager *Manager
}

// NewHandler constructs the backup handler.
func NewHandler(logger *slog.Logger, manager *Manager) *Handler {
	return &Handler{logger: logger, manager: manager}
}

// MountRoutes registers backup endpoints on the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/backup", h.Backup)
	r.Post("/restore", h.Restore)
}

// Backup serializes the current collections as a downloadable document.
func (h *Handler) Backup(w http.ResponseWriter, r *http.Request) {
	data, err := h.manager.Create(r.Context())
	if err != nil {
		h.logger.Error("create backup", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="contaflow-backup.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Restore applies an uploaded snapshot to the known collections.
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxSnapshotBytes))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Body", err.Error())
		return
	}
	restored, err := h.manager.Restore(r.Context(), data)
	if err != nil {
		h.logger.Error("restore backup", slog.Any("error", err), slog.Int("restored", restored))
		httpx.Problem(w, http.StatusUnprocessableEntity, "Restore Failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int{"restored": restored})
}
