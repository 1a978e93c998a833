package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/viralgrowth/viralgrowth/internal/auth"
	"github.com/viralgrowth/viralgrowth/internal/handler/dto"
	"github.com/viralgrowth/viralgrowth/internal/history"
	"github.com/viralgrowth/viralgrowth/internal/model"
	"github.com/viralgrowth/viralgrowth/internal/repository"
)

// RecordPerformanceUpdater mirrors performance attachments into the archive.
type RecordPerformanceUpdater interface {
	UpdateRecordPerformance(ctx context.Context, ownerID, historyID string, perf model.PerformanceMetrics) error
}

// HistoryHandler handles HTTP requests for the stored generation history.
type HistoryHandler struct {
	manager *history.Manager
	archive RecordPerformanceUpdater
	logger  *slog.Logger
}

// NewHistoryHandler creates a new HistoryHandler. The archive is optional;
// when nil, performance attachments touch only the working history.
func NewHistoryHandler(manager *history.Manager, archive RecordPerformanceUpdater, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		manager: manager,
		archive: archive,
		logger:  logger,
	}
}

// List handles GET /api/v1/history.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	entries, err := h.manager.Recent(r.Context(), authCtx.UserID)
	if err != nil {
		h.logger.Error("failed to load history", "error", err, "owner_id", authCtx.UserID)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load history")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToHistoryListResponse(entries))
}

// Clear handles DELETE /api/v1/history.
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.manager.Clear(r.Context(), authCtx.UserID); err != nil {
		h.logger.Error("failed to clear history", "error", err, "owner_id", authCtx.UserID)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to clear history")
		return
	}

	h.logger.Info("history_cleared", "owner_id", authCtx.UserID)

	w.WriteHeader(http.StatusNoContent)
}

// AttachPerformance handles POST /api/v1/history/{entry_id}/performance.
func (h *HistoryHandler) AttachPerformance(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	entryID := chi.URLParam(r, "entry_id")
	if entryID == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ENTRY_ID", "Entry ID is required")
		return
	}

	var req dto.AttachPerformanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	perf := model.PerformanceMetrics{
		Reach:    req.Reach,
		Likes:    req.Likes,
		Comments: req.Comments,
		Shares:   req.Shares,
		Saves:    req.Saves,
	}
	if !perf.IsValid() {
		h.writeError(w, http.StatusBadRequest, "INVALID_PERFORMANCE", "Metrics must be non-negative")
		return
	}

	attached, err := h.manager.AttachPerformance(r.Context(), authCtx.UserID, entryID, perf)
	if err != nil {
		h.logger.Error("failed to attach performance", "error", err, "owner_id", authCtx.UserID)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to attach performance")
		return
	}
	if !attached {
		h.writeError(w, http.StatusNotFound, "ENTRY_NOT_FOUND", "History entry not found")
		return
	}

	// Best effort: the archive row may already be gone while the working
	// history still has the entry.
	if h.archive != nil {
		if err := h.archive.UpdateRecordPerformance(r.Context(), authCtx.UserID, entryID, perf); err != nil &&
			!errors.Is(err, repository.ErrRecordNotFound) {
			h.logger.Warn("failed to mirror performance to archive",
				"error", err,
				"owner_id", authCtx.UserID,
				"entry_id", entryID,
			)
		}
	}

	h.logger.Info("performance_attached",
		"owner_id", authCtx.UserID,
		"entry_id", entryID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// writeError writes an error response.
func (h *HistoryHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
