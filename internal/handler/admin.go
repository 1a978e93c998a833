package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/viralgrowth/viralgrowth/internal/model"
	"github.com/viralgrowth/viralgrowth/internal/repository"
)

// AdminRecordSearcher defines the interface for archive record lookups.
type AdminRecordSearcher interface {
	GetStrategyRecordByID(ctx context.Context, id string) (*model.StrategyRecord, error)
	ListRecentRecordsByOwner(ctx context.Context, ownerID string, limit int) ([]*model.StrategyRecord, error)
}

// AdminKeyLister defines the interface for listing API keys.
type AdminKeyLister interface {
	ListAPIKeysByUserID(ctx context.Context, userID string) ([]*model.APIKey, error)
}

// AdminHandler provides admin-only endpoints for debugging and operations.
type AdminHandler struct {
	recordRepo AdminRecordSearcher
	keyRepo    AdminKeyLister
	logger     *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(recordRepo AdminRecordSearcher, keyRepo AdminKeyLister, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		recordRepo: recordRepo,
		keyRepo:    keyRepo,
		logger:     logger,
	}
}

// AdminRecordListResponse represents the response for record lookup.
type AdminRecordListResponse struct {
	Records []*model.StrategyRecord `json:"records"`
	Total   int                     `json:"total"`
}

// GetRecord handles GET /api/v1/admin/records/{record_id}
// Looks up a single archived strategy record by its ULID.
func (h *AdminHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "record_id")
	if recordID == "" {
		writeErrorJSON(w, http.StatusBadRequest, "MISSING_RECORD_ID", "record ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	record, err := h.recordRepo.GetStrategyRecordByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			writeErrorJSON(w, http.StatusNotFound, "RECORD_NOT_FOUND", "record not found")
			return
		}
		h.logger.Error("failed to get strategy record",
			"error", err,
			"record_id", recordID,
		)
		writeErrorJSON(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get record")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// ListRecordsByOwner handles GET /api/v1/admin/records?owner_id={id}&limit={n}
// Lists the most recent archived records for an owner.
func (h *AdminHandler) ListRecordsByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeErrorJSON(w, http.StatusBadRequest, "MISSING_OWNER_ID", "query parameter 'owner_id' is required")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			writeErrorJSON(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	records, err := h.recordRepo.ListRecentRecordsByOwner(ctx, ownerID, limit)
	if err != nil {
		h.logger.Error("failed to list strategy records",
			"error", err,
			"owner_id", ownerID,
		)
		writeErrorJSON(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list records")
		return
	}

	response := AdminRecordListResponse{
		Records: records,
		Total:   len(records),
	}
	if response.Records == nil {
		response.Records = []*model.StrategyRecord{}
	}

	writeJSON(w, http.StatusOK, response)
}

// AdminAPIKeyListResponse represents the response for API key listing.
type AdminAPIKeyListResponse struct {
	Keys  []model.APIKeyResponse `json:"keys"`
	Total int                    `json:"total"`
}

// ListAPIKeysByUser handles GET /api/v1/admin/api-keys?user_id={id}
// Lists all API keys for a specific user (admin only).
func (h *AdminHandler) ListAPIKeysByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeErrorJSON(w, http.StatusBadRequest, "MISSING_USER_ID", "query parameter 'user_id' is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	keys, err := h.keyRepo.ListAPIKeysByUserID(ctx, userID)
	if err != nil {
		h.logger.Error("failed to list API keys",
			"error", err,
			"user_id", userID,
		)
		writeErrorJSON(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list API keys")
		return
	}

	response := AdminAPIKeyListResponse{
		Keys:  make([]model.APIKeyResponse, 0, len(keys)),
		Total: len(keys),
	}

	for _, key := range keys {
		response.Keys = append(response.Keys, key.ToResponse())
	}

	writeJSON(w, http.StatusOK, response)
}

// StatsResponse represents operational statistics.
type StatsResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime,omitempty"`
}

// Stats handles GET /api/v1/admin/stats
// Returns basic operational statistics.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	response := StatsResponse{
		Timestamp: time.Now().UTC(),
		Service:   "viralgrowth",
		Version:   "1.0.0", // TODO: inject at build time
	}
	writeJSON(w, http.StatusOK, response)
}

// writeErrorJSON writes a JSON error response.
func writeErrorJSON(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
		"code":  code,
	})
}
