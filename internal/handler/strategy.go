package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/viralgrowth/viralgrowth/internal/auth"
	"github.com/viralgrowth/viralgrowth/internal/genai"
	"github.com/viralgrowth/viralgrowth/internal/handler/dto"
	"github.com/viralgrowth/viralgrowth/internal/middleware"
	"github.com/viralgrowth/viralgrowth/internal/model"
	"github.com/viralgrowth/viralgrowth/internal/strategy"
)

// StrategyHandler handles HTTP requests for strategy generation.
type StrategyHandler struct {
	svc    *strategy.Service
	logger *slog.Logger
}

// NewStrategyHandler creates a new StrategyHandler.
func NewStrategyHandler(svc *strategy.Service, logger *slog.Logger) *StrategyHandler {
	return &StrategyHandler{
		svc:    svc,
		logger: logger,
	}
}

// Generate handles POST /api/v1/strategies.
func (h *StrategyHandler) Generate(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req dto.GenerateStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := middleware.ValidateContent(req.Content); err != nil {
		h.writeError(w, http.StatusBadRequest, "CONTENT_TOO_LONG", "Content exceeds maximum length")
		return
	}

	input := model.StrategyRequest{
		Content:   req.Content,
		Objective: model.Objective(req.Objective),
	}
	if req.Media != nil {
		input.Media = &model.MediaAttachment{
			Data:     req.Media.Data,
			MIMEType: req.Media.MIMEType,
		}
	}

	entry, err := h.svc.Generate(r.Context(), authCtx.UserID, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("strategy_generated",
		"entry_id", entry.ID,
		"owner_id", authCtx.UserID,
		"has_media", input.HasMedia(),
	)

	writeJSON(w, http.StatusCreated, dto.ToHistoryEntryResponse(entry))
}

// handleServiceError maps strategy service errors to HTTP responses.
func (h *StrategyHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, strategy.ErrEmptySubmission):
		h.writeError(w, http.StatusBadRequest, "EMPTY_SUBMISSION", "Provide content or attach media")
	case errors.Is(err, strategy.ErrInvalidObjective):
		h.writeError(w, http.StatusBadRequest, "INVALID_OBJECTIVE", "Unknown growth objective")
	case errors.Is(err, strategy.ErrMediaTooLarge):
		h.writeError(w, http.StatusRequestEntityTooLarge, "MEDIA_TOO_LARGE", "Media exceeds the size limit")
	case errors.Is(err, strategy.ErrUnsupportedMediaType):
		h.writeError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Media must be an image or video")
	case errors.Is(err, genai.ErrCapabilityUnavailable):
		h.writeError(w, http.StatusBadGateway, "CAPABILITY_UNAVAILABLE", "The backend rejected these credentials for this capability")
	case errors.Is(err, strategy.ErrGenerationFailed):
		h.writeError(w, http.StatusBadGateway, "GENERATION_FAILED", "Strategy generation failed")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *StrategyHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
