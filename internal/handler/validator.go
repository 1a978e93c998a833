package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/viralgrowth/viralgrowth/internal/genai"
	"github.com/viralgrowth/viralgrowth/internal/handler/dto"
	"github.com/viralgrowth/viralgrowth/internal/model"
	"github.com/viralgrowth/viralgrowth/internal/validator"
)

// ValidatorHandler handles HTTP requests for content validation.
type ValidatorHandler struct {
	svc    *validator.Service
	logger *slog.Logger
}

// NewValidatorHandler creates a new ValidatorHandler.
func NewValidatorHandler(svc *validator.Service, logger *slog.Logger) *ValidatorHandler {
	return &ValidatorHandler{
		svc:    svc,
		logger: logger,
	}
}

// Validate handles POST /api/v1/validations.
func (h *ValidatorHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := validator.Request{
		Kind:            model.AssetKind(req.Kind),
		StrategyContext: req.StrategyContext,
		Content:         req.Content,
	}
	if req.Media != nil {
		input.MediaData = req.Media.Data
		input.MediaMIME = req.Media.MIMEType
	}

	result, err := h.svc.Analyze(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("content_validated",
		"kind", req.Kind,
		"score", result.Score,
	)

	writeJSON(w, http.StatusOK, result)
}

// handleServiceError maps validator service errors to HTTP responses.
func (h *ValidatorHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, validator.ErrInvalidKind):
		h.writeError(w, http.StatusBadRequest, "INVALID_KIND", "Kind must be text, image, video or audio")
	case errors.Is(err, validator.ErrContentRequired):
		h.writeError(w, http.StatusBadRequest, "CONTENT_REQUIRED", "Text validation requires content")
	case errors.Is(err, validator.ErrUnexpectedMedia):
		h.writeError(w, http.StatusBadRequest, "UNEXPECTED_MEDIA", "Text validation does not accept media")
	case errors.Is(err, validator.ErrMediaRequired):
		h.writeError(w, http.StatusBadRequest, "MEDIA_REQUIRED", "Media validation requires an attachment")
	case errors.Is(err, validator.ErrMediaMismatch):
		h.writeError(w, http.StatusUnsupportedMediaType, "MEDIA_MISMATCH", "Media type does not match the asset kind")
	case errors.Is(err, validator.ErrMediaTooLarge):
		h.writeError(w, http.StatusRequestEntityTooLarge, "MEDIA_TOO_LARGE", "Media exceeds the size limit")
	case errors.Is(err, genai.ErrCapabilityUnavailable):
		h.writeError(w, http.StatusBadGateway, "CAPABILITY_UNAVAILABLE", "The backend rejected these credentials for this capability")
	case errors.Is(err, validator.ErrValidationFailed):
		h.writeError(w, http.StatusBadGateway, "VALIDATION_FAILED", "Content validation failed")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *ValidatorHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
