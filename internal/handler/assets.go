package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/viralgrowth/viralgrowth/internal/assets"
	"github.com/viralgrowth/viralgrowth/internal/genai"
	"github.com/viralgrowth/viralgrowth/internal/handler/dto"
	"github.com/viralgrowth/viralgrowth/internal/middleware"
)

const (
	videoOutputMIME = "video/mp4"
	audioOutputMIME = "audio/pcm;rate=24000"
)

// AssetsHandler handles HTTP requests for asset generation.
type AssetsHandler struct {
	thumbnails *assets.ThumbnailService
	videos     *assets.VideoService
	speech     *assets.SpeechService
	logger     *slog.Logger
}

// NewAssetsHandler creates a new AssetsHandler.
func NewAssetsHandler(thumbnails *assets.ThumbnailService, videos *assets.VideoService, speech *assets.SpeechService, logger *slog.Logger) *AssetsHandler {
	return &AssetsHandler{
		thumbnails: thumbnails,
		videos:     videos,
		speech:     speech,
		logger:     logger,
	}
}

// GenerateThumbnail handles POST /api/v1/assets/thumbnails.
func (h *AssetsHandler) GenerateThumbnail(w http.ResponseWriter, r *http.Request) {
	var req dto.ThumbnailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := middleware.ValidateHook(req.Hook); err != nil {
		h.writeError(w, http.StatusBadRequest, "HOOK_TOO_LONG", "Hook exceeds maximum length")
		return
	}
	brand, err := brandColors(req.Brand)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_HEX_COLOR", "Brand colors must be #RRGGBB")
		return
	}

	data, err := h.thumbnails.Generate(r.Context(), assets.ThumbnailRequest{
		Hook:        req.Hook,
		Description: req.Description,
		Brand:       brand,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("thumbnail_generated", "bytes", len(data))

	writeJSON(w, http.StatusOK, dto.AssetResponse{
		Data:     data,
		MIMEType: h.thumbnails.OutputMIME(),
	})
}

// GenerateVideo handles POST /api/v1/assets/videos.
// Blocks until the video job completes or the poll budget runs out.
func (h *AssetsHandler) GenerateVideo(w http.ResponseWriter, r *http.Request) {
	var req dto.VideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := middleware.ValidateHook(req.Hook); err != nil {
		h.writeError(w, http.StatusBadRequest, "HOOK_TOO_LONG", "Hook exceeds maximum length")
		return
	}
	brand, err := brandColors(req.Brand)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_HEX_COLOR", "Brand colors must be #RRGGBB")
		return
	}

	data, err := h.videos.Generate(r.Context(), assets.VideoRequest{
		Hook:        req.Hook,
		Description: req.Description,
		Brand:       brand,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("video_generated", "bytes", len(data))

	writeJSON(w, http.StatusOK, dto.AssetResponse{
		Data:     data,
		MIMEType: videoOutputMIME,
	})
}

// GenerateVoiceover handles POST /api/v1/assets/voiceovers.
func (h *AssetsHandler) GenerateVoiceover(w http.ResponseWriter, r *http.Request) {
	var req dto.SpeechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := middleware.ValidateScript(req.Script); err != nil {
		h.writeError(w, http.StatusBadRequest, "SCRIPT_TOO_LONG", "Script exceeds maximum length")
		return
	}

	data, err := h.speech.Synthesize(r.Context(), req.Script)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("voiceover_generated", "bytes", len(data))

	writeJSON(w, http.StatusOK, dto.AssetResponse{
		Data:     data,
		MIMEType: audioOutputMIME,
	})
}

// handleServiceError maps asset service errors to HTTP responses.
func (h *AssetsHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, assets.ErrEmptyPrompt):
		h.writeError(w, http.StatusBadRequest, "EMPTY_PROMPT", "Provide a hook or a description")
	case errors.Is(err, assets.ErrEmptyScript):
		h.writeError(w, http.StatusBadRequest, "EMPTY_SCRIPT", "Provide a script to synthesize")
	case errors.Is(err, genai.ErrCapabilityUnavailable):
		h.writeError(w, http.StatusBadGateway, "CAPABILITY_UNAVAILABLE", "The backend rejected these credentials for this capability")
	case errors.Is(err, assets.ErrPollBudgetExceeded):
		h.writeError(w, http.StatusGatewayTimeout, "POLL_BUDGET_EXCEEDED", "Video job did not finish in time")
	case errors.Is(err, assets.ErrNoVideoOutput):
		h.writeError(w, http.StatusBadGateway, "NO_VIDEO_OUTPUT", "Video job finished without output")
	case errors.Is(err, assets.ErrSpeechFailed):
		h.writeError(w, http.StatusBadGateway, "SPEECH_FAILED", "All speech backends failed")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusBadGateway, "ASSET_GENERATION_FAILED", "Asset generation failed")
	}
}

// brandColors validates and converts the optional brand color payload.
func brandColors(payload *dto.BrandColorsPayload) (*assets.BrandColors, error) {
	if payload == nil {
		return nil, nil
	}
	if err := middleware.ValidateHexColor(payload.Primary); err != nil {
		return nil, err
	}
	if err := middleware.ValidateHexColor(payload.Secondary); err != nil {
		return nil, err
	}
	return &assets.BrandColors{
		Primary:   payload.Primary,
		Secondary: payload.Secondary,
	}, nil
}

// writeError writes an error response.
func (h *AssetsHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
