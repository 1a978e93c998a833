package assets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/viralgrowth/viralgrowth/internal/genai"
	"github.com/viralgrowth/viralgrowth/internal/metrics"
)

// ImageBackend is the backend surface for single-call image generation.
type ImageBackend interface {
	GenerateImage(ctx context.Context, req genai.ImageRequest) ([]byte, error)
}

// ThumbnailConfig carries the image generation tunables.
type ThumbnailConfig struct {
	Model          string
	AspectRatio    string
	OutputMIMEType string
}

// ThumbnailRequest describes one thumbnail to generate.
type ThumbnailRequest struct {
	Hook        string
	Description string
	Brand       *BrandColors
}

// ThumbnailService generates vertical thumbnails.
type ThumbnailService struct {
	backend ImageBackend
	cfg     ThumbnailConfig
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewThumbnailService creates a thumbnail service.
func NewThumbnailService(backend ImageBackend, cfg ThumbnailConfig, logger *slog.Logger, recorder metrics.Recorder) *ThumbnailService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ThumbnailService{backend: backend, cfg: cfg, logger: logger, metrics: recorder}
}

// OutputMIME returns the MIME type of images this service produces.
func (s *ThumbnailService) OutputMIME() string {
	return s.cfg.OutputMIMEType
}

// Generate produces one thumbnail and returns the encoded image bytes.
func (s *ThumbnailService) Generate(ctx context.Context, req ThumbnailRequest) ([]byte, error) {
	if strings.TrimSpace(req.Hook) == "" && strings.TrimSpace(req.Description) == "" {
		return nil, ErrEmptyPrompt
	}

	data, err := s.backend.GenerateImage(ctx, genai.ImageRequest{
		Model:          s.cfg.Model,
		Prompt:         thumbnailPrompt(req),
		AspectRatio:    s.cfg.AspectRatio,
		OutputMIMEType: s.cfg.OutputMIMEType,
	})
	if err != nil {
		s.metrics.IncAssetGenerated("thumbnail", "error")
		return nil, fmt.Errorf("generate thumbnail: %w", err)
	}

	s.metrics.IncAssetGenerated("thumbnail", "ok")
	return data, nil
}

func thumbnailPrompt(req ThumbnailRequest) string {
	colorContext := ""
	if req.Brand != nil {
		colorContext = fmt.Sprintf("Use brand colors %s and %s for text overlays and accents. ", req.Brand.Primary, req.Brand.Secondary)
	}
	return fmt.Sprintf("Vertical social media thumbnail (9:16). Text overlay: %q. Context: %s. %sHigh contrast, professional, viral aesthetics, 8k resolution, hyper realistic.",
		req.Hook, req.Description, colorContext)
}
