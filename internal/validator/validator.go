// Package validator scores draft assets against their originating strategy.
// One schema-constrained backend call per check; verdicts are returned to
// the caller and never persisted.
package validator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/viralgrowth/viralgrowth/internal/genai"
	"github.com/viralgrowth/viralgrowth/internal/metrics"
	"github.com/viralgrowth/viralgrowth/internal/model"
)

// Service errors.
var (
	ErrInvalidKind      = errors.New("unknown asset kind")
	ErrContentRequired  = errors.New("text validation requires content")
	ErrUnexpectedMedia  = errors.New("text validation does not accept media")
	ErrMediaRequired    = errors.New("media validation requires an attachment")
	ErrMediaMismatch    = errors.New("media type does not match the asset kind")
	ErrMediaTooLarge    = errors.New("media exceeds the size limit")
	ErrValidationFailed = errors.New("content validation failed")
)

// Generator is the backend surface this service consumes.
type Generator interface {
	GenerateText(ctx context.Context, req genai.GenerateTextRequest) (string, error)
}

// Request is one draft asset to score.
type Request struct {
	Kind            model.AssetKind
	StrategyContext string
	// Content carries the draft text for text assets. Ignored otherwise.
	Content string
	// MediaData/MediaMIME carry the draft media for non-text assets.
	MediaData []byte
	MediaMIME string
}

// Config carries the validation tunables.
type Config struct {
	Model         string
	Timeout       time.Duration
	MaxMediaBytes int64
}

// Service runs content validation.
type Service struct {
	gen     Generator
	cfg     Config
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewService creates a validator service.
func NewService(gen Generator, cfg Config, logger *slog.Logger, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Service{gen: gen, cfg: cfg, logger: logger, metrics: recorder}
}

// Analyze scores one draft asset. Input problems are rejected before any
// backend call.
func (s *Service) Analyze(ctx context.Context, req Request) (model.ContentAnalysisResult, error) {
	if err := s.validate(req); err != nil {
		return model.ContentAnalysisResult{}, err
	}

	result, err := s.callBackend(ctx, req)
	if err != nil {
		s.metrics.IncValidation(string(req.Kind), "error")
		return model.ContentAnalysisResult{}, err
	}

	s.metrics.IncValidation(string(req.Kind), "ok")
	return result, nil
}

func (s *Service) validate(req Request) error {
	if !req.Kind.IsValid() {
		return ErrInvalidKind
	}

	if req.Kind == model.AssetText {
		if strings.TrimSpace(req.Content) == "" {
			return ErrContentRequired
		}
		if len(req.MediaData) > 0 {
			return ErrUnexpectedMedia
		}
		return nil
	}

	if len(req.MediaData) == 0 {
		return ErrMediaRequired
	}
	if !req.Kind.MatchesMIME(req.MediaMIME) {
		return ErrMediaMismatch
	}
	if int64(len(req.MediaData)) > s.cfg.MaxMediaBytes {
		return ErrMediaTooLarge
	}
	return nil
}

func (s *Service) callBackend(ctx context.Context, req Request) (model.ContentAnalysisResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	parts := []genai.Part{{Text: buildPrompt(req)}}
	if req.Kind != model.AssetText {
		parts = append(parts, genai.Part{InlineData: &genai.Blob{
			MIMEType: req.MediaMIME,
			Data:     req.MediaData,
		}})
	}

	text, err := s.gen.GenerateText(callCtx, genai.GenerateTextRequest{
		Model:          s.cfg.Model,
		Parts:          parts,
		ResponseSchema: analysisSchema,
	})
	if err != nil {
		return model.ContentAnalysisResult{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	var result model.ContentAnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		s.logger.Warn("validation output is not valid JSON", "kind", req.Kind, "error", err)
		return model.ContentAnalysisResult{}, fmt.Errorf("%w: decode response: %w", ErrValidationFailed, err)
	}

	// The visual block only means anything for image checks. Anything the
	// backend volunteers for other kinds is dropped before shape checks.
	if req.Kind != model.AssetImage {
		result.VisualAnalysis = nil
	}

	if err := validateShape(&result); err != nil {
		s.logger.Warn("validation output violates the result shape", "kind", req.Kind, "error", err)
		return model.ContentAnalysisResult{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	return result, nil
}

func validateShape(result *model.ContentAnalysisResult) error {
	if !result.ScoreInRange() {
		return fmt.Errorf("score %d out of the 0-100 range", result.Score)
	}
	if result.Feedback == "" || result.RewrittenContent == "" {
		return fmt.Errorf("result is missing required fields")
	}
	if result.VisualAnalysis != nil && !result.VisualAnalysis.InRange() {
		return fmt.Errorf("stopping power score %d out of the 0-100 range", result.VisualAnalysis.StoppingPowerScore)
	}
	return nil
}
