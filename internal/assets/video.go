package assets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/viralgrowth/viralgrowth/internal/genai"
	"github.com/viralgrowth/viralgrowth/internal/metrics"
)

// VideoBackend is the backend surface for long-running video jobs.
type VideoBackend interface {
	StartVideoJob(ctx context.Context, req genai.VideoRequest) (*genai.VideoOperation, error)
	PollVideoJob(ctx context.Context, operationName string) (*genai.VideoOperation, error)
	DownloadVideo(ctx context.Context, uri string) ([]byte, error)
}

// VideoConfig carries the video generation tunables.
type VideoConfig struct {
	Model       string
	Resolution  string
	AspectRatio string
	// PollInterval is the fixed delay between status checks.
	PollInterval time.Duration
	// PollBudget bounds the total wait for one job.
	PollBudget time.Duration
}

// VideoRequest describes one concept video to generate.
type VideoRequest struct {
	Hook        string
	Description string
	Brand       *BrandColors
}

// VideoService runs video jobs end to end: submit, poll, download.
type VideoService struct {
	backend VideoBackend
	cfg     VideoConfig
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewVideoService creates a video service.
func NewVideoService(backend VideoBackend, cfg VideoConfig, logger *slog.Logger, recorder metrics.Recorder) *VideoService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &VideoService{backend: backend, cfg: cfg, logger: logger, metrics: recorder}
}

// Generate submits a video job, polls it to completion and returns the
// downloaded bytes. The caller's ctx cancels the wait at any suspension
// point; the configured budget bounds it otherwise.
func (s *VideoService) Generate(ctx context.Context, req VideoRequest) ([]byte, error) {
	if strings.TrimSpace(req.Hook) == "" && strings.TrimSpace(req.Description) == "" {
		return nil, ErrEmptyPrompt
	}

	jobCtx, cancel := context.WithTimeout(ctx, s.cfg.PollBudget)
	defer cancel()

	op, err := s.backend.StartVideoJob(jobCtx, genai.VideoRequest{
		Model:       s.cfg.Model,
		Prompt:      videoPrompt(req),
		Resolution:  s.cfg.Resolution,
		AspectRatio: s.cfg.AspectRatio,
	})
	if err != nil {
		s.metrics.IncAssetGenerated("video", "error")
		return nil, fmt.Errorf("submit video job: %w", err)
	}

	s.logger.Debug("video job submitted", "operation", op.Name)

	op, checks, err := s.waitForCompletion(jobCtx, op)
	s.metrics.ObserveVideoPollChecks(checks)
	if err != nil {
		s.metrics.IncAssetGenerated("video", "error")
		return nil, err
	}

	if op.VideoURI == "" {
		s.metrics.IncAssetGenerated("video", "error")
		return nil, ErrNoVideoOutput
	}

	data, err := s.backend.DownloadVideo(jobCtx, op.VideoURI)
	if err != nil {
		s.metrics.IncAssetGenerated("video", "error")
		return nil, fmt.Errorf("download video: %w", err)
	}

	s.metrics.IncAssetGenerated("video", "ok")
	return data, nil
}

// waitForCompletion polls at the fixed interval until the job reports done.
// Returns the number of status checks issued.
func (s *VideoService) waitForCompletion(ctx context.Context, op *genai.VideoOperation) (*genai.VideoOperation, int, error) {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	checks := 0
	for !op.Done {
		select {
		case <-ctx.Done():
			return nil, checks, s.waitError(ctx)
		case <-ticker.C:
		}
		// The select above may win the ticker case while ctx is already
		// cancelled; never issue another check once that happens.
		if ctx.Err() != nil {
			return nil, checks, s.waitError(ctx)
		}

		next, err := s.backend.PollVideoJob(ctx, op.Name)
		if err != nil {
			if ctx.Err() != nil {
				return nil, checks, s.waitError(ctx)
			}
			return nil, checks, fmt.Errorf("poll video job: %w", err)
		}
		checks++
		op = next
	}
	return op, checks, nil
}

func (s *VideoService) waitError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrPollBudgetExceeded, s.cfg.PollBudget)
	}
	return fmt.Errorf("video job abandoned: %w", ctx.Err())
}

func videoPrompt(req VideoRequest) string {
	colorContext := ""
	if req.Brand != nil {
		colorContext = fmt.Sprintf("Color palette: %s (dominant), %s (accent). ", req.Brand.Primary, req.Brand.Secondary)
	}
	return fmt.Sprintf("Cinematic social media video concept. Visualizing: %s. Hook text integration: %s. %sHigh energy, fast paced, viral style, 4k.",
		req.Description, req.Hook, colorContext)
}
