// Package strategy implements viral strategy generation: local validation,
// a best-effort trend lookup, recalibration from past performance, one
// schema-constrained generation call and history/archive bookkeeping.
package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/viralgrowth/viralgrowth/internal/genai"
	"github.com/viralgrowth/viralgrowth/internal/history"
	"github.com/viralgrowth/viralgrowth/internal/metrics"
	"github.com/viralgrowth/viralgrowth/internal/model"
)

// Generator is the backend surface this service consumes.
type Generator interface {
	GenerateText(ctx context.Context, req genai.GenerateTextRequest) (string, error)
}

// Archiver persists the durable strategy_records trail. Optional; archive
// failures never fail a generation.
type Archiver interface {
	InsertStrategyRecord(ctx context.Context, record *model.StrategyRecord) error
}

// Config carries the generation tunables.
type Config struct {
	ModelReasoning  string
	ModelMultimodal string
	ModelTrend      string
	ThinkingBudget  int

	GenerationTimeout  time.Duration
	TrendLookupTimeout time.Duration
	MaxMediaBytes      int64
}

// Service orchestrates strategy generation.
type Service struct {
	gen     Generator
	history *history.Manager
	archive Archiver
	cfg     Config
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewService creates a strategy service. archive may be nil.
func NewService(gen Generator, hist *history.Manager, archive Archiver, cfg Config, logger *slog.Logger, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Service{
		gen:     gen,
		history: hist,
		archive: archive,
		cfg:     cfg,
		logger:  logger,
		metrics: recorder,
	}
}

// Generate runs the full pipeline for one request and returns the recorded
// history entry. Input problems are rejected before any backend call.
func (s *Service) Generate(ctx context.Context, ownerID string, req model.StrategyRequest) (model.HistoryEntry, error) {
	if err := s.validate(&req); err != nil {
		return model.HistoryEntry{}, err
	}

	trendContext := s.lookupTrends(ctx, req.Content)

	past, err := s.history.Recent(ctx, ownerID)
	if err != nil {
		// Recalibration is an enhancement; a broken working store must not
		// block generation.
		s.logger.Warn("history load failed, generating without learning context", "owner_id", ownerID, "error", err)
		past = nil
	}
	learning := learningContext(past)

	start := time.Now()
	result, err := s.callBackend(ctx, req, trendContext, learning)
	if err != nil {
		s.metrics.IncStrategyGenerated("error")
		return model.HistoryEntry{}, err
	}
	s.metrics.ObserveGenerationDuration(time.Since(start))
	s.metrics.IncStrategyGenerated("ok")

	// The pre-step owns trend context. The model's own rendering of it is
	// discarded so the stored result always reflects what the prompt saw.
	result.Analysis.TrendContext = trendContext

	entry, err := s.history.Record(ctx, ownerID, req, result)
	if err != nil {
		return model.HistoryEntry{}, fmt.Errorf("record history: %w", err)
	}

	s.archiveRecord(ctx, ownerID, entry, req, trendContext)

	return entry, nil
}

func (s *Service) validate(req *model.StrategyRequest) error {
	if strings.TrimSpace(req.Content) == "" && !req.HasMedia() {
		return ErrEmptySubmission
	}
	if !req.Objective.IsValid() {
		return ErrInvalidObjective
	}
	if req.HasMedia() {
		kind, ok := model.ClassifyMedia(req.Media.MIMEType)
		if !ok {
			return ErrUnsupportedMediaType
		}
		req.Media.Kind = kind
		if int64(req.Media.Size()) > s.cfg.MaxMediaBytes {
			return ErrMediaTooLarge
		}
	}
	return nil
}

// lookupTrends runs the search-grounded pre-step under its own timeout.
// Any failure degrades to the placeholder; the main call always proceeds.
func (s *Service) lookupTrends(ctx context.Context, content string) string {
	lookupCtx, cancel := context.WithTimeout(ctx, s.cfg.TrendLookupTimeout)
	defer cancel()

	text, err := s.gen.GenerateText(lookupCtx, genai.GenerateTextRequest{
		Model:           s.cfg.ModelTrend,
		Parts:           []genai.Part{{Text: trendQuery(content)}},
		UseGoogleSearch: true,
	})
	if err != nil {
		s.metrics.IncTrendLookup("error")
		s.logger.Warn("trend lookup failed, proceeding without trend data", "error", err)
		return trendFallback
	}
	if strings.TrimSpace(text) == "" {
		s.metrics.IncTrendLookup("empty")
		return trendFallback
	}

	s.metrics.IncTrendLookup("ok")
	return text
}

func (s *Service) callBackend(ctx context.Context, req model.StrategyRequest, trendContext, learning string) (model.StrategyResult, error) {
	genCtx, cancel := context.WithTimeout(ctx, s.cfg.GenerationTimeout)
	defer cancel()

	parts := []genai.Part{{Text: buildPrompt(req, trendContext, learning)}}
	if req.HasMedia() {
		parts = append(parts, genai.Part{InlineData: &genai.Blob{
			MIMEType: req.Media.MIMEType,
			Data:     req.Media.Data,
		}})
	}

	genReq := genai.GenerateTextRequest{
		Parts:          parts,
		ResponseSchema: resultSchema,
	}
	if req.HasMedia() {
		genReq.Model = s.cfg.ModelMultimodal
		genReq.System = multimodalSystemInstruction
	} else {
		genReq.Model = s.cfg.ModelReasoning
		genReq.ThinkingBudget = s.cfg.ThinkingBudget
	}

	text, err := s.gen.GenerateText(genCtx, genReq)
	if err != nil {
		return model.StrategyResult{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	var result model.StrategyResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		s.logger.Warn("generation output is not valid JSON", "error", err)
		return model.StrategyResult{}, fmt.Errorf("%w: decode response: %w", ErrGenerationFailed, err)
	}
	if err := validateShape(result); err != nil {
		s.logger.Warn("generation output violates the result shape", "error", err)
		return model.StrategyResult{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	return result, nil
}

// validateShape enforces the response contract the schema asked for.
// A result that fails here is treated exactly like a transport failure.
func validateShape(result model.StrategyResult) error {
	a := result.Analysis
	if a.HookAssessment == "" || a.ValueProposition == "" || a.OriginalityTrend == "" {
		return fmt.Errorf("analysis is missing required fields")
	}
	if !a.Scores.InRange() {
		return fmt.Errorf("scores out of the 1-5 range: %+v", a.Scores)
	}

	o := result.Optimization
	if o.FormatRecommendation == "" || o.OptimizedCTA == "" || len(o.HookVariations) == 0 {
		return fmt.Errorf("optimization is missing required fields")
	}

	if len(result.Platforms) == 0 {
		return fmt.Errorf("platforms is empty")
	}
	for i, p := range result.Platforms {
		if p.Name == "" || p.Tactics == "" {
			return fmt.Errorf("platform %d is missing required fields", i)
		}
	}

	d := result.Distribution
	if d.Timing == "" || len(d.InitialTrigger) == 0 {
		return fmt.Errorf("distribution is missing required fields")
	}

	return nil
}

// archiveRecord writes the durable trail row. Best effort only.
func (s *Service) archiveRecord(ctx context.Context, ownerID string, entry model.HistoryEntry, req model.StrategyRequest, trendContext string) {
	if s.archive == nil {
		return
	}

	record := &model.StrategyRecord{
		OwnerID:      ownerID,
		HistoryID:    entry.ID,
		Content:      req.Content,
		Objective:    req.Objective,
		HasMedia:     req.HasMedia(),
		TrendContext: trendContext,
		Result:       entry.Result,
	}
	if req.HasMedia() {
		record.MediaMIME = req.Media.MIMEType
	}

	if err := s.archive.InsertStrategyRecord(ctx, record); err != nil {
		s.logger.Warn("strategy archive write failed", "owner_id", ownerID, "history_id", entry.ID, "error", err)
	}
}
