package assets

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/viralgrowth/viralgrowth/internal/genai"
	"github.com/viralgrowth/viralgrowth/internal/metrics"
)

// Synthesizer is one tier of the speech fallback chain.
type Synthesizer interface {
	Name() string
	Synthesize(ctx context.Context, script string) ([]byte, error)
}

// SpeechBackend is the backend surface for hosted speech synthesis.
type SpeechBackend interface {
	SynthesizeSpeech(ctx context.Context, req genai.SpeechRequest) ([]byte, error)
}

// GeminiSynthesizer is the hosted TTS tier.
type GeminiSynthesizer struct {
	backend SpeechBackend
	model   string
	voice   string
}

// NewGeminiSynthesizer creates the hosted tier with a prebuilt voice.
func NewGeminiSynthesizer(backend SpeechBackend, model, voice string) *GeminiSynthesizer {
	return &GeminiSynthesizer{backend: backend, model: model, voice: voice}
}

func (g *GeminiSynthesizer) Name() string { return "gemini" }

func (g *GeminiSynthesizer) Synthesize(ctx context.Context, script string) ([]byte, error) {
	return g.backend.SynthesizeSpeech(ctx, genai.SpeechRequest{
		Model:  g.model,
		Script: script,
		Voice:  g.voice,
	})
}

// LocalSynthesizer shells out to an espeak-style command that writes wav
// bytes to stdout.
type LocalSynthesizer struct {
	command string
}

// NewLocalSynthesizer creates the local fallback tier.
func NewLocalSynthesizer(command string) *LocalSynthesizer {
	return &LocalSynthesizer{command: command}
}

func (l *LocalSynthesizer) Name() string { return "local" }

func (l *LocalSynthesizer) Synthesize(ctx context.Context, script string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, l.command, "--stdout", script)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", l.command, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s produced no audio", l.command)
	}
	return out, nil
}

// SpeechService walks an ordered chain of synthesizers. First success wins.
type SpeechService struct {
	chain   []Synthesizer
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewSpeechService creates a speech service over the given chain.
func NewSpeechService(chain []Synthesizer, logger *slog.Logger, recorder metrics.Recorder) *SpeechService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &SpeechService{chain: chain, logger: logger, metrics: recorder}
}

// Synthesize renders the script to audio through the first tier that
// succeeds. When every tier fails the last error is returned.
func (s *SpeechService) Synthesize(ctx context.Context, script string) ([]byte, error) {
	if strings.TrimSpace(script) == "" {
		return nil, ErrEmptyScript
	}

	var lastErr error
	for _, tier := range s.chain {
		audio, err := tier.Synthesize(ctx, script)
		if err == nil {
			s.metrics.IncAssetGenerated("audio", "ok")
			return audio, nil
		}
		s.logger.Warn("speech tier failed, trying next", "tier", tier.Name(), "error", err)
		lastErr = err
	}

	s.metrics.IncAssetGenerated("audio", "error")
	return nil, fmt.Errorf("%w: %w", ErrSpeechFailed, lastErr)
}
