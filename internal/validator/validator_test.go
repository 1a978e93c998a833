package validator

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/viralgrowth/viralgrowth/internal/genai"
	"github.com/viralgrowth/viralgrowth/internal/metrics"
	"github.com/viralgrowth/viralgrowth/internal/model"
)

type fakeGenerator struct {
	text  string
	err   error
	calls []genai.GenerateTextRequest
}

func (f *fakeGenerator) GenerateText(_ context.Context, req genai.GenerateTextRequest) (string, error) {
	f.calls = append(f.calls, req)
	return f.text, f.err
}

func newTestService(t *testing.T, gen *fakeGenerator) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := Config{Model: "check-model", Timeout: time.Minute, MaxMediaBytes: 10 << 20}
	return NewService(gen, cfg, logger, metrics.NewNoop())
}

func analysisJSON(t *testing.T, result model.ContentAnalysisResult) string {
	t.Helper()
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return string(data)
}

func validTextResult() model.ContentAnalysisResult {
	return model.ContentAnalysisResult{
		Score:            72,
		Feedback:         "Hook forte, CTA fraco.",
		Improvements:     []string{"Encurte o primeiro parágrafo."},
		RewrittenContent: "Versão reescrita do texto.",
	}
}

func TestAnalyzeRejectsLocallyWithoutBackendCalls(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "unknown kind",
			req:     Request{Kind: "gif", Content: "x"},
			wantErr: ErrInvalidKind,
		},
		{
			name:    "text without content",
			req:     Request{Kind: model.AssetText, Content: "   "},
			wantErr: ErrContentRequired,
		},
		{
			name:    "text with media",
			req:     Request{Kind: model.AssetText, Content: "x", MediaData: []byte("y"), MediaMIME: "image/png"},
			wantErr: ErrUnexpectedMedia,
		},
		{
			name:    "image without media",
			req:     Request{Kind: model.AssetImage},
			wantErr: ErrMediaRequired,
		},
		{
			name:    "mime does not match kind",
			req:     Request{Kind: model.AssetImage, MediaData: []byte("y"), MediaMIME: "video/mp4"},
			wantErr: ErrMediaMismatch,
		},
		{
			name:    "media one byte over the limit",
			req:     Request{Kind: model.AssetAudio, MediaData: make([]byte, (10<<20)+1), MediaMIME: "audio/wav"},
			wantErr: ErrMediaTooLarge,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := &fakeGenerator{}
			svc := newTestService(t, gen)

			_, err := svc.Analyze(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Analyze() error = %v, want %v", err, tt.wantErr)
			}
			if len(gen.calls) != 0 {
				t.Errorf("backend called %d times for rejected input, want 0", len(gen.calls))
			}
		})
	}
}

func TestAnalyzeTextHappyPath(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{text: analysisJSON(t, validTextResult())}
	svc := newTestService(t, gen)

	result, err := svc.Analyze(context.Background(), Request{
		Kind:            model.AssetText,
		StrategyContext: "Carrossel de 7 slides.",
		Content:         "Rascunho do post.",
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.Score != 72 {
		t.Errorf("Score = %d, want 72", result.Score)
	}

	if len(gen.calls) != 1 {
		t.Fatalf("backend called %d times, want 1", len(gen.calls))
	}
	call := gen.calls[0]
	if call.Model != "check-model" {
		t.Errorf("model = %q, want check-model", call.Model)
	}
	if len(call.Parts) != 1 {
		t.Fatalf("Parts = %d, want text only", len(call.Parts))
	}
	prompt := call.Parts[0].Text
	if !strings.Contains(prompt, "Editor Chefe e Copywriter Sênior.") {
		t.Error("prompt is missing the text specialist role")
	}
	if !strings.Contains(prompt, "Rascunho do post.") {
		t.Error("prompt is missing the draft content")
	}
	if !strings.Contains(prompt, "Carrossel de 7 slides.") {
		t.Error("prompt is missing the strategy context")
	}
}

func TestAnalyzeImageAttachesMediaAndRole(t *testing.T) {
	t.Parallel()

	result := validTextResult()
	result.VisualAnalysis = &model.VisualAnalysis{
		EstimatedFixationTime: "0.5s (Flash)",
		StoppingPowerScore:    88,
		ColorPalette:          []model.ColorPaletteEntry{{Hex: "#FF0000", Usage: "CTA", Psychology: "Urgency"}},
	}
	gen := &fakeGenerator{text: analysisJSON(t, result)}
	svc := newTestService(t, gen)

	got, err := svc.Analyze(context.Background(), Request{
		Kind:      model.AssetImage,
		MediaData: []byte("pngbytes"),
		MediaMIME: "image/png",
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got.VisualAnalysis == nil {
		t.Fatal("VisualAnalysis = nil for image kind")
	}
	if got.VisualAnalysis.StoppingPowerScore != 88 {
		t.Errorf("StoppingPowerScore = %d, want 88", got.VisualAnalysis.StoppingPowerScore)
	}

	call := gen.calls[0]
	if len(call.Parts) != 2 || call.Parts[1].InlineData == nil {
		t.Fatalf("Parts = %+v, want [text, inline media]", call.Parts)
	}
	if call.Parts[1].InlineData.MIMEType != "image/png" {
		t.Errorf("inline MIME = %q, want image/png", call.Parts[1].InlineData.MIMEType)
	}
	if !strings.Contains(call.Parts[0].Text, "Diretor de Arte Sênior") {
		t.Error("prompt is missing the image specialist role")
	}
	if !strings.Contains(call.Parts[0].Text, "Veja anexo.") {
		t.Error("prompt should reference the attachment as the material")
	}
}

func TestAnalyzeStripsVisualAnalysisForNonImageKinds(t *testing.T) {
	t.Parallel()

	result := validTextResult()
	result.VisualAnalysis = &model.VisualAnalysis{StoppingPowerScore: 90}
	gen := &fakeGenerator{text: analysisJSON(t, result)}
	svc := newTestService(t, gen)

	got, err := svc.Analyze(context.Background(), Request{
		Kind:      model.AssetVideo,
		MediaData: []byte("mp4"),
		MediaMIME: "video/mp4",
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got.VisualAnalysis != nil {
		t.Error("VisualAnalysis survived for a video check, want stripped")
	}
}

func TestAnalyzeShapeFailures(t *testing.T) {
	t.Parallel()

	outOfRange := validTextResult()
	outOfRange.Score = 101

	badVisual := validTextResult()
	badVisual.VisualAnalysis = &model.VisualAnalysis{StoppingPowerScore: 150}

	missingFeedback := validTextResult()
	missingFeedback.Feedback = ""

	tests := []struct {
		name string
		kind model.AssetKind
		text string
		err  error
	}{
		{name: "transport error", kind: model.AssetText, err: errors.New("backend 500")},
		{name: "not json", kind: model.AssetText, text: "não consigo"},
		{name: "score out of range", kind: model.AssetText, text: analysisJSON(t, outOfRange)},
		{name: "stopping power out of range", kind: model.AssetImage, text: analysisJSON(t, badVisual)},
		{name: "missing feedback", kind: model.AssetText, text: analysisJSON(t, missingFeedback)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := &fakeGenerator{text: tt.text, err: tt.err}
			svc := newTestService(t, gen)

			req := Request{Kind: tt.kind, Content: "texto"}
			if tt.kind == model.AssetImage {
				req = Request{Kind: tt.kind, MediaData: []byte("png"), MediaMIME: "image/png"}
			}

			_, err := svc.Analyze(context.Background(), req)
			if !errors.Is(err, ErrValidationFailed) {
				t.Errorf("Analyze() error = %v, want ErrValidationFailed", err)
			}
		})
	}
}

func TestAnalyzeAcceptsScoreBounds(t *testing.T) {
	t.Parallel()

	for _, score := range []int{0, 100} {
		result := validTextResult()
		result.Score = score
		gen := &fakeGenerator{text: analysisJSON(t, result)}
		svc := newTestService(t, gen)

		got, err := svc.Analyze(context.Background(), Request{Kind: model.AssetText, Content: "texto"})
		if err != nil {
			t.Fatalf("Analyze() error = %v at score %d", err, score)
		}
		if got.Score != score {
			t.Errorf("Score = %d, want %d", got.Score, score)
		}
	}
}
