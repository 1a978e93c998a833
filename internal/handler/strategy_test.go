package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/viralgrowth/viralgrowth/internal/auth"
	"github.com/viralgrowth/viralgrowth/internal/genai"
	"github.com/viralgrowth/viralgrowth/internal/handler/dto"
	"github.com/viralgrowth/viralgrowth/internal/history"
	"github.com/viralgrowth/viralgrowth/internal/model"
	"github.com/viralgrowth/viralgrowth/internal/strategy"
)

type scriptedGenerator struct {
	trendText string
	genText   string
	genErr    error
}

func (s *scriptedGenerator) GenerateText(_ context.Context, req genai.GenerateTextRequest) (string, error) {
	if req.UseGoogleSearch {
		return s.trendText, nil
	}
	return s.genText, s.genErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strategyResultJSON(t *testing.T) string {
	t.Helper()
	result := model.StrategyResult{
		Analysis: model.StrategyAnalysis{
			HookAssessment:   "Hook fraco nos primeiros segundos.",
			ValueProposition: "Resolve a dor de alcance orgânico.",
			OriginalityTrend: "Formato saturado, ângulo original.",
			Scores:           model.ViralScores{WatchTime: 4, Shareability: 5, Saveability: 3, CommentVelocity: 4},
		},
		Optimization: model.StrategyOptimization{
			FormatRecommendation: "Carrossel de 7 slides.",
			HookVariations:       []string{"h1", "h2", "h3"},
			OptimizedCTA:         "Salve este post!",
		},
		Platforms: []model.PlatformStrategy{
			{Name: "Instagram", Tactics: "Reels com corte seco.", KeyElements: []string{"legenda curta"}},
		},
		Distribution: model.StrategyDistribution{
			Timing:         "Terça, 19h.",
			InitialTrigger: []string{"responder comentários na primeira hora"},
		},
	}
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	return string(data)
}

func newStrategyHandler(t *testing.T, gen strategy.Generator) *StrategyHandler {
	t.Helper()
	hist := history.NewManager(history.NewMemoryStore(), history.DefaultLimit, testLogger(), nil)
	cfg := strategy.Config{
		ModelReasoning:     "reasoning-model",
		ModelMultimodal:    "multimodal-model",
		ModelTrend:         "trend-model",
		ThinkingBudget:     8192,
		GenerationTimeout:  time.Minute,
		TrendLookupTimeout: time.Second,
		MaxMediaBytes:      1 << 20,
	}
	svc := strategy.NewService(gen, hist, nil, cfg, testLogger(), nil)
	return NewStrategyHandler(svc, testLogger())
}

func authedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	authCtx := &model.AuthContext{KeyID: "key-1", UserID: "user-1", Scopes: []string{model.ScopeWrite}}
	return req.WithContext(auth.ContextWithAuth(req.Context(), authCtx))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

func TestStrategyGenerateRequiresAuth(t *testing.T) {
	h := newStrategyHandler(t, &scriptedGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/strategies", strings.NewReader("{}"))
	rec := httptest.NewRecorder()

	h.Generate(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestStrategyGenerateSuccess(t *testing.T) {
	gen := &scriptedGenerator{trendText: "trend bullets", genText: strategyResultJSON(t)}
	h := newStrategyHandler(t, gen)

	body, _ := json.Marshal(dto.GenerateStrategyRequest{
		Content:   "Como crescer no Instagram",
		Objective: string(model.ObjectiveEngagement),
	})
	rec := httptest.NewRecorder()

	h.Generate(rec, authedRequest(http.MethodPost, "/api/v1/strategies", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.HistoryEntryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == "" {
		t.Error("expected a non-empty entry ID")
	}
	if resp.Result.Analysis.TrendContext != "trend bullets" {
		t.Errorf("expected trend context from lookup, got %q", resp.Result.Analysis.TrendContext)
	}
	if resp.Request.Objective != string(model.ObjectiveEngagement) {
		t.Errorf("unexpected objective echo: %q", resp.Request.Objective)
	}
}

func TestStrategyGenerateErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       dto.GenerateStrategyRequest
		genErr     error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "empty submission",
			body:       dto.GenerateStrategyRequest{Objective: string(model.ObjectiveEngagement)},
			wantStatus: http.StatusBadRequest,
			wantCode:   "EMPTY_SUBMISSION",
		},
		{
			name:       "invalid objective",
			body:       dto.GenerateStrategyRequest{Content: "post", Objective: "growth"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_OBJECTIVE",
		},
		{
			name: "unsupported media type",
			body: dto.GenerateStrategyRequest{
				Content:   "post",
				Objective: string(model.ObjectiveEngagement),
				Media:     &dto.MediaPayload{Data: []byte("%PDF"), MIMEType: "application/pdf"},
			},
			wantStatus: http.StatusUnsupportedMediaType,
			wantCode:   "UNSUPPORTED_MEDIA_TYPE",
		},
		{
			name: "media too large",
			body: dto.GenerateStrategyRequest{
				Content:   "post",
				Objective: string(model.ObjectiveEngagement),
				Media:     &dto.MediaPayload{Data: make([]byte, (1<<20)+1), MIMEType: "image/png"},
			},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   "MEDIA_TOO_LARGE",
		},
		{
			name:       "backend failure",
			body:       dto.GenerateStrategyRequest{Content: "post", Objective: string(model.ObjectiveEngagement)},
			genErr:     &genai.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"},
			wantStatus: http.StatusBadGateway,
			wantCode:   "GENERATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &scriptedGenerator{trendText: "trend", genText: strategyResultJSON(t), genErr: tt.genErr}
			h := newStrategyHandler(t, gen)

			body, _ := json.Marshal(tt.body)
			rec := httptest.NewRecorder()

			h.Generate(rec, authedRequest(http.MethodPost, "/api/v1/strategies", body))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if resp := decodeError(t, rec); resp.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestStrategyGenerateCapabilityUnavailable(t *testing.T) {
	gen := &scriptedGenerator{
		trendText: "trend",
		genErr:    &genai.APIError{StatusCode: http.StatusForbidden, Message: "blocked"},
	}
	h := newStrategyHandler(t, gen)

	body, _ := json.Marshal(dto.GenerateStrategyRequest{
		Content:   "post",
		Objective: string(model.ObjectiveEngagement),
	})
	rec := httptest.NewRecorder()

	h.Generate(rec, authedRequest(http.MethodPost, "/api/v1/strategies", body))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "CAPABILITY_UNAVAILABLE" {
		t.Errorf("expected code CAPABILITY_UNAVAILABLE, got %s", resp.Code)
	}
}

func TestStrategyGenerateRejectsOversizedContent(t *testing.T) {
	h := newStrategyHandler(t, &scriptedGenerator{})

	body, _ := json.Marshal(dto.GenerateStrategyRequest{
		Content:   strings.Repeat("a", 10001),
		Objective: string(model.ObjectiveEngagement),
	})
	rec := httptest.NewRecorder()

	h.Generate(rec, authedRequest(http.MethodPost, "/api/v1/strategies", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "CONTENT_TOO_LONG" {
		t.Errorf("expected code CONTENT_TOO_LONG, got %s", resp.Code)
	}
}
