package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/viralgrowth/viralgrowth/internal/genai"
	"github.com/viralgrowth/viralgrowth/internal/handler/dto"
	"github.com/viralgrowth/viralgrowth/internal/model"
	"github.com/viralgrowth/viralgrowth/internal/validator"
)

type stubAnalyzer struct {
	text string
	err  error
}

func (s *stubAnalyzer) GenerateText(_ context.Context, _ genai.GenerateTextRequest) (string, error) {
	return s.text, s.err
}

func analysisJSON(t *testing.T) string {
	t.Helper()
	result := model.ContentAnalysisResult{
		Score:            72,
		Feedback:         "Hook bom, CTA fraco.",
		Improvements:     []string{"encurtar a abertura"},
		RewrittenContent: "Versão reescrita do post.",
	}
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	return string(data)
}

func newValidatorHandler(gen validator.Generator) *ValidatorHandler {
	cfg := validator.Config{
		Model:         "reasoning-model",
		Timeout:       time.Minute,
		MaxMediaBytes: 1 << 20,
	}
	svc := validator.NewService(gen, cfg, testLogger(), nil)
	return NewValidatorHandler(svc, testLogger())
}

func TestValidateTextSuccess(t *testing.T) {
	h := newValidatorHandler(&stubAnalyzer{text: analysisJSON(t)})

	body, _ := json.Marshal(dto.ValidateContentRequest{
		Kind:            string(model.AssetText),
		StrategyContext: "Carrossel de 7 slides.",
		Content:         "Meu rascunho de post.",
	})
	rec := httptest.NewRecorder()

	h.Validate(rec, authedRequest(http.MethodPost, "/api/v1/validations", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp model.ContentAnalysisResult
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Score != 72 {
		t.Errorf("expected score 72, got %d", resp.Score)
	}
}

func TestValidateErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       dto.ValidateContentRequest
		backend    *stubAnalyzer
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid kind",
			body:       dto.ValidateContentRequest{Kind: "carousel", Content: "x"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_KIND",
		},
		{
			name:       "text requires content",
			body:       dto.ValidateContentRequest{Kind: string(model.AssetText)},
			wantStatus: http.StatusBadRequest,
			wantCode:   "CONTENT_REQUIRED",
		},
		{
			name: "media mismatch",
			body: dto.ValidateContentRequest{
				Kind:  string(model.AssetImage),
				Media: &dto.MediaPayload{Data: []byte("clip"), MIMEType: "video/mp4"},
			},
			wantStatus: http.StatusUnsupportedMediaType,
			wantCode:   "MEDIA_MISMATCH",
		},
		{
			name:       "media required",
			body:       dto.ValidateContentRequest{Kind: string(model.AssetVideo)},
			wantStatus: http.StatusBadRequest,
			wantCode:   "MEDIA_REQUIRED",
		},
		{
			name:       "backend failure",
			body:       dto.ValidateContentRequest{Kind: string(model.AssetText), Content: "x"},
			backend:    &stubAnalyzer{err: &genai.APIError{StatusCode: http.StatusInternalServerError}},
			wantStatus: http.StatusBadGateway,
			wantCode:   "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := tt.backend
			if backend == nil {
				backend = &stubAnalyzer{text: analysisJSON(t)}
			}
			h := newValidatorHandler(backend)

			body, _ := json.Marshal(tt.body)
			rec := httptest.NewRecorder()

			h.Validate(rec, authedRequest(http.MethodPost, "/api/v1/validations", body))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if resp := decodeError(t, rec); resp.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, resp.Code)
			}
		})
	}
}
