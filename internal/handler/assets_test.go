package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/viralgrowth/viralgrowth/internal/assets"
	"github.com/viralgrowth/viralgrowth/internal/genai"
	"github.com/viralgrowth/viralgrowth/internal/handler/dto"
)

type stubImageBackend struct {
	data []byte
	err  error
}

func (s *stubImageBackend) GenerateImage(_ context.Context, _ genai.ImageRequest) ([]byte, error) {
	return s.data, s.err
}

type stubVideoBackend struct {
	data []byte
}

func (s *stubVideoBackend) StartVideoJob(_ context.Context, _ genai.VideoRequest) (*genai.VideoOperation, error) {
	return &genai.VideoOperation{Name: "operations/job-1", Done: true, VideoURI: "https://example.com/clip"}, nil
}

func (s *stubVideoBackend) PollVideoJob(_ context.Context, name string) (*genai.VideoOperation, error) {
	return &genai.VideoOperation{Name: name, Done: true, VideoURI: "https://example.com/clip"}, nil
}

func (s *stubVideoBackend) DownloadVideo(_ context.Context, _ string) ([]byte, error) {
	return s.data, nil
}

type stubSynth struct {
	name string
	data []byte
	err  error
}

func (s *stubSynth) Name() string { return s.name }

func (s *stubSynth) Synthesize(_ context.Context, _ string) ([]byte, error) {
	return s.data, s.err
}

func newAssetsHandler(img *stubImageBackend, vid *stubVideoBackend, synths ...assets.Synthesizer) *AssetsHandler {
	thumbs := assets.NewThumbnailService(img, assets.ThumbnailConfig{
		Model:          "image-model",
		AspectRatio:    "9:16",
		OutputMIMEType: "image/jpeg",
	}, testLogger(), nil)
	videos := assets.NewVideoService(vid, assets.VideoConfig{
		Model:        "video-model",
		Resolution:   "720p",
		AspectRatio:  "9:16",
		PollInterval: time.Millisecond,
		PollBudget:   time.Second,
	}, testLogger(), nil)
	speech := assets.NewSpeechService(synths, testLogger(), nil)
	return NewAssetsHandler(thumbs, videos, speech, testLogger())
}

func TestGenerateThumbnailSuccess(t *testing.T) {
	h := newAssetsHandler(&stubImageBackend{data: []byte("jpeg-bytes")}, &stubVideoBackend{})

	body, _ := json.Marshal(dto.ThumbnailRequest{
		Hook:        "Pare de postar errado",
		Description: "Carrossel sobre crescimento",
		Brand:       &dto.BrandColorsPayload{Primary: "#112233", Secondary: "#FFEEAA"},
	})
	rec := httptest.NewRecorder()

	h.GenerateThumbnail(rec, authedRequest(http.MethodPost, "/api/v1/assets/thumbnails", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AssetResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if string(resp.Data) != "jpeg-bytes" {
		t.Errorf("unexpected data: %q", resp.Data)
	}
	if resp.MIMEType != "image/jpeg" {
		t.Errorf("unexpected mime type: %q", resp.MIMEType)
	}
}

func TestGenerateThumbnailRejectsBadHexColor(t *testing.T) {
	h := newAssetsHandler(&stubImageBackend{data: []byte("x")}, &stubVideoBackend{})

	body, _ := json.Marshal(dto.ThumbnailRequest{
		Hook:  "Hook",
		Brand: &dto.BrandColorsPayload{Primary: "red"},
	})
	rec := httptest.NewRecorder()

	h.GenerateThumbnail(rec, authedRequest(http.MethodPost, "/api/v1/assets/thumbnails", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "INVALID_HEX_COLOR" {
		t.Errorf("expected code INVALID_HEX_COLOR, got %s", resp.Code)
	}
}

func TestGenerateThumbnailEmptyPrompt(t *testing.T) {
	h := newAssetsHandler(&stubImageBackend{data: []byte("x")}, &stubVideoBackend{})

	body, _ := json.Marshal(dto.ThumbnailRequest{})
	rec := httptest.NewRecorder()

	h.GenerateThumbnail(rec, authedRequest(http.MethodPost, "/api/v1/assets/thumbnails", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "EMPTY_PROMPT" {
		t.Errorf("expected code EMPTY_PROMPT, got %s", resp.Code)
	}
}

func TestGenerateThumbnailCapabilityUnavailable(t *testing.T) {
	h := newAssetsHandler(&stubImageBackend{err: &genai.APIError{StatusCode: http.StatusNotFound}}, &stubVideoBackend{})

	body, _ := json.Marshal(dto.ThumbnailRequest{Hook: "Hook"})
	rec := httptest.NewRecorder()

	h.GenerateThumbnail(rec, authedRequest(http.MethodPost, "/api/v1/assets/thumbnails", body))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "CAPABILITY_UNAVAILABLE" {
		t.Errorf("expected code CAPABILITY_UNAVAILABLE, got %s", resp.Code)
	}
}

func TestGenerateVideoSuccess(t *testing.T) {
	h := newAssetsHandler(&stubImageBackend{}, &stubVideoBackend{data: []byte("mp4-bytes")})

	body, _ := json.Marshal(dto.VideoRequest{
		Hook:        "Hook do vídeo",
		Description: "Conceito do clipe",
	})
	rec := httptest.NewRecorder()

	h.GenerateVideo(rec, authedRequest(http.MethodPost, "/api/v1/assets/videos", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AssetResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if string(resp.Data) != "mp4-bytes" {
		t.Errorf("unexpected data: %q", resp.Data)
	}
	if resp.MIMEType != "video/mp4" {
		t.Errorf("unexpected mime type: %q", resp.MIMEType)
	}
}

func TestGenerateVoiceoverFallbackOrder(t *testing.T) {
	primary := &stubSynth{name: "gemini", err: errors.New("quota exhausted")}
	fallback := &stubSynth{name: "local", data: []byte("pcm-bytes")}
	h := newAssetsHandler(&stubImageBackend{}, &stubVideoBackend{}, primary, fallback)

	body, _ := json.Marshal(dto.SpeechRequest{Script: "Fala do vídeo."})
	rec := httptest.NewRecorder()

	h.GenerateVoiceover(rec, authedRequest(http.MethodPost, "/api/v1/assets/voiceovers", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AssetResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if string(resp.Data) != "pcm-bytes" {
		t.Errorf("unexpected data: %q", resp.Data)
	}
}

func TestGenerateVoiceoverAllTiersFail(t *testing.T) {
	h := newAssetsHandler(&stubImageBackend{}, &stubVideoBackend{},
		&stubSynth{name: "gemini", err: errors.New("quota exhausted")},
		&stubSynth{name: "local", err: errors.New("binary missing")},
	)

	body, _ := json.Marshal(dto.SpeechRequest{Script: "Fala do vídeo."})
	rec := httptest.NewRecorder()

	h.GenerateVoiceover(rec, authedRequest(http.MethodPost, "/api/v1/assets/voiceovers", body))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "SPEECH_FAILED" {
		t.Errorf("expected code SPEECH_FAILED, got %s", resp.Code)
	}
}

func TestGenerateVoiceoverEmptyScript(t *testing.T) {
	h := newAssetsHandler(&stubImageBackend{}, &stubVideoBackend{}, &stubSynth{name: "gemini"})

	body, _ := json.Marshal(dto.SpeechRequest{Script: "   "})
	rec := httptest.NewRecorder()

	h.GenerateVoiceover(rec, authedRequest(http.MethodPost, "/api/v1/assets/voiceovers", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "EMPTY_SCRIPT" {
		t.Errorf("expected code EMPTY_SCRIPT, got %s", resp.Code)
	}
}
