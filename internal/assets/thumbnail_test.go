package assets

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/viralgrowth/viralgrowth/internal/genai"
	"github.com/viralgrowth/viralgrowth/internal/metrics"
)

type fakeImageBackend struct {
	req   genai.ImageRequest
	data  []byte
	err   error
	calls int
}

func (f *fakeImageBackend) GenerateImage(_ context.Context, req genai.ImageRequest) ([]byte, error) {
	f.calls++
	f.req = req
	return f.data, f.err
}

func newThumbnailService(backend ImageBackend) *ThumbnailService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := ThumbnailConfig{Model: "image-model", AspectRatio: "9:16", OutputMIMEType: "image/jpeg"}
	return NewThumbnailService(backend, cfg, logger, metrics.NewNoop())
}

func TestThumbnailGenerate(t *testing.T) {
	t.Parallel()

	backend := &fakeImageBackend{data: []byte("jpeg")}
	svc := newThumbnailService(backend)

	data, err := svc.Generate(context.Background(), ThumbnailRequest{
		Hook:        "Você está errando isso",
		Description: "post sobre alcance",
		Brand:       &BrandColors{Primary: "#FF0000", Secondary: "#00FF00"},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !bytes.Equal(data, []byte("jpeg")) {
		t.Errorf("Generate() = %q, want backend bytes", data)
	}

	if backend.req.Model != "image-model" {
		t.Errorf("model = %q, want image-model", backend.req.Model)
	}
	if backend.req.AspectRatio != "9:16" || backend.req.OutputMIMEType != "image/jpeg" {
		t.Errorf("parameters = (%q, %q), want (9:16, image/jpeg)", backend.req.AspectRatio, backend.req.OutputMIMEType)
	}
	for _, want := range []string{"Você está errando isso", "post sobre alcance", "#FF0000", "#00FF00"} {
		if !strings.Contains(backend.req.Prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestThumbnailGenerateEmptyPrompt(t *testing.T) {
	t.Parallel()

	backend := &fakeImageBackend{}
	svc := newThumbnailService(backend)

	_, err := svc.Generate(context.Background(), ThumbnailRequest{Hook: " ", Description: ""})
	if !errors.Is(err, ErrEmptyPrompt) {
		t.Errorf("Generate() error = %v, want ErrEmptyPrompt", err)
	}
	if backend.calls != 0 {
		t.Errorf("backend called %d times for empty prompt, want 0", backend.calls)
	}
}

func TestThumbnailGenerateBackendError(t *testing.T) {
	t.Parallel()

	backendErr := errors.New("model overloaded")
	backend := &fakeImageBackend{err: backendErr}
	svc := newThumbnailService(backend)

	_, err := svc.Generate(context.Background(), ThumbnailRequest{Hook: "hook", Description: "desc"})
	if !errors.Is(err, backendErr) {
		t.Errorf("Generate() error = %v, want wrapped backend error", err)
	}
}
