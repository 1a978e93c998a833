package assets

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/viralgrowth/viralgrowth/internal/genai"
	"github.com/viralgrowth/viralgrowth/internal/metrics"
)

// fakeVideoBackend scripts a job: pending for pendingPolls checks, then
// done with the configured URI.
type fakeVideoBackend struct {
	pendingPolls int
	uri          string
	startErr     error
	pollErr      error

	polls      int
	onPoll     func(polls int)
	downloaded string
	videoBytes []byte
}

func (f *fakeVideoBackend) StartVideoJob(_ context.Context, req genai.VideoRequest) (*genai.VideoOperation, error) {
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &genai.VideoOperation{Name: "operations/op-1"}, nil
}

func (f *fakeVideoBackend) PollVideoJob(_ context.Context, name string) (*genai.VideoOperation, error) {
	if f.pollErr != nil {
		return nil, f.pollErr
	}
	f.polls++
	if f.onPoll != nil {
		f.onPoll(f.polls)
	}
	if f.polls < f.pendingPolls {
		return &genai.VideoOperation{Name: name}, nil
	}
	return &genai.VideoOperation{Name: name, Done: true, VideoURI: f.uri}, nil
}

func (f *fakeVideoBackend) DownloadVideo(_ context.Context, uri string) ([]byte, error) {
	f.downloaded = uri
	return f.videoBytes, nil
}

func newVideoService(t *testing.T, backend VideoBackend, budget time.Duration) *VideoService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := VideoConfig{
		Model:        "video-model",
		Resolution:   "720p",
		AspectRatio:  "9:16",
		PollInterval: time.Millisecond,
		PollBudget:   budget,
	}
	return NewVideoService(backend, cfg, logger, metrics.NewNoop())
}

func TestVideoGeneratePollsUntilDone(t *testing.T) {
	t.Parallel()

	backend := &fakeVideoBackend{
		pendingPolls: 4,
		uri:          "https://video.example/v1?alt=media",
		videoBytes:   []byte("mp4"),
	}
	svc := newVideoService(t, backend, time.Minute)

	data, err := svc.Generate(context.Background(), VideoRequest{Hook: "hook", Description: "desc"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !bytes.Equal(data, []byte("mp4")) {
		t.Errorf("Generate() = %q, want downloaded bytes", data)
	}
	if backend.polls != 4 {
		t.Errorf("polls = %d, want 4", backend.polls)
	}
	if backend.downloaded != "https://video.example/v1?alt=media" {
		t.Errorf("downloaded %q, want the reported URI", backend.downloaded)
	}
}

func TestVideoGenerateStopsOnCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	backend := &fakeVideoBackend{pendingPolls: 100, uri: "unused"}
	backend.onPoll = func(polls int) {
		if polls == 2 {
			cancel()
		}
	}
	svc := newVideoService(t, backend, time.Minute)

	_, err := svc.Generate(ctx, VideoRequest{Hook: "hook", Description: "desc"})
	if err == nil {
		t.Fatal("Generate() = nil error after cancellation")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
	if backend.polls > 2 {
		t.Errorf("polls = %d after cancellation at 2, want no further checks", backend.polls)
	}
}

func TestVideoGeneratePollBudget(t *testing.T) {
	t.Parallel()

	backend := &fakeVideoBackend{pendingPolls: 1 << 30, uri: "unused"}
	svc := newVideoService(t, backend, 20*time.Millisecond)

	_, err := svc.Generate(context.Background(), VideoRequest{Hook: "hook", Description: "desc"})
	if !errors.Is(err, ErrPollBudgetExceeded) {
		t.Errorf("Generate() error = %v, want ErrPollBudgetExceeded", err)
	}
}

func TestVideoGenerateDoneWithoutOutput(t *testing.T) {
	t.Parallel()

	backend := &fakeVideoBackend{pendingPolls: 1, uri: ""}
	svc := newVideoService(t, backend, time.Minute)

	_, err := svc.Generate(context.Background(), VideoRequest{Hook: "hook", Description: "desc"})
	if !errors.Is(err, ErrNoVideoOutput) {
		t.Errorf("Generate() error = %v, want ErrNoVideoOutput", err)
	}
}

func TestVideoGenerateEmptyPrompt(t *testing.T) {
	t.Parallel()

	backend := &fakeVideoBackend{}
	svc := newVideoService(t, backend, time.Minute)

	_, err := svc.Generate(context.Background(), VideoRequest{Hook: "  ", Description: ""})
	if !errors.Is(err, ErrEmptyPrompt) {
		t.Errorf("Generate() error = %v, want ErrEmptyPrompt", err)
	}
}

func TestVideoPromptCarriesBrandColors(t *testing.T) {
	t.Parallel()

	got := videoPrompt(VideoRequest{
		Hook:        "o hook",
		Description: "a descrição",
		Brand:       &BrandColors{Primary: "#112233", Secondary: "#445566"},
	})
	for _, want := range []string{"o hook", "a descrição", "#112233 (dominant)", "#445566 (accent)"} {
		if !strings.Contains(got, want) {
			t.Errorf("videoPrompt() missing %q in %q", want, got)
		}
	}
}
