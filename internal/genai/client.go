// Package genai provides a typed REST client for the generative backend.
// Every non-trivial decision of the product (scoring, hooks, tactics,
// palettes) runs behind these calls; the client's job is transport, strict
// decoding, and a clean error taxonomy.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiVersion = "v1beta"

// Client calls the generative backend over HTTP.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// New creates a backend client. Call deadlines come from the caller's
// context; the transport-level timeout is only a backstop.
func New(apiKey, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Minute},
		logger:  logger.With("component", "genai.client"),
	}
}

// GenerateText issues a generateContent call and returns the concatenated
// text of the first candidate. Returns ErrEmptyResponse when the backend
// answered 2xx with no text.
func (c *Client) GenerateText(ctx context.Context, req GenerateTextRequest) (string, error) {
	body := generateContentRequest{
		Contents: []Content{{Parts: req.Parts}},
	}

	if req.System != "" {
		body.SystemInstruction = &Content{Parts: []Part{{Text: req.System}}}
	}
	if req.UseGoogleSearch {
		body.Tools = []Tool{{GoogleSearch: &struct{}{}}}
	}
	if req.ResponseSchema != nil || req.ThinkingBudget > 0 {
		cfg := &GenerationConfig{}
		if req.ResponseSchema != nil {
			cfg.ResponseMIMEType = "application/json"
			cfg.ResponseSchema = req.ResponseSchema
		}
		if req.ThinkingBudget > 0 {
			cfg.ThinkingConfig = &ThinkingConfig{ThinkingBudget: req.ThinkingBudget}
		}
		body.GenerationConfig = cfg
	}

	var resp generateContentResponse
	endpoint := fmt.Sprintf("%s/%s/models/%s:generateContent", c.baseURL, apiVersion, req.Model)
	if err := c.post(ctx, endpoint, body, &resp); err != nil {
		return "", err
	}

	text := firstCandidateText(&resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// GenerateImage issues a single-call image generation and returns the raw
// image bytes of the first prediction.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) ([]byte, error) {
	body := imagePredictRequest{
		Instances: []imageInstance{{Prompt: req.Prompt}},
		Parameters: imageParameters{
			SampleCount:    1,
			AspectRatio:    req.AspectRatio,
			OutputMIMEType: req.OutputMIMEType,
		},
	}

	var resp imagePredictResponse
	endpoint := fmt.Sprintf("%s/%s/models/%s:predict", c.baseURL, apiVersion, req.Model)
	if err := c.post(ctx, endpoint, body, &resp); err != nil {
		return nil, err
	}

	if len(resp.Predictions) == 0 || len(resp.Predictions[0].BytesBase64Encoded) == 0 {
		return nil, ErrEmptyResponse
	}
	return resp.Predictions[0].BytesBase64Encoded, nil
}

// StartVideoJob submits a long-running video generation job and returns the
// opaque operation handle to poll.
func (c *Client) StartVideoJob(ctx context.Context, req VideoRequest) (*VideoOperation, error) {
	body := videoSubmitRequest{
		Instances: []videoInstance{{Prompt: req.Prompt}},
		Parameters: videoParameters{
			SampleCount: 1,
			Resolution:  req.Resolution,
			AspectRatio: req.AspectRatio,
		},
	}

	var resp videoOperationResponse
	endpoint := fmt.Sprintf("%s/%s/models/%s:predictLongRunning", c.baseURL, apiVersion, req.Model)
	if err := c.post(ctx, endpoint, body, &resp); err != nil {
		return nil, err
	}

	if resp.Name == "" {
		return nil, ErrEmptyResponse
	}
	return operationFromResponse(&resp), nil
}

// PollVideoJob fetches the current state of a video job.
func (c *Client) PollVideoJob(ctx context.Context, operationName string) (*VideoOperation, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, apiVersion, operationName)

	var resp videoOperationResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return operationFromResponse(&resp), nil
}

// DownloadVideo fetches the finished video bytes from the URI reported by a
// completed job. The backend requires the API key on the download URL.
func (c *Client) DownloadVideo(ctx context.Context, uri string) ([]byte, error) {
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri+sep+"key="+url.QueryEscape(c.apiKey), nil)
	if err != nil {
		return nil, fmt.Errorf("create download request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "video download failed"}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read video bytes: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyResponse
	}
	return data, nil
}

// SynthesizeSpeech issues an audio-modality generateContent call and returns
// the raw audio bytes.
func (c *Client) SynthesizeSpeech(ctx context.Context, req SpeechRequest) ([]byte, error) {
	body := generateContentRequest{
		Contents: []Content{{Parts: []Part{{Text: req.Script}}}},
		GenerationConfig: &GenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &SpeechConfig{
				VoiceConfig: VoiceConfig{
					PrebuiltVoiceConfig: PrebuiltVoiceConfig{VoiceName: req.Voice},
				},
			},
		},
	}

	var resp generateContentResponse
	endpoint := fmt.Sprintf("%s/%s/models/%s:generateContent", c.baseURL, apiVersion, req.Model)
	if err := c.post(ctx, endpoint, body, &resp); err != nil {
		return nil, err
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}
	return nil, ErrEmptyResponse
}

// post sends a JSON request body and decodes the JSON response into out.
func (c *Client) post(ctx context.Context, endpoint string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	return c.send(req, out)
}

// get fetches a JSON resource and decodes it into out.
func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call backend: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope apiErrorEnvelope
		if err := json.Unmarshal(data, &envelope); err == nil {
			apiErr.Status = envelope.Error.Status
			apiErr.Message = envelope.Error.Message
		}
		c.logger.Warn("backend call failed",
			"status", resp.StatusCode,
			"endpoint", req.URL.Path,
			"message", apiErr.Message,
		)
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// firstCandidateText concatenates the text parts of the first candidate.
func firstCandidateText(resp *generateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// operationFromResponse extracts the observable job state from the wire shape.
func operationFromResponse(resp *videoOperationResponse) *VideoOperation {
	op := &VideoOperation{Name: resp.Name, Done: resp.Done}
	if resp.Response != nil && resp.Response.GenerateVideoResponse != nil {
		samples := resp.Response.GenerateVideoResponse.GeneratedSamples
		if len(samples) > 0 {
			op.VideoURI = samples[0].Video.URI
		}
	}
	return op
}
