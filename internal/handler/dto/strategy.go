// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"github.com/viralgrowth/viralgrowth/internal/model"
)

// MediaPayload carries a media blob in request bodies. Data is transported
// base64-encoded per encoding/json []byte semantics.
type MediaPayload struct {
	Data     []byte `json:"data"`
	MIMEType string `json:"mime_type"`
}

// GenerateStrategyRequest represents the request body for strategy generation.
type GenerateStrategyRequest struct {
	Content   string        `json:"content"`
	Objective string        `json:"objective"`
	Media     *MediaPayload `json:"media,omitempty"`
}

// MediaSummary describes an attachment without its bytes.
type MediaSummary struct {
	MIMEType string `json:"mime_type"`
	Kind     string `json:"kind"`
}

// RequestSummary echoes the submitted request back without media bytes.
type RequestSummary struct {
	Content   string        `json:"content"`
	Objective string        `json:"objective"`
	Media     *MediaSummary `json:"media,omitempty"`
}

// HistoryEntryResponse represents one generation in API responses.
type HistoryEntryResponse struct {
	ID          string                    `json:"id"`
	Timestamp   int64                     `json:"timestamp"`
	Request     RequestSummary            `json:"request"`
	Result      model.StrategyResult      `json:"result"`
	Performance *model.PerformanceMetrics `json:"performance,omitempty"`
}

// HistoryListResponse represents the stored history, newest first.
type HistoryListResponse struct {
	Entries []HistoryEntryResponse `json:"entries"`
	Total   int                    `json:"total"`
}

// AttachPerformanceRequest represents real-world metrics for a past entry.
type AttachPerformanceRequest struct {
	Reach    int64 `json:"reach"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
	Saves    int64 `json:"saves"`
}

// ValidateContentRequest represents the request body for content validation.
type ValidateContentRequest struct {
	Kind            string        `json:"kind"`
	StrategyContext string        `json:"strategy_context"`
	Content         string        `json:"content,omitempty"`
	Media           *MediaPayload `json:"media,omitempty"`
}

// BrandColorsPayload carries optional brand colors for asset generation.
type BrandColorsPayload struct {
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`
}

// ThumbnailRequest represents the request body for thumbnail generation.
type ThumbnailRequest struct {
	Hook        string              `json:"hook"`
	Description string              `json:"description"`
	Brand       *BrandColorsPayload `json:"brand,omitempty"`
}

// VideoRequest represents the request body for video generation.
type VideoRequest struct {
	Hook        string              `json:"hook"`
	Description string              `json:"description"`
	Brand       *BrandColorsPayload `json:"brand,omitempty"`
}

// SpeechRequest represents the request body for voice-over synthesis.
type SpeechRequest struct {
	Script string `json:"script"`
}

// AssetResponse carries a generated binary asset. Data is transported
// base64-encoded per encoding/json []byte semantics.
type AssetResponse struct {
	Data     []byte `json:"data"`
	MIMEType string `json:"mime_type"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToHistoryEntryResponse converts a HistoryEntry model to its DTO.
func ToHistoryEntryResponse(entry model.HistoryEntry) HistoryEntryResponse {
	summary := RequestSummary{
		Content:   entry.Request.Content,
		Objective: string(entry.Request.Objective),
	}
	if entry.Request.Media != nil {
		summary.Media = &MediaSummary{
			MIMEType: entry.Request.Media.MIMEType,
			Kind:     string(entry.Request.Media.Kind),
		}
	}
	return HistoryEntryResponse{
		ID:          entry.ID,
		Timestamp:   entry.Timestamp,
		Request:     summary,
		Result:      entry.Result,
		Performance: entry.Performance,
	}
}

// ToHistoryListResponse converts stored history entries to the list DTO.
func ToHistoryListResponse(entries []model.HistoryEntry) HistoryListResponse {
	out := HistoryListResponse{
		Entries: make([]HistoryEntryResponse, 0, len(entries)),
		Total:   len(entries),
	}
	for _, entry := range entries {
		out.Entries = append(out.Entries, ToHistoryEntryResponse(entry))
	}
	return out
}
