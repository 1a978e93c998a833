// Package model defines domain entities for the application.
package model

import "strings"

// Objective represents the growth objective selected for a post.
// Values are the user-facing labels and double as the prompt vocabulary,
// so they are stored and transmitted verbatim.
type Objective string

const (
	ObjectiveEngagement Objective = "Engajamento (Comentários/Likes)"
	ObjectiveTraffic    Objective = "Tráfego (Cliques no Link)"
	ObjectiveAuthority  Objective = "Autoridade (Posicionamento)"
	ObjectiveConversion Objective = "Conversão (Vendas/Leads)"
	ObjectiveAwareness  Objective = "Brand Awareness (Alcance)"
)

// Objectives contains all valid objective values.
var Objectives = []Objective{
	ObjectiveEngagement,
	ObjectiveTraffic,
	ObjectiveAuthority,
	ObjectiveConversion,
	ObjectiveAwareness,
}

// IsValid checks if the objective is one of the known values.
func (o Objective) IsValid() bool {
	for _, v := range Objectives {
		if o == v {
			return true
		}
	}
	return false
}

// MediaKind classifies an attached media blob.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// ClassifyMedia derives the media kind from a declared MIME type.
// Returns false for anything that is not image/* or video/*.
func ClassifyMedia(mimeType string) (MediaKind, bool) {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return MediaImage, true
	case strings.HasPrefix(mimeType, "video/"):
		return MediaVideo, true
	default:
		return "", false
	}
}

// MediaAttachment is a media blob attached to a strategy request.
type MediaAttachment struct {
	Data     []byte    `json:"data"`
	MIMEType string    `json:"mimeType"`
	Kind     MediaKind `json:"type"`
}

// Size returns the attachment size in bytes.
func (m *MediaAttachment) Size() int {
	return len(m.Data)
}

// StrategyRequest is one user ask for a viral strategy.
// Immutable once submitted.
type StrategyRequest struct {
	Content   string           `json:"content"`
	Objective Objective        `json:"objective"`
	Media     *MediaAttachment `json:"media,omitempty"`
}

// HasMedia reports whether a media blob is attached.
func (r *StrategyRequest) HasMedia() bool {
	return r.Media != nil
}

// ViralScores holds the four 1-5 sub-scores of a strategy analysis.
type ViralScores struct {
	WatchTime       int `json:"watchTime"`
	Shareability    int `json:"shareability"`
	Saveability     int `json:"saveability"`
	CommentVelocity int `json:"commentVelocity"`
}

// InRange reports whether every sub-score sits in the 1-5 band.
// Out-of-range values from the backend are a shape failure, not a
// clamping opportunity.
func (s ViralScores) InRange() bool {
	for _, v := range []int{s.WatchTime, s.Shareability, s.Saveability, s.CommentVelocity} {
		if v < 1 || v > 5 {
			return false
		}
	}
	return true
}

// StrategyAnalysis is the scored assessment block of a strategy.
type StrategyAnalysis struct {
	HookAssessment   string      `json:"hookAssessment"`
	ValueProposition string      `json:"valueProposition"`
	OriginalityTrend string      `json:"originalityTrend"`
	Scores           ViralScores `json:"scores"`
	TrendContext     string      `json:"trendContext,omitempty"`
}

// StrategyOptimization carries the actionable rewrite suggestions.
type StrategyOptimization struct {
	FormatRecommendation string   `json:"formatRecommendation"`
	HookVariations       []string `json:"hookVariations"`
	OptimizedCTA         string   `json:"optimizedCTA"`
}

// PlatformStrategy holds per-platform tactics.
type PlatformStrategy struct {
	Name        string   `json:"name"`
	Tactics     string   `json:"tactics"`
	KeyElements []string `json:"keyElements"`
}

// StrategyDistribution holds timing and seeding recommendations.
type StrategyDistribution struct {
	Timing         string   `json:"timing"`
	InitialTrigger []string `json:"initialTrigger"`
}

// StrategyResult is one generated viral strategy.
// Write-once: constructed only from a fully schema-valid backend response.
type StrategyResult struct {
	Analysis     StrategyAnalysis     `json:"analysis"`
	Optimization StrategyOptimization `json:"optimization"`
	Platforms    []PlatformStrategy   `json:"platforms"`
	Distribution StrategyDistribution `json:"distribution"`
}
