package model

import "strings"

// AssetKind identifies which kind of draft asset is being validated.
type AssetKind string

const (
	AssetText  AssetKind = "text"
	AssetImage AssetKind = "image"
	AssetVideo AssetKind = "video"
	AssetAudio AssetKind = "audio"
)

// AssetKinds contains all valid asset kinds.
var AssetKinds = []AssetKind{AssetText, AssetImage, AssetVideo, AssetAudio}

// IsValid checks if the asset kind is one of the known values.
func (k AssetKind) IsValid() bool {
	for _, v := range AssetKinds {
		if k == v {
			return true
		}
	}
	return false
}

// MatchesMIME reports whether a declared MIME type belongs to this kind.
// The prefix must match the kind exactly (image/*, video/*, audio/*);
// text assets carry no media at all.
func (k AssetKind) MatchesMIME(mimeType string) bool {
	switch k {
	case AssetImage, AssetVideo, AssetAudio:
		return strings.HasPrefix(mimeType, string(k)+"/")
	default:
		return false
	}
}

// ColorPaletteEntry is one recommended color with its intended use and
// psychological effect.
type ColorPaletteEntry struct {
	Hex        string `json:"hex"`
	Usage      string `json:"usage"`
	Psychology string `json:"psychology"`
}

// VisualAnalysis is the image-only sub-block of a content analysis.
// Populated by the backend exclusively for image assets; for every other
// kind it must be absent.
type VisualAnalysis struct {
	EstimatedFixationTime string              `json:"estimatedFixationTime"`
	StoppingPowerScore    int                 `json:"stoppingPowerScore"`
	ColorPalette          []ColorPaletteEntry `json:"colorPalette"`
}

// InRange reports whether the stopping-power score sits in the 0-100 band.
func (v VisualAnalysis) InRange() bool {
	return v.StoppingPowerScore >= 0 && v.StoppingPowerScore <= 100
}

// ContentAnalysisResult is the validation verdict for one draft asset.
// Write-once, never persisted.
type ContentAnalysisResult struct {
	Score            int             `json:"score"`
	Feedback         string          `json:"feedback"`
	Improvements     []string        `json:"improvements"`
	RewrittenContent string          `json:"rewrittenContent"`
	VisualAnalysis   *VisualAnalysis `json:"visualAnalysis,omitempty"`
}

// ScoreInRange reports whether the overall score sits in the 0-100 band.
func (r *ContentAnalysisResult) ScoreInRange() bool {
	return r.Score >= 0 && r.Score <= 100
}
