package model

import "testing"

func TestObjective_IsValid(t *testing.T) {
	t.Parallel()

	for _, o := range Objectives {
		if !o.IsValid() {
			t.Errorf("objective %q should be valid", o)
		}
	}

	if Objective("growth").IsValid() {
		t.Error("unknown objective should be invalid")
	}
	if Objective("").IsValid() {
		t.Error("empty objective should be invalid")
	}
}

func TestClassifyMedia(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		mimeType string
		wantKind MediaKind
		wantOK   bool
	}{
		{"image/png", MediaImage, true},
		{"image/jpeg", MediaImage, true},
		{"video/mp4", MediaVideo, true},
		{"video/quicktime", MediaVideo, true},
		{"audio/mpeg", "", false},
		{"application/pdf", "", false},
		{"image", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		kind, ok := ClassifyMedia(tc.mimeType)
		if ok != tc.wantOK || kind != tc.wantKind {
			t.Errorf("ClassifyMedia(%q) = (%q, %v), want (%q, %v)",
				tc.mimeType, kind, ok, tc.wantKind, tc.wantOK)
		}
	}
}

func TestViralScores_InRange(t *testing.T) {
	t.Parallel()

	valid := ViralScores{WatchTime: 1, Shareability: 3, Saveability: 5, CommentVelocity: 4}
	if !valid.InRange() {
		t.Error("scores 1-5 should be in range")
	}

	tooLow := ViralScores{WatchTime: 0, Shareability: 3, Saveability: 5, CommentVelocity: 4}
	if tooLow.InRange() {
		t.Error("score 0 should be out of range")
	}

	tooHigh := ViralScores{WatchTime: 2, Shareability: 3, Saveability: 6, CommentVelocity: 4}
	if tooHigh.InRange() {
		t.Error("score 6 should be out of range")
	}
}

func TestAssetKind_MatchesMIME(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		kind     AssetKind
		mimeType string
		want     bool
	}{
		{AssetImage, "image/png", true},
		{AssetImage, "video/mp4", false},
		{AssetVideo, "video/webm", true},
		{AssetVideo, "audio/wav", false},
		{AssetAudio, "audio/mpeg", true},
		{AssetAudio, "image/png", false},
		{AssetText, "text/plain", false}, // text assets carry no media
	}

	for _, tc := range testCases {
		if got := tc.kind.MatchesMIME(tc.mimeType); got != tc.want {
			t.Errorf("%s.MatchesMIME(%q) = %v, want %v", tc.kind, tc.mimeType, got, tc.want)
		}
	}
}

func TestPerformanceMetrics_IsValid(t *testing.T) {
	t.Parallel()

	if !(PerformanceMetrics{Reach: 100, Shares: 500}).IsValid() {
		t.Error("non-negative metrics should be valid")
	}
	if !(PerformanceMetrics{}).IsValid() {
		t.Error("zero metrics should be valid")
	}
	if (PerformanceMetrics{Likes: -1}).IsValid() {
		t.Error("negative counter should be invalid")
	}
}

func TestVisualAnalysis_InRange(t *testing.T) {
	t.Parallel()

	if !(VisualAnalysis{StoppingPowerScore: 0}).InRange() {
		t.Error("0 should be in range")
	}
	if !(VisualAnalysis{StoppingPowerScore: 100}).InRange() {
		t.Error("100 should be in range")
	}
	if (VisualAnalysis{StoppingPowerScore: 101}).InRange() {
		t.Error("101 should be out of range")
	}
}
