// Package assets generates promotional assets for an approved strategy:
// thumbnails in one call, concept videos through a long-running job poll
// and audio drafts through an ordered synthesizer chain.
package assets

import "errors"

// Service errors.
var (
	ErrEmptyPrompt        = errors.New("hook and description are empty")
	ErrEmptyScript        = errors.New("script is empty")
	ErrNoVideoOutput      = errors.New("video job finished without output")
	ErrPollBudgetExceeded = errors.New("video job exceeded the poll budget")
	ErrSpeechFailed       = errors.New("speech synthesis failed on every tier")
)

// BrandColors folds a brand palette into generation prompts.
type BrandColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}
