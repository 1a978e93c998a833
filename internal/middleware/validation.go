// Package middleware provides HTTP middleware for the ViralGrowth API.
package middleware

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation limits.
const (
	// MaxContentLength is the maximum length in runes for submitted post content.
	MaxContentLength = 10000

	// MaxScriptLength is the maximum length in runes for an audio script.
	MaxScriptLength = 5000

	// MaxHookLength is the maximum length in runes for a hook line.
	MaxHookLength = 300
)

// Validation errors.
var (
	ErrContentTooLong  = errors.New("content exceeds maximum length")
	ErrScriptTooLong   = errors.New("script exceeds maximum length")
	ErrHookTooLong     = errors.New("hook exceeds maximum length")
	ErrInvalidHexColor = errors.New("color must be a #RRGGBB hex code")
)

// hexColorPattern matches a #RRGGBB color code.
var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateContent bounds submitted post content.
func ValidateContent(content string) error {
	if utf8.RuneCountInString(content) > MaxContentLength {
		return ErrContentTooLong
	}
	return nil
}

// ValidateScript bounds an audio script.
func ValidateScript(script string) error {
	if utf8.RuneCountInString(script) > MaxScriptLength {
		return ErrScriptTooLong
	}
	return nil
}

// ValidateHook bounds a hook line.
func ValidateHook(hook string) error {
	if utf8.RuneCountInString(hook) > MaxHookLength {
		return ErrHookTooLong
	}
	return nil
}

// ValidateHexColor checks a brand color. Empty is valid (no brand palette).
func ValidateHexColor(color string) error {
	if strings.TrimSpace(color) == "" {
		return nil
	}
	if !hexColorPattern.MatchString(color) {
		return ErrInvalidHexColor
	}
	return nil
}
