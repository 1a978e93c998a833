package strategy

import "errors"

// Service errors.
var (
	ErrEmptySubmission      = errors.New("content is empty and no media attached")
	ErrInvalidObjective     = errors.New("unknown objective")
	ErrMediaTooLarge        = errors.New("media exceeds the size limit")
	ErrUnsupportedMediaType = errors.New("media type must be image/* or video/*")
	ErrGenerationFailed     = errors.New("strategy generation failed")
)
