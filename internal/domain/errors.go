package domain

import "errors"

// Domain errors
var (
	ErrArticleNotFound   = errors.New("article not found")
	ErrParagraphNotFound = errors.New("paragraph not found")
	ErrHighlightNotFound = errors.New("highlight not found")

	ErrEditInProgress    = errors.New("another paragraph edit is in progress")
	ErrNoActiveEdit      = errors.New("no paragraph edit in progress")
	ErrInvalidTransition = errors.New("operation not valid in current edit state")
	ErrSaveInProgress    = errors.New("paragraph save already in progress")

	ErrEmptyParagraph   = errors.New("paragraph text cannot be empty")
	ErrParagraphTooLong = errors.New("paragraph text exceeds maximum length")

	ErrAnchorOutOfRange = errors.New("highlight anchor out of range")
	ErrAnchorOverlap    = errors.New("highlight anchor overlaps an existing highlight")

	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
