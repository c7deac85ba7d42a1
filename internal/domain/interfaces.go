package domain

import "time"

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetEditSaveTimeout() time.Duration
	GetAllowedOrigins() []string
}

// EventSink receives UI-facing events from the highlight store and the edit
// manager. The websocket hub implements it; the extension's card lists,
// paragraph renderer and accessibility live region consume the feed.
type EventSink interface {
	HighlightAdded(highlight *Highlight, counts HighlightCounts)
	HighlightsRemoved(paragraphID string, removed []*Highlight, counts HighlightCounts)
	HighlightsRestored(paragraphID string, restored []*Highlight, counts HighlightCounts)
	ParagraphUpdated(part *ArticlePart)
	EditCancelled(paragraphID string, originalText string)
	EditFailed(paragraphID string, message string)
	Announce(message string)
}

// AuthService defines token validation for the auth middleware.
type AuthService interface {
	ValidateToken(token string) (*SupabaseUser, error)
}
