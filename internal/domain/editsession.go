package domain

import "time"

// EditState enumerates the paragraph edit lifecycle.
type EditState string

const (
	EditIdle                EditState = "idle"
	EditPendingConfirmation EditState = "pending_confirmation"
	EditActive              EditState = "active"
	EditSaving              EditState = "saving"
	EditCancelling          EditState = "cancelling"
)

// EditSession is a snapshot of the current paragraph edit. At most one
// session with a non-idle state exists system-wide.
type EditSession struct {
	ParagraphID  string    `json:"paragraph_id"`
	State        EditState `json:"state"`
	OriginalText string    `json:"original_text"`

	// RemovedHighlights is the snapshot taken when the user confirmed entering
	// edit mode on a highlighted paragraph. Empty if the paragraph had none.
	RemovedHighlights []*Highlight `json:"removed_highlights,omitempty"`

	// PendingCounts backs the confirmation dialog while the session is in
	// EditPendingConfirmation.
	PendingCounts HighlightCounts `json:"pending_counts"`

	StartedAt time.Time `json:"started_at"`
}
