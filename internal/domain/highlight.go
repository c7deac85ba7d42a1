package domain

import "time"

// HighlightKind distinguishes vocabulary highlights from sentence highlights.
type HighlightKind string

const (
	HighlightVocabulary HighlightKind = "vocabulary"
	HighlightSentence   HighlightKind = "sentence"
)

// AnchorRange locates a highlight inside its paragraph as rune offsets.
// End is exclusive.
type AnchorRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Overlaps reports whether two anchor ranges share at least one rune.
func (a AnchorRange) Overlaps(b AnchorRange) bool {
	return a.Start < b.End && b.Start < a.End
}

// Contains reports whether the given rune offset falls inside the range.
func (a AnchorRange) Contains(offset int) bool {
	return offset >= a.Start && offset < a.End
}

// Highlight is a stored vocabulary or sentence annotation anchored to text
// within a paragraph.
type Highlight struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	ParagraphID string        `json:"paragraph_id"`
	Kind        HighlightKind `json:"kind"`
	Anchor      AnchorRange   `json:"anchor"`
	Quote       string        `json:"quote"`
	Note        string        `json:"note,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// HighlightCounts holds per-kind highlight counts for one paragraph.
type HighlightCounts struct {
	Vocab    int `json:"vocab_count"`
	Sentence int `json:"sentence_count"`
}

// Total returns the combined count.
func (c HighlightCounts) Total() int {
	return c.Vocab + c.Sentence
}

// HighlightStore indexes the live highlight set by paragraph. Removal via
// RemoveByParagraph is tentative: the returned records carry everything
// Restore needs to re-insert them at their original anchors.
type HighlightStore interface {
	Add(highlight *Highlight, token string) error
	ListByParagraph(paragraphID string) []*Highlight
	CountByParagraph(paragraphID string) HighlightCounts
	RemoveByParagraph(paragraphID string, token string) []*Highlight
	Restore(records []*Highlight, token string)
	Delete(highlightID string, token string) error
}

// HighlightRepository defines the persisted mirror of the highlight set.
// Failures here are non-fatal to the in-memory store.
type HighlightRepository interface {
	Insert(highlight *Highlight, token string) error
	Delete(highlightID string, token string) error
	DeleteByParagraph(paragraphID string, token string) error
	ListByUser(userID string, token string) ([]*Highlight, error)
}

// HighlightService defines the use-case operations for highlights.
type HighlightService interface {
	CreateHighlight(userID string, highlight *Highlight, token string) (*Highlight, error)
	ListByParagraph(paragraphID string) []*Highlight
	ListByUser(userID string, token string) ([]*Highlight, error)
	CountByParagraph(paragraphID string) HighlightCounts
	DeleteHighlight(highlightID string, token string) error
}
