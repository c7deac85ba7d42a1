package store

import (
	"sort"
	"sync"

	"lingua-reader/internal/domain"
)

// ParagraphHighlightStore implements domain.HighlightStore with an in-memory
// index keyed by paragraph, mirrored best-effort to persisted storage.
//
// The in-memory set is authoritative for the current reading session: a
// failed write to the persisted mirror is logged and otherwise ignored, so a
// storage outage never blocks entering or leaving edit mode.
type ParagraphHighlightStore struct {
	mu          sync.RWMutex
	byParagraph map[string][]*domain.Highlight
	byID        map[string]*domain.Highlight

	repo   domain.HighlightRepository
	events domain.EventSink
	logger domain.Logger
}

func NewParagraphHighlightStore(repo domain.HighlightRepository, events domain.EventSink, logger domain.Logger) *ParagraphHighlightStore {
	return &ParagraphHighlightStore{
		byParagraph: make(map[string][]*domain.Highlight),
		byID:        make(map[string]*domain.Highlight),
		repo:        repo,
		events:      events,
		logger:      logger,
	}
}

// Add inserts a new highlight and persists it. Unlike removal, creation must
// reach persisted storage: a failed insert is returned to the caller.
func (s *ParagraphHighlightStore) Add(h *domain.Highlight, token string) error {
	if err := s.repo.Insert(h, token); err != nil {
		return err
	}

	s.mu.Lock()
	s.insertLocked(h)
	counts := s.countLocked(h.ParagraphID)
	s.mu.Unlock()

	s.events.HighlightAdded(h, counts)
	return nil
}

// ListByParagraph returns the live highlights for one paragraph, ordered by
// anchor position.
func (s *ParagraphHighlightStore) ListByParagraph(paragraphID string) []*domain.Highlight {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.byParagraph[paragraphID]
	out := make([]*domain.Highlight, len(records))
	copy(out, records)
	return out
}

// CountByParagraph returns per-kind counts for the confirmation dialog.
func (s *ParagraphHighlightStore) CountByParagraph(paragraphID string) domain.HighlightCounts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countLocked(paragraphID)
}

// RemoveByParagraph atomically detaches every highlight anchored to the
// paragraph and returns the detached records. Deletion from persisted storage
// is best-effort: on failure the in-memory removal stands and the edit
// proceeds.
func (s *ParagraphHighlightStore) RemoveByParagraph(paragraphID string, token string) []*domain.Highlight {
	s.mu.Lock()
	removed := s.byParagraph[paragraphID]
	delete(s.byParagraph, paragraphID)
	for _, h := range removed {
		delete(s.byID, h.ID)
	}
	s.mu.Unlock()

	if len(removed) == 0 {
		return nil
	}

	if err := s.repo.DeleteByParagraph(paragraphID, token); err != nil {
		s.logger.Warn("Failed to delete highlights from persisted storage",
			"paragraph_id", paragraphID, "count", len(removed), "error", err)
	}

	s.events.HighlightsRemoved(paragraphID, removed, domain.HighlightCounts{})
	return removed
}

// Restore re-inserts previously removed records at their original anchors.
// The records are the exact snapshot returned by RemoveByParagraph, so ids
// and anchor ranges match the pre-removal state. Re-persisting is
// best-effort, mirroring removal.
func (s *ParagraphHighlightStore) Restore(records []*domain.Highlight, token string) {
	if len(records) == 0 {
		return
	}
	paragraphID := records[0].ParagraphID

	s.mu.Lock()
	for _, h := range records {
		s.insertLocked(h)
	}
	counts := s.countLocked(paragraphID)
	s.mu.Unlock()

	for _, h := range records {
		if err := s.repo.Insert(h, token); err != nil {
			s.logger.Warn("Failed to re-persist restored highlight",
				"paragraph_id", paragraphID, "highlight_id", h.ID, "error", err)
		}
	}

	s.events.HighlightsRestored(paragraphID, records, counts)
}

// Delete removes a single highlight, e.g. when the user deletes one card.
func (s *ParagraphHighlightStore) Delete(highlightID string, token string) error {
	s.mu.Lock()
	h, ok := s.byID[highlightID]
	if !ok {
		s.mu.Unlock()
		return domain.ErrHighlightNotFound
	}
	delete(s.byID, highlightID)
	records := s.byParagraph[h.ParagraphID]
	for i, r := range records {
		if r.ID == highlightID {
			s.byParagraph[h.ParagraphID] = append(records[:i], records[i+1:]...)
			break
		}
	}
	if len(s.byParagraph[h.ParagraphID]) == 0 {
		delete(s.byParagraph, h.ParagraphID)
	}
	counts := s.countLocked(h.ParagraphID)
	s.mu.Unlock()

	if err := s.repo.Delete(highlightID, token); err != nil {
		return err
	}

	s.events.HighlightsRemoved(h.ParagraphID, []*domain.Highlight{h}, counts)
	return nil
}

func (s *ParagraphHighlightStore) insertLocked(h *domain.Highlight) {
	s.byID[h.ID] = h
	records := append(s.byParagraph[h.ParagraphID], h)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Anchor.Start < records[j].Anchor.Start
	})
	s.byParagraph[h.ParagraphID] = records
}

func (s *ParagraphHighlightStore) countLocked(paragraphID string) domain.HighlightCounts {
	var counts domain.HighlightCounts
	for _, h := range s.byParagraph[paragraphID] {
		switch h.Kind {
		case domain.HighlightVocabulary:
			counts.Vocab++
		case domain.HighlightSentence:
			counts.Sentence++
		}
	}
	return counts
}
