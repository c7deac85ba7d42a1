package store

import (
	"errors"
	"testing"

	"lingua-reader/internal/domain"

	"github.com/google/go-cmp/cmp"
)

type mockHighlightRepo struct {
	inserts    []*domain.Highlight
	deleteErr  error
	insertErr  error
	deletedPar []string
	deletedIDs []string
}

func (m *mockHighlightRepo) Insert(h *domain.Highlight, token string) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserts = append(m.inserts, h)
	return nil
}

func (m *mockHighlightRepo) Delete(highlightID string, token string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, highlightID)
	return nil
}

func (m *mockHighlightRepo) DeleteByParagraph(paragraphID string, token string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedPar = append(m.deletedPar, paragraphID)
	return nil
}

func (m *mockHighlightRepo) ListByUser(userID string, token string) ([]*domain.Highlight, error) {
	return nil, nil
}

type sinkEvent struct {
	kind        string
	paragraphID string
	count       int
}

type mockSink struct {
	events []sinkEvent
}

func (s *mockSink) HighlightAdded(h *domain.Highlight, c domain.HighlightCounts) {
	s.events = append(s.events, sinkEvent{kind: "added", paragraphID: h.ParagraphID, count: 1})
}

func (s *mockSink) HighlightsRemoved(p string, r []*domain.Highlight, c domain.HighlightCounts) {
	s.events = append(s.events, sinkEvent{kind: "removed", paragraphID: p, count: len(r)})
}

func (s *mockSink) HighlightsRestored(p string, r []*domain.Highlight, c domain.HighlightCounts) {
	s.events = append(s.events, sinkEvent{kind: "restored", paragraphID: p, count: len(r)})
}

func (s *mockSink) ParagraphUpdated(part *domain.ArticlePart)   {}
func (s *mockSink) EditCancelled(p string, originalText string) {}
func (s *mockSink) EditFailed(p string, message string)         {}
func (s *mockSink) Announce(message string)                     {}

type mockStoreLogger struct {
	warnings []string
}

func (l *mockStoreLogger) Info(msg string, fields ...interface{})             {}
func (l *mockStoreLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *mockStoreLogger) Debug(msg string, fields ...interface{})            {}
func (l *mockStoreLogger) Warn(msg string, fields ...interface{}) {
	l.warnings = append(l.warnings, msg)
}

func highlight(id, paragraphID string, kind domain.HighlightKind, start, end int) *domain.Highlight {
	return &domain.Highlight{
		ID:          id,
		ParagraphID: paragraphID,
		Kind:        kind,
		Anchor:      domain.AnchorRange{Start: start, End: end},
		Quote:       "quote-" + id,
	}
}

func seededStore(t *testing.T, repo domain.HighlightRepository, sink domain.EventSink, logger domain.Logger, highlights ...*domain.Highlight) *ParagraphHighlightStore {
	t.Helper()
	s := NewParagraphHighlightStore(repo, sink, logger)
	for _, h := range highlights {
		if err := s.Add(h, "token"); err != nil {
			t.Fatalf("expected no error seeding store, got %v", err)
		}
	}
	return s
}

func TestCountByParagraph(t *testing.T) {
	s := seededStore(t, &mockHighlightRepo{}, &mockSink{}, &mockStoreLogger{},
		highlight("v1", "p1", domain.HighlightVocabulary, 0, 4),
		highlight("v2", "p1", domain.HighlightVocabulary, 5, 9),
		highlight("s1", "p1", domain.HighlightSentence, 0, 20),
		highlight("v3", "p2", domain.HighlightVocabulary, 0, 3),
	)

	counts := s.CountByParagraph("p1")
	if counts.Vocab != 2 || counts.Sentence != 1 {
		t.Fatalf("expected 2 vocab and 1 sentence, got %+v", counts)
	}
	if got := s.CountByParagraph("p2").Total(); got != 1 {
		t.Fatalf("expected 1 highlight on p2, got %d", got)
	}
	if got := s.CountByParagraph("p3").Total(); got != 0 {
		t.Fatalf("expected 0 highlights on p3, got %d", got)
	}
}

func TestRemoveThenRestore_IsANoOp(t *testing.T) {
	repo := &mockHighlightRepo{}
	s := seededStore(t, repo, &mockSink{}, &mockStoreLogger{},
		highlight("v1", "p1", domain.HighlightVocabulary, 0, 4),
		highlight("v2", "p1", domain.HighlightVocabulary, 5, 9),
		highlight("s1", "p1", domain.HighlightSentence, 0, 20),
	)

	before := s.ListByParagraph("p1")

	removed := s.RemoveByParagraph("p1", "token")
	if len(removed) != 3 {
		t.Fatalf("expected 3 removed records, got %d", len(removed))
	}
	if got := s.CountByParagraph("p1").Total(); got != 0 {
		t.Fatalf("expected empty paragraph after removal, got %d", got)
	}

	s.Restore(removed, "token")

	after := s.ListByParagraph("p1")
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("restore did not reproduce the pre-removal set (-before +after):\n%s", diff)
	}
}

func TestRemoveByParagraph_EmptyParagraph(t *testing.T) {
	sink := &mockSink{}
	s := seededStore(t, &mockHighlightRepo{}, sink, &mockStoreLogger{})

	if removed := s.RemoveByParagraph("p1", "token"); removed != nil {
		t.Fatalf("expected nil removal for paragraph without highlights, got %v", removed)
	}
	for _, ev := range sink.events {
		if ev.kind == "removed" {
			t.Fatalf("expected no removal event for empty paragraph")
		}
	}
}

func TestRemoveByParagraph_PersistedDeleteFailureIsNonFatal(t *testing.T) {
	repo := &mockHighlightRepo{deleteErr: errors.New("storage down")}
	logger := &mockStoreLogger{}
	sink := &mockSink{}
	s := seededStore(t, repo, sink, logger,
		highlight("v1", "p1", domain.HighlightVocabulary, 0, 4),
	)

	removed := s.RemoveByParagraph("p1", "token")
	if len(removed) != 1 {
		t.Fatalf("expected in-memory removal despite storage failure, got %d records", len(removed))
	}
	if got := s.CountByParagraph("p1").Total(); got != 0 {
		t.Fatalf("expected empty paragraph after removal, got %d", got)
	}
	if len(logger.warnings) == 0 {
		t.Fatalf("expected a warning for the failed persisted delete")
	}
}

func TestRemoveByParagraph_EmitsChangeEvent(t *testing.T) {
	sink := &mockSink{}
	s := seededStore(t, &mockHighlightRepo{}, sink, &mockStoreLogger{},
		highlight("v1", "p1", domain.HighlightVocabulary, 0, 4),
		highlight("s1", "p1", domain.HighlightSentence, 0, 20),
	)

	s.RemoveByParagraph("p1", "token")

	last := sink.events[len(sink.events)-1]
	if last.kind != "removed" || last.paragraphID != "p1" || last.count != 2 {
		t.Fatalf("expected removal event for p1 with 2 records, got %+v", last)
	}
}

func TestRestore_RepersistsBestEffort(t *testing.T) {
	repo := &mockHighlightRepo{}
	logger := &mockStoreLogger{}
	s := seededStore(t, repo, &mockSink{}, logger,
		highlight("v1", "p1", domain.HighlightVocabulary, 0, 4),
	)

	removed := s.RemoveByParagraph("p1", "token")

	// Re-persist fails; restoration must still land in memory.
	repo.insertErr = errors.New("storage down")
	s.Restore(removed, "token")

	if got := s.CountByParagraph("p1").Total(); got != 1 {
		t.Fatalf("expected restored highlight in memory, got %d", got)
	}
	if len(logger.warnings) == 0 {
		t.Fatalf("expected a warning for the failed re-persist")
	}
}

func TestDelete_SingleHighlight(t *testing.T) {
	repo := &mockHighlightRepo{}
	s := seededStore(t, repo, &mockSink{}, &mockStoreLogger{},
		highlight("v1", "p1", domain.HighlightVocabulary, 0, 4),
		highlight("v2", "p1", domain.HighlightVocabulary, 5, 9),
	)

	if err := s.Delete("v1", "token"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := s.CountByParagraph("p1").Total(); got != 1 {
		t.Fatalf("expected 1 remaining highlight, got %d", got)
	}
	if len(repo.deletedIDs) != 1 || repo.deletedIDs[0] != "v1" {
		t.Fatalf("expected persisted delete of v1, got %v", repo.deletedIDs)
	}

	if err := s.Delete("missing", "token"); !errors.Is(err, domain.ErrHighlightNotFound) {
		t.Fatalf("expected ErrHighlightNotFound, got %v", err)
	}
}

func TestListByParagraph_OrderedByAnchor(t *testing.T) {
	s := seededStore(t, &mockHighlightRepo{}, &mockSink{}, &mockStoreLogger{},
		highlight("v2", "p1", domain.HighlightVocabulary, 10, 14),
		highlight("v1", "p1", domain.HighlightVocabulary, 0, 4),
		highlight("s1", "p1", domain.HighlightSentence, 5, 9),
	)

	records := s.ListByParagraph("p1")
	for i := 1; i < len(records); i++ {
		if records[i-1].Anchor.Start > records[i].Anchor.Start {
			t.Fatalf("expected records ordered by anchor start, got %v before %v",
				records[i-1].Anchor, records[i].Anchor)
		}
	}
}
