package service

import (
	"time"
	"unicode/utf8"

	"lingua-reader/internal/domain"
	"lingua-reader/internal/edit"
	apperrors "lingua-reader/pkg/errors"

	"github.com/google/uuid"
)

type HighlightService struct {
	store    domain.HighlightStore
	repo     domain.HighlightRepository
	articles domain.ArticleRepository
	guard    *edit.Guard
	logger   domain.Logger
}

func NewHighlightService(
	store domain.HighlightStore,
	repo domain.HighlightRepository,
	articles domain.ArticleRepository,
	guard *edit.Guard,
	logger domain.Logger,
) domain.HighlightService {
	return &HighlightService{
		store:    store,
		repo:     repo,
		articles: articles,
		guard:    guard,
		logger:   logger,
	}
}

// CreateHighlight validates and stores a new highlight. Highlighting is a
// conflicting action while a paragraph edit is active, so the guard is
// checked before anything else.
func (s *HighlightService) CreateHighlight(userID string, h *domain.Highlight, token string) (*domain.Highlight, error) {
	if h == nil {
		return nil, apperrors.NewValidationError("highlight is required")
	}
	if locked, reason := s.guard.Locked(); locked {
		s.logger.Warn("Highlight rejected", "paragraph_id", h.ParagraphID, "reason", reason)
		return nil, domain.ErrEditInProgress
	}

	if h.ParagraphID == "" {
		return nil, apperrors.NewValidationError("paragraph_id is required")
	}
	if h.Kind != domain.HighlightVocabulary && h.Kind != domain.HighlightSentence {
		return nil, apperrors.NewValidationError("kind must be vocabulary or sentence")
	}

	part, err := s.articles.GetPart(h.ParagraphID)
	if err != nil {
		return nil, err
	}
	if h.Anchor.Start < 0 || h.Anchor.End <= h.Anchor.Start ||
		h.Anchor.End > utf8.RuneCountInString(part.Content) {
		return nil, domain.ErrAnchorOutOfRange
	}
	for _, existing := range s.store.ListByParagraph(h.ParagraphID) {
		if existing.Kind == h.Kind && existing.Anchor.Overlaps(h.Anchor) {
			return nil, domain.ErrAnchorOverlap
		}
	}

	h.ID = uuid.NewString()
	h.UserID = userID
	h.Quote = substringByRunes(part.Content, h.Anchor)
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}

	if err := s.store.Add(h, token); err != nil {
		return nil, err
	}

	s.logger.Info("Highlight created",
		"user_id", userID, "paragraph_id", h.ParagraphID,
		"highlight_id", h.ID, "kind", string(h.Kind))
	return h, nil
}

func (s *HighlightService) ListByParagraph(paragraphID string) []*domain.Highlight {
	return s.store.ListByParagraph(paragraphID)
}

func (s *HighlightService) ListByUser(userID string, token string) ([]*domain.Highlight, error) {
	return s.repo.ListByUser(userID, token)
}

func (s *HighlightService) CountByParagraph(paragraphID string) domain.HighlightCounts {
	return s.store.CountByParagraph(paragraphID)
}

// DeleteHighlight removes one highlight card. Blocked while a paragraph edit
// is active, like creation.
func (s *HighlightService) DeleteHighlight(highlightID string, token string) error {
	if locked, reason := s.guard.Locked(); locked {
		s.logger.Warn("Highlight delete rejected", "highlight_id", highlightID, "reason", reason)
		return domain.ErrEditInProgress
	}
	if highlightID == "" {
		return apperrors.NewValidationError("highlight_id is required")
	}
	return s.store.Delete(highlightID, token)
}

// substringByRunes slices text by rune offsets, clamped to the text length.
func substringByRunes(text string, anchor domain.AnchorRange) string {
	runes := []rune(text)
	start, end := anchor.Start, anchor.End
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}
