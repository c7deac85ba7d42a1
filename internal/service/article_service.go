package service

import (
	"context"
	"strings"
	"time"

	"lingua-reader/internal/domain"
	"lingua-reader/internal/edit"
	apperrors "lingua-reader/pkg/errors"

	"github.com/google/uuid"
)

type ArticleService struct {
	repo   domain.ArticleRepository
	guard  *edit.Guard
	logger domain.Logger
}

func NewArticleService(repo domain.ArticleRepository, guard *edit.Guard, logger domain.Logger) domain.ArticleService {
	return &ArticleService{
		repo:   repo,
		guard:  guard,
		logger: logger,
	}
}

// CreateArticle registers extracted page content as a new article, one part
// per paragraph.
func (s *ArticleService) CreateArticle(userID, title string, sourceURL *string, language string, paragraphs []string) (*domain.Article, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.NewValidationError("title is required")
	}
	if len(paragraphs) == 0 {
		return nil, apperrors.NewValidationError("at least one paragraph is required")
	}

	now := time.Now()
	article := &domain.Article{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     strings.TrimSpace(title),
		SourceURL: sourceURL,
		Language:  language,
		CreatedAt: now,
		UpdatedAt: now,
	}

	article.Parts = make([]*domain.ArticlePart, 0, len(paragraphs))
	for i, text := range paragraphs {
		article.Parts = append(article.Parts, &domain.ArticlePart{
			ID:        uuid.NewString(),
			ArticleID: article.ID,
			Index:     i,
			Content:   text,
			UpdatedAt: now,
		})
	}

	if err := s.repo.Create(article); err != nil {
		return nil, err
	}

	s.logger.Info("Article created",
		"article_id", article.ID, "user_id", userID, "parts", len(article.Parts))
	return article, nil
}

func (s *ArticleService) GetArticle(id string) (*domain.Article, error) {
	return s.repo.GetByID(id)
}

func (s *ArticleService) ListArticles(userID string) ([]*domain.Article, error) {
	return s.repo.ListByUser(userID)
}

// DeleteArticle removes an article. Navigation away from an article is a
// conflicting action while a paragraph edit is active, so the guard is
// checked first.
func (s *ArticleService) DeleteArticle(id string) error {
	if locked, reason := s.guard.Locked(); locked {
		s.logger.Warn("Article delete rejected", "article_id", id, "reason", reason)
		return apperrors.NewConflictError(reason, domain.ErrEditInProgress)
	}
	return s.repo.Delete(id)
}

func (s *ArticleService) GetParagraph(paragraphID string) (*domain.ArticlePart, error) {
	return s.repo.GetPart(paragraphID)
}

// SaveParagraph persists edited paragraph text. Validation of emptiness and
// length happens in the edit manager before this is called; the text arrives
// trimmed.
func (s *ArticleService) SaveParagraph(ctx context.Context, paragraphID, text string) (*domain.ArticlePart, error) {
	part, err := s.repo.UpdatePart(ctx, paragraphID, text)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Paragraph content saved", "paragraph_id", paragraphID)
	return part, nil
}
