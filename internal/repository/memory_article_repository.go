package repository

import (
	"context"
	"sync"
	"time"

	"lingua-reader/internal/domain"
)

// MemoryArticleRepository implements domain.ArticleRepository with in-process
// storage. Articles are scoped to the reading session; the extension
// re-extracts content on the next visit, so nothing outlives the server.
type MemoryArticleRepository struct {
	mu       sync.RWMutex
	articles map[string]*domain.Article
	parts    map[string]*domain.ArticlePart

	logger domain.Logger
}

func NewMemoryArticleRepository(logger domain.Logger) *MemoryArticleRepository {
	return &MemoryArticleRepository{
		articles: make(map[string]*domain.Article),
		parts:    make(map[string]*domain.ArticlePart),
		logger:   logger,
	}
}

func (r *MemoryArticleRepository) Create(article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.articles[article.ID] = article
	for _, part := range article.Parts {
		r.parts[part.ID] = part
	}
	return nil
}

func (r *MemoryArticleRepository) GetByID(id string) (*domain.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	article, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return article, nil
}

func (r *MemoryArticleRepository) ListByUser(userID string) ([]*domain.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Article, 0)
	for _, article := range r.articles {
		if article.UserID == userID {
			out = append(out, article)
		}
	}
	return out, nil
}

func (r *MemoryArticleRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	article, ok := r.articles[id]
	if !ok {
		return domain.ErrArticleNotFound
	}
	for _, part := range article.Parts {
		delete(r.parts, part.ID)
	}
	delete(r.articles, id)
	return nil
}

func (r *MemoryArticleRepository) GetPart(partID string) (*domain.ArticlePart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	part, ok := r.parts[partID]
	if !ok {
		return nil, domain.ErrParagraphNotFound
	}
	return part, nil
}

func (r *MemoryArticleRepository) UpdatePart(ctx context.Context, partID string, content string) (*domain.ArticlePart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	part, ok := r.parts[partID]
	if !ok {
		return nil, domain.ErrParagraphNotFound
	}

	now := time.Now()
	part.Content = content
	part.UpdatedAt = now
	if article, ok := r.articles[part.ArticleID]; ok {
		article.UpdatedAt = now
	}

	updated := *part
	return &updated, nil
}
