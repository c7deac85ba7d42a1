package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"lingua-reader/internal/domain"
)

// Mock logger shared by service package tests.
type MockLogger struct{}

func NewMockLogger() domain.Logger {
	return &MockLogger{}
}

func (l *MockLogger) Info(msg string, fields ...interface{})             {}
func (l *MockLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *MockLogger) Debug(msg string, fields ...interface{})            {}
func (l *MockLogger) Warn(msg string, fields ...interface{})             {}

type mockArticleRepo struct {
	mu       sync.Mutex
	articles map[string]*domain.Article
	parts    map[string]*domain.ArticlePart

	createErr error
	updateErr error
}

func newMockArticleRepo() *mockArticleRepo {
	return &mockArticleRepo{
		articles: make(map[string]*domain.Article),
		parts:    make(map[string]*domain.ArticlePart),
	}
}

func (m *mockArticleRepo) Create(article *domain.Article) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.articles[article.ID] = article
	for _, part := range article.Parts {
		m.parts[part.ID] = part
	}
	return nil
}

func (m *mockArticleRepo) GetByID(id string) (*domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	article, ok := m.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return article, nil
}

func (m *mockArticleRepo) ListByUser(userID string) ([]*domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Article, 0)
	for _, a := range m.articles {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockArticleRepo) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.articles[id]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(m.articles, id)
	return nil
}

func (m *mockArticleRepo) GetPart(partID string) (*domain.ArticlePart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	part, ok := m.parts[partID]
	if !ok {
		return nil, domain.ErrParagraphNotFound
	}
	return part, nil
}

func (m *mockArticleRepo) UpdatePart(ctx context.Context, partID string, content string) (*domain.ArticlePart, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	part, ok := m.parts[partID]
	if !ok {
		return nil, domain.ErrParagraphNotFound
	}
	part.Content = content
	part.UpdatedAt = time.Now()
	return part, nil
}

type mockHighlightStore struct {
	mu      sync.Mutex
	records map[string][]*domain.Highlight
	addErr  error
}

func newMockHighlightStore() *mockHighlightStore {
	return &mockHighlightStore{records: make(map[string][]*domain.Highlight)}
}

func (m *mockHighlightStore) Add(h *domain.Highlight, token string) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[h.ParagraphID] = append(m.records[h.ParagraphID], h)
	return nil
}

func (m *mockHighlightStore) ListByParagraph(paragraphID string) []*domain.Highlight {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Highlight(nil), m.records[paragraphID]...)
}

func (m *mockHighlightStore) CountByParagraph(paragraphID string) domain.HighlightCounts {
	m.mu.Lock()
	defer m.mu.Unlock()
	var counts domain.HighlightCounts
	for _, h := range m.records[paragraphID] {
		if h.Kind == domain.HighlightVocabulary {
			counts.Vocab++
		} else {
			counts.Sentence++
		}
	}
	return counts
}

func (m *mockHighlightStore) RemoveByParagraph(paragraphID string, token string) []*domain.Highlight {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := m.records[paragraphID]
	delete(m.records, paragraphID)
	return removed
}

func (m *mockHighlightStore) Restore(records []*domain.Highlight, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range records {
		m.records[h.ParagraphID] = append(m.records[h.ParagraphID], h)
	}
}

func (m *mockHighlightStore) Delete(highlightID string, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for paragraphID, records := range m.records {
		for i, h := range records {
			if h.ID == highlightID {
				m.records[paragraphID] = append(records[:i], records[i+1:]...)
				return nil
			}
		}
	}
	return domain.ErrHighlightNotFound
}

type mockHighlightRepo struct {
	highlights []*domain.Highlight
	listErr    error
}

func (m *mockHighlightRepo) Insert(h *domain.Highlight, token string) error          { return nil }
func (m *mockHighlightRepo) Delete(highlightID string, token string) error           { return nil }
func (m *mockHighlightRepo) DeleteByParagraph(paragraphID string, token string) error { return nil }

func (m *mockHighlightRepo) ListByUser(userID string, token string) ([]*domain.Highlight, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.highlights, nil
}

var errStorageDown = errors.New("storage down")
