package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"lingua-reader/internal/domain"
	"lingua-reader/internal/edit"
	"lingua-reader/internal/repository"
	"lingua-reader/internal/service"
	"lingua-reader/internal/store"
)

// Mock logger used by handler package tests.
type MockHandlerLogger struct{}

func NewMockHandlerLogger() domain.Logger {
	return &MockHandlerLogger{}
}

func (l *MockHandlerLogger) Info(msg string, fields ...interface{})             {}
func (l *MockHandlerLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *MockHandlerLogger) Debug(msg string, fields ...interface{})            {}
func (l *MockHandlerLogger) Warn(msg string, fields ...interface{})             {}

// recordingSink captures emitted events so tests can assert on the feed.
type recordingSink struct {
	mu            sync.Mutex
	announcements []string
	updatedParts  []*domain.ArticlePart
	cancelled     []string
	failed        []string
}

func (s *recordingSink) HighlightAdded(h *domain.Highlight, counts domain.HighlightCounts) {}

func (s *recordingSink) HighlightsRemoved(paragraphID string, removed []*domain.Highlight, counts domain.HighlightCounts) {
}

func (s *recordingSink) HighlightsRestored(paragraphID string, restored []*domain.Highlight, counts domain.HighlightCounts) {
}

func (s *recordingSink) ParagraphUpdated(part *domain.ArticlePart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedParts = append(s.updatedParts, part)
}

func (s *recordingSink) EditCancelled(paragraphID string, originalText string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled = append(s.cancelled, paragraphID)
}

func (s *recordingSink) EditFailed(paragraphID string, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed = append(s.failed, message)
}

func (s *recordingSink) Announce(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.announcements = append(s.announcements, message)
}

func (s *recordingSink) announced(message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.announcements {
		if a == message {
			return true
		}
	}
	return false
}

// nopHighlightRepo keeps store persistence out of the picture for HTTP tests.
type nopHighlightRepo struct{}

func (nopHighlightRepo) Insert(h *domain.Highlight, token string) error           { return nil }
func (nopHighlightRepo) Delete(highlightID string, token string) error            { return nil }
func (nopHighlightRepo) DeleteByParagraph(paragraphID string, token string) error { return nil }
func (nopHighlightRepo) ListByUser(userID string, token string) ([]*domain.Highlight, error) {
	return nil, nil
}

const testToken = "test-token"

var testUser = &domain.SupabaseUser{ID: "user-1", Email: "reader@example.com"}

// stubAuth injects a fixed user and token, standing in for the Supabase
// middleware.
func stubAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), userContextKey, testUser)
		ctx = context.WithValue(ctx, tokenContextKey, testToken)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// harness wires the full stack behind the router with in-memory storage.
type harness struct {
	router     http.Handler
	sink       *recordingSink
	guard      *edit.Guard
	store      *store.ParagraphHighlightStore
	articleSvc domain.ArticleService
	manager    *edit.Manager
}

func newHarness() *harness {
	logger := NewMockHandlerLogger()
	sink := &recordingSink{}
	guard := edit.NewGuard()

	articleRepo := repository.NewMemoryArticleRepository(logger)
	highlightStore := store.NewParagraphHighlightStore(nopHighlightRepo{}, sink, logger)
	articleSvc := service.NewArticleService(articleRepo, guard, logger)
	highlightSvc := service.NewHighlightService(highlightStore, nopHighlightRepo{}, articleRepo, guard, logger)
	menuSvc := service.NewMenuService(highlightStore, logger)
	settingsSvc := service.NewSettingsService(&harnessSettingsRepo{}, logger)
	manager := edit.NewManager(guard, highlightStore, articleSvc, sink, logger, time.Second)

	router := NewRouter(
		NewArticleHandler(articleSvc, logger),
		NewHighlightHandler(highlightSvc, logger),
		NewEditHandler(manager, guard, logger),
		NewMenuHandler(menuSvc, logger),
		NewSettingsHandler(settingsSvc, logger),
		http.NotFoundHandler(),
		stubAuth,
		[]string{"*"},
	)

	return &harness{
		router:     router,
		sink:       sink,
		guard:      guard,
		store:      highlightStore,
		articleSvc: articleSvc,
		manager:    manager,
	}
}

// seedArticle creates one article and returns the id of its first paragraph.
func (h *harness) seedArticle(paragraphs ...string) (string, error) {
	article, err := h.articleSvc.CreateArticle(testUser.ID, "Seeded", nil, "es", paragraphs)
	if err != nil {
		return "", err
	}
	return article.Parts[0].ID, nil
}

// harnessSettingsRepo is an in-memory settings row, defaulting like the
// Supabase-backed repository when nothing was saved yet.
type harnessSettingsRepo struct {
	saved *domain.UserSettings
}

func (r *harnessSettingsRepo) Get(userID string, token string) (*domain.UserSettings, error) {
	if r.saved == nil {
		return domain.DefaultSettings(userID), nil
	}
	return r.saved, nil
}

func (r *harnessSettingsRepo) Update(settings *domain.UserSettings, token string) error {
	r.saved = settings
	return nil
}
