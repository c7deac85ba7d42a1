package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"lingua-reader/internal/domain"

	"github.com/gorilla/mux"
)

// ArticleHandler handles article-related HTTP requests.
type ArticleHandler struct {
	articleService domain.ArticleService
	logger         domain.Logger
}

func NewArticleHandler(articleService domain.ArticleService, logger domain.Logger) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		logger:         logger,
	}
}

type createArticleRequest struct {
	Title      string   `json:"title"`
	SourceURL  *string  `json:"source_url,omitempty"`
	Language   string   `json:"language,omitempty"`
	Paragraphs []string `json:"paragraphs"`
}

// CreateArticle handles POST /articles
func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	var req createArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if len(req.Paragraphs) == 0 {
		writeError(w, http.StatusBadRequest, "paragraphs are required")
		return
	}

	article, err := h.articleService.CreateArticle(user.ID, req.Title, req.SourceURL, req.Language, req.Paragraphs)
	if err != nil {
		if writeAppError(w, err) {
			return
		}
		h.logger.Error("Failed to create article", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to create article")
		return
	}

	writeJSON(w, http.StatusCreated, article)
}

// ListArticles handles GET /articles
func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	articles, err := h.articleService.ListArticles(user.ID)
	if err != nil {
		h.logger.Error("Failed to list articles", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve articles")
		return
	}
	if articles == nil {
		articles = make([]*domain.Article, 0)
	}
	writeJSON(w, http.StatusOK, articles)
}

// GetArticle handles GET /articles/{id}
func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	articleID := mux.Vars(r)["id"]

	article, err := h.articleService.GetArticle(articleID)
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			writeError(w, http.StatusNotFound, "Article not found")
			return
		}
		h.logger.Error("Failed to get article", err, "article_id", articleID)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve article")
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// DeleteArticle handles DELETE /articles/{id}
func (h *ArticleHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	articleID := mux.Vars(r)["id"]

	if err := h.articleService.DeleteArticle(articleID); err != nil {
		switch {
		case errors.Is(err, domain.ErrArticleNotFound):
			writeError(w, http.StatusNotFound, "Article not found")
		case errors.Is(err, domain.ErrEditInProgress):
			writeError(w, http.StatusConflict, "A paragraph edit is in progress, save or discard it first")
		default:
			h.logger.Error("Failed to delete article", err, "article_id", articleID)
			writeError(w, http.StatusInternalServerError, "Failed to delete article")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
