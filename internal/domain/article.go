package domain

import (
	"context"
	"time"
)

// ArticlePart is one paragraph of an article. It is the unit of text a user
// can edit; its content changes only through a successful paragraph save.
type ArticlePart struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"article_id"`
	Index     int       `json:"index"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Article represents a reader-view article extracted from a web page.
type Article struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	Title     string  `json:"title"`
	SourceURL *string `json:"source_url,omitempty"`
	Language  string  `json:"language,omitempty"`

	Parts []*ArticlePart `json:"parts"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArticleRepository defines persistence operations for articles. Articles are
// session-scoped: they live for the duration of a reading session.
type ArticleRepository interface {
	Create(article *Article) error
	GetByID(id string) (*Article, error)
	ListByUser(userID string) ([]*Article, error)
	Delete(id string) error

	GetPart(partID string) (*ArticlePart, error)
	UpdatePart(ctx context.Context, partID string, content string) (*ArticlePart, error)
}

// ArticleService defines the use-case operations for articles.
type ArticleService interface {
	CreateArticle(userID, title string, sourceURL *string, language string, paragraphs []string) (*Article, error)
	GetArticle(id string) (*Article, error)
	ListArticles(userID string) ([]*Article, error)
	DeleteArticle(id string) error

	GetParagraph(paragraphID string) (*ArticlePart, error)
	SaveParagraph(ctx context.Context, paragraphID, text string) (*ArticlePart, error)
}
