package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	articleHandler *ArticleHandler,
	highlightHandler *HighlightHandler,
	editHandler *EditHandler,
	menuHandler *MenuHandler,
	settingsHandler *SettingsHandler,
	eventsFeed http.Handler,
	authMiddleware func(http.Handler) http.Handler,
	allowedOrigins []string,
) http.Handler {
	router := mux.NewRouter()

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"lingua-reader"}`))
	}).Methods("GET")

	// Event feed. Browser WebSocket clients cannot set an Authorization
	// header, so the feed sits outside the auth middleware; it only ever
	// pushes data to the extension.
	router.Handle("/events", eventsFeed).Methods("GET")

	// Protected routes (require authentication)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMiddleware)

	// Article routes
	protected.HandleFunc("/articles", articleHandler.ListArticles).Methods("GET")
	protected.HandleFunc("/articles", articleHandler.CreateArticle).Methods("POST")
	protected.HandleFunc("/articles/{id}", articleHandler.GetArticle).Methods("GET")
	protected.HandleFunc("/articles/{id}", articleHandler.DeleteArticle).Methods("DELETE")

	// Highlight routes
	protected.HandleFunc("/highlights", highlightHandler.ListHighlights).Methods("GET")
	protected.HandleFunc("/highlights", highlightHandler.CreateHighlight).Methods("POST")
	protected.HandleFunc("/highlights/{id}", highlightHandler.DeleteHighlight).Methods("DELETE")
	protected.HandleFunc("/paragraphs/{id}/highlights/count", highlightHandler.CountHighlights).Methods("GET")

	// Paragraph edit routes
	protected.HandleFunc("/paragraphs/{id}/edit", editHandler.StartEdit).Methods("POST")
	protected.HandleFunc("/paragraphs/{id}/lost", editHandler.ParagraphLost).Methods("POST")
	protected.HandleFunc("/edit/confirm", editHandler.ConfirmEdit).Methods("POST")
	protected.HandleFunc("/edit/dismiss", editHandler.DismissEdit).Methods("POST")
	protected.HandleFunc("/edit/save", editHandler.SaveEdit).Methods("POST")
	protected.HandleFunc("/edit/cancel", editHandler.CancelEdit).Methods("POST")
	protected.HandleFunc("/edit/state", editHandler.EditState).Methods("GET")

	// Context menu
	protected.HandleFunc("/paragraphs/{id}/menu", menuHandler.GetMenu).Methods("GET")

	// Settings routes
	protected.HandleFunc("/settings", settingsHandler.GetSettings).Methods("GET")
	protected.HandleFunc("/settings", settingsHandler.UpdateSettings).Methods("PUT")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
