package config

import (
	"lingua-reader/internal/domain"
	"lingua-reader/internal/edit"
	"lingua-reader/internal/events"
	"lingua-reader/internal/repository"
	"lingua-reader/internal/service"
	"lingua-reader/internal/store"
	"lingua-reader/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config domain.Config
	Logger domain.Logger

	SupabaseClient domain.SupabaseClient
	Events         *events.Hub

	ArticleRepository   domain.ArticleRepository
	HighlightRepository domain.HighlightRepository
	SettingsRepository  domain.SettingsRepository
	HighlightStore      domain.HighlightStore

	Guard       *edit.Guard
	EditManager *edit.Manager

	ArticleService   domain.ArticleService
	HighlightService domain.HighlightService
	SettingsService  domain.SettingsService
	AuthService      domain.AuthService
	MenuService      *service.MenuService
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	// Initialize Supabase client
	supabaseClient := repository.NewSupabaseClient(config, appLogger)

	// Event feed consumed by the extension UI
	hub := events.NewHub(appLogger)

	// Initialize repositories
	articleRepo := repository.NewMemoryArticleRepository(appLogger)
	highlightRepo := repository.NewSupabaseHighlightRepository(supabaseClient, appLogger)
	settingsRepo := repository.NewSupabaseSettingsRepository(supabaseClient, appLogger)

	// Live highlight set, mirrored to persisted storage
	highlightStore := store.NewParagraphHighlightStore(highlightRepo, hub, appLogger)

	// Paragraph edit core
	guard := edit.NewGuard()
	articleService := service.NewArticleService(articleRepo, guard, appLogger)
	editManager := edit.NewManager(guard, highlightStore, articleService, hub, appLogger, config.GetEditSaveTimeout())

	return &Container{
		Config:              config,
		Logger:              appLogger,
		SupabaseClient:      supabaseClient,
		Events:              hub,
		ArticleRepository:   articleRepo,
		HighlightRepository: highlightRepo,
		SettingsRepository:  settingsRepo,
		HighlightStore:      highlightStore,
		Guard:               guard,
		EditManager:         editManager,
		ArticleService:      articleService,
		HighlightService:    service.NewHighlightService(highlightStore, highlightRepo, articleRepo, guard, appLogger),
		SettingsService:     service.NewSettingsService(settingsRepo, appLogger),
		AuthService:         service.NewAuthService(supabaseClient, appLogger),
		MenuService:         service.NewMenuService(highlightStore, appLogger),
	}
}
