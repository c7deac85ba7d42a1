package service

import (
	"time"

	"lingua-reader/internal/domain"
	apperrors "lingua-reader/pkg/errors"
)

type settingsService struct {
	settingsRepo domain.SettingsRepository
	logger       domain.Logger
}

func NewSettingsService(settingsRepo domain.SettingsRepository, logger domain.Logger) domain.SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// GetSettings retrieves user settings
func (s *settingsService) GetSettings(userID string, token string) (*domain.UserSettings, error) {
	return s.settingsRepo.Get(userID, token)
}

// UpdateSettings updates user settings
func (s *settingsService) UpdateSettings(userID string, settings *domain.UserSettings, token string) error {
	if settings.FontScale < 0.5 || settings.FontScale > 3.0 {
		return apperrors.NewValidationError("font_scale must be between 0.5 and 3.0")
	}
	settings.UserID = userID
	settings.UpdatedAt = time.Now()
	return s.settingsRepo.Update(settings, token)
}
