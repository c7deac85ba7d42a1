package domain

import "time"

// UserSettings holds a user's reading preferences, shared across devices.
type UserSettings struct {
	UserID string `json:"user_id"`

	NativeLanguage   string  `json:"native_language"`
	LearningLanguage string  `json:"learning_language"`
	AutoHighlight    bool    `json:"auto_highlight"`
	FontScale        float32 `json:"font_scale"`

	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultSettings returns the settings used before a user saves their own.
func DefaultSettings(userID string) *UserSettings {
	return &UserSettings{
		UserID:           userID,
		NativeLanguage:   "en",
		LearningLanguage: "es",
		AutoHighlight:    true,
		FontScale:        1.0,
	}
}

// SettingsRepository defines persistence operations for user settings.
type SettingsRepository interface {
	Get(userID string, token string) (*UserSettings, error)
	Update(settings *UserSettings, token string) error
}

// SettingsService defines the use-case operations for user settings.
type SettingsService interface {
	GetSettings(userID string, token string) (*UserSettings, error)
	UpdateSettings(userID string, settings *UserSettings, token string) error
}
