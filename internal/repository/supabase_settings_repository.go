package repository

import (
	"encoding/json"
	"fmt"

	"lingua-reader/internal/domain"
)

// SupabaseSettingsRepository implements the domain.SettingsRepository interface
type SupabaseSettingsRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

func NewSupabaseSettingsRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.SettingsRepository {
	return &SupabaseSettingsRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// Get retrieves user settings, falling back to defaults when the user has
// never saved any.
func (r *SupabaseSettingsRepository) Get(userID string, token string) (*domain.UserSettings, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From("user_settings").
		Select("*", "", false).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return domain.DefaultSettings(userID), nil
	}

	return r.mapToSettings(rows[0]), nil
}

// Update upserts the user's settings row.
func (r *SupabaseSettingsRepository) Update(settings *domain.UserSettings, token string) error {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return fmt.Errorf("failed to get client with token: %w", err)
	}
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	row := map[string]interface{}{
		"user_id":           settings.UserID,
		"native_language":   settings.NativeLanguage,
		"learning_language": settings.LearningLanguage,
		"auto_highlight":    settings.AutoHighlight,
		"font_scale":        settings.FontScale,
		"updated_at":        settings.UpdatedAt,
	}

	_, _, err = client.From("user_settings").
		Upsert(row, "user_id", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}

	r.logger.Info("Settings updated successfully", "user_id", settings.UserID)
	return nil
}

func (r *SupabaseSettingsRepository) mapToSettings(data map[string]interface{}) *domain.UserSettings {
	settings := domain.DefaultSettings(getString(data, "user_id"))

	if v := getString(data, "native_language"); v != "" {
		settings.NativeLanguage = v
	}
	if v := getString(data, "learning_language"); v != "" {
		settings.LearningLanguage = v
	}
	if v, ok := data["auto_highlight"].(bool); ok {
		settings.AutoHighlight = v
	}
	if v, ok := data["font_scale"].(float64); ok && v > 0 {
		settings.FontScale = float32(v)
	}
	return settings
}
