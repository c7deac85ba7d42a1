package handler

import (
	"encoding/json"
	"net/http"

	"lingua-reader/internal/domain"
)

// SettingsHandler handles user-settings HTTP requests.
type SettingsHandler struct {
	settingsService domain.SettingsService
	logger          domain.Logger
}

func NewSettingsHandler(settingsService domain.SettingsService, logger domain.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// GetSettings handles GET /settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}
	token, ok := GetTokenFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token not found in context")
		return
	}

	settings, err := h.settingsService.GetSettings(user.ID, token)
	if err != nil {
		h.logger.Error("Failed to get settings", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT /settings
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}
	token, ok := GetTokenFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token not found in context")
		return
	}

	var settings domain.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.settingsService.UpdateSettings(user.ID, &settings, token); err != nil {
		if writeAppError(w, err) {
			return
		}
		h.logger.Error("Failed to update settings", err, "user_id", user.ID)
		writeError(w, http.StatusUnprocessableEntity, "Failed to update settings")
		return
	}
	writeJSON(w, http.StatusOK, &settings)
}
