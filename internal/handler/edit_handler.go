package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"lingua-reader/internal/domain"
	"lingua-reader/internal/edit"

	"github.com/gorilla/mux"
)

// EditHandler drives the paragraph edit session over HTTP. The extension
// sends one request per user action; state changes come back on the event
// feed as well as in the response.
type EditHandler struct {
	manager *edit.Manager
	guard   *edit.Guard
	logger  domain.Logger
}

func NewEditHandler(manager *edit.Manager, guard *edit.Guard, logger domain.Logger) *EditHandler {
	return &EditHandler{
		manager: manager,
		guard:   guard,
		logger:  logger,
	}
}

type saveRequest struct {
	Text string `json:"text"`
}

type editStateResponse struct {
	Session *domain.EditSession `json:"session"`
	Locked  bool                `json:"locked"`
	Reason  string              `json:"reason,omitempty"`
}

// StartEdit handles POST /paragraphs/{id}/edit
func (h *EditHandler) StartEdit(w http.ResponseWriter, r *http.Request) {
	token, ok := GetTokenFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token not found in context")
		return
	}

	paragraphID := mux.Vars(r)["id"]
	session, err := h.manager.Start(paragraphID, token)
	if err != nil {
		h.writeEditError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// ConfirmEdit handles POST /edit/confirm
func (h *EditHandler) ConfirmEdit(w http.ResponseWriter, r *http.Request) {
	session, err := h.manager.Confirm()
	if err != nil {
		h.writeEditError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// DismissEdit handles POST /edit/dismiss
func (h *EditHandler) DismissEdit(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Dismiss(); err != nil {
		h.writeEditError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveEdit handles POST /edit/save
func (h *EditHandler) SaveEdit(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	part, err := h.manager.Save(req.Text)
	if err != nil {
		h.writeEditError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, part)
}

// CancelEdit handles POST /edit/cancel
func (h *EditHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Cancel(); err != nil {
		h.writeEditError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ParagraphLost handles POST /paragraphs/{id}/lost, reported by the content
// script when the paragraph element vanished from the page mid-edit.
func (h *EditHandler) ParagraphLost(w http.ResponseWriter, r *http.Request) {
	paragraphID := mux.Vars(r)["id"]
	if err := h.manager.ParagraphLost(paragraphID); err != nil {
		h.writeEditError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EditState handles GET /edit/state. Navigation and mode-switch collaborators
// poll this before their own transitions and prompt "save or discard" when
// the guard is held.
func (h *EditHandler) EditState(w http.ResponseWriter, r *http.Request) {
	locked, reason := h.guard.Locked()
	writeJSON(w, http.StatusOK, editStateResponse{
		Session: h.manager.State(),
		Locked:  locked,
		Reason:  reason,
	})
}

func (h *EditHandler) writeEditError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrParagraphNotFound):
		writeError(w, http.StatusNotFound, "Paragraph not found")
	case errors.Is(err, domain.ErrEditInProgress):
		writeError(w, http.StatusConflict, "Another paragraph edit is in progress")
	case errors.Is(err, domain.ErrNoActiveEdit):
		writeError(w, http.StatusConflict, "No paragraph edit in progress")
	case errors.Is(err, domain.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "Operation not valid in current edit state")
	case errors.Is(err, domain.ErrSaveInProgress):
		writeError(w, http.StatusConflict, "A save is already in progress")
	case errors.Is(err, domain.ErrEmptyParagraph):
		writeError(w, http.StatusBadRequest, "Paragraph text cannot be empty")
	case errors.Is(err, domain.ErrParagraphTooLong):
		writeError(w, http.StatusBadRequest, "Paragraph text exceeds the maximum length")
	default:
		h.logger.Error("Edit operation failed", err)
		writeError(w, http.StatusUnprocessableEntity, "Failed to save paragraph")
	}
}
