package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"lingua-reader/internal/domain"

	"github.com/gorilla/mux"
)

// HighlightHandler handles highlight-related HTTP requests.
type HighlightHandler struct {
	highlightService domain.HighlightService
	logger           domain.Logger
}

func NewHighlightHandler(highlightService domain.HighlightService, logger domain.Logger) *HighlightHandler {
	return &HighlightHandler{
		highlightService: highlightService,
		logger:           logger,
	}
}

type createHighlightRequest struct {
	ParagraphID string             `json:"paragraph_id"`
	Kind        string             `json:"kind"`
	Anchor      domain.AnchorRange `json:"anchor"`
	Note        string             `json:"note,omitempty"`
}

// CreateHighlight handles POST /highlights
func (h *HighlightHandler) CreateHighlight(w http.ResponseWriter, r *http.Request) {
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

	var req createHighlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ParagraphID == "" {
		writeError(w, http.StatusBadRequest, "paragraph_id is required")
		return
	}

	created, err := h.highlightService.CreateHighlight(user.ID, &domain.Highlight{
		ParagraphID: req.ParagraphID,
		Kind:        domain.HighlightKind(req.Kind),
		Anchor:      req.Anchor,
		Note:        req.Note,
	}, token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditInProgress):
			writeError(w, http.StatusConflict, "A paragraph edit is in progress")
		case errors.Is(err, domain.ErrParagraphNotFound):
			writeError(w, http.StatusNotFound, "Paragraph not found")
		case errors.Is(err, domain.ErrAnchorOutOfRange), errors.Is(err, domain.ErrAnchorOverlap):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			if writeAppError(w, err) {
				return
			}
			h.logger.Error("Failed to create highlight", err, "user_id", user.ID, "paragraph_id", req.ParagraphID)
			writeError(w, http.StatusInternalServerError, "Failed to create highlight")
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListHighlights handles GET /highlights?paragraph_id=...
func (h *HighlightHandler) ListHighlights(w http.ResponseWriter, r *http.Request) {
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

	if paragraphID := r.URL.Query().Get("paragraph_id"); paragraphID != "" {
		writeJSON(w, http.StatusOK, h.highlightService.ListByParagraph(paragraphID))
		return
	}

	highlights, err := h.highlightService.ListByUser(user.ID, token)
	if err != nil {
		h.logger.Error("Failed to list highlights", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve highlights")
		return
	}
	if highlights == nil {
		highlights = make([]*domain.Highlight, 0)
	}
	writeJSON(w, http.StatusOK, highlights)
}

// CountHighlights handles GET /paragraphs/{id}/highlights/count
func (h *HighlightHandler) CountHighlights(w http.ResponseWriter, r *http.Request) {
	paragraphID := mux.Vars(r)["id"]
	writeJSON(w, http.StatusOK, h.highlightService.CountByParagraph(paragraphID))
}

// DeleteHighlight handles DELETE /highlights/{id}
func (h *HighlightHandler) DeleteHighlight(w http.ResponseWriter, r *http.Request) {
	token, ok := GetTokenFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token not found in context")
		return
	}

	highlightID := mux.Vars(r)["id"]
	if highlightID == "" {
		writeError(w, http.StatusBadRequest, "Highlight ID is required")
		return
	}

	if err := h.highlightService.DeleteHighlight(highlightID, token); err != nil {
		switch {
		case errors.Is(err, domain.ErrHighlightNotFound):
			writeError(w, http.StatusNotFound, "Highlight not found")
		case errors.Is(err, domain.ErrEditInProgress):
			writeError(w, http.StatusConflict, "A paragraph edit is in progress")
		default:
			h.logger.Error("Failed to delete highlight", err, "highlight_id", highlightID)
			writeError(w, http.StatusInternalServerError, "Failed to delete highlight")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
