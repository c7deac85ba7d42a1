package handler

import (
	"net/http"
	"strconv"

	"lingua-reader/internal/domain"
	"lingua-reader/internal/service"

	"github.com/gorilla/mux"
)

// MenuHandler resolves context-menu entries for a right-click position.
type MenuHandler struct {
	menuService *service.MenuService
	logger      domain.Logger
}

func NewMenuHandler(menuService *service.MenuService, logger domain.Logger) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
		logger:      logger,
	}
}

type menuResponse struct {
	Entries []service.MenuEntry `json:"entries"`
}

// GetMenu handles GET /paragraphs/{id}/menu?offset=N
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	paragraphID := mux.Vars(r)["id"]

	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}

	writeJSON(w, http.StatusOK, menuResponse{
		Entries: h.menuService.EntriesAt(paragraphID, offset),
	})
}
