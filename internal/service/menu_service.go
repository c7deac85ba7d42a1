package service

import (
	"lingua-reader/internal/domain"
)

// MenuEntry is one entry of the paragraph context menu.
type MenuEntry string

const (
	MenuEntryEdit MenuEntry = "edit"
	MenuEntryCopy MenuEntry = "copy"
)

// MenuService decides which context-menu entries apply to a right-click
// position inside a paragraph.
type MenuService struct {
	store  domain.HighlightStore
	logger domain.Logger
}

func NewMenuService(store domain.HighlightStore, logger domain.Logger) *MenuService {
	return &MenuService{
		store:  store,
		logger: logger,
	}
}

// EntriesAt returns the menu entries for the given rune offset within the
// paragraph. "Edit" is suppressed when the position falls inside a highlight;
// highlighted text is managed through its card, not through paragraph edit.
func (s *MenuService) EntriesAt(paragraphID string, offset int) []MenuEntry {
	onHighlight := false
	for _, h := range s.store.ListByParagraph(paragraphID) {
		if h.Anchor.Contains(offset) {
			onHighlight = true
			break
		}
	}

	if onHighlight {
		return []MenuEntry{MenuEntryCopy}
	}
	return []MenuEntry{MenuEntryEdit, MenuEntryCopy}
}
