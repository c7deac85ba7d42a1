package repository

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"lingua-reader/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

// SupabaseHighlightRepository implements domain.HighlightRepository. It is
// the persisted mirror behind the in-memory highlight store; callers decide
// whether its failures are fatal.
type SupabaseHighlightRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

func NewSupabaseHighlightRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.HighlightRepository {
	return &SupabaseHighlightRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

func (r *SupabaseHighlightRepository) Insert(h *domain.Highlight, token string) error {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return fmt.Errorf("failed to get client with token: %w", err)
	}
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	row := map[string]interface{}{
		"id":           h.ID,
		"user_id":      h.UserID,
		"paragraph_id": h.ParagraphID,
		"kind":         string(h.Kind),
		"anchor_start": h.Anchor.Start,
		"anchor_end":   h.Anchor.End,
		"quote":        sanitizeText(h.Quote),
		"note":         sanitizeText(h.Note),
	}

	// Upsert so restoring a previously removed highlight re-uses its row.
	_, _, err = client.From("highlights").
		Upsert(row, "id", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert highlight: %w", err)
	}
	return nil
}

func (r *SupabaseHighlightRepository) Delete(highlightID string, token string) error {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return fmt.Errorf("failed to get client with token: %w", err)
	}
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	_, _, err = client.From("highlights").
		Delete("", "").
		Eq("id", highlightID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete highlight: %w", err)
	}
	return nil
}

func (r *SupabaseHighlightRepository) DeleteByParagraph(paragraphID string, token string) error {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return fmt.Errorf("failed to get client with token: %w", err)
	}
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	_, _, err = client.From("highlights").
		Delete("", "").
		Eq("paragraph_id", paragraphID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete highlights for paragraph: %w", err)
	}
	return nil
}

func (r *SupabaseHighlightRepository) ListByUser(userID string, token string) ([]*domain.Highlight, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From("highlights").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list highlights: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	out := make([]*domain.Highlight, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapToHighlight(row))
	}
	return out, nil
}

func mapToHighlight(data map[string]interface{}) *domain.Highlight {
	h := &domain.Highlight{
		ID:          getString(data, "id"),
		UserID:      getString(data, "user_id"),
		ParagraphID: getString(data, "paragraph_id"),
		Kind:        domain.HighlightKind(getString(data, "kind")),
		Quote:       getString(data, "quote"),
		Note:        getString(data, "note"),
	}

	h.Anchor.Start = getInt(data, "anchor_start")
	h.Anchor.End = getInt(data, "anchor_end")

	if createdAt := getString(data, "created_at"); createdAt != "" {
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			h.CreatedAt = t
		} else if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			h.CreatedAt = t
		}
	}

	return h
}

func getString(data map[string]interface{}, key string) string {
	if v, ok := data[key]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getInt(data map[string]interface{}, key string) int {
	if v, ok := data[key]; ok && v != nil {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		case int64:
			return int(n)
		}
	}
	return 0
}

// sanitizeText removes characters that PostgreSQL rejects in text fields (notably NUL bytes).
func sanitizeText(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\\u0000", "")
	s = strings.ReplaceAll(s, "\x00", "")
	return s
}
