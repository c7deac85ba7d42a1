package events

import (
	"encoding/json"
	"net/http"
	"sync"

	"lingua-reader/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Event is the wire format of the notification feed. The extension's card
// lists re-render on highlight events, the paragraph renderer applies
// paragraph events while keeping its scroll anchor, and Announce carries
// live-region text for the accessibility layer.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	Toast   string      `json:"toast,omitempty"`
}

type highlightChangePayload struct {
	ParagraphID string              `json:"paragraph_id"`
	Highlights  []*domain.Highlight `json:"highlights"`
	Counts      domain.HighlightCounts `json:"counts"`
}

type editCancelledPayload struct {
	ParagraphID  string `json:"paragraph_id"`
	OriginalText string `json:"original_text"`
}

type editFailedPayload struct {
	ParagraphID string `json:"paragraph_id"`
	Message     string `json:"message"`
}

// Hub broadcasts events to all connected clients. It implements
// domain.EventSink.
type Hub struct {
	mu      sync.Mutex
	clients map[uuid.UUID]*client

	logger domain.Logger
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

var upgrader = websocket.Upgrader{
	// The feed is read-only for clients; extension origins are enforced by
	// the CORS layer in front of the router.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewHub(logger domain.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]*client),
		logger:  logger,
	}
}

// ServeHTTP upgrades the connection and streams events until the client
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade events connection", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 64)}
	id := uuid.New()

	h.mu.Lock()
	h.clients[id] = c
	h.mu.Unlock()
	h.logger.Info("Events client connected", "client_id", id)

	go h.writeLoop(id, c)

	// Clients never send application messages; the read loop only detects
	// disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(id)
}

func (h *Hub) writeLoop(id uuid.UUID, c *client) {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.logger.Warn("Failed to write event to client", "client_id", id, "error", err)
			h.drop(id)
			return
		}
	}
	_ = c.conn.Close()
}

func (h *Hub) drop(id uuid.UUID) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
		close(c.send)
	}
	h.mu.Unlock()
	if ok {
		h.logger.Info("Events client disconnected", "client_id", id)
	}
}

// broadcast fans the event out to every connected client. Slow clients drop
// events rather than block the caller.
func (h *Hub) broadcast(ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("Failed to marshal event", err, "type", ev.Type)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("Dropping event for slow client", "client_id", id, "type", ev.Type)
		}
	}
}

func (h *Hub) HighlightAdded(highlight *domain.Highlight, counts domain.HighlightCounts) {
	h.broadcast(Event{
		Type: "highlight.added",
		Payload: highlightChangePayload{
			ParagraphID: highlight.ParagraphID,
			Highlights:  []*domain.Highlight{highlight},
			Counts:      counts,
		},
	})
}

func (h *Hub) HighlightsRemoved(paragraphID string, removed []*domain.Highlight, counts domain.HighlightCounts) {
	h.broadcast(Event{
		Type: "highlights.removed",
		Payload: highlightChangePayload{
			ParagraphID: paragraphID,
			Highlights:  removed,
			Counts:      counts,
		},
	})
}

func (h *Hub) HighlightsRestored(paragraphID string, restored []*domain.Highlight, counts domain.HighlightCounts) {
	h.broadcast(Event{
		Type: "highlights.restored",
		Payload: highlightChangePayload{
			ParagraphID: paragraphID,
			Highlights:  restored,
			Counts:      counts,
		},
	})
}

func (h *Hub) ParagraphUpdated(part *domain.ArticlePart) {
	h.broadcast(Event{
		Type:    "paragraph.updated",
		Payload: part,
		Toast:   "Paragraph updated",
	})
}

func (h *Hub) EditCancelled(paragraphID string, originalText string) {
	h.broadcast(Event{
		Type: "edit.cancelled",
		Payload: editCancelledPayload{
			ParagraphID:  paragraphID,
			OriginalText: originalText,
		},
	})
}

func (h *Hub) EditFailed(paragraphID string, message string) {
	h.broadcast(Event{
		Type: "edit.failed",
		Payload: editFailedPayload{
			ParagraphID: paragraphID,
			Message:     message,
		},
	})
}

func (h *Hub) Announce(message string) {
	h.broadcast(Event{Type: "announce", Payload: message})
}
