package realtime

import (
	"encoding/json"
	"log"
	"time"

	"github.com/olahol/melody"
)

const (
	EventGuestStatusUpdate = "guestStatusUpdate"
	EventChatListUpdate    = "chatList:update"
)

// Event is the envelope pushed to dashboard websocket clients.
type Event struct {
	Event     string      `json:"event"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub fans realtime events out to connected dashboard sessions. Each
// session is tagged with the property it belongs to at handshake and
// only receives that property's events.
type Hub struct {
	m *melody.Melody
}

func NewHub() *Hub {
	m := melody.New()
	m.Config.MaxMessageSize = 1024
	m.Config.PingPeriod = 25 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		propertyID, _ := s.Get(sessionPropertyKey)
		log.Printf("🔌 Dashboard session connected (property %v)", propertyID)
	})

	m.HandleDisconnect(func(s *melody.Session) {
		propertyID, _ := s.Get(sessionPropertyKey)
		log.Printf("🔌 Dashboard session disconnected (property %v)", propertyID)
	})

	return &Hub{m: m}
}

// EmitGuestStatusUpdate pushes a status transition to a property's
// connected dashboards.
func (h *Hub) EmitGuestStatusUpdate(propertyID string, payload interface{}) {
	h.emit(propertyID, Event{
		Event:     EventGuestStatusUpdate,
		Data:      payload,
		Timestamp: time.Now(),
	})
}

// EmitChatListUpdate tells a property's dashboards to refetch the chat list.
func (h *Hub) EmitChatListUpdate(propertyID string) {
	h.emit(propertyID, Event{
		Event:     EventChatListUpdate,
		Timestamp: time.Now(),
	})
}

func (h *Hub) emit(propertyID string, event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("🔌 Failed to marshal realtime event %s: %v", event.Event, err)
		return
	}

	err = h.m.BroadcastFilter(message, func(s *melody.Session) bool {
		sessionProperty, ok := s.Get(sessionPropertyKey)
		return ok && sessionProperty == propertyID
	})
	if err != nil {
		log.Printf("🔌 Failed to broadcast realtime event %s: %v", event.Event, err)
	}
}

// ConnectedSessions returns the number of open dashboard sessions.
func (h *Hub) ConnectedSessions() int {
	return h.m.Len()
}

// Close shuts the hub down, closing all open sessions.
func (h *Hub) Close() error {
	return h.m.Close()
}
