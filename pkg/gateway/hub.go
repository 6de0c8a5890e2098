package gateway

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/contrib/websocket"
)

// PinConnection tracks one connected pin.
type PinConnection struct {
	ID        string
	Connected time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// LastSeen returns the time of the pin's most recent message.
func (p *PinConnection) LastSeen() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastSeen
}

func (p *PinConnection) touch() {
	p.mu.Lock()
	p.lastSeen = time.Now()
	p.mu.Unlock()
}

// Hub tracks WebSocket connections from pins.
type Hub struct {
	mu   sync.RWMutex
	pins map[string]*PinConnection

	messagesReceived atomic.Uint64
	messagesSent     atomic.Uint64
}

// NewHub creates an empty pin hub.
func NewHub() *Hub {
	return &Hub{pins: make(map[string]*PinConnection)}
}

// PinCount returns the number of connected pins.
func (h *Hub) PinCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.pins)
}

// MessagesReceived returns the total pin messages received.
func (h *Hub) MessagesReceived() uint64 {
	return h.messagesReceived.Load()
}

// MessagesSent returns the total replies sent to pins.
func (h *Hub) MessagesSent() uint64 {
	return h.messagesSent.Load()
}

func (h *Hub) register(id string) *PinConnection {
	pin := &PinConnection{
		ID:        id,
		Connected: time.Now(),
		lastSeen:  time.Now(),
	}
	h.mu.Lock()
	h.pins[id] = pin
	h.mu.Unlock()
	return pin
}

func (h *Hub) unregister(id string) {
	h.mu.Lock()
	delete(h.pins, id)
	h.mu.Unlock()
}

// PinReply is the message sent back over a pin WebSocket.
type PinReply struct {
	RequestID string `json:"request_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Text      string `json:"text,omitempty"`
	Status    int    `json:"status,omitempty"`
	Error     string `json:"error,omitempty"`
}

// handlePinSocket serves one pin connection: each incoming
// QueryRequest message gets one PinReply back, in order.
func (s *Server) handlePinSocket(conn *websocket.Conn) {
	id := conn.Params("id")
	pin := s.hub.register(id)
	defer s.hub.unregister(id)

	s.logger.Info("pin connected", "pin", id)
	defer s.logger.Info("pin disconnected", "pin", id)

	for {
		var req QueryRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		s.hub.messagesReceived.Add(1)
		pin.touch()

		var reply PinReply
		resp, err := s.runQuery(context.Background(), req)
		if err != nil {
			reply = PinReply{Error: err.Error()}
		} else {
			reply = PinReply{
				RequestID: resp.RequestID,
				Name:      resp.Name,
				Text:      resp.Text,
				Status:    resp.Status,
			}
		}
		if err := conn.WriteJSON(reply); err != nil {
			return
		}
		s.hub.messagesSent.Add(1)
	}
}
