package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/raysh454/secrglue/internal/logging"
)

const (
	writeWait      = 10 * time.Second
	subscriberSend = 16
)

// Hub fans slide order events out to websocket subscribers. A subscriber
// that falls behind is dropped rather than stalling the others.
type Hub struct {
	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	closed bool
	logger logging.Logger
}

type subscriber struct {
	conn *websocket.Conn
	send chan SlideOrderEvent
}

func NewHub(logger logging.Logger) *Hub {
	return &Hub{
		subs:   make(map[*subscriber]struct{}),
		logger: logging.OrNop(logger),
	}
}

// Subscribers returns how many connections are attached.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Broadcast queues ev for every subscriber.
func (h *Hub) Broadcast(ev SlideOrderEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		select {
		case sub.send <- ev:
		default:
			h.logger.Warn("dropping slow websocket subscriber")
			h.removeLocked(sub)
		}
	}
}

// Close disconnects every subscriber; later subscriptions are refused.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for sub := range h.subs {
		h.removeLocked(sub)
	}
}

func (h *Hub) add(sub *subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.subs[sub] = struct{}{}
	return true
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(sub)
}

func (h *Hub) removeLocked(sub *subscriber) {
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.send)
}

// handleSlidesWS godoc
// @Summary Slide order event feed
// @Description WebSocket; each message is a SlideOrderEvent.
// @Tags proceedings
// @Success 101 {object} SlideOrderEvent
// @Router /secr/ws/slides [get]
func (s *Server) handleSlidesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Err(err))
		return
	}
	defer conn.Close()

	sub := &subscriber{conn: conn, send: make(chan SlideOrderEvent, subscriberSend)}
	if !s.hub.add(sub) {
		return
	}
	defer s.hub.remove(sub)

	// Reads only notice the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-sub.send:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
