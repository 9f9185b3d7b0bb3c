package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"grid-tactics/internal/models"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// EventHub fans battle events out to websocket observers. It stands in for
// the original client's battle-log panel: every move, attack, defeat and
// turn change is pushed to each connected socket as JSON.
type EventHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

// NewEventHub creates an empty hub.
func NewEventHub() *EventHub {
	return &EventHub{conns: make(map[*websocket.Conn]bool)}
}

// Serve upgrades the request and keeps the connection registered until the
// peer closes it. Observers only receive; inbound frames are discarded.
func (h *EventHub) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Event stream upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	h.add(conn)
	defer h.remove(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *EventHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = true
}

func (h *EventHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
	conn.Close()
}

// Broadcast sends an event to every connected observer. Sockets that fail
// to accept the write are dropped.
func (h *EventHub) Broadcast(ev models.BattleEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(ev); err != nil {
			log.Printf("Dropping event observer %s: %v", conn.RemoteAddr(), err)
			delete(h.conns, conn)
			conn.Close()
		}
	}
}
