// Package live pushes content change notifications to open pages over a
// WebSocket so they can swap in the changed section without reloading.
package live

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/store"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Subscriber is the part of the content store the hub listens to.
type Subscriber interface {
	Subscribe() (<-chan store.Event, func())
}

// message is the outgoing WebSocket message format.
type message struct {
	Type    string    `json:"type"` // "content_updated"
	Section string    `json:"section"`
	At      time.Time `json:"at"`
}

// Hub forwards store events to every connected page.
type Hub struct {
	events Subscriber
	log    zerolog.Logger
}

// NewHub creates a Hub fed by events.
func NewHub(events Subscriber, log zerolog.Logger) *Hub {
	return &Hub{events: events, log: log}
}

// RegisterRoutes mounts the WebSocket endpoint.
func (h *Hub) RegisterRoutes(r chi.Router) {
	r.Get("/ws/content", h.handleWebSocket)
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	events, cancel := h.events.Subscribe()
	defer cancel()

	// Pages never send anything meaningful; reading only tracks liveness.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.log.Debug().Err(err).Msg("websocket read")
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(message{Type: "content_updated", Section: ev.Section, At: ev.At}); err != nil {
				h.log.Debug().Err(err).Msg("websocket write")
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
