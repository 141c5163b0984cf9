package relay

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/quantfeed/matchcore/pkg/logger"
)

// Hub fans a message stream out to websocket subscribers. Subscribers that
// cannot keep up are dropped rather than allowed to stall the stream.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	logger     *logger.Logger
	upgrader   websocket.Upgrader
}

// welcomeMessage is sent to every subscriber right after the upgrade.
const welcomeMessage = `{"type":"connected","message":"Market data stream connected"}`

// NewHub creates an idle hub; call Run to start it.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Run pumps registrations and broadcasts until ctx is cancelled. It must
// run in exactly one goroutine.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("Relay hub started")

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				client.close()
				delete(h.clients, client)
			}
			h.logger.Info("Relay hub stopped")
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.logger.Debug("Subscriber connected", logger.Field{
				Key:   "subscribers",
				Value: len(h.clients),
			})

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				client.close()
				delete(h.clients, client)
			}

		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					// slow consumer, drop it
					client.close()
					delete(h.clients, client)
				}
			}
		}
	}
}

// Broadcast queues a message for every subscriber. It never blocks; when
// the hub itself is saturated the message is dropped.
func (h *Hub) Broadcast(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
	}
}

// ServeWS upgrades an HTTP request and attaches the connection to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error(err, logger.Field{
			Key:   "action",
			Value: "ws_upgrade",
		})
		return
	}

	client := newClient(h, conn)
	client.send <- []byte(welcomeMessage)
	h.register <- client

	go client.writePump()
	go client.readPump()
}
