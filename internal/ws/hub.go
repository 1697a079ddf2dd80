package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Hub tracks connected clients keyed by user id so connection events can be
// pushed to the one member they concern. A user may hold several connections
// (multiple tabs); all of them receive the event.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	direct     chan directMessage
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger
}

type directMessage struct {
	userID  uuid.UUID
	payload []byte
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		direct:     make(chan directMessage, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]bool)
				h.clients[client.userID] = set
			}
			set[client] = true
			total := h.totalLocked()
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS connected | user=%s total_clients=%d", client.userID, total)
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if set, ok := h.clients[client.userID]; ok {
				if _, present := set[client]; present {
					delete(set, client)
					close(client.send)
				}
				if len(set) == 0 {
					delete(h.clients, client.userID)
				}
			}
			total := h.totalLocked()
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS disconnected | user=%s total_clients=%d", client.userID, total)
			}

		case msg := <-h.direct:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients[msg.userID]))
			for c := range h.clients[msg.userID] {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- msg.payload:
				default:
					h.unregister <- client
				}
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// SendToUser queues payload for every open connection the user has. Offline
// users are silently skipped; a full queue drops the event.
func (h *Hub) SendToUser(userID uuid.UUID, payload []byte) {
	if h == nil || userID == uuid.Nil {
		return
	}
	select {
	case h.direct <- directMessage{userID: userID, payload: payload}:
	default:
		if h.logger != nil {
			h.logger.Printf("WS send dropped | user=%s reason=buffer_full", userID)
		}
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.totalLocked()
}

func (h *Hub) totalLocked() int {
	total := 0
	for _, set := range h.clients {
		total += len(set)
	}
	return total
}
