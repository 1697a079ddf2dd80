package ws

import (
	"encoding/json"
	"time"

	"skillswap/internal/domain/connection"

	"github.com/google/uuid"
)

type ConnectionEvent struct {
	Type         string    `json:"type"`
	ConnectionID uuid.UUID `json:"connection_id"`
	FromUserID   uuid.UUID `json:"from_user_id"`
	Status       string    `json:"status"`
	Message      string    `json:"message,omitempty"`
	Timestamp    string    `json:"timestamp"`
}

// ConnectionNotifier pushes connection lifecycle events to the affected user.
type ConnectionNotifier struct {
	hub *Hub
}

func NewConnectionNotifier(hub *Hub) *ConnectionNotifier {
	return &ConnectionNotifier{hub: hub}
}

// NotifyConnectionRequest tells the addressee a new request arrived.
func (n *ConnectionNotifier) NotifyConnectionRequest(c connection.Connection) {
	if n == nil || n.hub == nil {
		return
	}
	n.push(c.AddresseeID, ConnectionEvent{
		Type:         "connection_request",
		ConnectionID: c.ID,
		FromUserID:   c.RequesterID,
		Status:       c.Status,
		Message:      c.Message,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
}

// NotifyConnectionResponse tells the requester their request was answered.
func (n *ConnectionNotifier) NotifyConnectionResponse(c connection.Connection) {
	if n == nil || n.hub == nil {
		return
	}
	n.push(c.RequesterID, ConnectionEvent{
		Type:         "connection_response",
		ConnectionID: c.ID,
		FromUserID:   c.AddresseeID,
		Status:       c.Status,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
}

func (n *ConnectionNotifier) push(userID uuid.UUID, evt ConnectionEvent) {
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.SendToUser(userID, b)
}
