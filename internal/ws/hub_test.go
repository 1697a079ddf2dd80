package ws

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func waitForClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d clients, got %d", want, h.ClientCount())
}

func TestHubDeliversToTargetUserOnly(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	alice := uuid.New()
	bob := uuid.New()

	aliceClient := NewClient(h, nil, alice)
	bobClient := NewClient(h, nil, bob)
	h.Register(aliceClient)
	h.Register(bobClient)
	waitForClients(t, h, 2)

	h.SendToUser(alice, []byte("hello"))

	select {
	case msg := <-aliceClient.send:
		if string(msg) != "hello" {
			t.Fatalf("expected hello, got %q", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("alice never received the message")
	}

	select {
	case msg := <-bobClient.send:
		t.Fatalf("bob should not receive alice's message, got %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubFansOutToAllUserConnections(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	user := uuid.New()
	first := NewClient(h, nil, user)
	second := NewClient(h, nil, user)
	h.Register(first)
	h.Register(second)
	waitForClients(t, h, 2)

	h.SendToUser(user, []byte("ping"))

	for _, c := range []*Client{first, second} {
		select {
		case msg := <-c.send:
			if string(msg) != "ping" {
				t.Fatalf("expected ping, got %q", msg)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("connection never received the message")
		}
	}
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	user := uuid.New()
	client := NewClient(h, nil, user)
	h.Register(client)
	waitForClients(t, h, 1)

	h.Unregister(client)
	waitForClients(t, h, 0)

	// Channel was closed on unregister.
	if _, open := <-client.send; open {
		t.Fatalf("expected send channel closed after unregister")
	}

	h.SendToUser(user, []byte("late"))
	time.Sleep(20 * time.Millisecond)
}

func TestSendToUserIgnoresNilTargets(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	// No clients, nil user id: both are no-ops.
	h.SendToUser(uuid.Nil, []byte("x"))
	h.SendToUser(uuid.New(), []byte("y"))
	time.Sleep(20 * time.Millisecond)

	if h.ClientCount() != 0 {
		t.Fatalf("expected no clients, got %d", h.ClientCount())
	}
}
