package websocket

import (
	"encoding/json"
	"testing"
)

type testEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func newTestClient(hub *Hub, id string) *Client {
	c := &Client{id: id, hub: hub, send: make(chan []byte, 16)}
	hub.addClient(c)
	return c
}

func decodeQueued(t *testing.T, c *Client) testEnvelope {
	t.Helper()
	select {
	case payload := <-c.send:
		var env testEnvelope
		if err := json.Unmarshal(payload, &env); err != nil {
			t.Fatalf("queued payload is not an envelope: %v", err)
		}
		return env
	default:
		t.Fatalf("client %s has no queued message", c.id)
		return testEnvelope{}
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub.clients == nil || hub.groups == nil {
		t.Fatal("hub maps not initialized")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("new hub should have no clients, got %d", hub.ClientCount())
	}
}

func TestJoinGroup(t *testing.T) {
	hub := NewHub()
	newTestClient(hub, "c1")
	newTestClient(hub, "c2")

	hub.Join("ROOM01", "c1")
	hub.Join("ROOM01", "c2")
	if hub.GroupSize("ROOM01") != 2 {
		t.Errorf("expected group size 2, got %d", hub.GroupSize("ROOM01"))
	}

	// Joining an unknown connection is ignored.
	hub.Join("ROOM01", "ghost")
	if hub.GroupSize("ROOM01") != 2 {
		t.Errorf("unknown connection must not join a group, size %d", hub.GroupSize("ROOM01"))
	}
}

func TestSendTo(t *testing.T) {
	hub := NewHub()
	c1 := newTestClient(hub, "c1")
	c2 := newTestClient(hub, "c2")

	hub.SendTo("c1", "room-created", map[string]string{"roomId": "ROOM01"})

	env := decodeQueued(t, c1)
	if env.Type != "room-created" {
		t.Errorf("unexpected event type %q", env.Type)
	}
	var data map[string]string
	if err := json.Unmarshal(env.Data, &data); err != nil || data["roomId"] != "ROOM01" {
		t.Errorf("unexpected event data: %s", env.Data)
	}

	if len(c2.send) != 0 {
		t.Error("SendTo must not reach other clients")
	}
}

func TestBroadcastAndExcept(t *testing.T) {
	hub := NewHub()
	c1 := newTestClient(hub, "c1")
	c2 := newTestClient(hub, "c2")
	c3 := newTestClient(hub, "c3")
	outsider := newTestClient(hub, "c4")

	hub.Join("ROOM01", "c1")
	hub.Join("ROOM01", "c2")
	hub.Join("ROOM01", "c3")

	hub.Broadcast("ROOM01", "game-starting", nil)
	for _, c := range []*Client{c1, c2, c3} {
		if env := decodeQueued(t, c); env.Type != "game-starting" {
			t.Errorf("client %s got %q", c.id, env.Type)
		}
	}
	if len(outsider.send) != 0 {
		t.Error("broadcast must not leak outside the group")
	}

	hub.BroadcastExcept("ROOM01", "c2", "player-joined", map[string]string{"id": "c2"})
	if len(c1.send) != 1 || len(c3.send) != 1 {
		t.Error("other members should receive the announcement")
	}
	if len(c2.send) != 0 {
		t.Error("excluded client must not receive its own announcement")
	}
}

func TestBroadcastToUnknownGroup(t *testing.T) {
	hub := NewHub()
	c1 := newTestClient(hub, "c1")

	// Shooting into a nonexistent room broadcasts to nobody, by design.
	hub.Broadcast("GHOST1", "player-shoot", map[string]any{"id": "c1"})
	if len(c1.send) != 0 {
		t.Error("unknown group broadcast must reach nobody")
	}
}

func TestRemoveClient(t *testing.T) {
	hub := NewHub()
	c1 := newTestClient(hub, "c1")
	newTestClient(hub, "c2")
	hub.Join("ROOM01", "c1")
	hub.Join("ROOM01", "c2")

	if !hub.removeClient(c1) {
		t.Fatal("removing a live client should report true")
	}
	if hub.removeClient(c1) {
		t.Fatal("second removal must be a no-op")
	}

	if hub.ClientCount() != 1 {
		t.Errorf("expected 1 client left, got %d", hub.ClientCount())
	}
	if hub.GroupSize("ROOM01") != 1 {
		t.Errorf("removed client must leave its group, size %d", hub.GroupSize("ROOM01"))
	}

	if _, open := <-c1.send; open {
		t.Error("removed client's send queue must be closed")
	}
}

func TestRemoveLastClientDropsGroup(t *testing.T) {
	hub := NewHub()
	c1 := newTestClient(hub, "c1")
	hub.Join("ROOM01", "c1")

	hub.removeClient(c1)

	hub.mu.RLock()
	_, exists := hub.groups["ROOM01"]
	hub.mu.RUnlock()
	if exists {
		t.Error("empty group must be deleted")
	}
}
