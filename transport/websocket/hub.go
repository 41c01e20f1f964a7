package websocket

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/coopwave/hordelink/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Game clients connect from arbitrary origins; the protocol carries
		// no credentials.
		return true
	},
}

// SessionHandler receives decoded client events. Implemented by the session
// registry.
type SessionHandler interface {
	CreateRoom(connID, playerName string) string
	JoinRoom(connID, roomID, playerName string) error
	ApplyInput(connID, roomID string, x, y float64, hp *float64)
	RelayShot(connID, roomID string, shot map[string]any)
	AdvanceWave(connID, roomID string)
	SetSkill(connID, roomID, skill string, value float64)
	StartGame(connID, roomID string)
	HandleDisconnect(connID string)
}

// Hub maintains the set of active connections and their broadcast groups.
// It implements session.Broadcaster.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	groups  map[string]map[string]*Client
	handler SessionHandler
}

// NewHub creates an empty hub. SetHandler must be called before serving.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		groups:  make(map[string]map[string]*Client),
	}
}

// SetHandler wires the session handler. Separate from NewHub because the
// registry needs the hub as its Broadcaster before it can exist itself.
func (h *Hub) SetHandler(handler SessionHandler) {
	h.handler = handler
}

// ServeWS upgrades the request and starts serving the connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Log.Warnf("websocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		id:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendQueueSize),
	}
	h.addClient(client)
	logging.Log.Infof("player connected: %s", client.id)

	go client.writePump()
	go client.readPump()
}

// Join adds a connection to a room's broadcast group. Unknown connections are
// ignored: the socket already died and its cleanup is in flight.
func (h *Hub) Join(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok {
		return
	}
	if h.groups[roomID] == nil {
		h.groups[roomID] = make(map[string]*Client)
	}
	h.groups[roomID][connID] = c
}

// SendTo delivers an event directly to one connection.
func (h *Hub) SendTo(connID, event string, data any) {
	payload, err := encodeEvent(event, data)
	if err != nil {
		logging.Log.Errorf("encode %s: %v", event, err)
		return
	}

	// trySend runs under the read lock: a send queue is only ever closed by
	// removeClient, which holds the write lock.
	h.mu.RLock()
	c, ok := h.clients[connID]
	sent := ok && c.trySend(payload)
	h.mu.RUnlock()

	if ok && !sent {
		h.dropClient(c)
	}
}

// Broadcast delivers an event to every member of a room's group.
func (h *Hub) Broadcast(roomID, event string, data any) {
	h.broadcast(roomID, "", event, data)
}

// BroadcastExcept delivers an event to every group member except one
// connection, so a client never hears its own announcement.
func (h *Hub) BroadcastExcept(roomID, exceptID, event string, data any) {
	h.broadcast(roomID, exceptID, event, data)
}

func (h *Hub) broadcast(roomID, exceptID, event string, data any) {
	payload, err := encodeEvent(event, data)
	if err != nil {
		logging.Log.Errorf("encode %s: %v", event, err)
		return
	}

	var slow []*Client
	h.mu.RLock()
	for id, c := range h.groups[roomID] {
		if id == exceptID {
			continue
		}
		if !c.trySend(payload) {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	// A full send queue means the client stopped reading; cut it loose
	// rather than stall the room.
	for _, c := range slow {
		h.dropClient(c)
	}
}

// ClientCount returns the number of live connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// GroupSize returns the number of connections in a room's group.
func (h *Hub) GroupSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[roomID])
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

// removeClient detaches the connection from the hub and every group and
// closes its send queue. Returns false if the client was already removed,
// making cleanup idempotent between dropClient and readPump teardown.
func (h *Hub) removeClient(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[c.id] != c {
		return false
	}
	delete(h.clients, c.id)
	for roomID, group := range h.groups {
		if group[c.id] == c {
			delete(group, c.id)
			if len(group) == 0 {
				delete(h.groups, roomID)
			}
		}
	}
	close(c.send)
	return true
}

// dropClient force-disconnects a client. Closing the connection wakes its
// readPump, which then runs the normal disconnect path.
func (h *Hub) dropClient(c *Client) {
	if h.removeClient(c) {
		logging.Log.Warnf("dropping slow client %s", c.id)
		_ = c.conn.Close()
	}
}
