package websocket

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/coopwave/hordelink/logging"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	// Outbound queue capacity per connection.
	sendQueueSize = 256
)

// Client is one WebSocket connection. Its id is assigned at upgrade time and
// doubles as the player identifier inside whichever room it joins.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// trySend enqueues without blocking and reports whether it fit.
func (c *Client) trySend(payload []byte) bool {
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// readPump reads client events and dispatches them to the session handler.
// On exit the connection leaves the hub first, so the player-left broadcast
// from HandleDisconnect reaches only the remaining members.
func (c *Client) readPump() {
	defer func() {
		c.hub.removeClient(c)
		if c.hub.handler != nil {
			c.hub.handler.HandleDisconnect(c.id)
		}
		_ = c.conn.Close()
		logging.Log.Infof("player disconnected: %s", c.id)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Log.Debugf("websocket read %s: %v", c.id, err)
			}
			return
		}
		c.dispatch(payload)
	}
}

// dispatch decodes one envelope and invokes the matching registry operation.
// Malformed or unknown messages are dropped silently: late and garbled
// traffic is expected jitter, not an error.
func (c *Client) dispatch(payload []byte) {
	handler := c.hub.handler
	if handler == nil {
		return
	}

	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		logging.Log.Debugf("bad envelope from %s: %v", c.id, err)
		return
	}

	switch env.Type {
	case MsgCreateRoom:
		var req createRoomRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			return
		}
		handler.CreateRoom(c.id, req.PlayerName)

	case MsgJoinRoom:
		var req joinRoomRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			return
		}
		if err := handler.JoinRoom(c.id, req.RoomID, req.PlayerName); err != nil {
			logging.Log.Debugf("join %s -> %s: %v", c.id, req.RoomID, err)
		}

	case MsgPlayerInput:
		var req playerInputRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			return
		}
		handler.ApplyInput(c.id, req.RoomID, req.X, req.Y, req.HP)

	case MsgPlayerShoot:
		var shot map[string]any
		if err := json.Unmarshal(env.Data, &shot); err != nil {
			return
		}
		roomID, _ := shot["roomId"].(string)
		delete(shot, "roomId")
		handler.RelayShot(c.id, roomID, shot)

	case MsgWaveCleared:
		var req hostActionRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			return
		}
		handler.AdvanceWave(c.id, req.RoomID)

	case MsgSkillChoice:
		var req skillChoiceRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			return
		}
		handler.SetSkill(c.id, req.RoomID, req.Type, req.Value)

	case MsgStartGame:
		var req hostActionRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			return
		}
		handler.StartGame(c.id, req.RoomID)

	default:
		logging.Log.Debugf("unknown message type %q from %s", env.Type, c.id)
	}
}

// writePump writes queued messages to the connection and keeps it alive with
// pings. One writer per connection; the hub only ever touches the queue.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the queue.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
