package websocket

import "encoding/json"

// Inbound message types, one per registry operation.
const (
	MsgCreateRoom  = "create-room"
	MsgJoinRoom    = "join-room"
	MsgPlayerInput = "player-input"
	MsgPlayerShoot = "player-shoot"
	MsgWaveCleared = "wave-cleared"
	MsgSkillChoice = "skill-tree-choice"
	MsgStartGame   = "start-game"
)

// Envelope is the wire format for inbound messages.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// outEnvelope is the wire format for outbound messages.
type outEnvelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type createRoomRequest struct {
	PlayerName string `json:"playerName"`
}

type joinRoomRequest struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

// playerInputRequest carries a partial state update. HP stays nil when the
// client did not include it, which leaves the stored value untouched.
type playerInputRequest struct {
	RoomID string   `json:"roomId"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	HP     *float64 `json:"hp,omitempty"`
}

type hostActionRequest struct {
	RoomID string `json:"roomId"`
}

type skillChoiceRequest struct {
	RoomID string  `json:"roomId"`
	Type   string  `json:"type"`
	Value  float64 `json:"value"`
}

func encodeEvent(event string, data any) ([]byte, error) {
	return json.Marshal(outEnvelope{Type: event, Data: data})
}
