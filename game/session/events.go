package session

import "github.com/coopwave/hordelink/game/room"

// Outbound event names. Acks go to a single connection; the rest are room
// broadcasts.
const (
	EventRoomCreated     = "room-created"
	EventJoinResult      = "join-result"
	EventPlayerJoined    = "player-joined"
	EventPlayerUpdate    = "player-update"
	EventPlayerShoot     = "player-shoot"
	EventNextWave        = "next-wave"
	EventSkillTreeUpdate = "skill-tree-update"
	EventGameStarting    = "game-starting"
	EventPlayerLeft      = "player-left"
)

// CreateAck is the direct response to a create-room request. The creating
// client renders its own lobby from RoomState without a second round trip.
type CreateAck struct {
	Success   bool                   `json:"success"`
	RoomID    string                 `json:"roomId"`
	PlayerID  string                 `json:"playerId"`
	IsHost    bool                   `json:"isHost"`
	RoomState room.Snapshot          `json:"roomState"`
	Players   map[string]room.Player `json:"players"`
}

// JoinAck is the direct response to a join-room request. On success it is
// built from post-insertion state, so it already contains the joiner itself.
type JoinAck struct {
	Success   bool                   `json:"success"`
	RoomID    string                 `json:"roomId,omitempty"`
	PlayerID  string                 `json:"playerId,omitempty"`
	RoomState *room.Snapshot         `json:"roomState,omitempty"`
	Players   map[string]room.Player `json:"players,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// PlayerJoined announces a newcomer to everyone already in the room.
type PlayerJoined struct {
	ID    string      `json:"id"`
	State room.Player `json:"state"`
}

// PlayerUpdate carries a position/health change. HP is present only when the
// originating input carried it.
type PlayerUpdate struct {
	ID string   `json:"id"`
	X  float64  `json:"x"`
	Y  float64  `json:"y"`
	HP *float64 `json:"hp,omitempty"`
}

// WaveUpdate tells every client to regenerate the next wave deterministically
// from the room's fixed seed.
type WaveUpdate struct {
	Wave int   `json:"wave"`
	Seed int64 `json:"seed"`
}

// PlayerLeft carries only the departed connection's identifier.
type PlayerLeft struct {
	ID string `json:"id"`
}
