package room

import (
	"errors"
	"time"
)

// MaxPlayers is the hard cap on simultaneous players in a room.
const MaxPlayers = 4

var (
	ErrRoomFull      = errors.New("room is full")
	ErrAlreadyJoined = errors.New("player already in room")
)

// Player is the server-held authoritative state for one connection in a room.
// Position and health are populated from client-reported input but treated as
// the source of truth for everyone else.
type Player struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	HP     float64 `json:"hp"`
	IsHost bool    `json:"isHost"`
}

// Room is a single co-op session. HostID never changes for the room's
// lifetime; if the host disconnects the room simply becomes hostless.
type Room struct {
	Code      string
	HostID    string
	Players   map[string]*Player
	SkillTree map[string]float64
	Wave      int
	Seed      int64
	CreatedAt time.Time
}

// Snapshot is a deep copy of a room's state, safe to encode or retain after
// the registry lock is released.
type Snapshot struct {
	RoomID    string             `json:"roomId"`
	HostID    string             `json:"hostId"`
	Players   map[string]Player  `json:"players"`
	SkillTree map[string]float64 `json:"skillTree"`
	Wave      int                `json:"wave"`
	Seed      int64              `json:"seed"`
	CreatedAt time.Time          `json:"createdAt"`
}

// New creates a room with hostID as the sole player and host.
func New(code string, seed int64, hostID, hostName string) *Room {
	r := &Room{
		Code:    code,
		HostID:  hostID,
		Players: make(map[string]*Player),
		SkillTree: map[string]float64{
			"damage":   1,
			"fireRate": 1,
			"speed":    1,
		},
		Wave:      1,
		Seed:      seed,
		CreatedAt: time.Now(),
	}
	r.Players[hostID] = &Player{
		ID:     hostID,
		Name:   hostName,
		HP:     100,
		IsHost: true,
	}
	return r
}

// AddPlayer adds a non-host player with starting position and health.
func (r *Room) AddPlayer(id, name string) (*Player, error) {
	if len(r.Players) >= MaxPlayers {
		return nil, ErrRoomFull
	}
	if _, ok := r.Players[id]; ok {
		return nil, ErrAlreadyJoined
	}
	p := &Player{
		ID:   id,
		Name: name,
		HP:   100,
	}
	r.Players[id] = p
	return p, nil
}

// RemovePlayer deletes the player and reports whether it was present.
func (r *Room) RemovePlayer(id string) bool {
	if _, ok := r.Players[id]; !ok {
		return false
	}
	delete(r.Players, id)
	return true
}

// Player returns the player for the given connection ID, if present.
func (r *Room) Player(id string) (*Player, bool) {
	p, ok := r.Players[id]
	return p, ok
}

// Full reports whether the room is at capacity.
func (r *Room) Full() bool {
	return len(r.Players) >= MaxPlayers
}

// Empty reports whether the room has no players left.
func (r *Room) Empty() bool {
	return len(r.Players) == 0
}

// Snapshot deep-copies the room state.
func (r *Room) Snapshot() Snapshot {
	players := make(map[string]Player, len(r.Players))
	for id, p := range r.Players {
		players[id] = *p
	}
	skills := make(map[string]float64, len(r.SkillTree))
	for k, v := range r.SkillTree {
		skills[k] = v
	}
	return Snapshot{
		RoomID:    r.Code,
		HostID:    r.HostID,
		Players:   players,
		SkillTree: skills,
		Wave:      r.Wave,
		Seed:      r.Seed,
		CreatedAt: r.CreatedAt,
	}
}
