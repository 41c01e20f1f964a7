package session

import (
	"errors"
	"sync"

	"github.com/coopwave/hordelink/game/room"
	"github.com/coopwave/hordelink/logging"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room full")
)

// Registry is the process-wide table of live rooms. One mutex guards the
// whole table; operations are short, never block, and never span rooms, so a
// single lock is enough to keep every read-modify-broadcast sequence atomic.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*room.Room
	bus   Broadcaster
	ids   IDSource
}

// NewRegistry creates an empty registry wired to the given transport and ID
// source.
func NewRegistry(bus Broadcaster, ids IDSource) *Registry {
	return &Registry{
		rooms: make(map[string]*room.Room),
		bus:   bus,
		ids:   ids,
	}
}

// CreateRoom creates a room with the caller as host and sole player, joins
// the caller to the room's broadcast group, and acks with the authoritative
// snapshot. Creation never fails; the returned code is for the caller's logs.
func (g *Registry) CreateRoom(connID, playerName string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	code := g.ids.RoomCode()
	r := room.New(code, g.ids.Seed(), connID, playerName)
	g.rooms[code] = r
	g.bus.Join(code, connID)

	snap := r.Snapshot()
	g.bus.SendTo(connID, EventRoomCreated, CreateAck{
		Success:   true,
		RoomID:    code,
		PlayerID:  connID,
		IsHost:    true,
		RoomState: snap,
		Players:   snap.Players,
	})

	logging.Log.Infof("%s hosted room %s (%s)", playerName, code, connID)
	return code
}

// JoinRoom adds the caller to an existing room. Failure is reported only
// through the join-result ack; the returned error mirrors it for logging.
// On success the joiner gets one ack built from post-insertion state and
// everyone else gets exactly one player-joined announcement.
func (g *Registry) JoinRoom(connID, code, playerName string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.rooms[code]
	if !ok {
		g.bus.SendTo(connID, EventJoinResult, JoinAck{Success: false, Error: ErrRoomNotFound.Error()})
		return ErrRoomNotFound
	}
	if r.Full() {
		g.bus.SendTo(connID, EventJoinResult, JoinAck{Success: false, Error: ErrRoomFull.Error()})
		return ErrRoomFull
	}

	p, err := r.AddPlayer(connID, playerName)
	if err != nil {
		g.bus.SendTo(connID, EventJoinResult, JoinAck{Success: false, Error: err.Error()})
		return err
	}
	g.bus.Join(code, connID)

	snap := r.Snapshot()
	g.bus.SendTo(connID, EventJoinResult, JoinAck{
		Success:   true,
		RoomID:    code,
		PlayerID:  connID,
		RoomState: &snap,
		Players:   snap.Players,
	})
	g.bus.BroadcastExcept(code, connID, EventPlayerJoined, PlayerJoined{ID: connID, State: *p})

	logging.Log.Infof("%s (%s) joined room %s", playerName, connID, code)
	return nil
}

// ApplyInput overwrites the caller's authoritative position, and health when
// the input carried it, then relays the update to everyone else in the room.
// Input for a room the caller is not in is the normal post-disconnect race
// and is silently dropped.
func (g *Registry) ApplyInput(connID, code string, x, y float64, hp *float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.rooms[code]
	if !ok {
		return
	}
	p, ok := r.Player(connID)
	if !ok {
		return
	}

	p.X = x
	p.Y = y
	if hp != nil {
		p.HP = *hp
	}

	g.bus.BroadcastExcept(code, connID, EventPlayerUpdate, PlayerUpdate{ID: connID, X: x, Y: y, HP: hp})
}

// RelayShot forwards fire-and-forget shot data to the entire room, caller
// included. The payload is opaque pass-through; only the caller identifier is
// stamped on. Room existence and membership are deliberately not checked.
func (g *Registry) RelayShot(connID, code string, shot map[string]any) {
	if code == "" {
		return
	}

	merged := make(map[string]any, len(shot)+1)
	for k, v := range shot {
		merged[k] = v
	}
	merged["id"] = connID

	g.mu.Lock()
	defer g.mu.Unlock()
	g.bus.Broadcast(code, EventPlayerShoot, merged)
}

// AdvanceWave increments the wave counter and tells every client, host
// included, to generate the next wave from the room's fixed seed. Host only.
func (g *Registry) AdvanceWave(connID, code string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.rooms[code]
	if !ok || r.HostID != connID {
		return
	}

	r.Wave++
	g.bus.Broadcast(code, EventNextWave, WaveUpdate{Wave: r.Wave, Seed: r.Seed})
	logging.Log.Debugf("room %s advanced to wave %d", code, r.Wave)
}

// SetSkill sets one skill level (creating the key if new) and broadcasts the
// full updated tree to the room. Host only.
func (g *Registry) SetSkill(connID, code, skill string, value float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.rooms[code]
	if !ok || r.HostID != connID {
		return
	}

	r.SkillTree[skill] = value
	snap := r.Snapshot()
	g.bus.Broadcast(code, EventSkillTreeUpdate, snap.SkillTree)
}

// StartGame broadcasts the game-starting signal to the room. Host only.
func (g *Registry) StartGame(connID, code string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.rooms[code]
	if !ok || r.HostID != connID {
		return
	}

	g.bus.Broadcast(code, EventGameStarting, nil)
	logging.Log.Infof("room %s starting game", code)
}

// HandleDisconnect removes the connection from every room that contains it,
// announces the departure to the remaining members, and deletes any room
// whose last player just left. Best-effort cleanup: it never fails visibly.
// A connection belongs to at most one room in practice, but the scan is
// defensive.
func (g *Registry) HandleDisconnect(connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for code, r := range g.rooms {
		if !r.RemovePlayer(connID) {
			continue
		}
		g.bus.Broadcast(code, EventPlayerLeft, PlayerLeft{ID: connID})
		logging.Log.Infof("player %s left room %s", connID, code)
		if r.Empty() {
			delete(g.rooms, code)
			logging.Log.Infof("room %s removed (empty)", code)
		}
	}
}

// Rooms returns deep snapshots of every live room.
func (g *Registry) Rooms() []room.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]room.Snapshot, 0, len(g.rooms))
	for _, r := range g.rooms {
		out = append(out, r.Snapshot())
	}
	return out
}

// Room returns a deep snapshot of one room.
func (g *Registry) Room(code string) (room.Snapshot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.rooms[code]
	if !ok {
		return room.Snapshot{}, false
	}
	return r.Snapshot(), true
}

// Counts returns the number of live rooms and connected players.
func (g *Registry) Counts() (rooms, players int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	rooms = len(g.rooms)
	for _, r := range g.rooms {
		players += len(r.Players)
	}
	return rooms, players
}
