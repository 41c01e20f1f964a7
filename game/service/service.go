package service

import (
	"context"
	"errors"
	"time"

	"github.com/coopwave/hordelink/game/room"
)

var ErrRoomNotFound = errors.New("room not found")

// RoomService provides read access to live rooms for the REST and MCP
// surfaces.
type RoomService interface {
	ListRooms(ctx context.Context) ([]*RoomInfo, error)
	GetRoom(ctx context.Context, code string) (*RoomInfo, error)
	Stats(ctx context.Context) (*ServerStats, error)
}

// RoomDirectory is what the service needs from the session registry.
type RoomDirectory interface {
	Rooms() []room.Snapshot
	Room(code string) (room.Snapshot, bool)
	Counts() (rooms, players int)
}

// RoomInfo describes one live room.
type RoomInfo struct {
	RoomID      string                 `json:"roomId"`
	HostID      string                 `json:"hostId"`
	PlayerCount int                    `json:"playerCount"`
	Wave        int                    `json:"wave"`
	Seed        int64                  `json:"seed"`
	CreatedAt   time.Time              `json:"createdAt"`
	Players     map[string]room.Player `json:"players"`
	SkillTree   map[string]float64     `json:"skillTree"`
}

// ServerStats summarizes process-wide activity.
type ServerStats struct {
	Rooms   int    `json:"rooms"`
	Players int    `json:"players"`
	Uptime  string `json:"uptime"`
}
