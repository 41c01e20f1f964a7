package service

import (
	"context"
	"time"

	"github.com/coopwave/hordelink/game/room"
)

// roomServiceImpl implements RoomService over the session registry.
type roomServiceImpl struct {
	directory RoomDirectory
	startedAt time.Time
}

// NewRoomService creates a RoomService backed by the given directory.
func NewRoomService(directory RoomDirectory) RoomService {
	return &roomServiceImpl{
		directory: directory,
		startedAt: time.Now(),
	}
}

func (s *roomServiceImpl) ListRooms(ctx context.Context) ([]*RoomInfo, error) {
	snaps := s.directory.Rooms()
	out := make([]*RoomInfo, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, infoFromSnapshot(snap))
	}
	return out, nil
}

func (s *roomServiceImpl) GetRoom(ctx context.Context, code string) (*RoomInfo, error) {
	snap, ok := s.directory.Room(code)
	if !ok {
		return nil, ErrRoomNotFound
	}
	return infoFromSnapshot(snap), nil
}

func (s *roomServiceImpl) Stats(ctx context.Context) (*ServerStats, error) {
	rooms, players := s.directory.Counts()
	return &ServerStats{
		Rooms:   rooms,
		Players: players,
		Uptime:  time.Since(s.startedAt).Round(time.Second).String(),
	}, nil
}

func infoFromSnapshot(snap room.Snapshot) *RoomInfo {
	return &RoomInfo{
		RoomID:      snap.RoomID,
		HostID:      snap.HostID,
		PlayerCount: len(snap.Players),
		Wave:        snap.Wave,
		Seed:        snap.Seed,
		CreatedAt:   snap.CreatedAt,
		Players:     snap.Players,
		SkillTree:   snap.SkillTree,
	}
}
