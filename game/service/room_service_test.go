package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coopwave/hordelink/game/room"
)

// fakeDirectory is a canned RoomDirectory.
type fakeDirectory struct {
	snaps map[string]room.Snapshot
}

func (d *fakeDirectory) Rooms() []room.Snapshot {
	out := make([]room.Snapshot, 0, len(d.snaps))
	for _, s := range d.snaps {
		out = append(out, s)
	}
	return out
}

func (d *fakeDirectory) Room(code string) (room.Snapshot, bool) {
	s, ok := d.snaps[code]
	return s, ok
}

func (d *fakeDirectory) Counts() (int, int) {
	players := 0
	for _, s := range d.snaps {
		players += len(s.Players)
	}
	return len(d.snaps), players
}

func testSnapshot(code string, playerCount int) room.Snapshot {
	players := make(map[string]room.Player, playerCount)
	for i := 0; i < playerCount; i++ {
		id := string(rune('a' + i))
		players[id] = room.Player{ID: id, Name: "P" + id, HP: 100, IsHost: i == 0}
	}
	return room.Snapshot{
		RoomID:    code,
		HostID:    "a",
		Players:   players,
		SkillTree: map[string]float64{"damage": 1},
		Wave:      3,
		Seed:      777,
		CreatedAt: time.Now(),
	}
}

func TestListRooms(t *testing.T) {
	dir := &fakeDirectory{snaps: map[string]room.Snapshot{
		"AAA111": testSnapshot("AAA111", 2),
		"BBB222": testSnapshot("BBB222", 4),
	}}
	svc := NewRoomService(dir)

	rooms, err := svc.ListRooms(context.Background())
	if err != nil {
		t.Fatalf("ListRooms failed: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}

	byCode := map[string]*RoomInfo{}
	for _, r := range rooms {
		byCode[r.RoomID] = r
	}
	if byCode["AAA111"].PlayerCount != 2 || byCode["BBB222"].PlayerCount != 4 {
		t.Errorf("unexpected player counts: %+v", byCode)
	}
	if byCode["AAA111"].Wave != 3 || byCode["AAA111"].Seed != 777 {
		t.Errorf("unexpected room info: %+v", byCode["AAA111"])
	}
}

func TestGetRoom(t *testing.T) {
	dir := &fakeDirectory{snaps: map[string]room.Snapshot{
		"AAA111": testSnapshot("AAA111", 1),
	}}
	svc := NewRoomService(dir)

	info, err := svc.GetRoom(context.Background(), "AAA111")
	if err != nil {
		t.Fatalf("GetRoom failed: %v", err)
	}
	if info.RoomID != "AAA111" || info.HostID != "a" || len(info.Players) != 1 {
		t.Errorf("unexpected info: %+v", info)
	}

	if _, err := svc.GetRoom(context.Background(), "NOPE99"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestStats(t *testing.T) {
	dir := &fakeDirectory{snaps: map[string]room.Snapshot{
		"AAA111": testSnapshot("AAA111", 2),
		"BBB222": testSnapshot("BBB222", 3),
	}}
	svc := NewRoomService(dir)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Rooms != 2 || stats.Players != 5 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.Uptime == "" {
		t.Error("uptime should be populated")
	}
}
