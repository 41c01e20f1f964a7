// Package room defines the Room and Player entities that make up a game
// session.
//
// A Room is an isolated co-op session: up to four players, a skill tree and
// wave counter owned by the room's host, and a seed fixed at creation that
// all clients use to derive identical procedural content.
//
// Rooms are plain data guarded by their owning registry; the package itself
// performs no locking. Snapshot produces deep copies so callers can hand
// state to encoders or other goroutines without aliasing live maps.
package room
