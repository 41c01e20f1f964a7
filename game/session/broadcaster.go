package session

// Broadcaster is the transport capability the registry drives. The registry
// only ever needs group membership plus three delivery primitives: unicast,
// room-wide broadcast, and room-wide broadcast excluding one connection.
type Broadcaster interface {
	// Join adds a connection to a room's broadcast group.
	Join(roomID, connID string)
	// SendTo delivers an event directly to one connection.
	SendTo(connID, event string, data any)
	// Broadcast delivers an event to every member of a room's group.
	Broadcast(roomID, event string, data any)
	// BroadcastExcept delivers an event to every member except one connection.
	BroadcastExcept(roomID, exceptID, event string, data any)
}
