// Package websocket provides the WebSocket transport for the relay server.
//
// The package uses a hub-and-spoke model: a central Hub tracks every live
// connection and the broadcast group (room) it belongs to. Each connection is
// served by a Client with dedicated read and write goroutines.
//
// Message protocol:
//
// Messages are JSON envelopes {"type": ..., "data": {...}} in both
// directions. Inbound types map one-to-one onto session registry operations
// (create-room, join-room, player-input, player-shoot, wave-cleared,
// skill-tree-choice, start-game); outbound types are the registry's acks and
// broadcasts. Malformed inbound messages are dropped without a reply.
//
// The Hub implements session.Broadcaster, so the registry addresses
// connections purely through group-membership and delivery primitives and
// never touches a socket. Connection identifiers are server-assigned UUIDs;
// they double as player identifiers for the room a connection joins.
//
// Usage:
//
//	hub := websocket.NewHub()
//	registry := session.NewRegistry(hub, session.NewIDSource())
//	hub.SetHandler(registry)
//	http.HandleFunc("/ws", hub.ServeWS)
package websocket
