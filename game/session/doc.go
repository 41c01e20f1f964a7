// Package session implements the session registry, the authoritative core of
// the relay server.
//
// The Registry owns every live Room and processes all inbound session events:
// room creation, joins, player input, shot relaying, host-only progression
// actions, and disconnect cleanup. Each operation runs to completion under a
// single registry mutex, which reproduces the sequential event processing the
// protocol relies on: no two operations ever interleave their mutations of
// the same room.
//
// The registry produces its outputs exclusively through the injected
// Broadcaster (direct acks, room-wide broadcasts, and broadcasts excluding
// the acting connection) and draws room codes and seeds from the injected
// IDSource, so the whole protocol is testable without a live transport.
//
// Error policy is deliberately shallow: joining a missing or full room is
// reported through the join ack, and every other invalid or late-arriving
// event is a silent no-op. Stale input after a disconnect is normal network
// jitter, not an error.
package session
