// Package api implements the HTTP surface of the relay server: the liveness
// check, a read-only REST view of live rooms, and the /ws mount for the
// WebSocket transport. All gameplay traffic flows over WebSocket; the REST
// routes exist for monitoring and tooling.
package api
