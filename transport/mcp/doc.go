// Package mcp exposes an operator-facing MCP surface for the relay server.
//
// It is a thin proxy: every tool call translates into a request against the
// read-only REST API, so MCP-capable clients can inspect live rooms and
// server health without a second code path into the registry. Gameplay is
// not reachable from here; that traffic stays on the WebSocket transport.
package mcp
