// Package service exposes read-only room information to the HTTP and MCP
// surfaces.
//
// Gameplay mutation happens exclusively over the WebSocket path; RoomService
// is the observability seam on top of the session registry, defined as an
// interface so the api and mcp packages are testable with mocks.
package service
