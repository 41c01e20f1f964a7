package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestNewClient(t *testing.T) {
	c := NewClient("http://localhost:8080")

	if c.baseURL != "http://localhost:8080" {
		t.Errorf("unexpected base URL: %s", c.baseURL)
	}
	if c.httpClient == nil {
		t.Error("http client not initialized")
	}
	if c.GetMCPServer() == nil {
		t.Error("MCP server not initialized")
	}
}

// fakeAPI stands in for the REST surface the MCP tools proxy to.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/rooms", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"roomId":"AAA111","hostId":"conn-a","playerCount":2,"wave":3,"seed":777,"createdAt":"2026-08-31T10:00:00Z"}
		]`))
	})
	mux.HandleFunc("GET /api/rooms/AAA111", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"roomId":"AAA111","hostId":"conn-a","playerCount":2,"wave":3,"seed":777,
			"players":{
				"conn-a":{"id":"conn-a","name":"Alice","x":1,"y":2,"hp":100,"isHost":true},
				"conn-b":{"id":"conn-b","name":"Bob","x":3,"y":4,"hp":80,"isHost":false}
			},
			"skillTree":{"damage":2,"fireRate":1,"speed":1},
			"createdAt":"2026-08-31T10:00:00Z"
		}`))
	})
	mux.HandleFunc("GET /api/rooms/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"room not found"}`))
	})
	mux.HandleFunc("GET /api/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"rooms":1,"players":2,"uptime":"5m0s"}`))
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hordelink Co-op Server Running"))
	})
	return httptest.NewServer(mux)
}

func textResult(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return tc.Text
}

func TestHandleListRooms(t *testing.T) {
	ts := fakeAPI(t)
	defer ts.Close()
	c := NewClient(ts.URL)

	result, err := c.handleListRooms(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	text := textResult(t, result)
	if !strings.Contains(text, "AAA111") || !strings.Contains(text, "2/4 players") {
		t.Errorf("unexpected output: %s", text)
	}
	if !strings.Contains(text, "wave 3") {
		t.Errorf("wave missing from output: %s", text)
	}
}

func TestHandleGetRoom(t *testing.T) {
	ts := fakeAPI(t)
	defer ts.Close()
	c := NewClient(ts.URL)

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{"room_id": "AAA111"}

	result, err := c.handleGetRoom(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	text := textResult(t, result)
	for _, want := range []string{"Room AAA111", "seed 777", "Alice [host]", "Bob", "damage: 2.0"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q: %s", want, text)
		}
	}
}

func TestHandleGetRoomNotFound(t *testing.T) {
	ts := fakeAPI(t)
	defer ts.Close()
	c := NewClient(ts.URL)

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{"room_id": "NOPE99"}

	result, err := c.handleGetRoom(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !result.IsError {
		t.Fatal("missing room should produce a tool error")
	}
	if text := textResult(t, result); !strings.Contains(text, "room not found") {
		t.Errorf("unexpected error text: %s", text)
	}
}

func TestHandleServerStats(t *testing.T) {
	ts := fakeAPI(t)
	defer ts.Close()
	c := NewClient(ts.URL)

	result, err := c.handleServerStats(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	text := textResult(t, result)
	if !strings.Contains(text, "Rooms: 1") || !strings.Contains(text, "Players: 2") || !strings.Contains(text, "Uptime: 5m0s") {
		t.Errorf("unexpected stats output: %s", text)
	}
}

func TestHandleHealth(t *testing.T) {
	ts := fakeAPI(t)
	defer ts.Close()
	c := NewClient(ts.URL)

	result, err := c.handleHealth(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if text := textResult(t, result); text != "Hordelink Co-op Server Running" {
		t.Errorf("unexpected health output: %s", text)
	}
}

func TestAPICallErrorPropagation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"registry unavailable"}`))
	}))
	defer ts.Close()
	c := NewClient(ts.URL)

	err := c.apiCall("GET", "/api/rooms", nil, &[]struct{}{})
	if err == nil || !strings.Contains(err.Error(), "registry unavailable") {
		t.Errorf("expected server error message, got %v", err)
	}
}
