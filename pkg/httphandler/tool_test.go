package httphandler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	// Packages
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	schema "github.com/mutablelogic/go-scopey/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TOOL LIST TESTS

func TestToolList_OK(t *testing.T) {
	mux := serveMux(t, newTestDispatcher(t,
		&mockTool{name: "tool_beta", description: "Beta tool"},
		&mockTool{name: "tool_alpha", description: "Alpha tool"},
	))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/tool", nil)
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp schema.ListToolsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(resp.Tools))
	}
	// Registration order
	if resp.Tools[0].Name != "tool_beta" {
		t.Fatalf("expected first tool=tool_beta, got %q", resp.Tools[0].Name)
	}
	if string(resp.Tools[1].InputSchema) == "" {
		t.Fatal("expected an input schema")
	}
}

func TestToolList_MethodNotAllowed(t *testing.T) {
	mux := serveMux(t, newTestDispatcher(t))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/tool", nil)
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

///////////////////////////////////////////////////////////////////////////////
// TOOL GET TESTS

func TestToolGet_OK(t *testing.T) {
	mux := serveMux(t, newTestDispatcher(t,
		&mockTool{name: "my_tool", description: "A test tool"},
	))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/tool/my_tool", nil)
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var meta schema.ToolMeta
	if err := json.NewDecoder(w.Body).Decode(&meta); err != nil {
		t.Fatal(err)
	}
	if meta.Name != "my_tool" {
		t.Fatalf("expected name=my_tool, got %q", meta.Name)
	}
	if meta.Description != "A test tool" {
		t.Fatalf("expected description='A test tool', got %q", meta.Description)
	}
}

func TestToolGet_NotFound(t *testing.T) {
	mux := serveMux(t, newTestDispatcher(t))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/tool/nonexistent", nil)
	mux.ServeHTTP(w, r)

	// scopey.ErrNotFound maps to 404 via httpErr
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

///////////////////////////////////////////////////////////////////////////////
// TOOL CALL TESTS

func TestToolCall_OK(t *testing.T) {
	mux := serveMux(t, newTestDispatcher(t,
		&mockTool{name: "echo", description: "Echo arguments"},
	))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/tool/echo", strings.NewReader(`{"city":"Paris"}`))
	r.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp schema.CallToolResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.IsError {
		t.Fatalf("unexpected error envelope: %q", resp.Text())
	}
	var result struct {
		Echo map[string]string `json:"echo"`
	}
	if err := resp.Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Echo["city"] != "Paris" {
		t.Fatalf("expected city=Paris, got %v", result.Echo)
	}
}

func TestToolCall_Failure(t *testing.T) {
	mux := serveMux(t, newTestDispatcher(t,
		&mockTool{name: "broken", description: "Always fails", err: errBoom},
	))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/tool/broken", nil)
	mux.ServeHTTP(w, r)

	// Handler failures are reported in the envelope, not as an HTTP error
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp schema.CallToolResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.IsError {
		t.Fatal("expected isError=true")
	}
	if resp.Text() != `{"error":"boom"}` {
		t.Fatalf("unexpected envelope text %q", resp.Text())
	}
}

func TestToolCall_NotFound(t *testing.T) {
	mux := serveMux(t, newTestDispatcher(t))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/tool/missing", nil)
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

///////////////////////////////////////////////////////////////////////////////
// MCP TESTS

func TestMCP_CallTool(t *testing.T) {
	ts := httptest.NewServer(serveMux(t, newTestDispatcher(t,
		&mockTool{name: "echo", description: "Echo arguments"},
	)))
	defer ts.Close()

	ctx := context.Background()
	client := sdk.NewClient(&sdk.Implementation{Name: "test", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, &sdk.StreamableClientTransport{Endpoint: ts.URL + "/mcp"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &sdk.CallToolParams{Name: "echo", Arguments: map[string]any{"n": 1}})
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatal("unexpected error result")
	}
	if len(result.Content) != 1 {
		t.Fatalf("expected 1 content block, got %d", len(result.Content))
	}
}
