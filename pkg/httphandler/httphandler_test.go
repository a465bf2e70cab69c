package httphandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	httphandler "github.com/mutablelogic/go-scopey/pkg/httphandler"
	mcp "github.com/mutablelogic/go-scopey/pkg/mcp"
	tool "github.com/mutablelogic/go-scopey/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// MOCK TOOL

type mockTool struct {
	name        string
	description string
	schema      *jsonschema.Schema
	err         error
}

func (t *mockTool) Name() string                        { return t.name }
func (t *mockTool) Description() string                 { return t.description }
func (t *mockTool) Schema() (*jsonschema.Schema, error) { return t.schema, nil }
func (t *mockTool) Run(_ context.Context, input json.RawMessage) (any, error) {
	if t.err != nil {
		return nil, t.err
	}
	var args map[string]any
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, err
	}
	return map[string]any{"echo": args}, nil
}

var errBoom = errors.New("boom")

///////////////////////////////////////////////////////////////////////////////
// HELPERS

func newTestDispatcher(t *testing.T, tools ...tool.Tool) *tool.Dispatcher {
	t.Helper()
	tk, err := tool.NewToolkit(tools)
	if err != nil {
		t.Fatal(err)
	}
	dispatcher, err := tool.NewDispatcher(tk)
	if err != nil {
		t.Fatal(err)
	}
	return dispatcher
}

func serveMux(t *testing.T, dispatcher *tool.Dispatcher) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	path, handler, _ := httphandler.ToolListHandler(dispatcher)
	mux.HandleFunc(path, handler)
	path, handler, _ = httphandler.ToolHandler(dispatcher)
	mux.HandleFunc(path, handler)

	server, err := mcp.New("scopey", "v0.0.1", dispatcher)
	if err != nil {
		t.Fatal(err)
	}
	path, handler, _, err = httphandler.MCPHandler(server)
	if err != nil {
		t.Fatal(err)
	}
	mux.HandleFunc(path, handler)
	return mux
}
