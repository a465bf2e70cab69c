package tool_test

import (
	"context"
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
)

// stubTool is a tool with a fixed schema and a configurable handler
type stubTool struct {
	name        string
	description string
	schema      *jsonschema.Schema
	schemaErr   error
	run         func(context.Context, json.RawMessage) (any, error)
}

func newStub(name string, fn func(context.Context, json.RawMessage) (any, error)) *stubTool {
	return &stubTool{name: name, description: "stub tool " + name, run: fn}
}

func (s *stubTool) Name() string        { return s.name }
func (s *stubTool) Description() string { return s.description }
func (s *stubTool) Schema() (*jsonschema.Schema, error) {
	return s.schema, s.schemaErr
}
func (s *stubTool) Run(ctx context.Context, input json.RawMessage) (any, error) {
	if s.run == nil {
		return nil, nil
	}
	return s.run(ctx, input)
}

func ptr(v float64) *float64 {
	return &v
}

// weatherSchema has a required string, an enum and a bounded integer
func weatherSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"city":  {Type: "string"},
			"units": {Type: "string", Enum: []any{"metric", "imperial"}},
			"days":  {Type: "integer", Minimum: ptr(1), Maximum: ptr(14)},
			"tags":  {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
		Required: []string{"city"},
	}
}
