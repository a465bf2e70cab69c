package tool

import (
	"context"
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is an interface for a tool with a name, description and JSON schema.
// Provider groups supply tools as a fixed slice, which is registered once
// with NewToolkit.
type Tool interface {
	// Return the name of the tool, which needs to be unique across
	// all registered tools
	Name() string

	// Return the description of the tool
	Description() string

	// Return the JSON schema for the tool input, which may be nil
	// for tools without arguments
	Schema() (*jsonschema.Schema, error)

	// Run the tool with the given input as JSON (may be nil), and return
	// a value which can be serialized as JSON
	Run(ctx context.Context, input json.RawMessage) (any, error)
}
