package tool

import (
	"encoding/json"
	"slices"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	scopey "github.com/mutablelogic/go-scopey"
	schema "github.com/mutablelogic/go-scopey/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Descriptor is the registered form of a tool: its name, description and a
// private copy of its input schema, plus the tool which handles calls.
type Descriptor struct {
	name        string
	description string
	schema      *jsonschema.Schema
	raw         json.RawMessage
	tool        Tool
}

// Toolkit is an immutable collection of tools with unique names. Tools are
// kept in registration order for discovery, and indexed by name for lookup.
type Toolkit struct {
	tools []*Descriptor
	index map[string]*Descriptor
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	typeObject = "object"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolkit creates a toolkit from one or more groups of tools. Groups are
// concatenated in order. Returns an error if any tool is invalid or if the
// same name is registered twice.
func NewToolkit(groups ...[]Tool) (*Toolkit, error) {
	tk := &Toolkit{
		index: make(map[string]*Descriptor),
	}
	for _, group := range groups {
		for _, t := range group {
			desc, err := newDescriptor(t)
			if err != nil {
				return nil, err
			}
			if _, exists := tk.index[desc.name]; exists {
				return nil, scopey.ErrConflict.Withf("duplicate tool name: %q", desc.name)
			}
			tk.index[desc.name] = desc
			tk.tools = append(tk.tools, desc)
		}
	}
	return tk, nil
}

func newDescriptor(t Tool) (*Descriptor, error) {
	if t == nil {
		return nil, scopey.ErrBadParameter.With("tool cannot be nil")
	}
	name := t.Name()
	if !types.IsIdentifier(name) {
		return nil, scopey.ErrBadParameter.Withf("invalid tool name: %q", name)
	}
	description := strings.TrimSpace(t.Description())
	if description == "" {
		return nil, scopey.ErrBadParameter.Withf("tool %q: missing description", name)
	}

	// Generate the schema, and take a private copy of it
	s, err := t.Schema()
	if err != nil {
		return nil, scopey.ErrBadParameter.Withf("tool %q: schema generation failed: %v", name, err)
	} else if s == nil {
		s = &jsonschema.Schema{Type: typeObject}
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, scopey.ErrBadParameter.Withf("tool %q: %v", name, err)
	}
	private := new(jsonschema.Schema)
	if err := json.Unmarshal(raw, private); err != nil {
		return nil, scopey.ErrBadParameter.Withf("tool %q: %v", name, err)
	}

	// Input schemas describe an argument object
	switch {
	case private.Type == "" && len(private.Types) == 0:
		private.Type = typeObject
	case private.Type != typeObject && !slices.Contains(private.Types, typeObject):
		return nil, scopey.ErrBadParameter.Withf("tool %q: input schema must be of type %q", name, typeObject)
	}

	// Publish the schema the validator enforces
	permissive(private)
	if raw, err = json.Marshal(private); err != nil {
		return nil, scopey.ErrBadParameter.Withf("tool %q: %v", name, err)
	}

	return &Descriptor{
		name:        name,
		description: description,
		schema:      private,
		raw:         raw,
		tool:        t,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS - TOOLKIT

// Len returns the number of registered tools
func (tk *Toolkit) Len() int {
	return len(tk.tools)
}

// Lookup returns a tool descriptor by name, or an ErrNotFound error
func (tk *Toolkit) Lookup(name string) (*Descriptor, error) {
	if desc, exists := tk.index[name]; exists {
		return desc, nil
	}
	return nil, scopey.ErrNotFound.Withf("tool %q not found", name)
}

// Tools returns all descriptors in registration order
func (tk *Toolkit) Tools() []*Descriptor {
	return slices.Clone(tk.tools)
}

// List returns the discovery metadata for every tool in registration order.
// The result is computed on every call.
func (tk *Toolkit) List() []schema.ToolMeta {
	result := make([]schema.ToolMeta, 0, len(tk.tools))
	for _, desc := range tk.tools {
		result = append(result, desc.Meta())
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS - DESCRIPTOR

// Name returns the tool name
func (d *Descriptor) Name() string {
	return d.name
}

// Description returns the tool description
func (d *Descriptor) Description() string {
	return d.description
}

// InputSchema returns a copy of the serialized input schema
func (d *Descriptor) InputSchema() json.RawMessage {
	return slices.Clone(d.raw)
}

// Meta returns the discovery metadata for the tool
func (d *Descriptor) Meta() schema.ToolMeta {
	return schema.ToolMeta{
		Name:        d.name,
		Description: d.description,
		InputSchema: d.InputSchema(),
	}
}

// Validate checks arguments against the input schema of the tool
func (d *Descriptor) Validate(args map[string]any) error {
	return Validate(d.schema, args)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// permissive allows undeclared properties, and removes "null" from
// property types generated for pointers and slices, so that a required
// array or object cannot be satisfied by null.
func permissive(s *jsonschema.Schema) {
	if s == nil {
		return
	}
	s.AdditionalProperties = nil
	if len(s.Types) > 1 && slices.Contains(s.Types, typeNull) {
		kinds := slices.DeleteFunc(slices.Clone(s.Types), func(t string) bool {
			return t == typeNull
		})
		if len(kinds) == 1 {
			s.Type, s.Types = kinds[0], nil
		} else {
			s.Types = kinds
		}
	}
	for _, prop := range s.Properties {
		permissive(prop)
	}
	permissive(s.Items)
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (tk *Toolkit) String() string {
	return types.Stringify(tk.List())
}

func (d *Descriptor) String() string {
	return types.Stringify(d.Meta())
}
