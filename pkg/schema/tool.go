package schema

import (
	"encoding/json"
	"strings"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ToolMeta is the public description of a tool, as returned by discovery.
// It never carries the tool implementation.
type ToolMeta struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// ListToolsResponse is the discovery response
type ListToolsResponse struct {
	Tools []ToolMeta `json:"tools"`
}

// CallToolRequest is a decoded invocation request
type CallToolRequest struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// Content is a single piece of content in an invocation response
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallToolResponse is the envelope returned for every completed or failed
// invocation. The text content is always a serialized JSON value.
type CallToolResponse struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ContentTypeText = "text"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTextResponse returns an envelope with a single text content item
func NewTextResponse(text string, isError bool) *CallToolResponse {
	return &CallToolResponse{
		Content: []Content{{Type: ContentTypeText, Text: text}},
		IsError: isError,
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Text returns the text content of the response, joining multiple
// text items with newlines
func (r CallToolResponse) Text() string {
	parts := make([]string, 0, len(r.Content))
	for _, c := range r.Content {
		if c.Type == ContentTypeText {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Decode unmarshals the text content of the response into v
func (r CallToolResponse) Decode(v any) error {
	return json.Unmarshal([]byte(r.Text()), v)
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t ToolMeta) String() string {
	return types.Stringify(t)
}

func (r CallToolResponse) String() string {
	return types.Stringify(r)
}
