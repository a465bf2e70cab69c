package mcp

import (
	"context"
	"encoding/json"
	"net/http"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	scopey "github.com/mutablelogic/go-scopey"
	tool "github.com/mutablelogic/go-scopey/pkg/tool"
)

///////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// HTTPHandler returns a handler which serves the same tools over the
// streamable HTTP transport. Calls go through the same dispatcher as
// the stdio server.
func (server *Server) HTTPHandler() (http.Handler, error) {
	impl := sdk.NewServer(&sdk.Implementation{
		Name:    server.name,
		Version: server.version,
	}, &sdk.ServerOptions{
		Instructions: server.instructions,
	})
	for _, desc := range server.dispatcher.Toolkit().Tools() {
		t, err := sdkTool(desc)
		if err != nil {
			return nil, err
		}
		impl.AddTool(t, server.sdkHandler)
	}
	return sdk.NewStreamableHTTPHandler(func(*http.Request) *sdk.Server {
		return impl
	}, nil), nil
}

///////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func sdkTool(desc *tool.Descriptor) (*sdk.Tool, error) {
	s := new(jsonschema.Schema)
	if err := json.Unmarshal(desc.InputSchema(), s); err != nil {
		return nil, scopey.ErrInternalServerError.Withf("tool %q: %v", desc.Name(), err)
	}
	if s.Type == "" {
		s.Type, s.Types = "object", nil
	}
	return &sdk.Tool{
		Name:        desc.Name(),
		Description: desc.Description(),
		InputSchema: s,
	}, nil
}

func (server *Server) sdkHandler(ctx context.Context, req *sdk.CallToolRequest) (*sdk.CallToolResult, error) {
	var args map[string]any
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return nil, err
		}
	}
	response, err := server.dispatcher.Call(ctx, req.Params.Name, args)
	if err != nil {
		return nil, err
	}
	result := &sdk.CallToolResult{
		IsError: response.IsError,
	}
	for _, c := range response.Content {
		result.Content = append(result.Content, &sdk.TextContent{Text: c.Text})
	}
	return result, nil
}
