package httphandler

import (
	"errors"
	"net/http"

	// Packages
	scopey "github.com/mutablelogic/go-scopey"
	mcp "github.com/mutablelogic/go-scopey/pkg/mcp"
	tool "github.com/mutablelogic/go-scopey/pkg/tool"
	server "github.com/mutablelogic/go-server"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Router interface {
	RegisterFunc(path string, handler http.HandlerFunc, middleware bool, spec *openapi.PathItem) error
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RegisterHandlers adds the tool catalogue and invocation endpoints to the
// router, and the streamable MCP endpoint when a server is provided
func RegisterHandlers(dispatcher *tool.Dispatcher, mcpServer *mcp.Server, router server.HTTPRouter, middleware bool) error {
	var result error

	// Convenience function to register a handler and accumulate any errors
	register := func(path string, handler http.HandlerFunc, spec *openapi.PathItem) {
		result = errors.Join(result, router.(Router).RegisterFunc(path, handler, middleware, spec))
	}

	// Register handlers
	register(ToolListHandler(dispatcher))
	register(ToolHandler(dispatcher))
	if mcpServer != nil {
		path, handler, spec, err := MCPHandler(mcpServer)
		if err != nil {
			return errors.Join(result, err)
		}
		register(path, handler, spec)
	}

	// Return any errors
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// httpErr converts a scopey.Err to an httpresponse.Err, preserving the
// original error message. Unknown error codes map to 500.
func httpErr(err error) error {
	var code scopey.Err
	if !errors.As(err, &code) {
		return httpresponse.ErrInternalError.With(err)
	}
	switch code {
	case scopey.ErrNotFound:
		return httpresponse.ErrNotFound.With(err)
	case scopey.ErrBadParameter:
		return httpresponse.ErrBadRequest.With(err)
	case scopey.ErrConflict:
		return httpresponse.ErrConflict.With(err)
	case scopey.ErrNotImplemented:
		return httpresponse.ErrNotImplemented.With(err)
	default:
		return httpresponse.ErrInternalError.With(err)
	}
}
