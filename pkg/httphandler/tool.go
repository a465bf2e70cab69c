package httphandler

import (
	"net/http"

	// Packages
	mcp "github.com/mutablelogic/go-scopey/pkg/mcp"
	schema "github.com/mutablelogic/go-scopey/pkg/schema"
	tool "github.com/mutablelogic/go-scopey/pkg/tool"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /tool
func ToolListHandler(dispatcher *tool.Dispatcher) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/tool", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), schema.ListToolsResponse{
					Tools: dispatcher.List(),
				})
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "List all tools",
			},
		})
}

// Path: /tool/{name}
func ToolHandler(dispatcher *tool.Dispatcher) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/tool/{name}", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				desc, err := dispatcher.Toolkit().Lookup(r.PathValue("name"))
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), desc.Meta())
			case http.MethodPost:
				// The request body is the arguments object, and may be empty
				var args map[string]any
				if r.ContentLength != 0 {
					if err := httprequest.Read(r, &args); err != nil {
						_ = httpresponse.Error(w, err)
						return
					}
				}

				// A failed invocation is still a successful response, with
				// isError set in the envelope
				resp, err := dispatcher.Call(r.Context(), r.PathValue("name"), args)
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "Get a tool by name",
			},
			Post: &openapi.Operation{
				Description: "Call a tool with arguments",
			},
		})
}

// Path: /mcp
func MCPHandler(server *mcp.Server) (string, http.HandlerFunc, *openapi.PathItem, error) {
	handler, err := server.HTTPHandler()
	if err != nil {
		return "", nil, nil, err
	}
	return "/mcp", handler.ServeHTTP, types.Ptr(openapi.PathItem{
		Post: &openapi.Operation{
			Description: "Model Context Protocol streamable HTTP transport",
		},
	}), nil
}
