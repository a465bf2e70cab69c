// Implements an MCP server based on the following specification:
// https://modelcontextprotocol.io/specification/2025-06-18/basic/lifecycle
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	// Packages
	scopey "github.com/mutablelogic/go-scopey"
	tool "github.com/mutablelogic/go-scopey/pkg/tool"
)

///////////////////////////////////////////////////////////////////////
// TYPES

type Server struct {
	name         string
	version      string
	instructions string

	// Private members
	mu          sync.RWMutex       // Handler map lock
	handlers    map[string]Handler // Method handlers
	dispatcher  *tool.Dispatcher   // Resolves and invokes tools
	logger      *slog.Logger
	initialised atomic.Bool
}

type Handler func(context.Context, json.RawMessage) (any, error)

///////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new MCP server with the given name and version, which
// serves the tools of the dispatcher
func New(name, version string, dispatcher *tool.Dispatcher, opts ...Opt) (*Server, error) {
	if dispatcher == nil {
		return nil, scopey.ErrBadParameter.With("dispatcher is nil")
	}
	self := &Server{
		name:       name,
		version:    version,
		handlers:   make(map[string]Handler, 10),
		dispatcher: dispatcher,
		logger:     slog.Default(),
	}
	if err := self.apply(opts...); err != nil {
		return nil, err
	}

	// Register default handlers
	self.HandlerFunc(MessageTypeInitialize, self.handleInitialize)
	self.HandlerFunc(MessageTypePing, self.handlePing)
	self.HandlerFunc(NotificationTypeInitialize, self.handleInitialized)
	self.HandlerFunc(NotificationTypeCancelled, self.handleCancelled)
	self.HandlerFunc(MessageTypeListPrompts, self.handleListPrompts)
	self.HandlerFunc(MessageTypeListResources, self.handleListResources)
	self.HandlerFunc(MessageTypeListTools, self.handleListTools)
	self.HandlerFunc(MessageTypeCallTool, self.handleCallTool)

	// Return success
	return self, nil
}

// Implements an MCP server with standard input and output,
// and run in the foreground until the input is closed or the
// context is done. Requests are processed concurrently.
func (server *Server) RunStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	var requests, writers sync.WaitGroup

	// Create a new buffered reader and writer
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)

	// Writer channel will write until closed, after all requests are done
	writerCh := make(chan []byte)
	defer func() {
		requests.Wait()
		close(writerCh)
		writers.Wait()
	}()

	writers.Go(func() {
		for data := range writerCh {
			if _, err := writer.Write(data); err != nil {
				server.logger.ErrorContext(ctx, "error writing to output", "error", err)
				continue
			}
			// Flush the writer to ensure data is sent immediately
			if err := writer.Flush(); err != nil {
				server.logger.ErrorContext(ctx, "error flushing output", "error", err)
			}
		}
	})

	// Read lines in the background, so that a blocked read does not
	// prevent cancellation
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		for {
			line, err := readLine(reader)
			if err != nil {
				readErr <- err
				return
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Continue receiving input until the input is closed or the context is done
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			if err == io.EOF {
				return nil
			}
			return err
		case line := <-lines:
			if line = strings.TrimSpace(line); line == "" {
				continue
			}

			// Process a request in the background
			requests.Go(func() {
				if response := server.Process(ctx, []byte(line)); response != nil {
					// Write the response and a newline
					writerCh <- append(response, '\n')
				}
			})
		}
	}
}

// readLine returns the next line of input, joining partial reads of long lines
func readLine(reader *bufio.Reader) (string, error) {
	var line []byte
	for {
		part, isPrefix, err := reader.ReadLine()
		if err != nil {
			if err == io.EOF && len(line) > 0 {
				return string(line), nil
			}
			return "", err
		}
		line = append(line, part...)
		if !isPrefix {
			return string(line), nil
		}
	}
}

// HandlerFunc registers (or removes) a handler for a method
func (server *Server) HandlerFunc(method string, fn Handler) {
	server.mu.Lock()
	defer server.mu.Unlock()
	if fn == nil {
		delete(server.handlers, method)
	} else {
		server.handlers[method] = fn
	}
}

// Initialised returns true after the client has sent the
// initialized notification
func (server *Server) Initialised() bool {
	return server.initialised.Load()
}

// Process decodes a single JSON-RPC message and returns the encoded
// response, or nil for notifications
func (server *Server) Process(ctx context.Context, payload []byte) []byte {
	// Decode the request
	var request Request
	if err := json.Unmarshal(payload, &request); err != nil {
		server.logger.WarnContext(ctx, "invalid message", "error", err)
		return server.encode(ctx, Response{Version: RPCVersion, Err: NewError(ErrorCodeParseError, "parse error", err.Error())})
	}

	// Look up and call the handler
	result, err := server.call(ctx, &request)
	if request.IsNotification() {
		if err != nil {
			server.logger.WarnContext(ctx, "notification failed", "method", request.Method, "error", err)
		}
		return nil
	}

	response := Response{Version: RPCVersion, ID: request.ID}
	if err != nil {
		var target *Error
		if errors.As(err, &target) {
			response.Err = target
		} else {
			response.Err = NewError(ErrorCodeInternalError, err.Error())
		}
	} else if result == nil {
		response.Result = map[string]any{}
	} else {
		response.Result = result
	}

	// Return the response
	return server.encode(ctx, response)
}

///////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (server *Server) encode(ctx context.Context, response Response) []byte {
	data, err := json.Marshal(response)
	if err != nil {
		server.logger.ErrorContext(ctx, "error encoding response", "error", err)
		data, _ = json.Marshal(Response{Version: RPCVersion, ID: response.ID, Err: NewError(ErrorCodeInternalError, err.Error())})
	}
	return data
}

func (server *Server) call(ctx context.Context, request *Request) (any, error) {
	if request.Version != RPCVersion {
		return nil, NewError(ErrorCodeInvalidRequest, "invalid request", request.Version)
	}

	server.mu.RLock()
	fn, exists := server.handlers[request.Method]
	server.mu.RUnlock()
	if !exists {
		return nil, NewError(ErrorCodeMethodNotFound, "method not found", request.Method)
	}

	server.logger.DebugContext(ctx, "request", "method", request.Method)
	return fn(ctx, request.Payload)
}

///////////////////////////////////////////////////////////////////////
// HANDLERS

func (server *Server) handleInitialize(_ context.Context, _ json.RawMessage) (any, error) {
	response := new(ResponseInitialize)
	response.Version = ProtocolVersion
	response.Instructions = server.instructions
	response.ServerInfo.Name = server.name
	response.ServerInfo.Version = server.version
	response.Capabilities.Tools = map[string]any{
		"listChanged": false,
	}
	return response, nil
}

func (server *Server) handlePing(_ context.Context, _ json.RawMessage) (any, error) {
	return map[string]any{}, nil
}

func (server *Server) handleInitialized(_ context.Context, _ json.RawMessage) (any, error) {
	server.initialised.Store(true)
	return nil, nil
}

func (server *Server) handleCancelled(ctx context.Context, payload json.RawMessage) (any, error) {
	server.logger.DebugContext(ctx, "request cancelled by client", "params", string(payload))
	return nil, nil
}

func (server *Server) handleListPrompts(_ context.Context, _ json.RawMessage) (any, error) {
	return &ResponseListPrompts{Prompts: []any{}}, nil
}

func (server *Server) handleListResources(_ context.Context, _ json.RawMessage) (any, error) {
	return &ResponseListResources{Resources: []any{}}, nil
}

func (server *Server) handleListTools(_ context.Context, _ json.RawMessage) (any, error) {
	return &ResponseListTools{
		Tools: server.dispatcher.List(),
	}, nil
}

func (server *Server) handleCallTool(ctx context.Context, payload json.RawMessage) (any, error) {
	var req RequestToolCall
	if len(payload) == 0 {
		return nil, NewError(ErrorCodeInvalidParameters, "missing params")
	} else if err := json.Unmarshal(payload, &req); err != nil {
		return nil, NewError(ErrorCodeInvalidParameters, err.Error())
	}

	// Call the tool
	response, err := server.dispatcher.Call(ctx, req.Name, req.Arguments)
	if errors.Is(err, scopey.ErrNotFound) {
		return nil, NewError(ErrorCodeInvalidParameters, "unknown tool", req.Name)
	} else if err != nil {
		return nil, NewError(ErrorCodeInternalError, err.Error())
	}

	return response, nil
}
