package mcp

import (
	"log/slog"

	// Packages
	scopey "github.com/mutablelogic/go-scopey"
)

/////////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*Server) error

/////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func (server *Server) apply(opts ...Opt) error {
	for _, opt := range opts {
		if err := opt(server); err != nil {
			return err
		}
	}
	return nil
}

/////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithLogger sets the logger for requests and transport errors
func WithLogger(logger *slog.Logger) Opt {
	return func(server *Server) error {
		if logger == nil {
			return scopey.ErrBadParameter.With("logger is nil")
		}
		server.logger = logger
		return nil
	}
}

// WithInstructions sets the instructions returned to clients on initialize
func WithInstructions(v string) Opt {
	return func(server *Server) error {
		server.instructions = v
		return nil
	}
}
