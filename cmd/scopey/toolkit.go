package main

import (
	"fmt"
	"os"

	// Packages
	client "github.com/mutablelogic/go-client"
	generator "github.com/mutablelogic/go-scopey/pkg/generator"
	linear "github.com/mutablelogic/go-scopey/pkg/linear"
	mcp "github.com/mutablelogic/go-scopey/pkg/mcp"
	scaffold "github.com/mutablelogic/go-scopey/pkg/scaffold"
	supabase "github.com/mutablelogic/go-scopey/pkg/supabase"
	tool "github.com/mutablelogic/go-scopey/pkg/tool"
	vercel "github.com/mutablelogic/go-scopey/pkg/vercel"
	version "github.com/mutablelogic/go-scopey/pkg/version"
)

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// Dispatcher builds the toolkit from the configured tool groups. Groups
// which need credentials are only registered when they are configured.
func (g *Globals) Dispatcher() (*tool.Dispatcher, error) {
	cfg := g.config

	// Client options
	clientOpts := []client.ClientOpt{}
	if g.Debug {
		clientOpts = append(clientOpts, client.OptTrace(os.Stderr, false))
	}
	if g.tracer != nil {
		clientOpts = append(clientOpts, client.OptTracer(g.tracer))
	}

	var groups [][]tool.Tool
	register := func(group string, tools []tool.Tool, err error) error {
		if err != nil {
			return fmt.Errorf("failed to create %s tools: %w", group, err)
		}
		g.logger.Debug("registered tools", "group", group, "count", len(tools))
		groups = append(groups, tools)
		return nil
	}

	// Linear
	if cfg.LinearEnabled() {
		tools, err := linear.NewTools(cfg.Linear, clientOpts...)
		if err := register("Linear", tools, err); err != nil {
			return nil, err
		}
	}

	// Supabase
	if cfg.SupabaseEnabled() {
		tools, err := supabase.NewTools(cfg.Supabase, clientOpts...)
		if err := register("Supabase", tools, err); err != nil {
			return nil, err
		}
	}

	// Vercel
	if cfg.VercelEnabled() {
		tools, err := vercel.NewTools(cfg.Vercel, clientOpts...)
		if err := register("Vercel", tools, err); err != nil {
			return nil, err
		}
	}

	// Scaffolding and generators need no credentials
	tools, err := scaffold.NewTools(cfg.Scaffold)
	if err := register("scaffold", tools, err); err != nil {
		return nil, err
	}
	tools, err = generator.NewTools()
	if err := register("generator", tools, err); err != nil {
		return nil, err
	}

	// Create the toolkit and dispatcher
	toolkit, err := tool.NewToolkit(groups...)
	if err != nil {
		return nil, err
	}
	opts := []tool.Opt{
		tool.WithLogger(g.logger),
		tool.WithTracer(g.tracer),
		tool.WithMeter(g.meter),
	}
	if cfg.Server.Strict {
		opts = append(opts, tool.WithStrictValidation())
	}
	return tool.NewDispatcher(toolkit, opts...)
}

// Server returns an MCP server for the dispatcher
func (g *Globals) Server(dispatcher *tool.Dispatcher) (*mcp.Server, error) {
	opts := []mcp.Opt{mcp.WithLogger(g.logger)}
	if g.config.Server.Instructions != "" {
		opts = append(opts, mcp.WithInstructions(g.config.Server.Instructions))
	}
	return mcp.New(g.config.ServerName(), version.Version(), dispatcher, opts...)
}
