package main

import (
	"context"
	"errors"
	"os"

	// Packages
	httphandler "github.com/mutablelogic/go-scopey/pkg/httphandler"
	mcp "github.com/mutablelogic/go-scopey/pkg/mcp"
	tool "github.com/mutablelogic/go-scopey/pkg/tool"
	version "github.com/mutablelogic/go-scopey/pkg/version"
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	httpserver "github.com/mutablelogic/go-server/pkg/httpserver"
	errgroup "golang.org/x/sync/errgroup"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type RunCmd struct {
	HTTP string `name:"http" env:"SCOPEY_HTTP" placeholder:"ADDR" help:"Also serve streamable HTTP and the REST tool API on this address"`
}

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *RunCmd) Run(ctx *Globals) error {
	dispatcher, err := ctx.Dispatcher()
	if err != nil {
		return err
	}
	server, err := ctx.Server(dispatcher)
	if err != nil {
		return err
	}

	addr := cmd.HTTP
	if addr == "" {
		addr = ctx.config.Server.HTTP
	}

	// Serve stdio, and HTTP when an address is set. The HTTP server keeps
	// running after standard input is closed, until interrupted.
	group, groupctx := errgroup.WithContext(ctx.ctx)
	group.Go(func() error {
		ctx.logger.Info("serving stdio", "tools", dispatcher.Toolkit().Len())
		if err := server.RunStdio(groupctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	if addr != "" {
		group.Go(func() error {
			return cmd.serve(groupctx, ctx, addr, dispatcher, server)
		})
	}
	return group.Wait()
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (cmd *RunCmd) serve(parent context.Context, ctx *Globals, addr string, dispatcher *tool.Dispatcher, server *mcp.Server) error {
	versionTag := version.Version()

	// Create the HTTP router
	router, err := httprouter.NewRouter(parent, "", "", ctx.config.ServerName(), versionTag)
	if err != nil {
		return err
	} else if err := httphandler.RegisterHandlers(dispatcher, server, router, true); err != nil {
		return err
	}

	// Create the server
	httpserver, err := httpserver.New(addr, router, nil)
	if err != nil {
		return err
	}

	// Run the server until the context is cancelled
	ctx.logger.Info("serving http", "name", ctx.execName, "version", versionTag, "addr", addr)
	if err := httpserver.Run(parent); err != nil {
		return err
	}
	ctx.logger.Info("stopped http", "addr", addr)
	return nil
}
