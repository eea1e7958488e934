package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	// Packages
	mcp "github.com/mutablelogic/go-paprika/pkg/mcp"
	version "github.com/mutablelogic/go-paprika/pkg/version"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type MCPCommands struct {
	Server MCPServerCommand  `cmd:"" name:"mcp" default:"1" help:"Serve tools over standard input and output." group:"SERVER"`
	HTTP   HTTPServerCommand `cmd:"" name:"http" help:"Serve tools over HTTP." group:"SERVER"`
}

type MCPServerCommand struct{}

type HTTPServerCommand struct {
	Addr string `name:"addr" env:"COINPAPRIKA_ADDR" default:"localhost:8080" help:"Address to listen on"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *MCPServerCommand) Run(ctx *Globals) error {
	server, err := ctx.Server()
	if err != nil {
		return err
	}

	// Run the server on stdio
	return server.RunStdio(ctx.ctx, os.Stdin, os.Stdout)
}

func (cmd *HTTPServerCommand) Run(ctx *Globals) error {
	server, err := ctx.Server()
	if err != nil {
		return err
	}

	httpserver := &http.Server{
		Addr:              cmd.Addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Serve until the context is done, then shut down gracefully
	group, gctx := errgroup.WithContext(ctx.ctx)
	group.Go(func() error {
		ctx.log.Printf(gctx, "Listening on http://%s/mcp", cmd.Addr)
		if err := httpserver.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpserver.Shutdown(shutdownCtx)
	})
	return group.Wait()
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Server returns an MCP server which publishes the toolkit
func (g *Globals) Server() (*mcp.Server, error) {
	toolkit, err := g.Toolkit()
	if err != nil {
		return nil, err
	}

	// Log tools that will be exposed via MCP
	var names []string
	for _, t := range toolkit.Tools() {
		names = append(names, t.Name())
	}
	g.log.Print(g.ctx, "Starting MCP server with tools: ", strings.Join(names, ", "))

	return mcp.New(serverName, version.Version(),
		mcp.WithToolkit(toolkit),
		mcp.WithLogger(g.log),
		mcp.WithTracer(g.tracer),
	)
}
