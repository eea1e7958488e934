package mcp

import (
	// Packages
	logger "github.com/mutablelogic/go-paprika/pkg/logger"
	tool "github.com/mutablelogic/go-paprika/pkg/tool"
	trace "go.opentelemetry.io/otel/trace"
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

// WithToolkit sets the tools which are listed and called
func WithToolkit(v *tool.Toolkit) Opt {
	return func(server *Server) error {
		server.toolkit = v
		return nil
	}
}

// WithLogger sets the logger for requests and tool calls
func WithLogger(v *logger.Logger) Opt {
	return func(server *Server) error {
		if v != nil {
			server.logger = v
		}
		return nil
	}
}

// WithTracer sets the tracer which records a span for each tool call
func WithTracer(v trace.Tracer) Opt {
	return func(server *Server) error {
		if v != nil {
			server.tracer = v
		}
		return nil
	}
}
