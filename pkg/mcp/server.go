// Implements an MCP server based on the following specification:
// https://modelcontextprotocol.io/specification/2025-06-18/basic/lifecycle
package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	logger "github.com/mutablelogic/go-paprika/pkg/logger"
	tool "github.com/mutablelogic/go-paprika/pkg/tool"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
)

///////////////////////////////////////////////////////////////////////
// TYPES

type Server struct {
	name    string
	version string

	// Private members
	mu       sync.RWMutex       // Handler map lock
	handlers map[string]Handler // Method handlers
	toolkit  *tool.Toolkit      // Toolkit for the server
	logger   *logger.Logger
	tracer   trace.Tracer
}

type Handler func(context.Context, json.RawMessage) (any, error)

///////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new MCP server with the given name and version
func New(name, version string, opts ...Opt) (*Server, error) {
	self := &Server{
		name:     name,
		version:  version,
		handlers: make(map[string]Handler, 10),
		logger:   logger.Discard(),
		tracer:   noop.NewTracerProvider().Tracer(name),
	}

	// Apply options
	if err := self.apply(opts...); err != nil {
		return nil, err
	}

	// Without tools, an empty toolkit is listed
	if self.toolkit == nil {
		if toolkit, err := tool.NewToolkit(); err != nil {
			return nil, err
		} else {
			self.toolkit = toolkit
		}
	}

	// Register default handlers
	self.HandlerFunc(MessageTypeInitialize, self.handleInitialize)
	self.HandlerFunc(MessageTypePing, self.handlePing)
	self.HandlerFunc(NotificationTypeInitialize, self.handleInitialized)
	self.HandlerFunc(MessageTypeListPrompts, self.handleListPrompts)
	self.HandlerFunc(MessageTypeListResources, self.handleListResources)
	self.HandlerFunc(MessageTypeListTools, self.handleListTools)
	self.HandlerFunc(MessageTypeCallTool, self.handleCallTool)

	// Return success
	return self, nil
}

// Implements an MCP server with standard input and output,
// and run in the foreground until the input is closed or the context
// is done. Requests are processed concurrently and each response is
// written as a single line. In-flight requests complete before return.
//
// When the context is done, RunStdio returns without waiting for the
// reader, which stays blocked until r returns. Callers which cancel
// should also close r to release it.
func (server *Server) RunStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	var requests, writers sync.WaitGroup

	// Writer channel serialises responses
	writerCh := make(chan []byte)
	writers.Go(func() {
		writer := bufio.NewWriter(w)
		var err error
		for data := range writerCh {
			// Drain without writing after an error
			if err != nil {
				continue
			}
			if _, err = writer.Write(data); err == nil {
				err = writer.Flush()
			}
			if err != nil {
				server.logger.Errorf(ctx, "Error writing to output: %v", err)
			}
		}
	})
	defer func() {
		requests.Wait()
		close(writerCh)
		writers.Wait()
	}()

	// Reader sends each non-empty line until the input is closed
	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		reader := bufio.NewReader(r)
		for {
			line, err := reader.ReadBytes('\n')
			if line = bytes.TrimSpace(line); len(line) > 0 {
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErr <- err
				}
				return
			}
		}
	}()

	// Continue receiving input until the context is done
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}

			// Process a request in the background
			requests.Go(func() {
				if response := server.Handle(ctx, line); response != nil {
					writerCh <- append(response, '\n')
				}
			})
		}
	}
}

// Handle processes one JSON-RPC message and returns the encoded response,
// or nil for a notification
func (server *Server) Handle(ctx context.Context, payload []byte) []byte {
	// Decode the request
	var request Request
	if err := json.Unmarshal(payload, &request); err != nil {
		server.logger.Debugf(ctx, "parse error: %v", err)
		return server.encode(ctx, Response{Version: RPCVersion, ID: nullID, Err: NewError(ErrorCodeParse, "parse error", err.Error())})
	}

	// Check the request
	if request.Version != RPCVersion || request.Method == "" {
		if request.IsNotification() {
			return nil
		}
		return server.encode(ctx, Response{Version: RPCVersion, ID: request.ID, Err: NewError(ErrorCodeInvalidRequest, "invalid request")})
	}

	// Look up and call the handler
	result, err := server.call(ctx, &request)
	if request.IsNotification() {
		if err != nil {
			server.logger.Debugf(ctx, "notification %q: %v", request.Method, err)
		}
		return nil
	}

	response := Response{Version: RPCVersion, ID: request.ID}
	if err != nil {
		var target *Error
		if errors.As(err, &target) {
			response.Err = target
		} else {
			response.Err = NewError(ErrorInternalError, err.Error())
		}
	} else if result == nil {
		response.Result = map[string]any{}
	} else {
		response.Result = result
	}

	// Return the response
	return server.encode(ctx, response)
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

///////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (server *Server) call(ctx context.Context, request *Request) (any, error) {
	server.mu.RLock()
	fn, exists := server.handlers[request.Method]
	server.mu.RUnlock()

	if !exists {
		return nil, NewError(ErrorCodeMethodNotFound, "method not found", request.Method)
	}
	return fn(ctx, request.Payload)
}

func (server *Server) encode(ctx context.Context, response Response) []byte {
	data, err := json.Marshal(response)
	if err != nil {
		server.logger.Errorf(ctx, "Error encoding response: %v", err)
		data, _ = json.Marshal(Response{Version: RPCVersion, ID: response.ID, Err: NewError(ErrorInternalError, err.Error())})
	}
	return data
}

///////////////////////////////////////////////////////////////////////
// HANDLERS

func (server *Server) handleInitialize(_ context.Context, _ json.RawMessage) (any, error) {
	response := new(ResponseInitialize)
	response.Version = ProtocolVersion
	response.ServerInfo.Name = server.name
	response.ServerInfo.Version = server.version
	response.Capabilities.Prompts = map[string]any{
		"listChanged": false,
	}
	response.Capabilities.Resources = map[string]any{
		"listChanged": false,
		"subscribe":   false,
	}
	response.Capabilities.Tools = map[string]any{
		"listChanged": false,
	}
	return response, nil
}

func (server *Server) handlePing(_ context.Context, _ json.RawMessage) (any, error) {
	return map[string]any{}, nil
}

func (server *Server) handleInitialized(ctx context.Context, _ json.RawMessage) (any, error) {
	server.logger.Debugf(ctx, "client initialized")
	return nil, nil
}

func (server *Server) handleListPrompts(_ context.Context, _ json.RawMessage) (any, error) {
	response := new(ResponseListPrompts)
	response.Prompts = []any{}
	return response, nil
}

func (server *Server) handleListResources(_ context.Context, _ json.RawMessage) (any, error) {
	response := new(ResponseListResources)
	response.Resources = []any{}
	return response, nil
}

func (server *Server) handleListTools(_ context.Context, _ json.RawMessage) (any, error) {
	return &ResponseListTools{
		Tools: server.toolkit.Descriptors(),
	}, nil
}

func (server *Server) handleCallTool(ctx context.Context, payload json.RawMessage) (any, error) {
	var req RequestToolCall
	if len(payload) == 0 {
		return nil, NewError(ErrorCodeInvalidParameters, "missing params")
	} else if err := json.Unmarshal(payload, &req); err != nil {
		return nil, NewError(ErrorCodeInvalidParameters, err.Error())
	}

	// OTEL
	call := tool.NewCall(req.Name, req.Arguments)
	child, endSpan := otel.StartSpan(server.tracer, ctx, "CallTool",
		attribute.String("tool", call.Name),
		attribute.String("call", call.Id),
	)

	// Run the tool, which always returns a result
	start := time.Now()
	result := server.toolkit.Call(child, call)
	log := server.logger.With("tool", call.Name, "call", call.Id, "duration", time.Since(start))
	if result.Error {
		endSpan(errors.New(result.Text()))
		log.Printf(ctx, "tool call failed: %s", result.Text())
	} else {
		endSpan(nil)
		log.Debugf(ctx, "tool call succeeded")
	}

	return result, nil
}
