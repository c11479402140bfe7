// Package mcp exposes registered tools over the Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcpgo "github.com/felixgeelhaar/mcp-go"
	mcpmw "github.com/felixgeelhaar/mcp-go/middleware"
	mcpserver "github.com/felixgeelhaar/mcp-go/server"

	"github.com/felixgeelhaar/porkbun-domain-mcp/domain/tool"
)

// ToolServer wraps an MCP server that exposes tools from a registry.
type ToolServer struct {
	srv      *mcpgo.Server
	registry tool.Registry
	info     mcpgo.ServerInfo
}

// ToolServerConfig configures a ToolServer.
type ToolServerConfig struct {
	// Name is the server name announced to clients.
	Name string

	// Version is the server version.
	Version string

	// Description is an optional server description.
	Description string

	// Instructions provides usage instructions for clients.
	Instructions string

	// Registry holds the tools to expose.
	Registry tool.Registry
}

// NewToolServer creates an MCP server exposing every tool in the registry.
func NewToolServer(cfg ToolServerConfig) *ToolServer {
	info := mcpgo.ServerInfo{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Description: cfg.Description,
		Capabilities: mcpgo.Capabilities{
			Tools: true,
		},
	}

	var opts []mcpgo.Option
	if cfg.Instructions != "" {
		opts = append(opts, mcpgo.WithInstructions(cfg.Instructions))
	}

	ts := &ToolServer{
		srv:      mcpgo.NewServer(info, opts...),
		registry: cfg.Registry,
		info:     info,
	}

	if cfg.Registry != nil {
		for _, t := range cfg.Registry.List() {
			ts.registerTool(t)
		}
	}

	return ts
}

// registerTool bridges one tool into the MCP server's fluent API.
func (s *ToolServer) registerTool(t tool.Tool) {
	handler := func(ctx context.Context, input json.RawMessage) (string, error) {
		result, err := t.Execute(ctx, input)
		if err != nil {
			return "", err
		}
		return string(result.Output), nil
	}

	s.srv.Tool(t.Name()).
		Description(t.Description()).
		Handler(handler)
}

// Server returns the underlying mcp-go server.
func (s *ToolServer) Server() *mcpgo.Server {
	return s.srv
}

// Use adds middleware to the server. It accepts middleware written against
// the mcp-go root API (Recover, RequestID) and bridges each one onto the
// server's own middleware chain.
func (s *ToolServer) Use(middlewares ...mcpgo.Middleware) {
	adapted := make([]mcpserver.Middleware, 0, len(middlewares))
	for _, mw := range middlewares {
		adapted = append(adapted, bridgeMiddleware(mw))
	}
	s.srv.Use(adapted...)
}

// bridgeMiddleware converts a root-API middleware into a server middleware.
// The two HandlerFunc types share an underlying signature, so the handlers
// convert both ways.
func bridgeMiddleware(mw mcpgo.Middleware) mcpserver.Middleware {
	return func(next mcpserver.HandlerFunc) mcpserver.HandlerFunc {
		return mcpserver.HandlerFunc(mw(mcpmw.HandlerFunc(next)))
	}
}

// AddTool registers a tool after construction.
func (s *ToolServer) AddTool(t tool.Tool) error {
	if s.registry != nil {
		if err := s.registry.Register(t); err != nil {
			return fmt.Errorf("register tool: %w", err)
		}
	}
	s.registerTool(t)
	return nil
}

// ServeStdio runs the server over stdin/stdout.
func (s *ToolServer) ServeStdio(ctx context.Context, opts ...mcpgo.ServeOption) error {
	return mcpgo.ServeStdio(ctx, s.srv, opts...)
}

// ServeHTTP runs the server over HTTP with SSE.
func (s *ToolServer) ServeHTTP(ctx context.Context, addr string, opts ...mcpgo.HTTPOption) error {
	return mcpgo.ServeHTTP(ctx, s.srv, addr, opts...)
}
