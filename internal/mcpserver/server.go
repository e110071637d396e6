// Package mcpserver exposes the tool registry over the Model Context Protocol.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/contenox/testrail-mcp/apiframework"
	"github.com/contenox/testrail-mcp/internal/testrailtools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverName = "testrail-mcp"

// Server wraps the MCP server with one tool per registry entry.
type Server struct {
	mcp      *mcp.Server
	registry *testrailtools.Registry
	logger   *slog.Logger
}

// New registers every tool of registry. It fails when a tool schema cannot be
// rendered.
func New(registry *testrailtools.Registry, version string, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    serverName,
			Version: version,
		}, nil),
		registry: registry,
		logger:   logger,
	}
	for _, tool := range registry.Tools() {
		if err := s.addTool(tool); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

func (s *Server) addTool(tool *testrailtools.Tool) error {
	schema, err := tool.Schema.JSONSchema()
	if err != nil {
		return fmt.Errorf("tool %s: %w", tool.Name, err)
	}
	annotations := &mcp.ToolAnnotations{ReadOnlyHint: tool.ReadOnly}
	if !tool.ReadOnly {
		destructive := true
		annotations.DestructiveHint = &destructive
	}

	name := tool.Name
	s.mcp.AddTool(&mcp.Tool{
		Name:        name,
		Description: tool.Description,
		InputSchema: schema,
		Annotations: annotations,
	}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toResult(s.registry.Call(ctx, name, req.Params.Arguments)), nil
	})
	return nil
}

// toResult renders env as the single text content of a tool result.
func toResult(env apiframework.Envelope) *mcp.CallToolResult {
	text, err := env.JSON()
	if err != nil {
		slog.Error("failed to encode envelope", "error", err)
		text = []byte(`{"success":false,"message":"failed to encode result"}`)
		env.Success = false
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(text)},
		},
		IsError: env.IsError(),
	}
}

// Serve speaks MCP over stdin/stdout until ctx ends or the client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}

// Run serves one session on transport.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("serving tools", "tools", len(s.registry.Tools()))
	if err := s.mcp.Run(ctx, transport); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
