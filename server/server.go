// Package server exposes the feature builders and the Onshape REST
// bindings as MCP tools over stdio, SSE or streamable HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/clarsbyte/onshape-mcp/onshape"
)

const serverName = "onshape-mcp"

const shutdownGrace = 5 * time.Second

// Server wires the Onshape API bindings into an MCP tool server.
type Server struct {
	mcp        *mcpserver.MCPServer
	studios    *onshape.PartStudios
	documents  *onshape.Documents
	variables  *onshape.Variables
	edges      *onshape.Edges
	assemblies *onshape.Assemblies
	logger     *slog.Logger

	tools []mcp.Tool
}

// New builds a Server with every tool registered against the given client.
func New(client *onshape.Client, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	studios := onshape.NewPartStudios(client)
	s := &Server{
		mcp: mcpserver.NewMCPServer(serverName, version,
			mcpserver.WithToolCapabilities(true),
			mcpserver.WithRecovery(),
		),
		studios:    studios,
		documents:  onshape.NewDocuments(client),
		variables:  onshape.NewVariables(client),
		edges:      onshape.NewEdges(studios),
		assemblies: onshape.NewAssemblies(client),
		logger:     logger,
	}
	s.registerSketchTools()
	s.registerFeatureTools()
	s.registerStudioTools()
	s.registerDocumentTools()
	return s
}

func (s *Server) addTool(tool mcp.Tool, handler mcpserver.ToolHandlerFunc) {
	s.tools = append(s.tools, tool)
	s.mcp.AddTool(tool, handler)
}

// newStudioTool declares a tool that operates inside one part studio. The
// documentId/workspaceId/elementId triple is required on all of them.
func newStudioTool(name, description string, extra ...mcp.ToolOption) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithString("documentId", mcp.Description("Document ID"), mcp.Required()),
		mcp.WithString("workspaceId", mcp.Description("Workspace ID"), mcp.Required()),
		mcp.WithString("elementId", mcp.Description("Part Studio element ID"), mcp.Required()),
	}
	opts = append(opts, extra...)
	return mcp.NewTool(name, opts...)
}

// Tools returns the registered tool definitions in registration order.
func (s *Server) Tools() []mcp.Tool {
	out := make([]mcp.Tool, len(s.tools))
	copy(out, s.tools)
	return out
}

// Run serves MCP traffic until ctx is cancelled or the transport fails.
// The transport must be one of the Transport tokens.
func (s *Server) Run(ctx context.Context, transport, host string, port int) error {
	switch transport {
	case TransportStdio:
		s.logger.Info("serving MCP over stdio")
		errCh := make(chan error, 1)
		go func() {
			errCh <- mcpserver.ServeStdio(s.mcp)
		}()
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			return err
		}
	case TransportSSE:
		sse := mcpserver.NewSSEServer(s.mcp)
		return s.serveHTTP(ctx, "sse", net.JoinHostPort(host, fmt.Sprint(port)), sse.Start, sse.Shutdown)
	case TransportHTTP:
		httpSrv := mcpserver.NewStreamableHTTPServer(s.mcp)
		return s.serveHTTP(ctx, "http", net.JoinHostPort(host, fmt.Sprint(port)), httpSrv.Start, httpSrv.Shutdown)
	default:
		return fmt.Errorf("unknown transport %q, want stdio, sse or http", transport)
	}
}

func (s *Server) serveHTTP(ctx context.Context, kind, addr string, start func(string) error, shutdown func(context.Context) error) error {
	s.logger.Info("serving MCP over "+kind, "addr", addr)
	errCh := make(chan error, 1)
	go func() {
		errCh <- start(addr)
	}()
	select {
	case <-ctx.Done():
		grace, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := shutdown(grace); err != nil {
			return fmt.Errorf("shut down %s server: %w", kind, err)
		}
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve %s: %w", kind, err)
		}
		return nil
	}
}
