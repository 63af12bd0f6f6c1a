// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the nabi command pipeline as tools via stdio transport.
package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/seojinpark/nabi/internal/assistant"
)

// Server wraps the MCP server with nabi tools.
type Server struct {
	mcp *server.MCPServer
	svc *assistant.Service
}

// New creates a new MCP server with all nabi tools registered.
func New(svc *assistant.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"nabi",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("process_command",
		mcp.WithDescription("Process a natural-language Notion command. "+
			"The command is classified, translated into a structured Notion "+
			"operation, and executed; the result is a human-readable report."),
		mcp.WithString("command", mcp.Required(), mcp.Description("Natural-language instruction (Korean or English)")),
	), s.processCommand)

	s.mcp.AddTool(mcp.NewTool("list_databases",
		mcp.WithDescription("List all Notion databases the integration can access."),
	), s.listDatabases)

	s.mcp.AddTool(mcp.NewTool("save_summary",
		mcp.WithDescription("Save titled free text as a new Notion workspace page."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Page title")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Page content; blank lines separate paragraphs")),
	), s.saveSummary)

	s.mcp.AddTool(mcp.NewTool("delete_page",
		mcp.WithDescription("Archive the first Notion page whose title matches the given name."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Page name (substring match) or canonical page ID")),
	), s.deletePage)

	s.mcp.AddTool(mcp.NewTool("generate_content",
		mcp.WithDescription("Generate Notion-ready content with the language model."),
		mcp.WithString("prompt", mcp.Required(), mcp.Description("What to generate")),
		mcp.WithString("content_type", mcp.Description("One of text, todo, bullet, table (default text)")),
	), s.generateContent)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) processCommand(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	command, err := req.RequireString("command")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.svc.ProcessCommand(ctx, command)), nil
}

func (s *Server) listDatabases(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := s.svc.Dispatch(ctx, assistant.ActionDescriptor{Action: assistant.ActionGetDatabases})
	return mcp.NewToolResultText(result), nil
}

func (s *Server) saveSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.svc.SaveSummary(ctx, title, content)), nil
}

func (s *Server) deletePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.svc.DeletePage(ctx, name)), nil
}

func (s *Server) generateContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := req.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	params := map[string]any{"prompt": prompt}
	if ct, err := req.RequireString("content_type"); err == nil && ct != "" {
		params["content_type"] = ct
	}
	result := s.svc.Dispatch(ctx, assistant.ActionDescriptor{
		Action:     assistant.ActionGenerateContent,
		Parameters: params,
	})
	return mcp.NewToolResultText(result), nil
}
