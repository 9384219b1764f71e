// Package mcp exposes perfume search as Model Context Protocol tools.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scenttwin/internal/domain"
	"github.com/kailas-cloud/scenttwin/internal/domain/search/mode"
	"github.com/kailas-cloud/scenttwin/internal/domain/search/request"
	searchuc "github.com/kailas-cloud/scenttwin/internal/usecase/search"
	"github.com/kailas-cloud/scenttwin/internal/version"
)

// Tool names.
const (
	ToolFindTwins   = "find_perfume_twins"
	ToolFindByNotes = "find_perfumes_by_notes"
)

// ServerName identifies this implementation to MCP clients.
const ServerName = "scenttwin"

// TwinsInput is the argument of find_perfume_twins.
type TwinsInput struct {
	Name string `json:"name" jsonschema:"perfume name, optionally with brand, e.g. Dior Sauvage"`
}

// NotesInput is the argument of find_perfumes_by_notes.
type NotesInput struct {
	Notes string `json:"notes" jsonschema:"free-text description of the desired scent notes"`
}

// Server wraps an MCP server backed by the search service.
type Server struct {
	mcp    *mcp.Server
	search *searchuc.Service
	logger *zap.Logger
}

// NewServer registers the search tools.
func NewServer(search *searchuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		mcp:    mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version.Version}, nil),
		search: search,
		logger: logger,
	}

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: ToolFindTwins,
		Description: "Describe a named perfume (top, middle and base notes) and list similar " +
			"alternatives with their origin and why they are similar. Returns JSON.",
	}, s.findTwins)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolFindByNotes,
		Description: "Suggest perfumes matching a description of scent notes. Returns a JSON array.",
	}, s.findByNotes)

	return s
}

// Handler serves MCP over streamable HTTP.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.mcp }, nil)
}

// RunStdio serves MCP over stdin/stdout until ctx is done or the client disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	if err := s.mcp.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp stdio: %w", err)
	}
	return nil
}

// Connect attaches the server to an arbitrary transport.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	ss, err := s.mcp.Connect(ctx, t, nil)
	if err != nil {
		return nil, fmt.Errorf("mcp connect: %w", err)
	}
	return ss, nil
}

func (s *Server) findTwins(ctx context.Context, _ *mcp.CallToolRequest, in TwinsInput) (*mcp.CallToolResult, any, error) {
	return s.run(ctx, ToolFindTwins, in.Name, mode.ByName), nil, nil
}

func (s *Server) findByNotes(ctx context.Context, _ *mcp.CallToolRequest, in NotesInput) (*mcp.CallToolResult, any, error) {
	return s.run(ctx, ToolFindByNotes, in.Notes, mode.ByNotes), nil, nil
}

func (s *Server) run(ctx context.Context, tool, query string, m mode.Mode) *mcp.CallToolResult {
	req, err := request.New(query, m)
	if err != nil {
		return s.toolError(tool, err)
	}

	res, err := s.search.Search(ctx, req)
	if err != nil {
		return s.toolError(tool, err)
	}

	data, err := res.MarshalJSON()
	if err != nil {
		return s.toolError(tool, err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}

// toolError reports a failure as tool output with the same messages the HTTP boundary uses.
func (s *Server) toolError(tool string, err error) *mcp.CallToolResult {
	if errors.Is(err, domain.ErrInvalidRequest) {
		s.logger.Warn("mcp tool rejected input", zap.String("tool", tool), zap.Error(err))
	} else {
		s.logger.Error("mcp tool failed", zap.String("tool", tool), zap.Error(err))
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: domain.PublicMessage(err)}},
	}
}
