package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"fightprog/internal/analysis"
)

// Server exposes the analysis client as MCP tools.
type Server struct {
	analysis            *analysis.Client
	enableMermaidCharts bool
	heartbeat           time.Duration

	server *mcp.Server
}

type Option func(*Server)

// WithMermaidCharts appends Mermaid charts to report summaries.
func WithMermaidCharts(enabled bool) Option {
	return func(s *Server) { s.enableMermaidCharts = enabled }
}

// WithHeartbeat changes how often a running tool call logs that it is still alive.
func WithHeartbeat(interval time.Duration) Option {
	return func(s *Server) { s.heartbeat = interval }
}

// NewServer creates a new MCP server with every tool registered.
func NewServer(client *analysis.Client, version string, opts ...Option) *Server {
	s := &Server{
		analysis:  client,
		heartbeat: analysis.HeartbeatInterval,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.server = mcp.NewServer(&mcp.Implementation{Name: "fightprog", Version: version}, nil)
	s.registerTools()
	return s
}

// Serve runs the server over stdio until the client disconnects or ctx ends.
func (s *Server) Serve(ctx context.Context) error {
	log.Info().Int("encounters", s.analysis.Definitions().Len()).Msg("Serving MCP over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Connect attaches the server to an arbitrary transport.
func (s *Server) Connect(ctx context.Context, transport mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, transport, nil)
}

// running logs a heartbeat for a tool until the returned function is called.
func (s *Server) running(ctx context.Context, tool string) func() {
	started := time.Now()
	return analysis.Heartbeat(ctx, s.heartbeat, func() {
		log.Info().Str("tool", tool).Dur("elapsed", time.Since(started)).Msg("analysis still running")
	})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func (s *Server) formatResult(data any) string {
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}
