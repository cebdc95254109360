// Package mcp exposes the auditor over the Model Context Protocol so
// assistants can run audits and read posture over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/girste/posture/internal/audit"
	"github.com/girste/posture/internal/config"
	"github.com/girste/posture/internal/inspect"
	"github.com/girste/posture/internal/output"
	"github.com/girste/posture/internal/precheck"
	"github.com/girste/posture/internal/probes"
)

// Server wires the audit tools into an MCP stdio server.
type Server struct {
	mcpServer *server.MCPServer
	cfg       *config.Config
	insp      inspect.Inspector

	// gate holds the launch precondition check. Handlers run it on every
	// call because sudo credentials can lapse between tool invocations.
	gate func(ctx context.Context) error
}

// NewServer loads the host configuration and registers the audit tools.
func NewServer(version string) (*Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	s := &Server{
		mcpServer: server.NewMCPServer("posture", version,
			server.WithToolCapabilities(false),
		),
		cfg:  cfg,
		insp: inspect.NewHost(cfg.LookbackDuration()),
		gate: precheck.Run,
	}
	s.registerTools()
	return s, nil
}

func (s *Server) registerTools() {
	runAudit := mcp.NewTool("run_audit",
		mcp.WithDescription("Run the full security posture audit and return the report."),
		mcp.WithString("format",
			mcp.Description("Report format: json for structured output, text for the terminal rendering."),
			mcp.DefaultString("json"),
			mcp.Enum("text", "json"),
		),
	)
	s.mcpServer.AddTool(runAudit, s.handleRunAudit)

	checkPosture := mcp.NewTool("check_posture",
		mcp.WithDescription("Run a single posture probe and return its check results as JSON."),
		mcp.WithString("probe",
			mcp.Description("Probe to run."),
			mcp.Required(),
			mcp.Enum(probes.Names()...),
		),
	)
	s.mcpServer.AddTool(checkPosture, s.handleCheckPosture)
}

func (s *Server) handleRunAudit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.gate(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report := audit.NewRunner(s.insp, s.cfg).Run(ctx)

	if req.GetString("format", "json") == "text" {
		return mcp.NewToolResultText(output.Text(report)), nil
	}
	rendered, err := output.JSON(report)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode report: %v", err)), nil
	}
	return mcp.NewToolResultText(rendered), nil
}

func (s *Server) handleCheckPosture(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("probe", "")
	probe, ok := probes.Lookup(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown probe %q", name)), nil
	}

	if err := s.gate(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	probeCtx, cancel := context.WithTimeout(ctx, probe.Timeout())
	defer cancel()

	results := probe.Run(probeCtx, s.insp, s.cfg)
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// Serve blocks on the stdio transport until the client disconnects.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcpServer)
}
