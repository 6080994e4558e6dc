// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Vitalis MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Vitalis Health Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_health_metrics ---
	s.AddTool(mcp.NewTool("get_health_metrics",
		mcp.WithDescription("Compute the full derived health metric set from the local health-record cache: weekly PAI, training load, VO2max, body composition, sleep, vitals and glucose."),
	), h.handleGetHealthMetrics)

	// --- 2. Tool: get_healthspan ---
	s.AddTool(mcp.NewTool("get_healthspan",
		mcp.WithDescription("Compute the healthspan index with its five sub-scores, lab panel scores and actionable recommendations."),
	), h.handleGetHealthspan)

	// --- 3. Tool: get_training_load_series ---
	s.AddTool(mcp.NewTool("get_training_load_series",
		mcp.WithDescription("Compute the per-day weekly PAI and CTL/ATL/TSB chart series over the trailing window."),
		mcp.WithNumber("chart_days", mcp.Description("Number of trailing days to include (defaults to the configured chart window).")),
	), h.handleGetTrainingLoadSeries)

	// --- 4. Tool: get_cache_status ---
	s.AddTool(mcp.NewTool("get_cache_status",
		mcp.WithDescription("Report the health-record cache state: file location, record counts per category and processed snapshot count."),
	), h.handleGetCacheStatus)

	return s
}

// StartMCPServer starts the Vitalis MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
