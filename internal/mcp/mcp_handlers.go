package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lw2die/vitalis/core"
	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleGetHealthMetrics(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := h.mgr.GetCacheStore().Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cache load failed: %v", err)), nil
	}

	m := core.ComputeMetrics(doc, time.Now(), h.baseCfg)
	jsonData, _ := json.MarshalIndent(m, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetHealthspan(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := h.mgr.GetCacheStore().Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cache load failed: %v", err)), nil
	}

	m := core.ComputeMetrics(doc, time.Now(), h.baseCfg)
	report := struct {
		Healthspan      schema.HealthspanScore  `json:"healthspan"`
		Lab             *schema.LabScores       `json:"lab,omitempty"`
		Recommendations []schema.Recommendation `json:"recommendations,omitempty"`
		Alerts          []schema.Alert          `json:"alerts,omitempty"`
	}{
		Healthspan:      m.Healthspan,
		Lab:             m.Lab,
		Recommendations: m.Recommendations,
		Alerts:          m.Alerts,
	}
	jsonData, _ := json.MarshalIndent(report, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTrainingLoadSeries(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetInt("chart_days", 0); d > 0 {
		cfg.ChartDays = d
	}

	doc, err := h.mgr.GetCacheStore().Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cache load failed: %v", err)), nil
	}

	asOf := time.Now()
	series := struct {
		WeeklyPAI    []schema.PAIPoint          `json:"weekly_pai"`
		TrainingLoad []schema.TrainingLoadPoint `json:"training_load"`
	}{
		WeeklyPAI:    core.WeeklyPAISeries(doc.Exercise, asOf, cfg),
		TrainingLoad: core.TrainingLoadSeries(doc.Exercise, asOf, cfg),
	}
	jsonData, _ := json.MarshalIndent(series, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCacheStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := h.mgr.GetCacheStore().GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cache status failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
