package mcp_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/internal/iocache"
	mcp_internal "github.com/lw2die/vitalis/internal/mcp"
	"github.com/lw2die/vitalis/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStoreManager wires a throwaway cache file and a disabled history store.
type testStoreManager struct {
	cache   contract.CacheStore
	history contract.HistoryStore
}

func (m *testStoreManager) GetCacheStore() contract.CacheStore     { return m.cache }
func (m *testStoreManager) GetHistoryStore() contract.HistoryStore { return m.history }

func newTestManager(t *testing.T) *testStoreManager {
	t.Helper()
	history, err := iocache.NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = history.Close() })
	return &testStoreManager{
		cache:   iocache.NewFileCacheStore(filepath.Join(t.TempDir(), "health_cache.json")),
		history: history,
	}
}

func serverConfig() *contract.Config {
	return &contract.Config{
		Age:              45,
		HeightCm:         180,
		RestingHR:        50,
		MaxHR:            150,
		TargetWeightKg:   80,
		WeeklyPAITarget:  100,
		PAIWindowDays:    7,
		CTLDays:          42,
		ATLDays:          7,
		TSBOptimalMin:    -10,
		TSBOptimalMax:    10,
		SleepTargetHours: 7,
		ChartDays:        30,
		VO2MaxExcellent:  35,
		VO2MaxGood:       30,
		Precision:        1,
		ComputedWeights:  schema.GetDefaultHealthspanWeights(),
	}
}

func TestMCPServerTools(t *testing.T) {
	mgr := newTestManager(t)

	// Seed the cache with one session so the metric tools have data
	doc := schema.NewCacheDocument()
	avgHR := 100.0
	doc.Exercise = append(doc.Exercise, schema.ExerciseRecord{
		SessionID:   "s1",
		Timestamp:   time.Now().Add(-24 * time.Hour),
		Type:        "Running",
		DurationMin: 60,
		AvgHR:       &avgHR,
	})
	require.NoError(t, mgr.GetCacheStore().Persist(doc))

	s := mcp_internal.NewMCPServer(serverConfig(), mgr)
	ctx := context.Background()

	t.Run("get_health_metrics returns metric JSON", func(t *testing.T) {
		tool := s.GetTool("get_health_metrics")
		require.NotNil(t, tool, "Tool get_health_metrics should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "get_health_metrics"},
		}
		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		require.False(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "weekly_pai")
	})

	t.Run("get_healthspan returns score report", func(t *testing.T) {
		tool := s.GetTool("get_healthspan")
		require.NotNil(t, tool, "Tool get_healthspan should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "get_healthspan"},
		}
		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "healthspan")
	})

	t.Run("get_training_load_series honors chart_days", func(t *testing.T) {
		tool := s.GetTool("get_training_load_series")
		require.NotNil(t, tool, "Tool get_training_load_series should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_training_load_series",
				Arguments: map[string]any{"chart_days": 7.0},
			},
		}
		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, "weekly_pai")
		assert.Contains(t, text, "training_load")
	})

	t.Run("get_cache_status reports record counts", func(t *testing.T) {
		tool := s.GetTool("get_cache_status")
		require.NotNil(t, tool, "Tool get_cache_status should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "get_cache_status"},
		}
		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "exercise")
	})
}
