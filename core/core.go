package core

import (
	"context"
	"time"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/internal/iocache"
	"github.com/lw2die/vitalis/internal/outwriter"
	"github.com/lw2die/vitalis/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteVitalisRun runs the full processing cycle: ingest new snapshots,
// persist the cache, derive metrics and print the report. It serves as the
// main entry point for the 'run' mode.
func ExecuteVitalisRun(_ context.Context, cfg *contract.Config) error {
	start := time.Now()
	cache := iocache.Manager.GetCacheStore()
	history := iocache.Manager.GetHistoryStore()

	doc, err := cache.Load()
	if err != nil {
		return err
	}

	// A history failure never blocks the cycle; runID 0 disables recording.
	runID, err := history.BeginRun(start, runConfigParams(cfg))
	if err != nil {
		contract.LogWarn("could not record run start", err)
		runID = 0
	}

	summary, err := ProcessSnapshots(doc, cfg)
	if err != nil {
		return err
	}
	if err := cache.Persist(doc); err != nil {
		return err
	}

	m := ComputeMetrics(doc, time.Now(), cfg)

	if runID > 0 {
		recordRunMetrics(history, runID, m)
		if err := history.EndRun(runID, time.Now(), summary.SnapshotsProcessed, doc.TotalRecords()); err != nil {
			contract.LogWarn("could not record run end", err)
		}
	}

	duration := time.Since(start)
	return outwriter.PrintRunReport(summary, m, cfg, duration)
}

// ExecuteVitalisMetrics derives and prints the full metric set without
// ingesting anything.
func ExecuteVitalisMetrics(_ context.Context, cfg *contract.Config) error {
	start := time.Now()
	doc, err := iocache.Manager.GetCacheStore().Load()
	if err != nil {
		return err
	}
	m := ComputeMetrics(doc, time.Now(), cfg)
	return outwriter.PrintMetricsReport(m, cfg, time.Since(start))
}

// ExecuteVitalisHealthspan derives and prints the healthspan report.
func ExecuteVitalisHealthspan(_ context.Context, cfg *contract.Config) error {
	start := time.Now()
	doc, err := iocache.Manager.GetCacheStore().Load()
	if err != nil {
		return err
	}
	m := ComputeMetrics(doc, time.Now(), cfg)
	return outwriter.PrintHealthspanReport(m, cfg, time.Since(start))
}

// ExecuteVitalisTimeseries derives and prints the per-day chart series for
// weekly PAI and training load.
func ExecuteVitalisTimeseries(_ context.Context, cfg *contract.Config) error {
	start := time.Now()
	doc, err := iocache.Manager.GetCacheStore().Load()
	if err != nil {
		return err
	}
	asOf := time.Now()
	pai := WeeklyPAISeries(doc.Exercise, asOf, cfg)
	load := TrainingLoadSeries(doc.Exercise, asOf, cfg)
	return outwriter.PrintTimeseriesResults(pai, load, cfg, time.Since(start))
}

// runConfigParams captures the profile parameters that shape derived metrics,
// for the run history row.
func runConfigParams(cfg *contract.Config) map[string]any {
	return map[string]any{
		"age":           cfg.Age,
		"resting_hr":    cfg.RestingHR,
		"max_hr":        cfg.MaxHR,
		"target_weight": cfg.TargetWeightKg,
		"pai_target":    cfg.WeeklyPAITarget,
		"sleep_target":  cfg.SleepTargetHours,
	}
}

// recordRunMetrics stores the headline figures of a cycle. Individual
// failures are warnings; the metrics are advisory history, not state.
func recordRunMetrics(history contract.HistoryStore, runID int64, m *schema.Metrics) {
	points := map[string]float64{
		"weekly_pai":       m.WeeklyPAI,
		"ctl":              m.Load.CTL,
		"atl":              m.Load.ATL,
		"tsb":              m.Load.TSB,
		"vo2max":           m.VO2Max,
		"healthspan_index": float64(m.Healthspan.Index),
		"longevity_score":  float64(m.LongevityScore),
	}
	for name, value := range points {
		if err := history.RecordMetric(runID, name, value); err != nil {
			contract.LogWarn("could not record metric "+name, err)
		}
	}
}
