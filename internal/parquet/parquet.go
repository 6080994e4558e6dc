// Package parquet provides data structures and functions for exporting run
// history data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/lw2die/vitalis/schema"
)

// Run represents a single processing run with metadata.
// This struct maps to the vitalis_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// SnapshotsProcessed is the number of snapshot files consumed in this run
	SnapshotsProcessed int32 `parquet:"snapshots_processed,snappy"`

	// RecordsTotal is the total record count in the cache after this run
	RecordsTotal int32 `parquet:"records_total,snappy"`
}

// RunMetric represents one derived metric value recorded for a run.
// This struct maps to the vitalis_run_metrics database table.
type RunMetric struct {
	// RunID references the parent run
	RunID int64 `parquet:"run_id,snappy"`

	// RecordedAt is when the metric was stored (stored as TIMESTAMP with nanosecond precision)
	RecordedAt time.Time `parquet:"recorded_at,snappy"`

	// Name is the metric name, e.g. "weekly_pai" or "healthspan_index"
	Name string `parquet:"metric_name,snappy"`

	// Value is the metric value
	Value float64 `parquet:"metric_value,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the Run struct tags
	writer := parquet.NewGenericWriter[Run](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteRunMetricsParquet writes a slice of RunMetric structs to a Parquet file.
func WriteRunMetricsParquet(data []RunMetric, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the RunMetric struct tags
	writer := parquet.NewGenericWriter[RunMetric](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchRuns generates sample Run data for demonstration.
func MockFetchRuns() []Run {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := startTime1.Add(3 * time.Second)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := startTime2.Add(8 * time.Second)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3 and durationMs3 are nil to demonstrate nullable fields

	return []Run{
		{
			RunID:              1,
			StartTime:          startTime1,
			EndTime:            &endTime1,
			RunDurationMs:      &durationMs1,
			SnapshotsProcessed: 4,
			RecordsTotal:       1250,
		},
		{
			RunID:              2,
			StartTime:          startTime2,
			EndTime:            &endTime2,
			RunDurationMs:      &durationMs2,
			SnapshotsProcessed: 1,
			RecordsTotal:       1310,
		},
		{
			RunID:              3,
			StartTime:          startTime3,
			EndTime:            nil, // Still running - nullable field
			RunDurationMs:      nil, // Not yet calculated - nullable field
			SnapshotsProcessed: 0,
			RecordsTotal:       0,
		},
	}
}

// MockFetchRunMetrics generates sample RunMetric data for demonstration.
func MockFetchRunMetrics() []RunMetric {
	now := time.Now()

	return []RunMetric{
		{RunID: 1, RecordedAt: now.Add(-2 * time.Hour), Name: "weekly_pai", Value: 87.5},
		{RunID: 1, RecordedAt: now.Add(-2 * time.Hour), Name: "ctl", Value: 12.3},
		{RunID: 1, RecordedAt: now.Add(-2 * time.Hour), Name: "tsb", Value: -5.8},
		{RunID: 2, RecordedAt: now.Add(-24 * time.Hour), Name: "weekly_pai", Value: 91.0},
		{RunID: 2, RecordedAt: now.Add(-24 * time.Hour), Name: "healthspan_index", Value: 72},
	}
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:              record.RunID,
			StartTime:          record.StartTime,
			EndTime:            record.EndTime,
			RunDurationMs:      record.RunDurationMs,
			SnapshotsProcessed: record.SnapshotsProcessed,
			RecordsTotal:       record.RecordsTotal,
		}
	}
	return result
}

// ConvertMetricValues converts schema.MetricValue to RunMetric for Parquet export.
func ConvertMetricValues(records []schema.MetricValue) []RunMetric {
	result := make([]RunMetric, len(records))
	for i, record := range records {
		result[i] = RunMetric{
			RunID:      record.RunID,
			RecordedAt: record.RecordedAt,
			Name:       record.Name,
			Value:      record.Value,
		}
	}
	return result
}
