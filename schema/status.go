package schema

import "time"

// RunSummary summarizes one ingestion cycle.
type RunSummary struct {
	SnapshotsProcessed int `json:"snapshots_processed"`
	SnapshotsFailed    int `json:"snapshots_failed"`
	RecordsAdded       int `json:"records_added"`
	RecordsDeleted     int `json:"records_deleted"`
	DuplicatesRemoved  int `json:"duplicates_removed"`

	// Sources holds total cached records per originating device/app after
	// the cycle, as an ingestion diagnostic.
	Sources map[string]int `json:"sources,omitempty"`
}

// CacheStatus summarizes the on-disk cache file for the status command.
type CacheStatus struct {
	Path           string
	Exists         bool
	SizeBytes      int64
	UpdatedAt      time.Time
	ProcessedFiles int
	TotalRecords   int
	Counts         map[string]int
}

// RunRecord represents a row from the vitalis_runs table.
type RunRecord struct {
	RunID              int64
	StartTime          time.Time
	EndTime            *time.Time
	RunDurationMs      *int32
	SnapshotsProcessed int32
	RecordsTotal       int32
}

// MetricValue represents a row from the vitalis_run_metrics table: one named
// scalar recorded for a run.
type MetricValue struct {
	RunID      int64
	RecordedAt time.Time
	Name       string
	Value      float64
}

// HistoryStatus summarizes the history store for the status command.
type HistoryStatus struct {
	Backend    DatabaseBackend
	TotalRuns  int
	MetricRows int
	LastRun    *RunRecord
}
