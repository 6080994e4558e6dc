// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/lw2die/vitalis/schema"
)

// CacheStore defines the interface for the persisted health-record cache.
// This allows mocking the store for testing.
type CacheStore interface {
	// Load reads the persisted document. A missing or malformed file yields
	// an empty schema-complete document, never an error.
	Load() (*schema.CacheDocument, error)

	// Persist writes the full document back, stamping the update timestamp.
	// The write must not be partial: a crash mid-write leaves the previous
	// on-disk version intact.
	Persist(doc *schema.CacheDocument) error

	// GetStatus returns status information about the cache file.
	GetStatus() (schema.CacheStatus, error)
}

// HistoryStore defines the interface for recording derived-metric snapshots
// per processing run.
type HistoryStore interface {
	// BeginRun creates a new run row and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, snapshotsProcessed, recordsTotal int) error

	// RecordMetric stores one named scalar for a run.
	RecordMetric(runID int64, name string, value float64) error

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves every run row, oldest first.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllMetrics retrieves every recorded metric row, grouped by run.
	GetAllMetrics() ([]schema.MetricValue, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager defines the interface for accessing the configured stores.
type StoreManager interface {
	GetCacheStore() CacheStore
	GetHistoryStore() HistoryStore
}
