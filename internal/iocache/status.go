package iocache

import (
	"fmt"
	"sort"

	"github.com/lw2die/vitalis/schema"
)

// PrintCacheStatus prints cache file status information.
func PrintCacheStatus(status schema.CacheStatus) {
	fmt.Printf("Cache File: %s\n", status.Path)
	fmt.Printf("Exists: %t\n", status.Exists)
	if !status.Exists {
		return
	}
	fmt.Printf("Size: %d bytes\n", status.SizeBytes)
	if !status.UpdatedAt.IsZero() {
		fmt.Printf("Updated: %s\n", status.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Processed Files: %d\n", status.ProcessedFiles)
	fmt.Printf("Total Records: %d\n", status.TotalRecords)
	fmt.Println("Record Counts:")

	categories := make([]string, 0, len(status.Counts))
	for category := range status.Counts {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Printf("  %s: %d\n", category, status.Counts[category])
	}
}

// PrintHistoryStatus prints run history status information.
func PrintHistoryStatus(status schema.HistoryStatus) {
	fmt.Printf("History Backend: %s\n", status.Backend)
	if status.Backend == schema.NoneBackend {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	fmt.Printf("Metric Rows: %d\n", status.MetricRows)
	if status.LastRun != nil {
		fmt.Printf("Last Run ID: %d\n", status.LastRun.RunID)
		fmt.Printf("Last Run: %s\n", status.LastRun.StartTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Last Run Snapshots: %d\n", status.LastRun.SnapshotsProcessed)
		fmt.Printf("Last Run Records: %d\n", status.LastRun.RecordsTotal)
	}
}
