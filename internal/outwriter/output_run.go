package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
)

// PrintRunReport outputs the ingestion summary followed by the derived
// metrics, dispatching based on the output format configured.
func PrintRunReport(summary *schema.RunSummary, m *schema.Metrics, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtPtr := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		type jsonReport struct {
			Summary *schema.RunSummary `json:"summary"`
			Metrics *schema.Metrics    `json:"metrics"`
		}
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, jsonReport{Summary: summary, Metrics: m})
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"metric", "value"}, func(cw *csv.Writer) error {
				if err := writeCSVRowsForSummary(cw, summary); err != nil {
					return err
				}
				return writeCSVRowsForMetrics(cw, m, fmtFloat, fmtPtr)
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeRunSummary(w, summary, cfg); err != nil {
				return err
			}
			return writeMetricsTable(m, cfg, fmtFloat, fmtPtr, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeRunSummary prints what the ingestion cycle did.
func writeRunSummary(w io.Writer, summary *schema.RunSummary, cfg *contract.Config) error {
	title := "Processing Cycle"
	if cfg.UseEmojis {
		title = "🔄 " + title
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}

	if summary.SnapshotsProcessed == 0 && summary.SnapshotsFailed == 0 {
		_, err := fmt.Fprintln(w, "  No new snapshots found.")
		return err
	}
	if _, err := fmt.Fprintf(w, "  Snapshots: %d processed, %d failed. Records: %d added, %d deleted, %d duplicates removed.\n",
		summary.SnapshotsProcessed, summary.SnapshotsFailed,
		summary.RecordsAdded, summary.RecordsDeleted, summary.DuplicatesRemoved); err != nil {
		return err
	}

	if len(summary.Sources) > 0 {
		parts := make([]string, 0, len(summary.Sources))
		for _, source := range sortedSourceNames(summary.Sources) {
			parts = append(parts, fmt.Sprintf("%s %d", source, summary.Sources[source]))
		}
		if _, err := fmt.Fprintf(w, "  Records by source: %s.\n", strings.Join(parts, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// sortedSourceNames returns the source names in stable order.
func sortedSourceNames(sources map[string]int) []string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// writeCSVRowsForSummary writes the ingestion counters in CSV format.
func writeCSVRowsForSummary(w *csv.Writer, summary *schema.RunSummary) error {
	rows := [][2]string{
		{"snapshots_processed", strconv.Itoa(summary.SnapshotsProcessed)},
		{"snapshots_failed", strconv.Itoa(summary.SnapshotsFailed)},
		{"records_added", strconv.Itoa(summary.RecordsAdded)},
		{"records_deleted", strconv.Itoa(summary.RecordsDeleted)},
		{"duplicates_removed", strconv.Itoa(summary.DuplicatesRemoved)},
	}
	for _, row := range rows {
		if err := w.Write([]string{row[0], row[1]}); err != nil {
			return err
		}
	}
	for _, source := range sortedSourceNames(summary.Sources) {
		if err := w.Write([]string{"source_" + source, strconv.Itoa(summary.Sources[source])}); err != nil {
			return err
		}
	}
	return nil
}
