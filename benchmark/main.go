// Package main provides a performance benchmarking tool for the vitalis CLI.
// It measures execution times across synthetic snapshot datasets of different
// sizes and command types, running each test multiple times, treating the
// first successful run as cold and averaging the rest as warm, generating CSV
// output for performance analysis and documentation.
//
// Prerequisites:
// - vitalis binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic datasets are generated
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-history average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset       string
	Command       string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	NoHistoryRuns int
	HistoryRuns   int
	Datasets      map[string]int // name -> days of data
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:       workDir,
		Timeout:       5 * time.Minute,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		Datasets: map[string]int{
			"month":    30,
			"halfyear": 180,
			"twoyears": 720,
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the vitalis binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if vitalis is available
	if _, err := exec.LookPath("vitalis"); err != nil {
		return fmt.Errorf("vitalis binary not found in PATH")
	}

	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work directory %s: %w", config.WorkDir, err)
	}

	return nil
}

// runBenchmarks executes all benchmark tests across configured dataset sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, no-history: %d runs, history: %d runs\n",
		len(config.Datasets), config.Timeout, config.NoHistoryRuns, config.HistoryRuns)

	for _, name := range []string{"month", "halfyear", "twoyears"} {
		days := config.Datasets[name]
		fmt.Printf("Benchmarking %s (%d days)\n", name, days)

		inputDir := filepath.Join(config.WorkDir, name)
		if err := generateDataset(inputDir, days); err != nil {
			fmt.Printf("  Failed to generate dataset: %v\n", err)
			continue
		}

		// Ingestion: snapshots are consumed on success, so regenerate per run
		result := runBenchmarkSuite(config, name, inputDir, "run", "snapshot ingestion", "", days)
		results = append(results, result)

		// Reports run against the populated cache left by ingestion
		for _, cmd := range []string{"metrics", "healthspan", "timeseries"} {
			desc := fmt.Sprintf("%s report", cmd)
			result = runBenchmarkSuite(config, name, inputDir, cmd, desc, "", 0)
			results = append(results, result)
		}
	}

	return results
}

// runBenchmarkSuite runs both no-history and history benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, dataset, inputDir, command, description, extraArgs string, regenDays int) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, dataset)

	// Helper to run a benchmark phase
	runPhase := func(historyBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, inputDir, command, extraArgs, historyBackend, numRuns, regenDays)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-history runs
	_, noHistoryAvg := runPhase("none", config.NoHistoryRuns, "No-history")

	// Phase 2: History runs
	coldTime, warmAvg := runPhase("sqlite", config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:       dataset,
		Command:       command,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a vitalis command multiple times with the specified history backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, inputDir, command, extraArgs, historyBackend string, numRuns, regenDays int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, "--input-dir", inputDir, "--history-backend", historyBackend, "--emoji", "no", "--color", "no"}
	if extraArgs != "" {
		args = append(args, parseArgs(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		if regenDays > 0 {
			if err := generateDataset(inputDir, regenDays); err != nil {
				fmt.Printf("  Failed to regenerate dataset: %v\n", err)
				return
			}
		}

		start := time.Now()

		cmd := exec.Command("vitalis", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// generateDataset writes one full snapshot file per day into inputDir,
// clearing any earlier cache and archive so every ingestion run starts cold.
func generateDataset(inputDir string, days int) error {
	if err := os.RemoveAll(inputDir); err != nil {
		return err
	}
	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		return err
	}

	base := time.Now().AddDate(0, 0, -days)
	for d := 0; d < days; d++ {
		day := base.AddDate(0, 0, d)
		stamp := day.Format("20060102")

		avgHR := 118.0
		payload := map[string]any{
			"exercise_sessions": map[string]any{"data": []map[string]any{{
				"session_id":       fmt.Sprintf("bench-ex-%s", stamp),
				"start_time":       day.Format("2006-01-02") + "T07:30:00",
				"exercise_type":    85,
				"duration_minutes": 45.0,
				"avg_heart_rate":   avgHR,
				"distance_meters":  7500.0,
				"source":           "bench",
			}}},
			"weight_records": map[string]any{"data": []map[string]any{{
				"record_id": fmt.Sprintf("bench-w-%s", stamp),
				"timestamp": day.Format("2006-01-02") + "T08:00:00",
				"weight_kg": 81.5,
				"source":    "bench",
			}}},
			"steps_records": map[string]any{"data": []map[string]any{{
				"record_id":  fmt.Sprintf("bench-s-%s", stamp),
				"start_time": day.Format("2006-01-02") + "T12:00:00",
				"count":      9000,
				"source":     "bench",
			}}},
			"heart_rate_records": map[string]any{"data": []map[string]any{{
				"record_id":  fmt.Sprintf("bench-hr-%s", stamp),
				"start_time": day.Format("2006-01-02") + "T03:00:00",
				"min_bpm":    52.0,
				"avg_bpm":    58.0,
				"max_bpm":    70.0,
				"source":     "bench",
			}}},
		}

		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("health_data_full_%s.json", stamp)
		if err := os.WriteFile(filepath.Join(inputDir, name), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func parseArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range argsStr {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes && current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			} else if inQuotes {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	if command == "run" {
		return strings.Contains(outputStr, "Snapshots:") ||
			strings.Contains(outputStr, "No new snapshots found")
	}
	return strings.Contains(outputStr, "Report completed in")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/vitalis_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "cmd", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "run", "Snapshot Ingestion:")
	printCommandSummary(results, "metrics", "Metrics Report:")
	printCommandSummary(results, "healthspan", "Healthspan Report:")
	printCommandSummary(results, "timeseries", "Timeseries Report:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: No-history: %s, Cold: %s, Warm: %s\n", result.Dataset, result.NoHistoryTime, result.ColdTime, result.WarmTime)
		}
	}
}
