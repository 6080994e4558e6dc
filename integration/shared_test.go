//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedVitalisPath holds the path to a shared vitalis binary built once for all tests.
	sharedVitalisPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getVitalisBinary returns the path to the vitalis binary, building it once if needed.
func getVitalisBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "vitalis-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		vitalisPath := filepath.Join(tempDir, "vitalis")
		buildCmd := exec.Command("go", "build", "-o", vitalisPath, "./cmd/vitalis")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build vitalis: %v", err))
		}

		sharedVitalisPath = vitalisPath
	})

	return sharedVitalisPath
}

// runVitalisCommand runs the shared binary in the given directory.
func runVitalisCommand(t *testing.T, dir string, args ...string) error {
	t.Helper()
	vitalisPath := getVitalisBinary()
	cmd := exec.Command(vitalisPath, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}

// writeSampleSnapshot drops a minimal full export into dir for ingestion tests.
func writeSampleSnapshot(t *testing.T, dir, name string) {
	t.Helper()
	payload := `{
  "exercise_sessions": {"data": [
    {"session_id": "s1", "start_time": "2026-08-20T10:00:00", "exercise_type_name": "Running",
     "duration_minutes": 45, "calories_burned": 500, "avg_heart_rate": 150, "max_heart_rate": 170, "source": "watch"}
  ]},
  "weight_records": {"data": [
    {"record_id": "w1", "timestamp": "2026-08-20T08:00:00", "weight_kg": 81.5, "source": "scale"}
  ]},
  "steps_records": {"data": [
    {"record_id": "st1", "start_time": "2026-08-20T00:00:00", "count": 9000, "source": "watch"}
  ]}
}`
	if err := os.WriteFile(filepath.Join(dir, name), []byte(payload), 0o644); err != nil {
		panic(fmt.Sprintf("failed to write sample snapshot: %v", err))
	}
}
