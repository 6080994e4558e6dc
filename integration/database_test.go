//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestVitalisWithMySQL tests the vitalis CLI with a MySQL history backend.
func TestVitalisWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "vitalis",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/vitalis?parseTime=true", host, port.Port())
	runHistoryCycle(t, "mysql", connStr)
}

// TestVitalisWithPostgres tests the vitalis CLI with a PostgreSQL history backend.
func TestVitalisWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runHistoryCycle(t, "postgresql", connStr)
}

// runHistoryCycle drives a full ingestion run against the given history
// backend and checks the history commands afterwards.
func runHistoryCycle(t *testing.T, backend, connStr string) {
	t.Helper()

	// Set environment variables
	_ = os.Setenv("VITALIS_HISTORY_BACKEND", backend)
	_ = os.Setenv("VITALIS_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("VITALIS_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("VITALIS_HISTORY_DB_CONNECT") }()

	dir := t.TempDir()
	writeSampleSnapshot(t, dir, "health_data_full_20260820.json")

	// Run vitalis history clear
	require.NoError(t, runVitalisCommand(t, dir, "history", "clear"))

	// Run one full processing cycle (records a run)
	require.NoError(t, runVitalisCommand(t, dir, "run"))

	// Run vitalis history status
	require.NoError(t, runVitalisCommand(t, dir, "history", "status"))

	// Run vitalis history export
	require.NoError(t, runVitalisCommand(t, dir, "history", "export", "--output-file", "history-data.parquet"))
}
