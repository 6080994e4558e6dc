package iocache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lw2die/vitalis/schema"
)

// TestFileCacheStoreLoadMissing tests that a missing file yields a fresh
// empty document.
func TestFileCacheStoreLoadMissing(t *testing.T) {
	store := NewFileCacheStore(filepath.Join(t.TempDir(), "health_cache.json"))

	doc, err := store.Load()
	require.NoError(t, err)
	assert.NotNil(t, doc.Exercise)
	assert.Zero(t, doc.TotalRecords())
}

// TestFileCacheStoreLoadMalformed tests that a corrupted cache file starts
// fresh instead of wedging the pipeline.
func TestFileCacheStoreLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "health_cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken json"), 0o644))

	doc, err := NewFileCacheStore(path).Load()
	require.NoError(t, err)
	assert.Zero(t, doc.TotalRecords())
}

// TestFileCacheStoreRoundTrip tests persist-then-load of a populated
// document.
func TestFileCacheStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "health_cache.json")
	store := NewFileCacheStore(path)

	doc := schema.NewCacheDocument()
	doc.Weight = append(doc.Weight, schema.WeightRecord{
		RecordID:  "w1",
		Timestamp: time.Date(2026, 8, 19, 8, 0, 0, 0, time.UTC),
		Kg:        81.5,
	})
	doc.MarkProcessed("health_data_full_20260819.json")

	require.NoError(t, store.Persist(doc))
	assert.False(t, doc.UpdatedAt.IsZero())

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Weight, 1)
	assert.Equal(t, doc.Weight[0], loaded.Weight[0])
	assert.True(t, loaded.HasProcessed("health_data_full_20260819.json"))

	// Older categories absent from the file are normalized to empty.
	assert.NotNil(t, loaded.Glucose)
}

// TestFileCacheStorePersistAtomic tests that the write goes through a temp
// file and leaves no stray temp files behind.
func TestFileCacheStorePersistAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "health_cache.json")
	store := NewFileCacheStore(path)

	require.NoError(t, store.Persist(schema.NewCacheDocument()))
	require.NoError(t, store.Persist(schema.NewCacheDocument()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "health_cache.json", entries[0].Name())
}

// TestFileCacheStorePersistCreatesDir tests that a nested cache path is
// created on demand.
func TestFileCacheStorePersistCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "health_cache.json")
	require.NoError(t, NewFileCacheStore(path).Persist(schema.NewCacheDocument()))
	assert.FileExists(t, path)
}

// TestFileCacheStoreGetStatus tests status reporting before and after a
// persist.
func TestFileCacheStoreGetStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "health_cache.json")
	store := NewFileCacheStore(path)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Exists)
	assert.Equal(t, path, status.Path)

	doc := schema.NewCacheDocument()
	doc.Exercise = append(doc.Exercise, schema.ExerciseRecord{Type: "Running", DurationMin: 45})
	doc.MarkProcessed("health_data_full_20260819.json")
	require.NoError(t, store.Persist(doc))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Exists)
	assert.Positive(t, status.SizeBytes)
	assert.Equal(t, 1, status.ProcessedFiles)
	assert.Equal(t, 1, status.TotalRecords)
	assert.Equal(t, 1, status.Counts["exercise"])
}
