package iocache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
)

// FileCacheStore persists the record cache as a single JSON document on disk.
type FileCacheStore struct {
	path string
}

var _ contract.CacheStore = &FileCacheStore{} // Compile-time check

// NewFileCacheStore creates a cache store backed by the given file path.
func NewFileCacheStore(path string) *FileCacheStore {
	return &FileCacheStore{path: path}
}

// Path returns the cache file path.
func (fs *FileCacheStore) Path() string {
	return fs.path
}

// Load reads the persisted cache document. A missing file yields a fresh
// empty document. A malformed file is treated the same way, with a warning,
// so one corrupted write never wedges the pipeline.
func (fs *FileCacheStore) Load() (*schema.CacheDocument, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return schema.NewCacheDocument(), nil
		}
		return nil, fmt.Errorf("failed to read cache file %q: %w", fs.path, err)
	}

	doc := schema.NewCacheDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		contract.LogWarn(fmt.Sprintf("cache file %q is malformed, starting fresh", fs.path), err)
		return schema.NewCacheDocument(), nil
	}
	doc.Normalize()
	return doc, nil
}

// Persist writes the full document atomically: the JSON goes to a temp file
// in the same directory, which is then renamed over the target. A crash
// mid-write leaves the previous on-disk version intact.
func (fs *FileCacheStore) Persist(doc *schema.CacheDocument) error {
	doc.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache document: %w", err)
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(fs.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}

	if err := os.Rename(tmpName, fs.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace cache file %q: %w", fs.path, err)
	}
	return nil
}

// GetStatus returns status information about the cache file.
func (fs *FileCacheStore) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{Path: fs.path}

	info, err := os.Stat(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return status, nil
		}
		return status, fmt.Errorf("failed to stat cache file %q: %w", fs.path, err)
	}
	status.Exists = true
	status.SizeBytes = info.Size()

	doc, err := fs.Load()
	if err != nil {
		return status, err
	}
	status.UpdatedAt = doc.UpdatedAt
	status.ProcessedFiles = len(doc.ProcessedFiles)
	status.TotalRecords = doc.TotalRecords()
	status.Counts = doc.CategoryCounts()
	return status, nil
}
