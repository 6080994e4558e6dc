package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewCacheDocument tests that a fresh document is schema-complete.
func TestNewCacheDocument(t *testing.T) {
	doc := NewCacheDocument()
	assert.NotNil(t, doc.Exercise)
	assert.NotNil(t, doc.Weight)
	assert.NotNil(t, doc.VO2Max)
	assert.NotNil(t, doc.ProcessedFiles)
	assert.Zero(t, doc.TotalRecords())
}

// TestNormalizeOlderCacheFile tests that a document decoded from an older
// cache file gains empty sequences for categories it predates.
func TestNormalizeOlderCacheFile(t *testing.T) {
	var doc CacheDocument
	require.NoError(t, json.Unmarshal([]byte(`{"exercise": [{"type": "Running", "duration_minutes": 45}]}`), &doc))
	assert.Nil(t, doc.Glucose)

	doc.Normalize()
	assert.NotNil(t, doc.Glucose)
	assert.NotNil(t, doc.BloodPressure)
	assert.Len(t, doc.Exercise, 1)
}

// TestMarkProcessed tests processed-file bookkeeping.
func TestMarkProcessed(t *testing.T) {
	doc := NewCacheDocument()
	assert.False(t, doc.HasProcessed("a.json"))

	doc.MarkProcessed("a.json")
	assert.True(t, doc.HasProcessed("a.json"))

	// Marking twice does not duplicate the entry.
	doc.MarkProcessed("a.json")
	assert.Len(t, doc.ProcessedFiles, 1)
}

// TestCategoryCounts tests per-category and total record counts.
func TestCategoryCounts(t *testing.T) {
	doc := NewCacheDocument()
	doc.Exercise = append(doc.Exercise, ExerciseRecord{Type: "Running"})
	doc.Weight = append(doc.Weight, WeightRecord{Kg: 81.5}, WeightRecord{Kg: 81.2})

	counts := doc.CategoryCounts()
	assert.Equal(t, 1, counts["exercise"])
	assert.Equal(t, 2, counts["weight"])
	assert.Zero(t, counts["sleep"])
	assert.Equal(t, 3, doc.TotalRecords())
}

// TestCacheDocumentRoundTrip tests that the persisted form decodes back to
// the same record data.
func TestCacheDocumentRoundTrip(t *testing.T) {
	hr := 132.0
	doc := NewCacheDocument()
	doc.Exercise = append(doc.Exercise, ExerciseRecord{
		SessionID:   "s1",
		Timestamp:   time.Date(2026, 8, 19, 10, 0, 0, 0, time.UTC),
		Type:        "Running",
		DurationMin: 45,
		AvgHR:       &hr,
		PAI:         21.3,
		Zone:        ZoneThreshold,
	})
	doc.MarkProcessed("health_data_full_20260819.json")

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded CacheDocument
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Exercise, 1)
	assert.Equal(t, doc.Exercise[0], decoded.Exercise[0])
	assert.True(t, decoded.HasProcessed("health_data_full_20260819.json"))
}

// TestDayOf tests the calendar-day grouping key.
func TestDayOf(t *testing.T) {
	ts := time.Date(2026, 8, 19, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "2026-08-19", DayOf(ts))
}
