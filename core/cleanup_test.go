package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lw2die/vitalis/schema"
)

// TestCleanupExercise tests per-day session deduplication.
func TestCleanupExercise(t *testing.T) {
	doc := schema.NewCacheDocument()
	doc.Exercise = []schema.ExerciseRecord{
		// Two sync paths reported the same workout.
		{SessionID: "a", Timestamp: day(t, "2026-08-19"), Type: "Running", DurationMin: 20, PAI: 5},
		{SessionID: "b", Timestamp: day(t, "2026-08-19"), Type: "Running", DurationMin: 45, PAI: 8},
		// A clean single-session day passes through.
		{SessionID: "c", Timestamp: day(t, "2026-08-20"), Type: "Walking", DurationMin: 30, PAI: 3},
	}

	removed := CleanupExercise(doc)
	assert.Equal(t, 1, removed)
	require.Len(t, doc.Exercise, 2)

	// The longer session survives.
	assert.Equal(t, "b", doc.Exercise[0].SessionID)
	assert.Equal(t, "c", doc.Exercise[1].SessionID)
}

// TestCleanupExerciseIdempotent tests that a second pass removes nothing.
func TestCleanupExerciseIdempotent(t *testing.T) {
	doc := schema.NewCacheDocument()
	doc.Exercise = []schema.ExerciseRecord{
		{SessionID: "a", Timestamp: day(t, "2026-08-19"), DurationMin: 20, PAI: 5},
		{SessionID: "b", Timestamp: day(t, "2026-08-19"), DurationMin: 45, PAI: 8},
	}

	assert.Equal(t, 1, CleanupExercise(doc))
	assert.Equal(t, 0, CleanupExercise(doc))
	assert.Len(t, doc.Exercise, 1)
}

// TestCleanupExerciseTieBreak tests that equal durations break on PAI.
func TestCleanupExerciseTieBreak(t *testing.T) {
	doc := schema.NewCacheDocument()
	doc.Exercise = []schema.ExerciseRecord{
		{SessionID: "low", Timestamp: day(t, "2026-08-19"), DurationMin: 30, PAI: 4},
		{SessionID: "high", Timestamp: day(t, "2026-08-19"), DurationMin: 30, PAI: 9},
	}

	assert.Equal(t, 1, CleanupExercise(doc))
	require.Len(t, doc.Exercise, 1)
	assert.Equal(t, "high", doc.Exercise[0].SessionID)
}

// TestCleanupExerciseEmpty tests the empty cache.
func TestCleanupExerciseEmpty(t *testing.T) {
	doc := schema.NewCacheDocument()
	assert.Equal(t, 0, CleanupExercise(doc))
}

// TestCleanupDailyMetrics tests first-of-day collapse across the daily body
// and vitals categories.
func TestCleanupDailyMetrics(t *testing.T) {
	doc := schema.NewCacheDocument()
	doc.BodyFat = []schema.BodyFatRecord{
		{RecordID: "f1", Timestamp: day(t, "2026-08-19"), Percent: 18.5},
		{RecordID: "f2", Timestamp: day(t, "2026-08-19"), Percent: 18.7}, // second sync, dropped
		{RecordID: "f3", Timestamp: day(t, "2026-08-20"), Percent: 18.4},
	}
	doc.SpO2 = []schema.SpO2Record{
		{RecordID: "o1", Timestamp: day(t, "2026-08-19"), Percent: 97},
		{RecordID: "o2", Timestamp: day(t, "2026-08-19"), Percent: 98},
	}
	doc.VO2Max = []schema.VO2MaxRecord{
		{RecordID: "v1", Timestamp: day(t, "2026-08-19"), Value: 41.2},
	}

	assert.Equal(t, 2, CleanupDailyMetrics(doc))

	require.Len(t, doc.BodyFat, 2)
	assert.Equal(t, "f1", doc.BodyFat[0].RecordID)
	assert.Equal(t, "f3", doc.BodyFat[1].RecordID)
	require.Len(t, doc.SpO2, 1)
	assert.Equal(t, "o1", doc.SpO2[0].RecordID)
	require.Len(t, doc.VO2Max, 1)

	// Running again changes nothing.
	assert.Equal(t, 0, CleanupDailyMetrics(doc))
}

// TestCleanupWeight tests same-day averaging.
func TestCleanupWeight(t *testing.T) {
	doc := schema.NewCacheDocument()
	doc.Weight = []schema.WeightRecord{
		{RecordID: "w1", Timestamp: day(t, "2026-08-19"), Kg: 82.3},
		{RecordID: "w2", Timestamp: day(t, "2026-08-19"), Kg: 81.9},
		{RecordID: "w3", Timestamp: day(t, "2026-08-20"), Kg: 81.5},
	}

	assert.Equal(t, 1, CleanupWeight(doc))
	require.Len(t, doc.Weight, 2)
	assert.Equal(t, "w1", doc.Weight[0].RecordID)
	assert.InDelta(t, 82.1, doc.Weight[0].Kg, 0.001)
	assert.InDelta(t, 81.5, doc.Weight[1].Kg, 0.001)

	// Idempotent: a second pass finds nothing to collapse.
	assert.Equal(t, 0, CleanupWeight(doc))
}
