package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lw2die/vitalis/schema"
)

// TestApplyDeletions tests record removal by session and record ID across
// categories.
func TestApplyDeletions(t *testing.T) {
	doc := schema.NewCacheDocument()
	doc.Exercise = []schema.ExerciseRecord{
		{SessionID: "s1", Timestamp: day(t, "2026-08-19")},
		{SessionID: "s2", Timestamp: day(t, "2026-08-20")},
	}
	doc.Weight = []schema.WeightRecord{
		{RecordID: "w1", Timestamp: day(t, "2026-08-19"), Kg: 81.5},
	}
	doc.Glucose = []schema.GlucoseRecord{
		{RecordID: "g1", Timestamp: day(t, "2026-08-19"), MgDl: 95},
	}

	removed := ApplyDeletions(doc, []string{"s1", "w1", "does-not-exist"})
	assert.Equal(t, 2, removed)

	assert.Len(t, doc.Exercise, 1)
	assert.Equal(t, "s2", doc.Exercise[0].SessionID)
	assert.Empty(t, doc.Weight)
	assert.Len(t, doc.Glucose, 1)
}

// TestApplyDeletionsNoIDs tests that empty or blank ID lists are no-ops.
func TestApplyDeletionsNoIDs(t *testing.T) {
	doc := schema.NewCacheDocument()
	doc.Exercise = []schema.ExerciseRecord{{SessionID: "s1"}}

	assert.Zero(t, ApplyDeletions(doc, nil))
	assert.Zero(t, ApplyDeletions(doc, []string{""}))
	assert.Len(t, doc.Exercise, 1)
}

// TestApplyDeletionsKeepsBlankIDs tests that records without an ID are never
// matched by deletion requests.
func TestApplyDeletionsKeepsBlankIDs(t *testing.T) {
	doc := schema.NewCacheDocument()
	doc.Weight = []schema.WeightRecord{
		{RecordID: "", Timestamp: day(t, "2026-08-19"), Kg: 80},
	}

	assert.Zero(t, ApplyDeletions(doc, []string{"w1"}))
	assert.Len(t, doc.Weight, 1)
}
