package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lw2die/vitalis/schema"
)

// tsAt parses a full timestamp for tests that care about time of day.
func tsAt(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02T15:04:05", s)
	require.NoError(t, err)
	return ts
}

// TestMmolToMgDl tests the unit conversion.
func TestMmolToMgDl(t *testing.T) {
	assert.InDelta(t, 90.0, MmolToMgDl(5.0), 0.05)
	assert.InDelta(t, 99.9, MmolToMgDl(5.55), 0.05)
	assert.Zero(t, MmolToMgDl(0))
}

// TestComputeGlucoseSummary tests the fasting/postprandial split and the
// long-range GMI estimate.
func TestComputeGlucoseSummary(t *testing.T) {
	asOf := tsAt(t, "2026-08-20T12:00:00")

	glucose := []schema.GlucoseRecord{
		// Morning sample inside the week: fasting.
		{Timestamp: tsAt(t, "2026-08-17T08:00:00"), MgDl: 95},
		// Afternoon sample inside the week: postprandial.
		{Timestamp: tsAt(t, "2026-08-18T14:00:00"), MgDl: 130},
		// Two months back: GMI window only.
		{Timestamp: tsAt(t, "2026-06-21T09:00:00"), MgDl: 100},
		// Future and non-positive samples are ignored.
		{Timestamp: tsAt(t, "2026-08-21T08:00:00"), MgDl: 110},
		{Timestamp: tsAt(t, "2026-08-18T09:00:00"), MgDl: 0},
	}

	summary := ComputeGlucoseSummary(glucose, asOf)

	require.NotNil(t, summary.Fasting)
	assert.InDelta(t, 95.0, *summary.Fasting, 0.05)

	require.NotNil(t, summary.Postprandial)
	assert.InDelta(t, 130.0, *summary.Postprandial, 0.05)

	assert.Equal(t, 3, summary.Samples)
	require.NotNil(t, summary.MeanMgDl)
	assert.InDelta(t, 108.3, *summary.MeanMgDl, 0.05)

	// GMI = 3.31 + 0.02392 * mean, over the unrounded mean.
	require.NotNil(t, summary.GMI)
	assert.InDelta(t, 5.9, *summary.GMI, 0.05)
}

// TestComputeGlucoseSummaryEmpty tests that no samples yields nil pointers.
func TestComputeGlucoseSummaryEmpty(t *testing.T) {
	summary := ComputeGlucoseSummary(nil, tsAt(t, "2026-08-20T12:00:00"))
	assert.Nil(t, summary.Fasting)
	assert.Nil(t, summary.Postprandial)
	assert.Nil(t, summary.GMI)
	assert.Nil(t, summary.MeanMgDl)
	assert.Zero(t, summary.Samples)
}

// TestComputeGlucoseSummaryBoundary tests the 10:00 fasting boundary.
func TestComputeGlucoseSummaryBoundary(t *testing.T) {
	asOf := tsAt(t, "2026-08-20T12:00:00")

	glucose := []schema.GlucoseRecord{
		{Timestamp: tsAt(t, "2026-08-19T09:59:00"), MgDl: 90},
		{Timestamp: tsAt(t, "2026-08-19T10:00:00"), MgDl: 140},
	}

	summary := ComputeGlucoseSummary(glucose, asOf)
	require.NotNil(t, summary.Fasting)
	require.NotNil(t, summary.Postprandial)
	assert.InDelta(t, 90.0, *summary.Fasting, 0.05)
	assert.InDelta(t, 140.0, *summary.Postprandial, 0.05)
}
