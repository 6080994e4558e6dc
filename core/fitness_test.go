package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lw2die/vitalis/schema"
)

// TestEstimateVO2MaxNoData tests that no usable sessions yields zero.
func TestEstimateVO2MaxNoData(t *testing.T) {
	cfg := testConfig()
	asOf := day(t, "2026-08-20")

	assert.Zero(t, EstimateVO2Max(nil, asOf, cfg))

	// Sessions without heart-rate data do not count.
	noHR := []schema.ExerciseRecord{{Timestamp: asOf, DurationMin: 45}}
	assert.Zero(t, EstimateVO2Max(noHR, asOf, cfg))

	// Sessions older than the lookback window do not count.
	old := []schema.ExerciseRecord{{Timestamp: day(t, "2026-06-01"), AvgHR: fptr(130), DurationMin: 30}}
	assert.Zero(t, EstimateVO2Max(old, asOf, cfg))
}

// TestEstimateVO2MaxIntense tests the estimate from a high-intensity session.
// With rest 50, max 150 and age 45: base 45.9, age-adjusted 36.72, intensity
// factor 0.98 at avg 130.
func TestEstimateVO2MaxIntense(t *testing.T) {
	cfg := testConfig()
	asOf := day(t, "2026-08-20")

	exercise := []schema.ExerciseRecord{
		{Timestamp: day(t, "2026-08-15"), AvgHR: fptr(130), DurationMin: 20},
	}

	assert.InDelta(t, 36.0, EstimateVO2Max(exercise, asOf, cfg), 0.05)
}

// TestEstimateVO2MaxFallback tests that low-intensity sessions are used when
// no high-intensity candidate exists, yielding a lower figure.
func TestEstimateVO2MaxFallback(t *testing.T) {
	cfg := testConfig()
	asOf := day(t, "2026-08-20")

	easy := []schema.ExerciseRecord{
		{Timestamp: day(t, "2026-08-15"), AvgHR: fptr(100), DurationMin: 30},
	}

	assert.InDelta(t, 34.9, EstimateVO2Max(easy, asOf, cfg), 0.05)
}

// TestEstimateVO2MaxPrefersIntense tests that short intense bursts below the
// duration floor fall back to the general pool.
func TestEstimateVO2MaxPrefersIntense(t *testing.T) {
	cfg := testConfig()
	asOf := day(t, "2026-08-20")

	exercise := []schema.ExerciseRecord{
		{Timestamp: day(t, "2026-08-15"), AvgHR: fptr(100), DurationMin: 60},
		{Timestamp: day(t, "2026-08-16"), AvgHR: fptr(140), DurationMin: 30},
	}
	withIntense := EstimateVO2Max(exercise, asOf, cfg)

	// Remove the qualifying session; the estimate drops to the easy pool.
	easyOnly := exercise[:1]
	assert.Greater(t, withIntense, EstimateVO2Max(easyOnly, asOf, cfg))
}

// TestResolveVO2Max tests that measured readings beat the estimate.
func TestResolveVO2Max(t *testing.T) {
	cfg := testConfig()
	asOf := day(t, "2026-08-20")

	doc := schema.NewCacheDocument()
	doc.Exercise = []schema.ExerciseRecord{
		{Timestamp: day(t, "2026-08-15"), AvgHR: fptr(130), DurationMin: 20},
	}

	// No measured record: heart-rate estimate.
	value, measured := ResolveVO2Max(doc, asOf, cfg)
	assert.False(t, measured)
	assert.InDelta(t, 36.0, value, 0.05)

	// A measured record wins, and the most recent one is used.
	doc.VO2Max = []schema.VO2MaxRecord{
		{RecordID: "v1", Timestamp: day(t, "2026-08-01"), Value: 39.0},
		{RecordID: "v2", Timestamp: day(t, "2026-08-10"), Value: 41.2},
	}
	value, measured = ResolveVO2Max(doc, asOf, cfg)
	assert.True(t, measured)
	assert.InDelta(t, 41.2, value, 0.05)
}

// TestResolveVO2MaxIgnoresZeroReadings tests that zero-valued measured
// records do not shadow the estimate.
func TestResolveVO2MaxIgnoresZeroReadings(t *testing.T) {
	cfg := testConfig()
	asOf := day(t, "2026-08-20")

	doc := schema.NewCacheDocument()
	doc.VO2Max = []schema.VO2MaxRecord{{RecordID: "v1", Timestamp: asOf, Value: 0}}

	value, measured := ResolveVO2Max(doc, asOf, cfg)
	assert.False(t, measured)
	assert.Zero(t, value)
}
