package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
)

// TestComputeLabScoresEmpty tests that an absent or empty panel yields nil.
func TestComputeLabScoresEmpty(t *testing.T) {
	cfg := testConfig()
	assert.Nil(t, ComputeLabScores(nil, nil, cfg))
	assert.Nil(t, ComputeLabScores(&schema.LabPanel{}, nil, cfg))
}

// TestComputeLabScoresOptimal tests that a panel at every optimal point
// scores 100 across the board. BMI 22 at 180 cm means 71.28 kg.
func TestComputeLabScoresOptimal(t *testing.T) {
	cfg := testConfig()
	panel := &schema.LabPanel{
		LDL:          fptr(70),
		HDL:          fptr(50),
		Triglyceride: fptr(100),
		Systolic:     fptr(120),
		Glucose:      fptr(85),
		HbA1c:        fptr(5.2),
		CRP:          fptr(0.3),
		Creatinine:   fptr(0.9),
		TSH:          fptr(1.5),
		FreeT4:       fptr(1.3),
		Testosterone: fptr(6.0),
	}

	scores := ComputeLabScores(panel, fptr(71.28), cfg)
	require.NotNil(t, scores)
	assert.InDelta(t, 100.0, scores.Cardio, 0.05)
	assert.InDelta(t, 100.0, scores.Metabolic, 0.5)
	assert.InDelta(t, 100.0, scores.Inflammation, 0.05)
	assert.InDelta(t, 100.0, scores.Hormone, 0.05)
	assert.InDelta(t, 100.0, scores.Longevity, 0.5)
}

// TestComputeLabScoresComposite tests the weighted composite identity.
func TestComputeLabScoresComposite(t *testing.T) {
	cfg := testConfig()
	panel := &schema.LabPanel{
		LDL:   fptr(125),
		HbA1c: fptr(5.8),
		CRP:   fptr(2.1),
		TSH:   fptr(3.2),
	}

	scores := ComputeLabScores(panel, fptr(80), cfg)
	require.NotNil(t, scores)

	expected := contract.RoundTo(
		0.42*scores.Cardio+0.28*scores.Metabolic+0.18*scores.Inflammation+0.12*scores.Hormone, 1)
	assert.Equal(t, expected, scores.Longevity)

	for _, s := range []float64{scores.Cardio, scores.Metabolic, scores.Inflammation, scores.Hormone} {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 100.0)
	}
}

// TestComputeLabScoresOrdering tests that a clearly worse panel scores lower.
func TestComputeLabScoresOrdering(t *testing.T) {
	cfg := testConfig()

	good := ComputeLabScores(&schema.LabPanel{
		LDL: fptr(80), HDL: fptr(55), Glucose: fptr(88), CRP: fptr(0.4),
	}, fptr(72), cfg)
	bad := ComputeLabScores(&schema.LabPanel{
		LDL: fptr(180), HDL: fptr(32), Glucose: fptr(130), CRP: fptr(8),
	}, fptr(95), cfg)

	require.NotNil(t, good)
	require.NotNil(t, bad)
	assert.Greater(t, good.Longevity, bad.Longevity)
}

// TestInflammationLabScoreCRPCap tests that one acute CRP spike cannot zero
// the score on its own.
func TestInflammationLabScoreCRPCap(t *testing.T) {
	score := inflammationLabScore(&schema.LabPanel{CRP: fptr(10), Creatinine: fptr(0.9)})
	assert.InDelta(t, 50.0, score, 0.05)
}

// TestMetabolicLabScoreWeightFallback tests that BMI uses the target weight
// when the cache has no weight data.
func TestMetabolicLabScoreWeightFallback(t *testing.T) {
	cfg := testConfig() // target 80 kg at 180 cm, BMI 24.7
	panel := &schema.LabPanel{Glucose: fptr(85), HbA1c: fptr(5.2)}

	withWeight := metabolicLabScore(panel, fptr(71.28), cfg)
	fallback := metabolicLabScore(panel, nil, cfg)
	assert.Greater(t, withWeight, fallback)
}
