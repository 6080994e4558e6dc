package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lw2die/vitalis/schema"
)

// TestHealthspanStatus tests the index reporting bands.
func TestHealthspanStatus(t *testing.T) {
	assert.Equal(t, "excellent", healthspanStatus(85))
	assert.Equal(t, "good", healthspanStatus(70))
	assert.Equal(t, "acceptable", healthspanStatus(55))
	assert.Equal(t, "needs improvement", healthspanStatus(54))
}

// TestFitnessScore tests the fitness sub-score bands.
func TestFitnessScore(t *testing.T) {
	cfg := testConfig()

	// PAI well over target, fresh balance, excellent VO2max.
	strong := &schema.Metrics{
		WeeklyPAI: 150,
		Load:      schema.TrainingLoad{TSB: 0},
		VO2Max:    36,
	}
	assert.Equal(t, 100, fitnessScore(strong, cfg))

	// Barely any training, deep fatigue, no VO2max estimate.
	weak := &schema.Metrics{
		WeeklyPAI: 10,
		Load:      schema.TrainingLoad{TSB: -40},
		VO2Max:    0,
	}
	assert.Equal(t, 30, fitnessScore(weak, cfg))
}

// TestComputeHealthspanNeutral tests that an empty cache lands every
// dimension in its neutral band, not at zero.
func TestComputeHealthspanNeutral(t *testing.T) {
	cfg := testConfig()
	m := &schema.Metrics{}

	score := ComputeHealthspan(m, cfg)
	assert.Equal(t, 50, score.Fitness)
	assert.Equal(t, 45, score.Body)
	assert.Equal(t, 55, score.Recovery)
	assert.Equal(t, 75, score.Metabolic)
	assert.Equal(t, 50, score.Functional)

	// Weighted composite: 50*.3 + 45*.2 + 55*.2 + 75*.2 + 50*.1 = 55.
	assert.Equal(t, 55, score.Index)
	assert.Equal(t, "acceptable", score.Status)
}

// TestComputeHealthspanCustomWeights tests that the weight map drives the
// composite.
func TestComputeHealthspanCustomWeights(t *testing.T) {
	cfg := testConfig()
	cfg.ComputedWeights = map[schema.SubScore]float64{
		schema.SubScoreFitness:    1.0,
		schema.SubScoreBody:       0,
		schema.SubScoreRecovery:   0,
		schema.SubScoreMetabolic:  0,
		schema.SubScoreFunctional: 0,
	}

	m := &schema.Metrics{WeeklyPAI: 150, Load: schema.TrainingLoad{TSB: 0}, VO2Max: 36}
	score := ComputeHealthspan(m, cfg)
	assert.Equal(t, score.Fitness, score.Index)
}

// TestFunctionalScore tests the daily-step bands.
func TestFunctionalScore(t *testing.T) {
	tests := []struct {
		name     string
		steps    *float64
		expected int
	}{
		{"no data", nil, 50},
		{"sedentary", fptr(2000), 30},
		{"moderate", fptr(8000), 65},
		{"active", fptr(11000), 80},
		{"very active", fptr(16000), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, functionalScore(&schema.Metrics{AvgSteps: tt.steps}))
		})
	}
}

// TestComputeLongevityScore tests the simple composite.
func TestComputeLongevityScore(t *testing.T) {
	cfg := testConfig()

	// Weight on target, strong activity, high VO2max, solid sleep.
	best := &schema.Metrics{
		CurrentWeight: fptr(80),
		WeeklyPAI:     150,
		VO2Max:        36,
		AvgSleepHours: fptr(7.5),
	}
	assert.Equal(t, 100, ComputeLongevityScore(best, cfg))

	// No weight data, minimal activity.
	sparse := &schema.Metrics{WeeklyPAI: 10}
	assert.Equal(t, 23, ComputeLongevityScore(sparse, cfg))
}

// TestComputeRecommendations tests the priority ladder.
func TestComputeRecommendations(t *testing.T) {
	cfg := testConfig()

	// Fitness deficit produces a high-priority suggestion.
	behind := &schema.Metrics{
		WeeklyPAI:  40,
		Healthspan: schema.HealthspanScore{Fitness: 50, Body: 90, Recovery: 90, Index: 60},
	}
	recs := ComputeRecommendations(behind, cfg)
	assert.NotEmpty(t, recs)
	assert.Equal(t, schema.PriorityHigh, recs[0].Priority)

	// Excellent standing produces the maintenance suggestion.
	excellent := &schema.Metrics{
		WeeklyPAI:  150,
		Healthspan: schema.HealthspanScore{Fitness: 90, Body: 90, Recovery: 90, Index: 90},
	}
	recs = ComputeRecommendations(excellent, cfg)
	assert.NotEmpty(t, recs)
	assert.Equal(t, schema.PriorityLow, recs[0].Priority)

	// When no rule fires there is always a fallback suggestion.
	quiet := &schema.Metrics{
		WeeklyPAI:  150,
		Healthspan: schema.HealthspanScore{Fitness: 90, Body: 90, Recovery: 90, Index: 80},
	}
	recs = ComputeRecommendations(quiet, cfg)
	assert.Len(t, recs, 1)
	assert.Equal(t, schema.PriorityLow, recs[0].Priority)
}
