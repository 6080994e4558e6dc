package core

import (
	"fmt"
	"math"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
)

// ComputeHealthspan derives the composite healthspan index from the current
// metrics. Each sub-score is banded 0-100 from the dimensions it owns;
// missing data lands in a neutral middle band rather than scoring zero. The
// index is the weighted sum under cfg.ComputedWeights, truncated to an
// integer.
func ComputeHealthspan(m *schema.Metrics, cfg *contract.Config) schema.HealthspanScore {
	score := schema.HealthspanScore{
		Fitness:    fitnessScore(m, cfg),
		Body:       bodyScore(m, cfg),
		Recovery:   recoveryScore(m, cfg),
		Metabolic:  metabolicScore(m),
		Functional: functionalScore(m),
	}

	weighted := float64(score.Fitness)*cfg.ComputedWeights[schema.SubScoreFitness] +
		float64(score.Body)*cfg.ComputedWeights[schema.SubScoreBody] +
		float64(score.Recovery)*cfg.ComputedWeights[schema.SubScoreRecovery] +
		float64(score.Metabolic)*cfg.ComputedWeights[schema.SubScoreMetabolic] +
		float64(score.Functional)*cfg.ComputedWeights[schema.SubScoreFunctional]

	score.Index = int(weighted)
	score.Status = healthspanStatus(score.Index)
	return score
}

// healthspanStatus maps the index to its reporting band.
func healthspanStatus(index int) string {
	switch {
	case index >= 85:
		return "excellent"
	case index >= 70:
		return "good"
	case index >= 55:
		return "acceptable"
	default:
		return "needs improvement"
	}
}

// fitnessScore bands weekly PAI, training stress balance and VO2max.
func fitnessScore(m *schema.Metrics, cfg *contract.Config) int {
	score := 0

	pai := m.WeeklyPAI
	target := cfg.WeeklyPAITarget
	switch {
	case pai >= 1.5*target:
		score += 40
	case pai >= target:
		score += 35
	case pai >= 0.75*target:
		score += 25
	case pai >= 0.5*target:
		score += 15
	default:
		score += 5
	}

	tsb := m.Load.TSB
	switch {
	case tsb >= cfg.TSBOptimalMin && tsb <= cfg.TSBOptimalMax:
		score += 30
	case tsb >= -20 && tsb < cfg.TSBOptimalMin:
		score += 25
	case tsb > cfg.TSBOptimalMax && tsb <= 25:
		score += 20
	case tsb >= -30 && tsb < -20:
		score += 15
	default:
		score += 10
	}

	switch {
	case m.VO2Max >= cfg.VO2MaxExcellent:
		score += 30
	case m.VO2Max >= cfg.VO2MaxGood:
		score += 25
	case m.VO2Max >= 27:
		score += 20
	case m.VO2Max > 0:
		score += 15
	default:
		score += 15 // no data
	}

	return capScore(score)
}

// bodyScore bands weight distance to target, body fat and lean mass.
func bodyScore(m *schema.Metrics, cfg *contract.Config) int {
	score := 0

	if m.CurrentWeight != nil {
		delta := math.Abs(*m.CurrentWeight - cfg.TargetWeightKg)
		switch {
		case delta <= 2:
			score += 35
		case delta <= 5:
			score += 28
		case delta <= 10:
			score += 20
		default:
			score += 10
		}
	} else {
		score += 15
	}

	if m.BodyFatPct != nil {
		switch {
		case *m.BodyFatPct < 15:
			score += 35
		case *m.BodyFatPct < 20:
			score += 28
		case *m.BodyFatPct < 25:
			score += 20
		default:
			score += 10
		}
	} else {
		score += 15
	}

	if m.LeanMassKg != nil {
		switch {
		case *m.LeanMassKg >= 55:
			score += 30
		case *m.LeanMassKg >= 50:
			score += 25
		case *m.LeanMassKg >= 45:
			score += 20
		default:
			score += 15
		}
	} else {
		score += 15
	}

	return capScore(score)
}

// recoveryScore bands sleep, resting heart rate and oxygen saturation.
func recoveryScore(m *schema.Metrics, _ *contract.Config) int {
	score := 0

	if m.AvgSleepHours != nil {
		switch {
		case *m.AvgSleepHours >= 7:
			score += 40
		case *m.AvgSleepHours >= 6:
			score += 32
		case *m.AvgSleepHours >= 5:
			score += 24
		default:
			score += 15
		}
	} else {
		score += 20
	}

	if m.AvgRestingHR != nil {
		switch {
		case *m.AvgRestingHR < 55:
			score += 35
		case *m.AvgRestingHR < 65:
			score += 30
		case *m.AvgRestingHR < 75:
			score += 22
		default:
			score += 15
		}
	} else {
		score += 20
	}

	if m.AvgSpO2 != nil {
		switch {
		case *m.AvgSpO2 >= 96:
			score += 25
		case *m.AvgSpO2 >= 94:
			score += 20
		case *m.AvgSpO2 >= 90:
			score += 15
		default:
			score += 10
		}
	} else {
		score += 15
	}

	return capScore(score)
}

// metabolicScore starts from a neutral base and adjusts on blood pressure.
func metabolicScore(m *schema.Metrics) int {
	score := 75

	if m.AvgSystolic != nil {
		switch {
		case *m.AvgSystolic < 120:
			score += 10
		case *m.AvgSystolic < 130:
			score += 5
		case *m.AvgSystolic >= 140:
			score -= 15
		}
	}

	return capScore(score)
}

// functionalScore bands average daily steps.
func functionalScore(m *schema.Metrics) int {
	if m.AvgSteps == nil {
		return 50
	}
	steps := *m.AvgSteps
	switch {
	case steps >= 15000:
		return 100
	case steps >= 12000:
		return 90
	case steps >= 10000:
		return 80
	case steps >= 7000:
		return 65
	case steps >= 5000:
		return 50
	default:
		return 30
	}
}

func capScore(s int) int {
	return min(s, 100)
}

// ComputeRecommendations derives actionable suggestions from the healthspan
// sub-scores and the metrics behind them.
func ComputeRecommendations(m *schema.Metrics, cfg *contract.Config) []schema.Recommendation {
	var recs []schema.Recommendation
	hs := m.Healthspan

	if hs.Fitness < 70 && m.WeeklyPAI < cfg.WeeklyPAITarget {
		deficit := cfg.WeeklyPAITarget - m.WeeklyPAI
		recs = append(recs, schema.Recommendation{
			Priority: schema.PriorityHigh,
			Text:     fmt.Sprintf("Weekly PAI is %.1f below target. Add moderate-to-vigorous sessions this week.", deficit),
		})
	}
	if hs.Body < 70 && m.BodyFatPct != nil && *m.BodyFatPct > 20 {
		recs = append(recs, schema.Recommendation{
			Priority: schema.PriorityHigh,
			Text:     fmt.Sprintf("Body fat at %.1f%%. Prioritize a moderate caloric deficit and strength training.", *m.BodyFatPct),
		})
	}
	if hs.Recovery < 70 && m.AvgSleepHours != nil && *m.AvgSleepHours < cfg.SleepTargetHours {
		recs = append(recs, schema.Recommendation{
			Priority: schema.PriorityHigh,
			Text:     fmt.Sprintf("Averaging %.1fh of sleep against a %.1fh target. Protect your sleep window.", *m.AvgSleepHours, cfg.SleepTargetHours),
		})
	}

	if hs.Fitness >= 70 && hs.Fitness < 85 {
		recs = append(recs, schema.Recommendation{
			Priority: schema.PriorityMedium,
			Text:     "Fitness is good. One extra interval session per week would push it further.",
		})
	}
	if hs.Body >= 70 && hs.Body < 85 {
		recs = append(recs, schema.Recommendation{
			Priority: schema.PriorityMedium,
			Text:     "Body composition is good. Keep protein intake high to defend lean mass.",
		})
	}

	if hs.Index >= 85 {
		recs = append(recs, schema.Recommendation{
			Priority: schema.PriorityLow,
			Text:     "Excellent overall standing. Maintain the current routine.",
		})
	}

	if len(recs) == 0 {
		recs = append(recs, schema.Recommendation{
			Priority: schema.PriorityLow,
			Text:     "All dimensions in balance. Keep logging data to sharpen the trends.",
		})
	}
	return recs
}

// ComputeLongevityScore is the simple 0-100 composite over weight, activity,
// fitness and sleep, with a flat balance bonus.
func ComputeLongevityScore(m *schema.Metrics, cfg *contract.Config) int {
	score := 0

	if m.CurrentWeight != nil && *m.CurrentWeight > 0 {
		delta := math.Abs(*m.CurrentWeight - cfg.TargetWeightKg)
		switch {
		case delta == 0:
			score += 40
		case delta <= 2:
			score += 35
		case delta <= 5:
			score += 25
		case delta <= 10:
			score += 15
		default:
			score += 5
		}
	}

	switch {
	case m.WeeklyPAI >= 100:
		score += 20
	case m.WeeklyPAI >= 75:
		score += 15
	case m.WeeklyPAI >= 50:
		score += 10
	default:
		score += 5
	}

	switch {
	case m.VO2Max >= cfg.VO2MaxExcellent:
		score += 10
	case m.VO2Max >= cfg.VO2MaxGood:
		score += 7
	default:
		score += 3
	}

	if m.AvgSleepHours != nil {
		switch {
		case *m.AvgSleepHours >= 7:
			score += 20
		case *m.AvgSleepHours >= 6:
			score += 15
		case *m.AvgSleepHours >= 5:
			score += 10
		default:
			score += 5
		}
	} else {
		score += 5
	}

	score += 10 // balance bonus
	return min(score, 100)
}
