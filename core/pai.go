// Package core has core logic for snapshot ingestion, record extraction and
// derived health metrics.
package core

import (
	"time"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
)

// SessionPAI computes the PAI contribution of a single exercise session.
// Sessions with no usable average heart rate, or with an average at or below
// the resting rate, contribute zero.
func SessionPAI(avgHR *float64, durationMin float64, cfg *contract.Config) float64 {
	if avgHR == nil || *avgHR <= 0 || *avgHR <= cfg.RestingHR {
		return 0
	}

	intensity := (*avgHR - cfg.RestingHR) / (cfg.MaxHR - cfg.RestingHR)
	if intensity <= 0 {
		return 0
	}

	ageFactor := 1 + (float64(cfg.Age)-45)*0.01
	pai := intensity * intensity * durationMin * ageFactor
	return contract.RoundTo(pai, 1)
}

// SessionHrTSS computes the heart-rate based training stress of a session,
// normalized so one hour at full heart-rate reserve scores 100.
func SessionHrTSS(avgHR *float64, durationMin float64, cfg *contract.Config) float64 {
	if avgHR == nil || *avgHR <= 0 || *avgHR <= cfg.RestingHR {
		return 0
	}

	reserve := contract.Clamp((*avgHR-cfg.RestingHR)/(cfg.MaxHR-cfg.RestingHR), 0, 1)
	tss := (durationMin / 60) * reserve * reserve * 100
	return contract.RoundTo(tss, 1)
}

// ClassifyZone buckets a session's average heart rate into a training zone
// by its fraction of max heart rate.
func ClassifyZone(avgHR *float64, cfg *contract.Config) schema.HRZone {
	if avgHR == nil || *avgHR <= 0 {
		return schema.ZoneUnknown
	}

	frac := *avgHR / cfg.MaxHR
	switch {
	case frac < schema.ZoneAerobicFloor:
		return schema.ZoneRecovery
	case frac < schema.ZoneTempoFloor:
		return schema.ZoneAerobic
	case frac < schema.ZoneThresholdFloor:
		return schema.ZoneTempo
	case frac < schema.ZoneVO2MaxFloor:
		return schema.ZoneThreshold
	default:
		return schema.ZoneVO2Max
	}
}

// WeeklyPAI sums per-session PAI over the trailing window ending at asOf,
// inclusive of asOf's calendar day.
func WeeklyPAI(exercise []schema.ExerciseRecord, asOf time.Time, cfg *contract.Config) float64 {
	cutoff := asOf.AddDate(0, 0, -(cfg.PAIWindowDays - 1))
	cutoffDay := schema.DayOf(cutoff)
	asOfDay := schema.DayOf(asOf)

	total := 0.0
	for _, e := range exercise {
		day := schema.DayOf(e.Timestamp)
		if day >= cutoffDay && day <= asOfDay {
			total += e.PAI
		}
	}
	return contract.RoundTo(total, 1)
}

// WeeklyPAISeries recomputes the rolling weekly PAI for each of the last
// cfg.ChartDays calendar days ending at asOf.
func WeeklyPAISeries(exercise []schema.ExerciseRecord, asOf time.Time, cfg *contract.Config) []schema.PAIPoint {
	points := make([]schema.PAIPoint, 0, cfg.ChartDays)
	for i := cfg.ChartDays - 1; i >= 0; i-- {
		day := asOf.AddDate(0, 0, -i)
		points = append(points, schema.PAIPoint{
			Day:   schema.DayOf(day),
			Value: WeeklyPAI(exercise, day, cfg),
		})
	}
	return points
}

// DailyPAI aggregates per-session PAI into one value per calendar day.
func DailyPAI(exercise []schema.ExerciseRecord) map[string]float64 {
	perDay := make(map[string]float64)
	for _, e := range exercise {
		perDay[schema.DayOf(e.Timestamp)] += e.PAI
	}
	return perDay
}
