package core

import (
	"time"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
)

// vo2maxLookbackDays bounds how far back exercise sessions inform the
// VO2max estimate.
const vo2maxLookbackDays = 30

// vo2maxMinDurationMin is the minimum session length for a session to count
// as a high-intensity VO2max candidate.
const vo2maxMinDurationMin = 10.0

// EstimateVO2Max derives a VO2max figure from recent exercise heart rates
// using the Uth-Sørensen-Overgaard-Pedersen estimate, adjusted for age and
// observed training intensity. Preference goes to high-intensity sessions
// (average above 80% of max heart rate, at least ten minutes); when none
// exist, any session with heart-rate data in the window is used. With no
// usable sessions at all the estimate is 0.
func EstimateVO2Max(exercise []schema.ExerciseRecord, asOf time.Time, cfg *contract.Config) float64 {
	cutoff := asOf.AddDate(0, 0, -vo2maxLookbackDays)

	var intense []float64
	var any []float64
	for _, e := range exercise {
		if e.Timestamp.Before(cutoff) || e.AvgHR == nil || *e.AvgHR <= 0 {
			continue
		}
		any = append(any, *e.AvgHR)
		if *e.AvgHR > 0.80*cfg.MaxHR && e.DurationMin >= vo2maxMinDurationMin {
			intense = append(intense, *e.AvgHR)
		}
	}

	candidates := intense
	if len(candidates) == 0 {
		candidates = any
	}
	if len(candidates) == 0 {
		return 0
	}

	base := 15.3 * (cfg.MaxHR / cfg.RestingHR)
	if cfg.Age > 25 {
		base *= 1 - 0.01*(float64(cfg.Age)-25)
	}
	base *= 0.85 + 0.15*(contract.Mean(candidates)/cfg.MaxHR)

	return contract.RoundTo(base, 1)
}

// ResolveVO2Max returns the current VO2max figure: the most recent measured
// reading when any exists, otherwise the heart-rate estimate.
func ResolveVO2Max(doc *schema.CacheDocument, asOf time.Time, cfg *contract.Config) (value float64, measured bool) {
	var latest *schema.VO2MaxRecord
	for i := range doc.VO2Max {
		r := &doc.VO2Max[i]
		if r.Value <= 0 {
			continue
		}
		if latest == nil || r.Timestamp.After(latest.Timestamp) {
			latest = r
		}
	}
	if latest != nil {
		return contract.RoundTo(latest.Value, 1), true
	}
	return EstimateVO2Max(doc.Exercise, asOf, cfg), false
}
