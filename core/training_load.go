package core

import (
	"time"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
)

// trainingLoadWalk runs the CTL/ATL exponentially weighted moving averages
// over every calendar day from the earliest exercise day through asOf. Days
// without training contribute zero load, so fitness decays during breaks.
// visit is called once per day with the running values.
func trainingLoadWalk(exercise []schema.ExerciseRecord, asOf time.Time, cfg *contract.Config, visit func(day string, ctl, atl float64)) {
	perDay := DailyPAI(exercise)

	var earliest time.Time
	for _, e := range exercise {
		if earliest.IsZero() || e.Timestamp.Before(earliest) {
			earliest = e.Timestamp
		}
	}
	if earliest.IsZero() {
		return
	}

	kCTL := 1.0 / float64(cfg.CTLDays)
	kATL := 1.0 / float64(cfg.ATLDays)

	ctl, atl := 0.0, 0.0
	endDay := schema.DayOf(asOf)
	for day := earliest; ; day = day.AddDate(0, 0, 1) {
		key := schema.DayOf(day)
		load := perDay[key]
		ctl = ctl*(1-kCTL) + load*kCTL
		atl = atl*(1-kATL) + load*kATL
		visit(key, ctl, atl)
		if key >= endDay {
			break
		}
	}
}

// ComputeTrainingLoad returns the CTL/ATL/TSB triple as of the given day.
func ComputeTrainingLoad(exercise []schema.ExerciseRecord, asOf time.Time, cfg *contract.Config) schema.TrainingLoad {
	var load schema.TrainingLoad
	trainingLoadWalk(exercise, asOf, cfg, func(_ string, ctl, atl float64) {
		load.CTL = ctl
		load.ATL = atl
	})
	load.CTL = contract.RoundTo(load.CTL, 1)
	load.ATL = contract.RoundTo(load.ATL, 1)
	load.TSB = contract.RoundTo(load.CTL-load.ATL, 1)
	return load
}

// TrainingLoadSeries returns the per-day CTL/ATL/TSB chart series for the
// last cfg.ChartDays days ending at asOf. The series comes from the same walk
// as ComputeTrainingLoad, so the final point always matches the headline
// numbers.
func TrainingLoadSeries(exercise []schema.ExerciseRecord, asOf time.Time, cfg *contract.Config) []schema.TrainingLoadPoint {
	cutoff := schema.DayOf(asOf.AddDate(0, 0, -(cfg.ChartDays - 1)))

	var points []schema.TrainingLoadPoint
	trainingLoadWalk(exercise, asOf, cfg, func(day string, ctl, atl float64) {
		if day < cutoff {
			return
		}
		points = append(points, schema.TrainingLoadPoint{
			Day: day,
			CTL: contract.RoundTo(ctl, 1),
			ATL: contract.RoundTo(atl, 1),
			TSB: contract.RoundTo(ctl-atl, 1),
		})
	})
	return points
}
