package core

import (
	"time"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
)

// sleepStageMinutes sums stage interval durations by stage type for one
// session's stages.
func sleepStageMinutes(stages []rawSleepStage) (awake, light, deep, rem, total float64) {
	for _, st := range stages {
		start, okStart := ParseSnapshotTime(st.StartTime)
		end, okEnd := ParseSnapshotTime(st.EndTime)
		if !okStart || !okEnd || end.Before(start) {
			continue
		}
		minutes := end.Sub(start).Minutes()
		total += minutes

		switch st.StageType {
		case schema.StageAwake:
			awake += minutes
		case schema.StageLight:
			light += minutes
		case schema.StageDeep:
			deep += minutes
		case schema.StageREM:
			rem += minutes
		}
	}
	return awake, light, deep, rem, total
}

// AvgSleepHours computes the mean nightly sleep over the trailing seven
// calendar days ending at asOf. Days without a recorded session count as
// zero; the divisor is always seven. Returns nil when no session falls in
// the window at all.
func AvgSleepHours(sleep []schema.SleepRecord, asOf time.Time) *float64 {
	const windowDays = 7
	cutoffDay := schema.DayOf(asOf.AddDate(0, 0, -(windowDays - 1)))
	asOfDay := schema.DayOf(asOf)

	perDay := make(map[string]float64)
	for _, s := range sleep {
		day := schema.DayOf(s.Timestamp)
		if day >= cutoffDay && day <= asOfDay {
			perDay[day] += s.TotalMin
		}
	}
	if len(perDay) == 0 {
		return nil
	}

	totalMin := 0.0
	for _, m := range perDay {
		totalMin += m
	}
	hours := contract.RoundTo(totalMin/windowDays/60, 1)
	return &hours
}
