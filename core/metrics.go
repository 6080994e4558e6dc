package core

import (
	"time"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
)

// bodyWindowDays is the trailing window for body and vitals averages.
const bodyWindowDays = 7

// ComputeMetrics derives the full metric set from the cache as of a point in
// time. Everything is recomputed from the stored records; nothing here is
// persisted.
func ComputeMetrics(doc *schema.CacheDocument, asOf time.Time, cfg *contract.Config) *schema.Metrics {
	m := &schema.Metrics{
		WeeklyPAI:  WeeklyPAI(doc.Exercise, asOf, cfg),
		Load:       ComputeTrainingLoad(doc.Exercise, asOf, cfg),
		Glucose:    ComputeGlucoseSummary(doc.Glucose, asOf),
		ComputedAt: time.Now().UTC(),
	}
	m.VO2Max, m.VO2MaxMeasured = ResolveVO2Max(doc, asOf, cfg)

	m.CurrentWeight = latestWeight(doc.Weight, asOf)
	m.WeightWeekAgo = latestWeight(doc.Weight, asOf.AddDate(0, 0, -bodyWindowDays))
	m.AvgWeight7d = windowMean(doc.Weight, asOf,
		func(r schema.WeightRecord) (time.Time, float64) { return r.Timestamp, r.Kg })

	m.BodyFatPct = latestValue(doc.BodyFat, asOf,
		func(r schema.BodyFatRecord) (time.Time, float64) { return r.Timestamp, r.Percent })
	m.AvgBodyFat7d = windowMean(doc.BodyFat, asOf,
		func(r schema.BodyFatRecord) (time.Time, float64) { return r.Timestamp, r.Percent })

	m.LeanMassKg = latestValue(doc.LeanMass, asOf,
		func(r schema.LeanMassRecord) (time.Time, float64) { return r.Timestamp, r.MassKg })
	m.AvgLeanMass7d = windowMean(doc.LeanMass, asOf,
		func(r schema.LeanMassRecord) (time.Time, float64) { return r.Timestamp, r.MassKg })

	m.AvgSleepHours = AvgSleepHours(doc.Sleep, asOf)
	m.AvgRestingHR = windowMean(doc.RestingHeartRate, asOf,
		func(r schema.RestingHRRecord) (time.Time, float64) { return r.Timestamp, r.Bpm })
	m.AvgSpO2 = windowMean(doc.SpO2, asOf,
		func(r schema.SpO2Record) (time.Time, float64) { return r.Timestamp, r.Percent })
	m.AvgSteps = avgDailySteps(doc.Steps, asOf)
	m.AvgSystolic = windowMean(doc.BloodPressure, asOf,
		func(r schema.BloodPressureRecord) (time.Time, float64) { return r.Timestamp, r.Systolic })
	m.AvgDiastolic = windowMean(doc.BloodPressure, asOf,
		func(r schema.BloodPressureRecord) (time.Time, float64) { return r.Timestamp, r.Diastolic })

	m.Healthspan = ComputeHealthspan(m, cfg)
	m.LongevityScore = ComputeLongevityScore(m, cfg)
	m.Lab = ComputeLabScores(cfg.Labs, m.CurrentWeight, cfg)
	m.Recommendations = ComputeRecommendations(m, cfg)
	m.Alerts = sortAlerts(append(ComputeAlerts(cfg.Labs), ComputeMetricAlerts(m, cfg)...))

	return m
}

// latestWeight returns the most recent tracked weight at or before asOf.
func latestWeight(weights []schema.WeightRecord, asOf time.Time) *float64 {
	var latest *schema.WeightRecord
	for i := range weights {
		r := &weights[i]
		if r.Timestamp.After(asOf) {
			continue
		}
		if latest == nil || r.Timestamp.After(latest.Timestamp) {
			latest = r
		}
	}
	if latest == nil {
		return nil
	}
	v := latest.Kg
	return &v
}

// latestValue returns the value of the most recent record at or before asOf,
// or nil when none exists.
func latestValue[T any](records []T, asOf time.Time, field func(T) (time.Time, float64)) *float64 {
	var bestTime time.Time
	var bestValue float64
	found := false
	for _, r := range records {
		ts, v := field(r)
		if ts.After(asOf) {
			continue
		}
		if !found || ts.After(bestTime) {
			bestTime, bestValue = ts, v
			found = true
		}
	}
	if !found {
		return nil
	}
	return &bestValue
}

// windowMean averages a record field over the trailing seven calendar days
// ending at asOf, or nil when the window is empty.
func windowMean[T any](records []T, asOf time.Time, field func(T) (time.Time, float64)) *float64 {
	cutoffDay := schema.DayOf(asOf.AddDate(0, 0, -(bodyWindowDays - 1)))
	asOfDay := schema.DayOf(asOf)

	var values []float64
	for _, r := range records {
		ts, v := field(r)
		day := schema.DayOf(ts)
		if day >= cutoffDay && day <= asOfDay {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil
	}
	mean := contract.RoundTo(contract.Mean(values), 1)
	return &mean
}

// avgDailySteps averages the per-day step total over the trailing week. Each
// day's total is the MAX across sources, since every source that saw the day
// reports the full day and summing them would double-count.
func avgDailySteps(steps []schema.StepsRecord, asOf time.Time) *float64 {
	cutoffDay := schema.DayOf(asOf.AddDate(0, 0, -(bodyWindowDays - 1)))
	asOfDay := schema.DayOf(asOf)

	perDay := make(map[string]int)
	for _, s := range steps {
		day := schema.DayOf(s.Timestamp)
		if day < cutoffDay || day > asOfDay {
			continue
		}
		if s.Count > perDay[day] {
			perDay[day] = s.Count
		}
	}
	if len(perDay) == 0 {
		return nil
	}

	total := 0
	for _, n := range perDay {
		total += n
	}
	mean := contract.RoundTo(float64(total)/float64(len(perDay)), 0)
	return &mean
}
