package core

import (
	"sort"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
)

// extractSteps reduces step samples into one record per calendar day and
// source. Devices report a cumulative daily counter, so the day's value is
// the MAX sample, not the sum — summing sub-day samples would overcount.
// Sources double-report the same day routinely, so the per-source totals are
// kept separate and reconciled at metric time by taking the maximum per day.
func extractSteps(snap *Snapshot, doc *schema.CacheDocument, _ *contract.Config) int {
	perKey := make(map[string]*schema.StepsRecord)

	for _, p := range snap.stepsData() {
		ts, ok := ParseSnapshotTime(p.StartTime)
		if !ok {
			continue
		}
		key := schema.DayOf(ts) + "|" + p.Source
		record, exists := perKey[key]
		if !exists {
			record = &schema.StepsRecord{Timestamp: ts, Source: p.Source}
			perKey[key] = record
		}
		if p.Count > record.Count {
			record.Count = p.Count
		}
	}

	keys := make([]string, 0, len(perKey))
	for key := range perKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	added := 0
	for _, key := range keys {
		doc.Steps = append(doc.Steps, *perKey[key])
		added++
	}
	return added
}

// extractDistance aggregates distance into one record per calendar day,
// converting meters to kilometers.
func extractDistance(snap *Snapshot, doc *schema.CacheDocument, _ *contract.Config) int {
	type dayAgg struct {
		record schema.DistanceRecord
		meters float64
	}
	perDay := make(map[string]*dayAgg)

	for _, d := range snap.distanceData() {
		ts, ok := ParseSnapshotTime(d.StartTime)
		if !ok {
			continue
		}
		day := schema.DayOf(ts)
		agg, exists := perDay[day]
		if !exists {
			agg = &dayAgg{record: schema.DistanceRecord{Timestamp: ts, Source: d.Source}}
			perDay[day] = agg
		}
		agg.meters += d.DistanceMeters
	}

	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Strings(days)

	added := 0
	for _, day := range days {
		agg := perDay[day]
		agg.record.Km = contract.RoundTo(agg.meters/1000, 2)
		doc.Distance = append(doc.Distance, agg.record)
		added++
	}
	return added
}

// extractCalories aggregates total energy expenditure into one record per
// calendar day.
func extractCalories(snap *Snapshot, doc *schema.CacheDocument, _ *contract.Config) int {
	type dayAgg struct {
		record schema.CaloriesRecord
		kcal   float64
	}
	perDay := make(map[string]*dayAgg)

	for _, c := range snap.caloriesData() {
		ts, ok := ParseSnapshotTime(c.StartTime)
		if !ok {
			continue
		}
		day := schema.DayOf(ts)
		agg, exists := perDay[day]
		if !exists {
			agg = &dayAgg{record: schema.CaloriesRecord{Timestamp: ts, Source: c.Source}}
			perDay[day] = agg
		}
		agg.kcal += c.EnergyKcal
	}

	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Strings(days)

	added := 0
	for _, day := range days {
		agg := perDay[day]
		agg.record.Kcal = contract.RoundTo(agg.kcal, 0)
		doc.Calories = append(doc.Calories, agg.record)
		added++
	}
	return added
}
