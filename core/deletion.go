package core

import (
	"github.com/lw2die/vitalis/schema"
)

// ApplyDeletions removes every record whose record or session ID appears in
// the snapshot's deletion list. Deletions run before extraction so a snapshot
// can delete and re-add a record in one file. Returns the number of records
// removed; unknown IDs are ignored.
func ApplyDeletions(doc *schema.CacheDocument, ids []string) int {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			drop[id] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return 0
	}

	removed := 0
	keep := func(id string) bool {
		if id == "" {
			return true
		}
		if _, hit := drop[id]; hit {
			removed++
			return false
		}
		return true
	}

	doc.Exercise = filterSlice(doc.Exercise, func(r schema.ExerciseRecord) bool { return keep(r.SessionID) })
	doc.Sleep = filterSlice(doc.Sleep, func(r schema.SleepRecord) bool { return keep(r.SessionID) })
	doc.Weight = filterSlice(doc.Weight, func(r schema.WeightRecord) bool { return keep(r.RecordID) })
	doc.HeartRate = filterSlice(doc.HeartRate, func(r schema.HeartRateRecord) bool { return keep(r.RecordID) })
	doc.RestingHeartRate = filterSlice(doc.RestingHeartRate, func(r schema.RestingHRRecord) bool { return keep(r.RecordID) })
	doc.Glucose = filterSlice(doc.Glucose, func(r schema.GlucoseRecord) bool { return keep(r.RecordID) })
	doc.Nutrition = filterSlice(doc.Nutrition, func(r schema.NutritionRecord) bool { return keep(r.RecordID) })
	doc.SpO2 = filterSlice(doc.SpO2, func(r schema.SpO2Record) bool { return keep(r.RecordID) })
	doc.BodyFat = filterSlice(doc.BodyFat, func(r schema.BodyFatRecord) bool { return keep(r.RecordID) })
	doc.LeanMass = filterSlice(doc.LeanMass, func(r schema.LeanMassRecord) bool { return keep(r.RecordID) })
	doc.BodyWater = filterSlice(doc.BodyWater, func(r schema.BodyWaterRecord) bool { return keep(r.RecordID) })
	doc.BoneMass = filterSlice(doc.BoneMass, func(r schema.BoneMassRecord) bool { return keep(r.RecordID) })
	doc.BloodPressure = filterSlice(doc.BloodPressure, func(r schema.BloodPressureRecord) bool { return keep(r.RecordID) })
	doc.VO2Max = filterSlice(doc.VO2Max, func(r schema.VO2MaxRecord) bool { return keep(r.RecordID) })

	return removed
}

// filterSlice keeps the elements the predicate accepts, preserving order.
func filterSlice[T any](in []T, pred func(T) bool) []T {
	out := in[:0]
	for _, v := range in {
		if pred(v) {
			out = append(out, v)
		}
	}
	return out
}
