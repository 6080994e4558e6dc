package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
)

// abnormalDailyPAI flags days whose summed PAI suggests duplicated sessions.
const abnormalDailyPAI = 100.0

// CleanupExercise keeps at most one exercise session per calendar day: the
// longest one, with PAI breaking duration ties. Wearables double-report the
// same workout through multiple sync paths, so a day with several sessions is
// almost always the same workout seen twice. The pass is idempotent; a
// one-session day passes through untouched. Returns the number of sessions
// removed.
func CleanupExercise(doc *schema.CacheDocument) int {
	if len(doc.Exercise) == 0 {
		return 0
	}

	perDay := make(map[string][]schema.ExerciseRecord)
	for _, e := range doc.Exercise {
		day := schema.DayOf(e.Timestamp)
		perDay[day] = append(perDay[day], e)
	}

	// Flag suspicious days before touching anything
	for day, sessions := range perDay {
		total := 0.0
		for _, e := range sessions {
			total += e.PAI
		}
		if total > abnormalDailyPAI {
			contract.LogWarn("abnormally high daily PAI",
				fmt.Errorf("%s: %.1f across %d sessions", day, total, len(sessions)))
		}
	}

	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Strings(days)

	cleaned := make([]schema.ExerciseRecord, 0, len(days))
	removed := 0

	for _, day := range days {
		sessions := perDay[day]
		if len(sessions) == 1 {
			cleaned = append(cleaned, sessions[0])
			continue
		}

		best := bestSession(sessions)
		cleaned = append(cleaned, best)
		removed += len(sessions) - 1

		contract.LogWarn("multiple sessions on one day, deduplicating",
			fmt.Errorf("%s: %d sessions", day, len(sessions)))
		contract.LogInfo("  keeping: %s", describeSession(best))
		for _, e := range sessions {
			if e != best {
				contract.LogInfo("  dropping: %s", describeSession(e))
			}
		}
	}

	if removed > 0 {
		contract.LogInfo("exercise cleanup removed %d duplicate sessions (%d remain)", removed, len(cleaned))
	}
	doc.Exercise = cleaned
	return removed
}

// bestSession picks the session with the longest duration, breaking ties by
// PAI.
func bestSession(sessions []schema.ExerciseRecord) schema.ExerciseRecord {
	best := sessions[0]
	for _, e := range sessions[1:] {
		if e.DurationMin > best.DurationMin ||
			(e.DurationMin == best.DurationMin && e.PAI > best.PAI) {
			best = e
		}
	}
	return best
}

func describeSession(e schema.ExerciseRecord) string {
	hr := 0.0
	if e.AvgHR != nil {
		hr = *e.AvgHR
	}
	return fmt.Sprintf("%s - %.0f min, HR %.0f bpm, PAI %.1f", e.Type, e.DurationMin, hr, e.PAI)
}

// CleanupDailyMetrics keeps only the first record per calendar day for the
// daily body and vitals categories. Extra same-day entries in these
// categories are near-duplicate device syncs, not distinct readings, so they
// drop silently. Idempotent. Returns the number of records removed.
func CleanupDailyMetrics(doc *schema.CacheDocument) int {
	removed := 0
	var n int

	doc.SpO2, n = firstOfDay(doc.SpO2, func(r schema.SpO2Record) time.Time { return r.Timestamp })
	removed += n
	doc.BodyFat, n = firstOfDay(doc.BodyFat, func(r schema.BodyFatRecord) time.Time { return r.Timestamp })
	removed += n
	doc.LeanMass, n = firstOfDay(doc.LeanMass, func(r schema.LeanMassRecord) time.Time { return r.Timestamp })
	removed += n
	doc.BodyWater, n = firstOfDay(doc.BodyWater, func(r schema.BodyWaterRecord) time.Time { return r.Timestamp })
	removed += n
	doc.BoneMass, n = firstOfDay(doc.BoneMass, func(r schema.BoneMassRecord) time.Time { return r.Timestamp })
	removed += n
	doc.VO2Max, n = firstOfDay(doc.VO2Max, func(r schema.VO2MaxRecord) time.Time { return r.Timestamp })
	removed += n
	doc.RestingHeartRate, n = firstOfDay(doc.RestingHeartRate, func(r schema.RestingHRRecord) time.Time { return r.Timestamp })
	removed += n

	if removed > 0 {
		contract.LogInfo("daily-metric cleanup removed %d duplicate records", removed)
	}
	return removed
}

// firstOfDay collapses a category to the first record encountered per
// calendar day, preserving order.
func firstOfDay[T any](records []T, ts func(T) time.Time) ([]T, int) {
	if len(records) < 2 {
		return records, 0
	}
	seen := make(map[string]struct{}, len(records))
	kept := make([]T, 0, len(records))
	for _, r := range records {
		day := schema.DayOf(ts(r))
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		kept = append(kept, r)
	}
	return kept, len(records) - len(kept)
}

// CleanupWeight averages all same-day weight records into one. Weight is the
// one category where collapsing loses nothing, since every sample measures
// the same quantity. Idempotent. Returns the number of records removed.
func CleanupWeight(doc *schema.CacheDocument) int {
	if len(doc.Weight) < 2 {
		return 0
	}

	perDay := make(map[string][]schema.WeightRecord)
	for _, w := range doc.Weight {
		day := schema.DayOf(w.Timestamp)
		perDay[day] = append(perDay[day], w)
	}

	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Strings(days)

	cleaned := make([]schema.WeightRecord, 0, len(days))
	removed := 0
	for _, day := range days {
		samples := perDay[day]
		record := samples[0]
		if len(samples) > 1 {
			values := make([]float64, len(samples))
			for i, s := range samples {
				values[i] = s.Kg
			}
			record.Kg = contract.RoundTo(contract.Mean(values), 1)
			removed += len(samples) - 1
		}
		cleaned = append(cleaned, record)
	}

	if removed > 0 {
		contract.LogInfo("weight cleanup averaged %d same-day records", removed)
	}
	doc.Weight = cleaned
	return removed
}
