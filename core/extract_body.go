package core

import (
	"fmt"
	"sort"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
)

// extractWeight converts raw weight samples into at most one cache record per
// calendar day. Samples outside the plausible range are rejected with a
// warning, same-day samples are averaged, and days already present in the
// cache are skipped so re-exports cannot shift an established daily figure.
func extractWeight(snap *Snapshot, doc *schema.CacheDocument, _ *contract.Config) int {
	samples := snap.weightData()
	if len(samples) == 0 {
		return 0
	}

	type dayAgg struct {
		first    schema.WeightRecord
		weights  []float64
	}
	perDay := make(map[string]*dayAgg)
	rejected := 0

	for _, w := range samples {
		if w.WeightKg < contract.MinPlausibleWeightKg || w.WeightKg > contract.MaxPlausibleWeightKg {
			contract.LogWarn("weight sample rejected (outside plausible range)",
				fmt.Errorf("%.1f kg", w.WeightKg))
			rejected++
			continue
		}
		ts, ok := ParseSnapshotTime(w.Timestamp)
		if !ok {
			contract.LogWarn("skipping weight with bad timestamp", fmt.Errorf("timestamp %q", w.Timestamp))
			rejected++
			continue
		}

		day := schema.DayOf(ts)
		agg, exists := perDay[day]
		if !exists {
			agg = &dayAgg{first: schema.WeightRecord{
				RecordID:  w.RecordID,
				Timestamp: ts,
				Source:    w.Source,
			}}
			perDay[day] = agg
		}
		agg.weights = append(agg.weights, w.WeightKg)
	}

	existingDays := make(map[string]struct{}, len(doc.Weight))
	for _, w := range doc.Weight {
		existingDays[schema.DayOf(w.Timestamp)] = struct{}{}
	}

	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Strings(days)

	added := 0
	for _, day := range days {
		if _, dup := existingDays[day]; dup {
			continue
		}
		agg := perDay[day]
		record := agg.first
		record.Kg = contract.RoundTo(contract.Mean(agg.weights), 1)
		doc.Weight = append(doc.Weight, record)
		added++
	}

	if rejected > 0 {
		contract.LogWarn("weight extraction", fmt.Errorf("%d samples rejected", rejected))
	}
	return added
}

// extractBodyFat appends body-fat percentage samples.
func extractBodyFat(snap *Snapshot, doc *schema.CacheDocument, _ *contract.Config) int {
	added := 0
	for _, b := range snap.bodyFatData() {
		ts, ok := ParseSnapshotTime(b.Timestamp)
		if !ok {
			continue
		}
		doc.BodyFat = append(doc.BodyFat, schema.BodyFatRecord{
			RecordID:  b.RecordID,
			Timestamp: ts,
			Source:    b.Source,
			Percent:   b.Percentage,
		})
		added++
	}
	return added
}

// extractLeanMass appends lean body mass samples.
func extractLeanMass(snap *Snapshot, doc *schema.CacheDocument, _ *contract.Config) int {
	added := 0
	for _, m := range snap.leanMassData() {
		ts, ok := ParseSnapshotTime(m.Timestamp)
		if !ok {
			continue
		}
		doc.LeanMass = append(doc.LeanMass, schema.LeanMassRecord{
			RecordID:  m.RecordID,
			Timestamp: ts,
			Source:    m.Source,
			MassKg:    m.MassKg,
		})
		added++
	}
	return added
}

// extractBodyWater appends body water mass samples.
func extractBodyWater(snap *Snapshot, doc *schema.CacheDocument, _ *contract.Config) int {
	added := 0
	for _, m := range snap.bodyWaterData() {
		ts, ok := ParseSnapshotTime(m.Timestamp)
		if !ok {
			continue
		}
		doc.BodyWater = append(doc.BodyWater, schema.BodyWaterRecord{
			RecordID:  m.RecordID,
			Timestamp: ts,
			Source:    m.Source,
			MassKg:    m.MassKg,
		})
		added++
	}
	return added
}

// extractBoneMass appends bone mass samples.
func extractBoneMass(snap *Snapshot, doc *schema.CacheDocument, _ *contract.Config) int {
	added := 0
	for _, m := range snap.boneMassData() {
		ts, ok := ParseSnapshotTime(m.Timestamp)
		if !ok {
			continue
		}
		doc.BoneMass = append(doc.BoneMass, schema.BoneMassRecord{
			RecordID:  m.RecordID,
			Timestamp: ts,
			Source:    m.Source,
			MassKg:    m.MassKg,
		})
		added++
	}
	return added
}
