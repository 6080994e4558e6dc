package core

import (
	"sort"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
)

// hrSample resolves the usable average/min/max readings of one raw
// heart-rate entry, falling back to the single bpm field when the summary
// fields are absent.
func hrSample(hr rawHeartRate) (avg, minBpm, maxBpm float64, ok bool) {
	switch {
	case hr.AvgBpm != nil && *hr.AvgBpm > 0:
		avg = *hr.AvgBpm
	case hr.Bpm != nil && *hr.Bpm > 0:
		avg = *hr.Bpm
	default:
		return 0, 0, 0, false
	}

	minBpm, maxBpm = avg, avg
	if hr.MinBpm != nil && *hr.MinBpm > 0 {
		minBpm = *hr.MinBpm
	}
	if hr.MaxBpm != nil && *hr.MaxBpm > 0 {
		maxBpm = *hr.MaxBpm
	}
	return avg, minBpm, maxBpm, true
}

// extractHeartRate aggregates continuous heart-rate samples into one summary
// record per calendar day, keyed by the first record seen for the day.
func extractHeartRate(snap *Snapshot, doc *schema.CacheDocument, _ *contract.Config) int {
	type dayAgg struct {
		record  schema.HeartRateRecord
		sum     float64
	}
	perDay := make(map[string]*dayAgg)

	for _, hr := range snap.heartRateData() {
		ts, ok := ParseSnapshotTime(hr.StartTime)
		if !ok {
			continue
		}
		avg, minBpm, maxBpm, ok := hrSample(hr)
		if !ok {
			continue
		}

		day := schema.DayOf(ts)
		agg, exists := perDay[day]
		if !exists {
			agg = &dayAgg{record: schema.HeartRateRecord{
				RecordID:  hr.RecordID,
				Timestamp: ts,
				Source:    hr.Source,
				MinBpm:    minBpm,
				MaxBpm:    maxBpm,
			}}
			perDay[day] = agg
		}
		agg.record.MinBpm = min(agg.record.MinBpm, minBpm)
		agg.record.MaxBpm = max(agg.record.MaxBpm, maxBpm)
		agg.sum += avg
		agg.record.Samples++
	}

	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Strings(days)

	added := 0
	for _, day := range days {
		agg := perDay[day]
		agg.record.AvgBpm = contract.RoundTo(agg.sum/float64(agg.record.Samples), 1)
		doc.HeartRate = append(doc.HeartRate, agg.record)
		added++
	}
	return added
}

// extractRestingHR keeps nocturnal heart-rate samples (22:00 through 05:59)
// as resting heart-rate proxies, preferring the minimum reading when present.
func extractRestingHR(snap *Snapshot, doc *schema.CacheDocument, _ *contract.Config) int {
	added := 0
	for _, hr := range snap.heartRateData() {
		ts, ok := ParseSnapshotTime(hr.StartTime)
		if !ok {
			continue
		}
		hour := ts.Hour()
		if hour < 22 && hour >= 6 {
			continue
		}

		var bpm float64
		switch {
		case hr.MinBpm != nil && *hr.MinBpm > 0:
			bpm = *hr.MinBpm
		case hr.AvgBpm != nil && *hr.AvgBpm > 0:
			bpm = *hr.AvgBpm
		case hr.Bpm != nil && *hr.Bpm > 0:
			bpm = *hr.Bpm
		default:
			continue
		}

		doc.RestingHeartRate = append(doc.RestingHeartRate, schema.RestingHRRecord{
			RecordID:  hr.RecordID,
			Timestamp: ts,
			Source:    hr.Source,
			Bpm:       bpm,
		})
		added++
	}
	return added
}

// extractBloodPressure appends blood pressure readings.
func extractBloodPressure(snap *Snapshot, doc *schema.CacheDocument, _ *contract.Config) int {
	added := 0
	for _, bp := range snap.bloodPressureData() {
		ts, ok := ParseSnapshotTime(bp.Timestamp)
		if !ok {
			continue
		}
		doc.BloodPressure = append(doc.BloodPressure, schema.BloodPressureRecord{
			RecordID:  bp.RecordID,
			Timestamp: ts,
			Source:    bp.Source,
			Systolic:  bp.SystolicMmhg,
			Diastolic: bp.DiastolicMmhg,
		})
		added++
	}
	return added
}

// extractSpO2 appends oxygen saturation samples.
func extractSpO2(snap *Snapshot, doc *schema.CacheDocument, _ *contract.Config) int {
	added := 0
	for _, s := range snap.spo2Data() {
		ts, ok := ParseSnapshotTime(s.Timestamp)
		if !ok {
			continue
		}
		doc.SpO2 = append(doc.SpO2, schema.SpO2Record{
			RecordID:  s.RecordID,
			Timestamp: ts,
			Source:    s.Source,
			Percent:   s.Percentage,
		})
		added++
	}
	return added
}

// extractVO2Max appends device-measured VO2max readings, resolving the value
// across the exporter's field name variants.
func extractVO2Max(snap *Snapshot, doc *schema.CacheDocument, _ *contract.Config) int {
	added := 0
	for _, v := range snap.vo2MaxData() {
		ts, ok := ParseSnapshotTime(v.Timestamp)
		if !ok {
			continue
		}
		doc.VO2Max = append(doc.VO2Max, schema.VO2MaxRecord{
			RecordID:  v.RecordID,
			Timestamp: ts,
			Source:    v.Source,
			Value:     v.value(),
			Method:    v.MeasurementMethod,
		})
		added++
	}
	return added
}

// extractGlucose appends glucose samples, converting the exporter's mmol/L
// readings to mg/dL.
func extractGlucose(snap *Snapshot, doc *schema.CacheDocument, _ *contract.Config) int {
	added := 0
	for _, g := range snap.glucoseData() {
		ts, ok := ParseSnapshotTime(g.Timestamp)
		if !ok {
			continue
		}
		doc.Glucose = append(doc.Glucose, schema.GlucoseRecord{
			RecordID:       g.RecordID,
			Timestamp:      ts,
			Source:         g.Source,
			MgDl:           MmolToMgDl(g.GlucoseMmolPerL),
			SpecimenSource: g.SpecimenSource,
			MealType:       g.MealType,
		})
		added++
	}
	return added
}

// extractBMR appends basal metabolic rate samples.
func extractBMR(snap *Snapshot, doc *schema.CacheDocument, _ *contract.Config) int {
	added := 0
	for _, b := range snap.bmrData() {
		ts, ok := ParseSnapshotTime(b.Timestamp)
		if !ok {
			continue
		}
		doc.BMR = append(doc.BMR, schema.BMRRecord{
			Timestamp:  ts,
			Source:     b.Source,
			KcalPerDay: contract.RoundTo(b.KcalPerDay, 1),
		})
		added++
	}
	return added
}

// extractNutrition appends logged meals.
func extractNutrition(snap *Snapshot, doc *schema.CacheDocument, _ *contract.Config) int {
	added := 0
	for _, n := range snap.nutritionData() {
		ts, ok := ParseSnapshotTime(n.Timestamp)
		if !ok {
			continue
		}
		doc.Nutrition = append(doc.Nutrition, schema.NutritionRecord{
			RecordID:  n.RecordID,
			Timestamp: ts,
			Source:    n.Source,
			Kcal:      n.EnergyKcal,
			ProteinG:  n.ProteinG,
			CarbsG:    n.CarbsG,
			FatG:      n.FatG,
		})
		added++
	}
	return added
}
