// Package schema has configs, models and global variables for all parts of vitalis.
package schema

import "time"

// CacheDocument is the persisted health-record state. Every category holds an
// ordered sequence of typed records; insertion order carries no meaning since
// all derived calculations re-sort by timestamp. Sequences are append-only
// except for deletion processing and the dedup pass.
type CacheDocument struct {
	Exercise         []ExerciseRecord      `json:"exercise"`
	Weight           []WeightRecord        `json:"weight"`
	Sleep            []SleepRecord         `json:"sleep"`
	HeartRate        []HeartRateRecord     `json:"heart_rate"`
	RestingHeartRate []RestingHRRecord     `json:"resting_heart_rate"`
	Steps            []StepsRecord         `json:"steps"`
	Distance         []DistanceRecord      `json:"distance"`
	Calories         []CaloriesRecord      `json:"calories"`
	BMR              []BMRRecord           `json:"bmr"`
	Glucose          []GlucoseRecord       `json:"glucose"`
	Nutrition        []NutritionRecord     `json:"nutrition"`
	SpO2             []SpO2Record          `json:"spo2"`
	BodyFat          []BodyFatRecord       `json:"body_fat"`
	LeanMass         []LeanMassRecord      `json:"lean_mass"`
	BodyWater        []BodyWaterRecord     `json:"body_water"`
	BoneMass         []BoneMassRecord      `json:"bone_mass"`
	BloodPressure    []BloodPressureRecord `json:"blood_pressure"`
	VO2Max           []VO2MaxRecord        `json:"vo2max"`

	ProcessedFiles []string  `json:"processed_files"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewCacheDocument returns an empty, schema-complete document.
func NewCacheDocument() *CacheDocument {
	doc := &CacheDocument{}
	doc.Normalize()
	return doc
}

// Normalize replaces nil category sequences with empty ones, so that a
// document loaded from an older cache file is always schema-complete.
// Adding a category stays additive and non-breaking for older files.
func (d *CacheDocument) Normalize() {
	if d.Exercise == nil {
		d.Exercise = []ExerciseRecord{}
	}
	if d.Weight == nil {
		d.Weight = []WeightRecord{}
	}
	if d.Sleep == nil {
		d.Sleep = []SleepRecord{}
	}
	if d.HeartRate == nil {
		d.HeartRate = []HeartRateRecord{}
	}
	if d.RestingHeartRate == nil {
		d.RestingHeartRate = []RestingHRRecord{}
	}
	if d.Steps == nil {
		d.Steps = []StepsRecord{}
	}
	if d.Distance == nil {
		d.Distance = []DistanceRecord{}
	}
	if d.Calories == nil {
		d.Calories = []CaloriesRecord{}
	}
	if d.BMR == nil {
		d.BMR = []BMRRecord{}
	}
	if d.Glucose == nil {
		d.Glucose = []GlucoseRecord{}
	}
	if d.Nutrition == nil {
		d.Nutrition = []NutritionRecord{}
	}
	if d.SpO2 == nil {
		d.SpO2 = []SpO2Record{}
	}
	if d.BodyFat == nil {
		d.BodyFat = []BodyFatRecord{}
	}
	if d.LeanMass == nil {
		d.LeanMass = []LeanMassRecord{}
	}
	if d.BodyWater == nil {
		d.BodyWater = []BodyWaterRecord{}
	}
	if d.BoneMass == nil {
		d.BoneMass = []BoneMassRecord{}
	}
	if d.BloodPressure == nil {
		d.BloodPressure = []BloodPressureRecord{}
	}
	if d.VO2Max == nil {
		d.VO2Max = []VO2MaxRecord{}
	}
	if d.ProcessedFiles == nil {
		d.ProcessedFiles = []string{}
	}
}

// HasProcessed reports whether a snapshot file name was already ingested.
func (d *CacheDocument) HasProcessed(name string) bool {
	for _, f := range d.ProcessedFiles {
		if f == name {
			return true
		}
	}
	return false
}

// MarkProcessed records a snapshot file name as ingested, once.
func (d *CacheDocument) MarkProcessed(name string) {
	if !d.HasProcessed(name) {
		d.ProcessedFiles = append(d.ProcessedFiles, name)
	}
}

// CategoryCounts returns the record count per category, keyed by the cache
// file's JSON category names.
func (d *CacheDocument) CategoryCounts() map[string]int {
	return map[string]int{
		"exercise":           len(d.Exercise),
		"weight":             len(d.Weight),
		"sleep":              len(d.Sleep),
		"heart_rate":         len(d.HeartRate),
		"resting_heart_rate": len(d.RestingHeartRate),
		"steps":              len(d.Steps),
		"distance":           len(d.Distance),
		"calories":           len(d.Calories),
		"bmr":                len(d.BMR),
		"glucose":            len(d.Glucose),
		"nutrition":          len(d.Nutrition),
		"spo2":               len(d.SpO2),
		"body_fat":           len(d.BodyFat),
		"lean_mass":          len(d.LeanMass),
		"body_water":         len(d.BodyWater),
		"bone_mass":          len(d.BoneMass),
		"blood_pressure":     len(d.BloodPressure),
		"vo2max":             len(d.VO2Max),
	}
}

// TotalRecords returns the record count across all categories.
func (d *CacheDocument) TotalRecords() int {
	total := 0
	for _, n := range d.CategoryCounts() {
		total += n
	}
	return total
}
