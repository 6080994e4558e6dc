package core

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lw2die/vitalis/schema"
)

// container wraps the "data" array every snapshot section carries.
type container[T any] struct {
	Data []T `json:"data"`
}

// items returns the section's data, tolerating an absent section.
func (c *container[T]) items() []T {
	if c == nil {
		return nil
	}
	return c.Data
}

// Raw snapshot entry types. Fields mirror the exporter's JSON verbatim;
// pointer fields distinguish "absent" from "zero".
type (
	rawExercise struct {
		SessionID        string   `json:"session_id"`
		RecordID         string   `json:"record_id"`
		StartTime        string   `json:"start_time"`
		ExerciseTypeName string   `json:"exercise_type_name"`
		ExerciseType     *int     `json:"exercise_type"`
		DurationMinutes  float64  `json:"duration_minutes"`
		CaloriesBurned   float64  `json:"calories_burned"`
		DistanceMeters   float64  `json:"distance_meters"`
		AvgHeartRate     *float64 `json:"avg_heart_rate"`
		MaxHeartRate     *float64 `json:"max_heart_rate"`
		TotalSteps       int      `json:"total_steps"`
		Source           string   `json:"source"`
	}

	rawSleepStage struct {
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
		StageType int    `json:"stage_type"`
	}

	rawSleep struct {
		SessionID string          `json:"session_id"`
		RecordID  string          `json:"record_id"`
		StartTime string          `json:"start_time"`
		Stages    []rawSleepStage `json:"stages"`
		Source    string          `json:"source"`
	}

	rawWeight struct {
		RecordID  string  `json:"record_id"`
		Timestamp string  `json:"timestamp"`
		WeightKg  float64 `json:"weight_kg"`
		Source    string  `json:"source"`
	}

	rawHeartRate struct {
		RecordID  string   `json:"record_id"`
		StartTime string   `json:"start_time"`
		MinBpm    *float64 `json:"min_bpm"`
		AvgBpm    *float64 `json:"avg_bpm"`
		MaxBpm    *float64 `json:"max_bpm"`
		Bpm       *float64 `json:"bpm"`
		Source    string   `json:"source"`
	}

	rawSteps struct {
		RecordID  string `json:"record_id"`
		StartTime string `json:"start_time"`
		Count     int    `json:"count"`
		Source    string `json:"source"`
	}

	rawDistance struct {
		RecordID       string  `json:"record_id"`
		StartTime      string  `json:"start_time"`
		DistanceMeters float64 `json:"distance_meters"`
		Source         string  `json:"source"`
	}

	rawCalories struct {
		RecordID   string  `json:"record_id"`
		StartTime  string  `json:"start_time"`
		EnergyKcal float64 `json:"energy_kcal"`
		Source     string  `json:"source"`
	}

	rawBMR struct {
		RecordID   string  `json:"record_id"`
		Timestamp  string  `json:"timestamp"`
		KcalPerDay float64 `json:"kcal_per_day"`
		Source     string  `json:"source"`
	}

	rawGlucose struct {
		RecordID         string  `json:"record_id"`
		Timestamp        string  `json:"timestamp"`
		GlucoseMmolPerL  float64 `json:"glucose_mmol_per_l"`
		SpecimenSource   string  `json:"specimen_source"`
		MealType         string  `json:"meal_type"`
		Source           string  `json:"source"`
	}

	rawNutrition struct {
		RecordID   string   `json:"record_id"`
		Timestamp  string   `json:"timestamp"`
		EnergyKcal float64  `json:"energy_kcal"`
		ProteinG   *float64 `json:"protein_g"`
		CarbsG     *float64 `json:"carbs_g"`
		FatG       *float64 `json:"fat_g"`
		Source     string   `json:"source"`
	}

	rawPercentage struct {
		RecordID   string  `json:"record_id"`
		Timestamp  string  `json:"timestamp"`
		Percentage float64 `json:"percentage"`
		Source     string  `json:"source"`
	}

	rawMass struct {
		RecordID  string  `json:"record_id"`
		Timestamp string  `json:"timestamp"`
		MassKg    float64 `json:"mass_kg"`
		Source    string  `json:"source"`
	}

	rawBloodPressure struct {
		RecordID      string  `json:"record_id"`
		Timestamp     string  `json:"timestamp"`
		SystolicMmhg  float64 `json:"systolic_mmhg"`
		DiastolicMmhg float64 `json:"diastolic_mmhg"`
		Source        string  `json:"source"`
	}

	rawVO2Max struct {
		RecordID          string  `json:"record_id"`
		Timestamp         string  `json:"timestamp"`
		VO2MaxMlPerMinKg  float64 `json:"vo2_max_ml_per_min_per_kg"`
		VO2MaxAlt         float64 `json:"vo2_max"`
		VO2MaxShort       float64 `json:"vo2max"`
		MeasurementMethod string  `json:"measurement_method"`
		Source            string  `json:"source"`
	}

	rawDeletions struct {
		RecordIDs []string `json:"record_ids"`
	}
)

// value resolves the measured VO2max across the exporter's field name variants.
func (v rawVO2Max) value() float64 {
	switch {
	case v.VO2MaxMlPerMinKg > 0:
		return v.VO2MaxMlPerMinKg
	case v.VO2MaxAlt > 0:
		return v.VO2MaxAlt
	default:
		return v.VO2MaxShort
	}
}

// Snapshot is one parsed exporter file. Full exports use *_sessions/*_records
// section names, incremental exports use *_changes; both may appear and both
// are consumed.
type Snapshot struct {
	ExerciseSessions *container[rawExercise] `json:"exercise_sessions"`
	ExerciseChanges  *container[rawExercise] `json:"exercise_changes"`

	SleepSessions *container[rawSleep] `json:"sleep_sessions"`
	SleepChanges  *container[rawSleep] `json:"sleep_changes"`

	WeightRecords *container[rawWeight] `json:"weight_records"`
	WeightChanges *container[rawWeight] `json:"weight_changes"`

	HeartRateRecords *container[rawHeartRate] `json:"heart_rate_records"`
	HeartRateChanges *container[rawHeartRate] `json:"heart_rate_changes"`

	StepsRecords *container[rawSteps] `json:"steps_records"`
	StepsChanges *container[rawSteps] `json:"steps_changes"`

	DistanceRecords *container[rawDistance] `json:"distance_records"`
	DistanceChanges *container[rawDistance] `json:"distance_changes"`

	TotalCaloriesRecords       *container[rawCalories] `json:"total_calories_records"`
	TotalCaloriesBurnedRecords *container[rawCalories] `json:"total_calories_burned_records"`
	TotalCaloriesChanges       *container[rawCalories] `json:"total_calories_changes"`

	BasalMetabolicRateRecords *container[rawBMR] `json:"basal_metabolic_rate_records"`
	BasalMetabolicRateChanges *container[rawBMR] `json:"basal_metabolic_rate_changes"`

	BloodGlucoseRecords *container[rawGlucose] `json:"blood_glucose_records"`
	BloodGlucoseChanges *container[rawGlucose] `json:"blood_glucose_changes"`

	NutritionRecords *container[rawNutrition] `json:"nutrition_records"`
	NutritionChanges *container[rawNutrition] `json:"nutrition_changes"`

	OxygenSaturationRecords *container[rawPercentage] `json:"oxygen_saturation_records"`
	OxygenSaturationChanges *container[rawPercentage] `json:"oxygen_saturation_changes"`

	BodyFatRecords *container[rawPercentage] `json:"body_fat_records"`
	BodyFatChanges *container[rawPercentage] `json:"body_fat_changes"`

	LeanBodyMassRecords *container[rawMass] `json:"lean_body_mass_records"`
	LeanBodyMassChanges *container[rawMass] `json:"lean_body_mass_changes"`

	BodyWaterMassRecords *container[rawMass] `json:"body_water_mass_records"`
	BodyWaterMassChanges *container[rawMass] `json:"body_water_mass_changes"`

	BoneMassRecords *container[rawMass] `json:"bone_mass_records"`
	BoneMassChanges *container[rawMass] `json:"bone_mass_changes"`

	BloodPressureRecords *container[rawBloodPressure] `json:"blood_pressure_records"`
	BloodPressureChanges *container[rawBloodPressure] `json:"blood_pressure_changes"`

	VO2MaxRecords *container[rawVO2Max] `json:"vo2_max_records"`
	VO2MaxChanges *container[rawVO2Max] `json:"vo2max_changes"`

	Deletions *rawDeletions `json:"deletions"`
}

// ParseSnapshot decodes a snapshot file into its typed representation.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot JSON: %w", err)
	}
	return &snap, nil
}

// LoadSnapshot reads and parses a snapshot file from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %q: %w", path, err)
	}
	return ParseSnapshot(data)
}

// KindFromFilename classifies a snapshot as full or incremental from its
// file name. Full exports replace same-day exercise data; incremental ones
// are trusted as-is.
func KindFromFilename(name string) schema.SnapshotKind {
	upper := strings.ToUpper(name)
	switch {
	case strings.Contains(upper, "FULL"):
		return schema.FullSnapshot
	case strings.Contains(upper, "DIFF"):
		return schema.DiffSnapshot
	default:
		return schema.UnknownSnapshot
	}
}

// DeletionIDs returns the record/session IDs the snapshot asks to remove.
func (s *Snapshot) DeletionIDs() []string {
	if s.Deletions == nil {
		return nil
	}
	return s.Deletions.RecordIDs
}

// Section accessors merge the full and incremental variants of a category.

func (s *Snapshot) exerciseData() []rawExercise {
	return append(s.ExerciseSessions.items(), s.ExerciseChanges.items()...)
}

func (s *Snapshot) sleepData() []rawSleep {
	return append(s.SleepSessions.items(), s.SleepChanges.items()...)
}

func (s *Snapshot) weightData() []rawWeight {
	return append(s.WeightRecords.items(), s.WeightChanges.items()...)
}

func (s *Snapshot) heartRateData() []rawHeartRate {
	return append(s.HeartRateRecords.items(), s.HeartRateChanges.items()...)
}

func (s *Snapshot) stepsData() []rawSteps {
	return append(s.StepsRecords.items(), s.StepsChanges.items()...)
}

func (s *Snapshot) distanceData() []rawDistance {
	return append(s.DistanceRecords.items(), s.DistanceChanges.items()...)
}

func (s *Snapshot) caloriesData() []rawCalories {
	merged := append(s.TotalCaloriesRecords.items(), s.TotalCaloriesBurnedRecords.items()...)
	return append(merged, s.TotalCaloriesChanges.items()...)
}

func (s *Snapshot) bmrData() []rawBMR {
	return append(s.BasalMetabolicRateRecords.items(), s.BasalMetabolicRateChanges.items()...)
}

func (s *Snapshot) glucoseData() []rawGlucose {
	return append(s.BloodGlucoseRecords.items(), s.BloodGlucoseChanges.items()...)
}

func (s *Snapshot) nutritionData() []rawNutrition {
	return append(s.NutritionRecords.items(), s.NutritionChanges.items()...)
}

func (s *Snapshot) spo2Data() []rawPercentage {
	return append(s.OxygenSaturationRecords.items(), s.OxygenSaturationChanges.items()...)
}

func (s *Snapshot) bodyFatData() []rawPercentage {
	return append(s.BodyFatRecords.items(), s.BodyFatChanges.items()...)
}

func (s *Snapshot) leanMassData() []rawMass {
	return append(s.LeanBodyMassRecords.items(), s.LeanBodyMassChanges.items()...)
}

func (s *Snapshot) bodyWaterData() []rawMass {
	return append(s.BodyWaterMassRecords.items(), s.BodyWaterMassChanges.items()...)
}

func (s *Snapshot) boneMassData() []rawMass {
	return append(s.BoneMassRecords.items(), s.BoneMassChanges.items()...)
}

func (s *Snapshot) bloodPressureData() []rawBloodPressure {
	return append(s.BloodPressureRecords.items(), s.BloodPressureChanges.items()...)
}

func (s *Snapshot) vo2MaxData() []rawVO2Max {
	return append(s.VO2MaxRecords.items(), s.VO2MaxChanges.items()...)
}

// snapshotTimeLayouts lists the timestamp layouts exporters have been seen to
// emit, tried in order.
var snapshotTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseSnapshotTime parses an exporter timestamp. Records with unparseable
// timestamps are skipped by the extractors rather than failing the file.
func ParseSnapshotTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range snapshotTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
