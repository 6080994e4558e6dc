package schema

import "time"

// ExerciseRecord represents one exercise session. PAI, HrTSS and Zone are
// derived at extraction time from the session's average heart rate and stored
// alongside the raw payload. AvgHR and MaxHR are pointers so a missing reading
// is distinguishable from a measured zero.
type ExerciseRecord struct {
	SessionID   string    `json:"session_id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Source      string    `json:"source,omitempty"`
	Type        string    `json:"type"`
	DurationMin float64   `json:"duration_minutes"`
	Calories    float64   `json:"calories,omitempty"`
	DistanceM   float64   `json:"distance_meters,omitempty"`
	AvgHR       *float64  `json:"avg_hr,omitempty"`
	MaxHR       *float64  `json:"max_hr,omitempty"`
	Steps       int       `json:"steps,omitempty"`
	PAI         float64   `json:"pai"`
	HrTSS       float64   `json:"hrtss"`
	Zone        HRZone    `json:"zone"`
}

// SleepRecord represents one sleep session with per-stage minutes summed from
// the session's stage intervals.
type SleepRecord struct {
	SessionID string    `json:"session_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	AwakeMin  float64   `json:"awake_minutes"`
	LightMin  float64   `json:"light_minutes"`
	DeepMin   float64   `json:"deep_minutes"`
	RemMin    float64   `json:"rem_minutes"`
	TotalMin  float64   `json:"total_minutes"`
}

// WeightRecord represents one day's weight, averaged over the day's accepted
// samples.
type WeightRecord struct {
	RecordID  string    `json:"record_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	Kg        float64   `json:"kg"`
}

// HeartRateRecord represents one day's continuous heart-rate summary.
type HeartRateRecord struct {
	RecordID  string    `json:"record_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	MinBpm    float64   `json:"min_bpm"`
	MaxBpm    float64   `json:"max_bpm"`
	AvgBpm    float64   `json:"avg_bpm"`
	Samples   int       `json:"samples"`
}

// RestingHRRecord represents a nocturnal heart-rate sample used as a proxy for
// resting heart rate.
type RestingHRRecord struct {
	RecordID  string    `json:"record_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	Bpm       float64   `json:"bpm"`
}

// StepsRecord represents one day's step total for a single source.
type StepsRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	Count     int       `json:"count"`
}

// DistanceRecord represents one day's distance total in kilometers.
type DistanceRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	Km        float64   `json:"km"`
}

// CaloriesRecord represents one day's total energy expenditure.
type CaloriesRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	Kcal      float64   `json:"kcal"`
}

// BMRRecord represents a basal metabolic rate sample.
type BMRRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	Source     string    `json:"source,omitempty"`
	KcalPerDay float64   `json:"kcal_per_day"`
}

// GlucoseRecord represents a blood glucose sample, stored in mg/dL.
type GlucoseRecord struct {
	RecordID       string    `json:"record_id,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	Source         string    `json:"source,omitempty"`
	MgDl           float64   `json:"mg_dl"`
	SpecimenSource string    `json:"specimen_source,omitempty"`
	MealType       string    `json:"meal_type,omitempty"`
}

// NutritionRecord represents a logged meal. Macros are pointers because most
// sources log only energy.
type NutritionRecord struct {
	RecordID  string    `json:"record_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	Kcal      float64   `json:"kcal"`
	ProteinG  *float64  `json:"protein_g,omitempty"`
	CarbsG    *float64  `json:"carbs_g,omitempty"`
	FatG      *float64  `json:"fat_g,omitempty"`
}

// SpO2Record represents an oxygen saturation sample.
type SpO2Record struct {
	RecordID  string    `json:"record_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	Percent   float64   `json:"percent"`
}

// BodyFatRecord represents a body-fat percentage sample.
type BodyFatRecord struct {
	RecordID  string    `json:"record_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	Percent   float64   `json:"percent"`
}

// LeanMassRecord represents a lean body mass sample.
type LeanMassRecord struct {
	RecordID  string    `json:"record_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	MassKg    float64   `json:"mass_kg"`
}

// BodyWaterRecord represents a body water mass sample.
type BodyWaterRecord struct {
	RecordID  string    `json:"record_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	MassKg    float64   `json:"mass_kg"`
}

// BoneMassRecord represents a bone mass sample.
type BoneMassRecord struct {
	RecordID  string    `json:"record_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	MassKg    float64   `json:"mass_kg"`
}

// BloodPressureRecord represents a blood pressure reading in mmHg.
type BloodPressureRecord struct {
	RecordID  string    `json:"record_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	Systolic  float64   `json:"systolic"`
	Diastolic float64   `json:"diastolic"`
}

// VO2MaxRecord represents a device-measured VO2max reading. Measured readings
// always take priority over the formula-based estimate.
type VO2MaxRecord struct {
	RecordID  string    `json:"record_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	Value     float64   `json:"value"`
	Method    string    `json:"method,omitempty"`
}
