package schema

import "time"

// TrainingLoad is the CTL/ATL/TSB triple from the training stress EWMA.
type TrainingLoad struct {
	CTL float64 `json:"ctl"` // chronic training load, 42-day constant
	ATL float64 `json:"atl"` // acute training load, 7-day constant
	TSB float64 `json:"tsb"` // training stress balance, CTL - ATL
}

// TrainingLoadPoint is one day of the training load chart series.
type TrainingLoadPoint struct {
	Day string  `json:"day"` // YYYY-MM-DD
	CTL float64 `json:"ctl"`
	ATL float64 `json:"atl"`
	TSB float64 `json:"tsb"`
}

// PAIPoint is one day of the rolling weekly PAI chart series.
type PAIPoint struct {
	Day   string  `json:"day"` // YYYY-MM-DD
	Value float64 `json:"value"`
}

// GlucoseSummary aggregates glucose samples into fasting/postprandial windows
// and the long-range GMI estimate. Pointers are nil when no samples qualify.
type GlucoseSummary struct {
	Fasting      *float64 `json:"fasting,omitempty"`      // mean mg/dL, samples before 10:00, trailing window
	Postprandial *float64 `json:"postprandial,omitempty"` // mean mg/dL, samples 10:00-23:59, trailing window
	GMI          *float64 `json:"gmi,omitempty"`          // glucose management indicator, percent
	MeanMgDl     *float64 `json:"mean_mg_dl,omitempty"`   // mean over the GMI window
	Samples      int      `json:"samples"`
}

// HealthspanScore is the composite healthspan index with its sub-scores.
type HealthspanScore struct {
	Index      int    `json:"index"` // 0-100 weighted composite
	Status     string `json:"status"`
	Fitness    int    `json:"fitness"`
	Body       int    `json:"body"`
	Recovery   int    `json:"recovery"`
	Metabolic  int    `json:"metabolic"`
	Functional int    `json:"functional"`
}

// LabPanel holds lab assay values from the config file. All fields are
// optional; scoring substitutes population-typical defaults for absent ones.
type LabPanel struct {
	LDL          *float64 `mapstructure:"ldl" json:"ldl,omitempty"`                     // mg/dL
	HDL          *float64 `mapstructure:"hdl" json:"hdl,omitempty"`                     // mg/dL
	Triglyceride *float64 `mapstructure:"triglycerides" json:"triglycerides,omitempty"` // mg/dL
	Systolic     *float64 `mapstructure:"systolic" json:"systolic,omitempty"`           // mmHg
	Glucose      *float64 `mapstructure:"glucose" json:"glucose,omitempty"`             // mg/dL fasting
	HbA1c        *float64 `mapstructure:"hba1c" json:"hba1c,omitempty"`                 // percent
	CRP          *float64 `mapstructure:"crp" json:"crp,omitempty"`                     // mg/L
	Urea         *float64 `mapstructure:"urea" json:"urea,omitempty"`                   // mg/dL
	Creatinine   *float64 `mapstructure:"creatinine" json:"creatinine,omitempty"`       // mg/dL
	TSH          *float64 `mapstructure:"tsh" json:"tsh,omitempty"`                     // uIU/mL
	FreeT4       *float64 `mapstructure:"free_t4" json:"free_t4,omitempty"`             // ng/dL
	Testosterone *float64 `mapstructure:"testosterone" json:"testosterone,omitempty"`   // ng/mL
}

// IsEmpty reports whether no lab value was supplied at all.
func (p *LabPanel) IsEmpty() bool {
	return p == nil || (p.LDL == nil && p.HDL == nil && p.Triglyceride == nil &&
		p.Systolic == nil && p.Glucose == nil && p.HbA1c == nil &&
		p.CRP == nil && p.Urea == nil && p.Creatinine == nil &&
		p.TSH == nil && p.FreeT4 == nil && p.Testosterone == nil)
}

// LabScores holds the four lab sub-scores and their weighted composite.
type LabScores struct {
	Cardio       float64 `json:"cardio"`       // 42% of composite
	Metabolic    float64 `json:"metabolic"`    // 28% of composite
	Inflammation float64 `json:"inflammation"` // 18% of composite
	Hormone      float64 `json:"hormone"`      // 12% of composite
	Longevity    float64 `json:"longevity"`    // weighted composite, 0-100
}

// Recommendation is one actionable suggestion derived from the sub-scores.
type Recommendation struct {
	Priority Priority `json:"priority"`
	Text     string   `json:"text"`
}

// Alert is one threshold-derived warning over the computed metrics.
type Alert struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Severity Severity `json:"severity"`
	Detail   string   `json:"detail"`
	Action   string   `json:"action,omitempty"`
}

// Metrics is the full set of derived metrics, recomputed from the cache on
// every cycle and never persisted. Pointer fields are nil when the cache has
// no data in the relevant window.
type Metrics struct {
	WeeklyPAI      float64      `json:"weekly_pai"`
	Load           TrainingLoad `json:"training_load"`
	VO2Max         float64      `json:"vo2max"` // 0 when no estimate possible
	VO2MaxMeasured bool         `json:"vo2max_measured"`

	CurrentWeight *float64 `json:"current_weight,omitempty"`
	WeightWeekAgo *float64 `json:"weight_week_ago,omitempty"`
	AvgWeight7d   *float64 `json:"avg_weight_7d,omitempty"`
	BodyFatPct    *float64 `json:"body_fat_pct,omitempty"`
	AvgBodyFat7d  *float64 `json:"avg_body_fat_7d,omitempty"`
	LeanMassKg    *float64 `json:"lean_mass_kg,omitempty"`
	AvgLeanMass7d *float64 `json:"avg_lean_mass_7d,omitempty"`

	AvgSleepHours *float64 `json:"avg_sleep_hours,omitempty"`
	AvgRestingHR  *float64 `json:"avg_resting_hr,omitempty"`
	AvgSpO2       *float64 `json:"avg_spo2,omitempty"`
	AvgSteps      *float64 `json:"avg_steps,omitempty"`
	AvgSystolic   *float64 `json:"avg_systolic,omitempty"`
	AvgDiastolic  *float64 `json:"avg_diastolic,omitempty"`

	Glucose GlucoseSummary `json:"glucose"`

	LongevityScore  int              `json:"longevity_score"`
	Healthspan      HealthspanScore  `json:"healthspan"`
	Lab             *LabScores       `json:"lab,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	Alerts          []Alert          `json:"alerts,omitempty"`

	ComputedAt time.Time `json:"computed_at"`
}
