package core

import (
	"fmt"
	"sort"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
)

// severityRank orders alerts most urgent first.
var severityRank = map[schema.Severity]int{
	schema.SeverityCritical: 0,
	schema.SeverityHigh:     1,
	schema.SeverityModerate: 2,
	schema.SeverityGood:     3,
}

// ComputeAlerts derives threshold alerts from the configured lab panel.
// Assays not present in the panel produce no alert. The result is sorted
// most urgent first.
func ComputeAlerts(panel *schema.LabPanel) []schema.Alert {
	if panel == nil {
		return nil
	}
	var alerts []schema.Alert
	add := func(a *schema.Alert) {
		if a != nil {
			alerts = append(alerts, *a)
		}
	}

	add(hba1cAlert(panel.HbA1c))
	add(glucoseAlert(panel.Glucose))
	add(ldlAlert(panel.LDL))
	add(hdlAlert(panel.HDL))
	add(triglycerideAlert(panel.Triglyceride))
	add(tshAlert(panel.TSH))
	add(crpAlert(panel.CRP))
	add(creatinineAlert(panel.Creatinine))
	add(ldlHdlRatioAlert(panel.LDL, panel.HDL))

	return sortAlerts(alerts)
}

// ComputeMetricAlerts derives threshold alerts from the derived metric set
// itself, independent of any lab panel. The result is sorted most urgent
// first.
func ComputeMetricAlerts(m *schema.Metrics, cfg *contract.Config) []schema.Alert {
	var alerts []schema.Alert

	if cfg.WeeklyPAITarget > 0 && m.WeeklyPAI < cfg.WeeklyPAITarget/2 {
		alerts = append(alerts, schema.Alert{
			ID:       "low_pai",
			Title:    "Weekly PAI",
			Severity: schema.SeverityHigh,
			Detail:   fmt.Sprintf("Weekly PAI at %.1f against a target of %.0f", m.WeeklyPAI, cfg.WeeklyPAITarget),
			Action:   "Activity is under half the weekly target. Schedule sessions for the coming days.",
		})
	}

	if m.AvgSleepHours != nil && *m.AvgSleepHours < cfg.SleepTargetHours-1.5 {
		alerts = append(alerts, schema.Alert{
			ID:       "short_sleep",
			Title:    "Sleep debt",
			Severity: schema.SeverityModerate,
			Detail:   fmt.Sprintf("Averaging %.1fh of sleep against a %.1fh target", *m.AvgSleepHours, cfg.SleepTargetHours),
			Action:   "Sustained short sleep degrades recovery and glucose control.",
		})
	}

	if m.Load.TSB < -30 {
		alerts = append(alerts, schema.Alert{
			ID:       "deep_fatigue",
			Title:    "Training stress balance",
			Severity: schema.SeverityHigh,
			Detail:   fmt.Sprintf("TSB at %.1f", m.Load.TSB),
			Action:   "Accumulated fatigue is deep. Plan recovery days before the next hard block.",
		})
	}

	if m.Glucose.Fasting != nil && *m.Glucose.Fasting > 100 {
		a := schema.Alert{
			ID:     "fasting_glucose_trend",
			Title:  "Fasting glucose trend",
			Detail: fmt.Sprintf("Tracked fasting glucose averaging %.0f mg/dL", *m.Glucose.Fasting),
		}
		if *m.Glucose.Fasting <= 125 {
			a.Severity = schema.SeverityModerate
			a.Action = "Impaired fasting range across the tracked window. Watch refined carbohydrates."
		} else {
			a.Severity = schema.SeverityCritical
			a.Action = "Diabetic range across the tracked window. Consult a physician."
		}
		alerts = append(alerts, a)
	}

	if m.CurrentWeight != nil && m.WeightWeekAgo != nil {
		drift := *m.CurrentWeight - *m.WeightWeekAgo
		if drift > 2 || drift < -2 {
			alerts = append(alerts, schema.Alert{
				ID:       "weight_drift",
				Title:    "Weight drift",
				Severity: schema.SeverityModerate,
				Detail:   fmt.Sprintf("Weight moved %+.1f kg over the last week", drift),
				Action:   "A swing this fast is mostly water. Recheck after a normal week before reacting.",
			})
		}
	}

	return sortAlerts(alerts)
}

// sortAlerts orders alerts most urgent first, preserving rule order within a
// severity.
func sortAlerts(alerts []schema.Alert) []schema.Alert {
	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank[alerts[i].Severity] < severityRank[alerts[j].Severity]
	})
	return alerts
}

func hba1cAlert(v *float64) *schema.Alert {
	if v == nil {
		return nil
	}
	a := schema.Alert{ID: "hba1c", Title: "HbA1c", Detail: fmt.Sprintf("HbA1c at %.1f%%", *v)}
	switch {
	case *v <= 5.7:
		a.Severity = schema.SeverityGood
		a.Action = "Within the healthy range."
	case *v <= 6.4:
		a.Severity = schema.SeverityHigh
		a.Action = "Prediabetic range. Review carbohydrate intake and retest in 3 months."
	default:
		a.Severity = schema.SeverityCritical
		a.Action = "Diabetic range. Consult a physician."
	}
	return &a
}

func glucoseAlert(v *float64) *schema.Alert {
	if v == nil || *v <= 100 {
		return nil
	}
	a := schema.Alert{ID: "glucose", Title: "Fasting glucose", Detail: fmt.Sprintf("Fasting glucose at %.0f mg/dL", *v)}
	if *v <= 125 {
		a.Severity = schema.SeverityModerate
		a.Action = "Impaired fasting glucose. Watch refined carbohydrates."
	} else {
		a.Severity = schema.SeverityCritical
		a.Action = "Diabetic range. Consult a physician."
	}
	return &a
}

func ldlAlert(v *float64) *schema.Alert {
	if v == nil {
		return nil
	}
	a := schema.Alert{ID: "ldl", Title: "LDL cholesterol", Detail: fmt.Sprintf("LDL at %.0f mg/dL", *v)}
	switch {
	case *v <= 100:
		a.Severity = schema.SeverityGood
		a.Action = "Within the optimal range."
	case *v <= 130:
		a.Severity = schema.SeverityModerate
		a.Action = "Near optimal. Favor unsaturated fats."
	default:
		a.Severity = schema.SeverityHigh
		a.Action = "Elevated. Review diet and discuss with a physician."
	}
	return &a
}

func hdlAlert(v *float64) *schema.Alert {
	if v == nil {
		return nil
	}
	a := schema.Alert{ID: "hdl", Title: "HDL cholesterol", Detail: fmt.Sprintf("HDL at %.0f mg/dL", *v)}
	switch {
	case *v >= 60:
		a.Severity = schema.SeverityGood
		a.Action = "Protective level."
	case *v >= 40:
		a.Severity = schema.SeverityHigh
		a.Action = "Below the protective threshold. Aerobic exercise raises HDL."
	default:
		a.Severity = schema.SeverityCritical
		a.Action = "Low HDL is an independent cardiovascular risk factor."
	}
	return &a
}

func triglycerideAlert(v *float64) *schema.Alert {
	if v == nil {
		return nil
	}
	a := schema.Alert{ID: "triglycerides", Title: "Triglycerides", Detail: fmt.Sprintf("Triglycerides at %.0f mg/dL", *v)}
	switch {
	case *v <= 150:
		a.Severity = schema.SeverityGood
		a.Action = "Within the healthy range."
	case *v <= 200:
		a.Severity = schema.SeverityModerate
		a.Action = "Borderline high. Cut alcohol and simple sugars."
	default:
		a.Severity = schema.SeverityHigh
		a.Action = "High. Review diet and retest."
	}
	return &a
}

func tshAlert(v *float64) *schema.Alert {
	if v == nil {
		return nil
	}
	a := schema.Alert{ID: "tsh", Title: "TSH", Detail: fmt.Sprintf("TSH at %.2f uIU/mL", *v)}
	switch {
	case *v >= 0.4 && *v <= 2.0:
		a.Severity = schema.SeverityGood
		a.Action = "Within the optimal range."
	case *v <= 4.0:
		a.Severity = schema.SeverityModerate
		a.Action = "Upper-normal. Worth tracking across panels."
	default:
		a.Severity = schema.SeverityHigh
		a.Action = "Outside the reference range. Consult an endocrinologist."
	}
	return &a
}

func crpAlert(v *float64) *schema.Alert {
	if v == nil {
		return nil
	}
	a := schema.Alert{ID: "crp", Title: "C-reactive protein", Detail: fmt.Sprintf("CRP at %.2f mg/L", *v)}
	switch {
	case *v <= 1.0:
		a.Severity = schema.SeverityGood
		a.Action = "Low inflammation."
	case *v <= 3.0:
		a.Severity = schema.SeverityModerate
		a.Action = "Average cardiovascular risk band."
	default:
		a.Severity = schema.SeverityHigh
		a.Action = "Elevated inflammation. Rule out an acute cause and retest."
	}
	return &a
}

func creatinineAlert(v *float64) *schema.Alert {
	if v == nil || (*v >= 0.6 && *v <= 1.2) {
		return nil
	}
	a := schema.Alert{ID: "creatinine", Title: "Creatinine", Detail: fmt.Sprintf("Creatinine at %.2f mg/dL", *v)}
	if *v <= 1.5 {
		a.Severity = schema.SeverityModerate
		a.Action = "Slightly outside range. Hydration and training load can shift it."
	} else {
		a.Severity = schema.SeverityHigh
		a.Action = "Outside range. Consult a physician about kidney function."
	}
	return &a
}

func ldlHdlRatioAlert(ldl, hdl *float64) *schema.Alert {
	if ldl == nil || hdl == nil || *hdl <= 0 {
		return nil
	}
	ratio := *ldl / *hdl
	if ratio <= 3 {
		return nil
	}
	return &schema.Alert{
		ID:       "ldl_hdl_ratio",
		Title:    "LDL/HDL ratio",
		Severity: schema.SeverityHigh,
		Detail:   fmt.Sprintf("LDL/HDL ratio at %.1f", ratio),
		Action:   "Ratio above 3 indicates elevated cardiovascular risk.",
	}
}
