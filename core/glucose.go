package core

import (
	"time"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
)

// Glucose windows, in days.
const (
	glucoseWindowDays = 7
	gmiWindowDays     = 90
)

// MmolToMgDl converts a glucose reading from mmol/L to mg/dL.
func MmolToMgDl(mmol float64) float64 {
	return contract.RoundTo(mmol*18.0, 1)
}

// ComputeGlucoseSummary splits recent glucose samples into fasting (before
// 10:00) and postprandial (10:00 through 23:59) means over the trailing week,
// and computes the glucose management indicator over the trailing 90 days.
// Non-positive readings are ignored everywhere.
func ComputeGlucoseSummary(glucose []schema.GlucoseRecord, asOf time.Time) schema.GlucoseSummary {
	var summary schema.GlucoseSummary

	weekCutoff := asOf.AddDate(0, 0, -glucoseWindowDays)
	gmiCutoff := asOf.AddDate(0, 0, -gmiWindowDays)

	var fasting, postprandial, longRange []float64
	for _, g := range glucose {
		if g.MgDl <= 0 || g.Timestamp.After(asOf) {
			continue
		}
		if g.Timestamp.After(gmiCutoff) {
			longRange = append(longRange, g.MgDl)
		}
		if !g.Timestamp.After(weekCutoff) {
			continue
		}
		hour := g.Timestamp.Hour()
		switch {
		case hour < 10:
			fasting = append(fasting, g.MgDl)
		case hour <= 23:
			postprandial = append(postprandial, g.MgDl)
		}
	}

	summary.Samples = len(longRange)
	if len(fasting) > 0 {
		v := contract.RoundTo(contract.Mean(fasting), 1)
		summary.Fasting = &v
	}
	if len(postprandial) > 0 {
		v := contract.RoundTo(contract.Mean(postprandial), 1)
		summary.Postprandial = &v
	}
	if len(longRange) > 0 {
		mean := contract.Mean(longRange)
		meanRounded := contract.RoundTo(mean, 1)
		summary.MeanMgDl = &meanRounded

		gmi := contract.RoundTo(3.31+0.02392*mean, 1)
		summary.GMI = &gmi
	}
	return summary
}
