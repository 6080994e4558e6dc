package core

import (
	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
)

// Lab composite weights.
const (
	labWeightCardio       = 0.42
	labWeightMetabolic    = 0.28
	labWeightInflammation = 0.18
	labWeightHormone      = 0.12
)

// ComputeLabScores turns the configured lab panel into four polynomial
// sub-scores and their weighted longevity composite. Each sub-score measures
// squared distance from an optimal point, scaled so typical healthy values
// land in the 80-100 band. Absent assays fall back to population-typical
// defaults, so a partial panel still scores. Returns nil when no lab value
// was configured at all.
func ComputeLabScores(panel *schema.LabPanel, currentWeight *float64, cfg *contract.Config) *schema.LabScores {
	if panel.IsEmpty() {
		return nil
	}

	scores := &schema.LabScores{
		Cardio:       cardioLabScore(panel),
		Metabolic:    metabolicLabScore(panel, currentWeight, cfg),
		Inflammation: inflammationLabScore(panel),
		Hormone:      hormoneLabScore(panel),
	}
	scores.Longevity = contract.RoundTo(
		labWeightCardio*scores.Cardio+
			labWeightMetabolic*scores.Metabolic+
			labWeightInflammation*scores.Inflammation+
			labWeightHormone*scores.Hormone, 1)
	return scores
}

// cardioLabScore penalizes distance from LDL 70, HDL 50, triglycerides 100
// and systolic 120.
func cardioLabScore(panel *schema.LabPanel) float64 {
	ldl := contract.PtrOr(panel.LDL, 100)
	hdl := contract.PtrOr(panel.HDL, 50)
	tg := contract.PtrOr(panel.Triglyceride, 100)
	sys := contract.PtrOr(panel.Systolic, 130)

	penalty := sq((ldl-70)/30) + sq((50-hdl)/10) + sq((tg-100)/50) + sq((sys-120)/20)
	return contract.Clamp(100-penalty*25, 0, 100)
}

// metabolicLabScore penalizes distance from fasting glucose 85, HbA1c 5.2 and
// BMI 22. BMI uses the latest tracked weight, falling back to the target
// weight when the cache has none.
func metabolicLabScore(panel *schema.LabPanel, currentWeight *float64, cfg *contract.Config) float64 {
	glucose := contract.PtrOr(panel.Glucose, 85)
	hba1c := contract.PtrOr(panel.HbA1c, 5.2)

	weight := contract.PtrOr(currentWeight, cfg.TargetWeightKg)
	heightM := float64(cfg.HeightCm) / 100
	bmi := weight / (heightM * heightM)

	penalty := sq((glucose-85)/15) + sq((hba1c-5.2)/0.5) + sq((bmi-22)/3)
	return contract.Clamp(100-penalty*15, 0, 100)
}

// inflammationLabScore penalizes C-reactive protein and creatinine, with a
// bonus when both sit in the clearly healthy range. The CRP penalty is capped
// so one acute infection cannot zero the score.
func inflammationLabScore(panel *schema.LabPanel) float64 {
	crp := contract.PtrOr(panel.CRP, 0.5)
	creatinine := contract.PtrOr(panel.Creatinine, 0.9)

	crpPenalty := min(sq(crp/0.6)*30, 50)
	penalty := crpPenalty + sq((creatinine-0.9)/0.3)*20

	bonus := 0.0
	if crp < 0.6 && creatinine < 1.0 {
		bonus = 15
	}
	return contract.Clamp(100-penalty+bonus, 0, 100)
}

// hormoneLabScore penalizes TSH distance from 1.5 and testosterone distance
// from 6.0, with a bonus for free T4 inside the reference band.
func hormoneLabScore(panel *schema.LabPanel) float64 {
	tsh := contract.PtrOr(panel.TSH, 2.5)
	freeT4 := contract.PtrOr(panel.FreeT4, 1.3)
	testosterone := contract.PtrOr(panel.Testosterone, 6.5)

	penalty := sq((tsh-1.5)/1)*30 + sq((testosterone-6.0)/2)*20

	bonus := 0.0
	if freeT4 >= 0.8 && freeT4 <= 1.8 {
		bonus = 10
	}
	return contract.Clamp(100-penalty+bonus, 0, 100)
}

func sq(v float64) float64 {
	return v * v
}
