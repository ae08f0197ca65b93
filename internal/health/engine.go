// Package health turns the risk-relevant part of an applicant profile into a
// bounded-from-above health score, a risk tier and an ordered list of tips.
//
// Only smoking status, BMI category, medical history and genetical risk take
// part. Every other profile field is ignored.
package health

import "premium-estimator/internal/models"

const (
	// StartingScore is the score of an applicant with no deductions.
	StartingScore = 10

	// GeneticRiskThreshold is the first genetical risk value that costs points
	// and earns a screening tip.
	GeneticRiskThreshold = 3

	goodTierFloor     = 8
	moderateTierFloor = 5
)

// Assess scores a profile. It is total over the declared profile domain and
// has no side effects. The score is not clamped and can drop below zero.
func Assess(p models.ApplicantProfile) models.HealthAssessment {
	score := StartingScore -
		SmokingDeduction(p.SmokingStatus) -
		BMIDeduction(p.BMICategory) -
		HistoryDeduction(p.MedicalHistory) -
		GeneticDeduction(p.GeneticalRisk)

	return models.HealthAssessment{
		Score:    score,
		RiskTier: Classify(score),
		Tips:     Tips(p),
	}
}

func SmokingDeduction(s models.SmokingStatus) int {
	switch s {
	case models.SmokingRegular:
		return 4
	case models.SmokingOccasional:
		return 2
	default:
		return 0
	}
}

func BMIDeduction(b models.BMICategory) int {
	switch b {
	case models.BMIObesity:
		return 3
	case models.BMIOverweight:
		return 2
	case models.BMIUnderweight:
		return 1
	default:
		return 0
	}
}

// HistoryDeduction is flat: every condition, single or combined, costs the same.
func HistoryDeduction(h models.MedicalHistory) int {
	if h != models.HistoryNoDisease {
		return 3
	}
	return 0
}

func GeneticDeduction(risk int) int {
	if risk >= GeneticRiskThreshold {
		return 2
	}
	return 0
}

// Classify maps a score to its tier. Breakpoints are 8 and 5.
func Classify(score int) models.RiskTier {
	switch {
	case score >= goodTierFloor:
		return models.RiskTierGood
	case score >= moderateTierFloor:
		return models.RiskTierModerate
	default:
		return models.RiskTierAtRisk
	}
}

// Tips lists advice in fixed rule order, independent of score. Unlike the
// deductions, every matching rule contributes. The fallback appears only when
// nothing else does.
func Tips(p models.ApplicantProfile) []models.Tip {
	tips := make([]models.Tip, 0, 4)

	if p.SmokingStatus != models.SmokingNone {
		tips = append(tips, models.TipReduceSmoking)
	}
	if p.BMICategory == models.BMIObesity || p.BMICategory == models.BMIOverweight {
		tips = append(tips, models.TipHealthyWeight)
	}
	if p.MedicalHistory != models.HistoryNoDisease {
		tips = append(tips, models.TipRegularCheckups)
	}
	if p.GeneticalRisk >= GeneticRiskThreshold {
		tips = append(tips, models.TipEarlyScreenings)
	}

	if len(tips) == 0 {
		tips = append(tips, models.TipDoingGreat)
	}
	return tips
}
