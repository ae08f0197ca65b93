// internal/health/engine_test.go
package health

import (
	"encoding/json"
	"testing"

	"premium-estimator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func healthyProfile() models.ApplicantProfile {
	return models.ApplicantProfile{
		Age:              30,
		Dependents:       1,
		IncomeLakhs:      12.5,
		GeneticalRisk:    0,
		BMICategory:      models.BMINormal,
		SmokingStatus:    models.SmokingNone,
		Gender:           models.GenderFemale,
		MaritalStatus:    models.MaritalMarried,
		MedicalHistory:   models.HistoryNoDisease,
		InsurancePlan:    models.PlanSilver,
		EmploymentStatus: models.EmploymentSalaried,
		Region:           models.RegionNortheast,
	}
}

func withRisk(smoking models.SmokingStatus, bmi models.BMICategory, history models.MedicalHistory, genetic int) models.ApplicantProfile {
	p := healthyProfile()
	p.SmokingStatus = smoking
	p.BMICategory = bmi
	p.MedicalHistory = history
	p.GeneticalRisk = genetic
	return p
}

// ==========================
// Core Functionality Tests
// ==========================

func TestAssess_Scenarios(t *testing.T) {
	tests := []struct {
		name          string
		profile       models.ApplicantProfile
		expectedScore int
		expectedTier  models.RiskTier
		expectedTips  []models.Tip
	}{
		{
			name:          "no risk factors",
			profile:       healthyProfile(),
			expectedScore: 10,
			expectedTier:  models.RiskTierGood,
			expectedTips:  []models.Tip{models.TipDoingGreat},
		},
		{
			name:          "every risk factor at its worst",
			profile:       withRisk(models.SmokingRegular, models.BMIObesity, models.HistoryDiabetes, 4),
			expectedScore: -2, // 10-4-3-3-2
			expectedTier:  models.RiskTierAtRisk,
			expectedTips: []models.Tip{
				models.TipReduceSmoking,
				models.TipHealthyWeight,
				models.TipRegularCheckups,
				models.TipEarlyScreenings,
			},
		},
		{
			name:          "occasional smoker who is underweight",
			profile:       withRisk(models.SmokingOccasional, models.BMIUnderweight, models.HistoryNoDisease, 1),
			expectedScore: 7, // 10-2-1
			expectedTier:  models.RiskTierModerate,
			expectedTips:  []models.Tip{models.TipReduceSmoking},
		},
		{
			name:          "underweight alone costs a point but earns no tip",
			profile:       withRisk(models.SmokingNone, models.BMIUnderweight, models.HistoryNoDisease, 0),
			expectedScore: 9,
			expectedTier:  models.RiskTierGood,
			expectedTips:  []models.Tip{models.TipDoingGreat},
		},
		{
			name:          "overweight with genetic risk at threshold",
			profile:       withRisk(models.SmokingNone, models.BMIOverweight, models.HistoryNoDisease, 3),
			expectedScore: 6, // 10-2-2
			expectedTier:  models.RiskTierModerate,
			expectedTips:  []models.Tip{models.TipHealthyWeight, models.TipEarlyScreenings},
		},
		{
			name:          "combined conditions cost the same as one",
			profile:       withRisk(models.SmokingNone, models.BMINormal, models.HistoryHighBloodPressureHeartDisease, 2),
			expectedScore: 7,
			expectedTier:  models.RiskTierModerate,
			expectedTips:  []models.Tip{models.TipRegularCheckups},
		},
		{
			name:          "regular smoker with a condition lands exactly on the at-risk edge",
			profile:       withRisk(models.SmokingRegular, models.BMINormal, models.HistoryThyroid, 0),
			expectedScore: 3,
			expectedTier:  models.RiskTierAtRisk,
			expectedTips:  []models.Tip{models.TipReduceSmoking, models.TipRegularCheckups},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assess(tt.profile)

			assert.Equal(t, tt.expectedScore, got.Score)
			assert.Equal(t, tt.expectedTier, got.RiskTier)
			assert.Equal(t, tt.expectedTips, got.Tips)
		})
	}
}

func TestAssess_ScoreIsSumOfIndependentDeductions(t *testing.T) {
	smoking := map[models.SmokingStatus]int{
		models.SmokingRegular:    4,
		models.SmokingOccasional: 2,
		models.SmokingNone:       0,
	}
	bmi := map[models.BMICategory]int{
		models.BMIObesity:     3,
		models.BMIOverweight:  2,
		models.BMIUnderweight: 1,
		models.BMINormal:      0,
	}

	for _, s := range models.SmokingStatuses {
		for _, b := range models.BMICategories {
			for _, h := range models.MedicalHistories {
				for g := models.MinGeneticalRisk; g <= models.MaxGeneticalRisk; g++ {
					historyCost := 3
					if h == models.HistoryNoDisease {
						historyCost = 0
					}
					geneticCost := 0
					if g >= 3 {
						geneticCost = 2
					}

					got := Assess(withRisk(s, b, h, g))
					want := 10 - smoking[s] - bmi[b] - historyCost - geneticCost

					require.Equal(t, want, got.Score, "smoking=%s bmi=%s history=%s genetic=%d", s, b, h, g)
					require.Equal(t, Classify(want), got.RiskTier)

					require.GreaterOrEqual(t, len(got.Tips), 1)
					require.LessOrEqual(t, len(got.Tips), 4)
					hasFallback := false
					for _, tip := range got.Tips {
						if tip == models.TipDoingGreat {
							hasFallback = true
						}
					}
					noOtherTip := s == models.SmokingNone &&
						b != models.BMIObesity && b != models.BMIOverweight &&
						h == models.HistoryNoDisease && g < 3
					require.Equal(t, noOtherTip, hasFallback)
					if hasFallback {
						require.Len(t, got.Tips, 1)
					}
				}
			}
		}
	}
}

func TestAssess_IgnoresNonRiskFields(t *testing.T) {
	base := withRisk(models.SmokingOccasional, models.BMIOverweight, models.HistoryDiabetes, 3)
	expected := Assess(base)

	variant := base
	variant.Age = 99
	variant.Dependents = 5
	variant.IncomeLakhs = 0
	variant.Gender = models.GenderMale
	variant.MaritalStatus = models.MaritalUnmarried
	variant.InsurancePlan = models.PlanGold
	variant.EmploymentStatus = models.EmploymentFreelancer
	variant.Region = models.RegionSouthwest

	assert.Equal(t, expected, Assess(variant))
}

func TestAssess_Idempotent(t *testing.T) {
	p := withRisk(models.SmokingRegular, models.BMIObesity, models.HistoryDiabetesThyroid, 5)

	first, err := json.Marshal(Assess(p))
	require.NoError(t, err)
	second, err := json.Marshal(Assess(p))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// ==========================
// Unit Tests
// ==========================

func TestClassify(t *testing.T) {
	tests := []struct {
		score    int
		expected models.RiskTier
	}{
		{10, models.RiskTierGood},
		{8, models.RiskTierGood},
		{7, models.RiskTierModerate},
		{5, models.RiskTierModerate},
		{4, models.RiskTierAtRisk},
		{0, models.RiskTierAtRisk},
		{-2, models.RiskTierAtRisk},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Classify(tt.score), "score %d", tt.score)
	}
}

func TestGeneticDeduction_FlatAboveThreshold(t *testing.T) {
	assert.Equal(t, 0, GeneticDeduction(0))
	assert.Equal(t, 0, GeneticDeduction(2))
	assert.Equal(t, 2, GeneticDeduction(3))
	assert.Equal(t, 2, GeneticDeduction(5))
}
