// internal/models/assessment.go
package models

// RiskTier is the coarse bucket of a health score.
type RiskTier string

const (
	RiskTierGood     RiskTier = "Good"
	RiskTierModerate RiskTier = "Moderate"
	RiskTierAtRisk   RiskTier = "AtRisk"
)

// Tip identifies one advisory message. The text shown to the user comes from
// the active presentation theme.
type Tip string

const (
	TipReduceSmoking   Tip = "reduce_smoking"
	TipHealthyWeight   Tip = "healthy_weight"
	TipRegularCheckups Tip = "regular_checkups"
	TipEarlyScreenings Tip = "early_screenings"
	TipDoingGreat      Tip = "doing_great"
)

// HealthAssessment is derived per request and never persisted.
type HealthAssessment struct {
	Score    int      `json:"score"`
	RiskTier RiskTier `json:"riskTier"`
	Tips     []Tip    `json:"tips"`
}
