// Package presentation renders estimate outcomes into user-facing views.
//
// One engine serves every look; a Theme only swaps palette and copy.
package presentation

import (
	"sort"

	"premium-estimator/internal/common/errors"
	"premium-estimator/internal/models"
)

type Palette struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Heading    string `json:"heading"`
	Accent     string `json:"accent"`
	AccentAlt  string `json:"accentAlt"`
	Section    string `json:"section"`
	Font       string `json:"font"`
}

type Copy struct {
	Title         string
	Subtitle      string
	SubmitLabel   string
	SuccessBanner string
	PremiumLabel  string
	HealthHeading string
	TipsHeading   string
	// ErrorPrefix is prepended verbatim to the failure detail.
	ErrorPrefix string
	Tiers       map[models.RiskTier]string
	Tips        map[models.Tip]string
}

type Theme struct {
	Name    string
	Palette Palette
	Copy    Copy
}

const (
	ThemeOcean   = "ocean"
	ThemeClassic = "classic"
)

var themes = map[string]Theme{
	ThemeOcean: {
		Name: ThemeOcean,
		Palette: Palette{
			Background: "#F0F6FF",
			Text:       "#003366",
			Heading:    "#002244",
			Accent:     "#2196F3",
			AccentAlt:  "#1E88E5",
			Section:    "#e6f0ff",
			Font:       "Poppins",
		},
		Copy: Copy{
			Title:         "🏥 Smart Premium Estimator",
			Subtitle:      "Use this tool to get an accurate estimate of your health insurance premium based on your profile.",
			SubmitLabel:   "🔮 Estimate My Premium",
			SuccessBanner: "✅ Prediction Complete",
			PremiumLabel:  "💰 Estimated Premium (₹)",
			HealthHeading: "🧠 Health Feedback",
			TipsHeading:   "💡 Personalized Tips",
			ErrorPrefix:   "❌ Prediction failed: ",
			Tiers: map[models.RiskTier]string{
				models.RiskTierGood:     "🟢 Your health is **Good**. Keep it up!",
				models.RiskTierModerate: "🟡 Your health is **Moderate**. Pay some attention.",
				models.RiskTierAtRisk:   "🔴 Your health is **At Risk**. Please consult a healthcare provider.",
			},
			Tips: map[models.Tip]string{
				models.TipReduceSmoking:   "🚭 Quit or reduce smoking to lower risks.",
				models.TipHealthyWeight:   "🥗 Maintain a healthy weight with exercise and nutrition.",
				models.TipRegularCheckups: "🩺 Keep up with regular checkups and treatments.",
				models.TipEarlyScreenings: "🧬 Stay proactive with early screenings.",
				models.TipDoingGreat:      "✅ You're doing great. Keep up your healthy lifestyle!",
			},
		},
	},
	ThemeClassic: {
		Name: ThemeClassic,
		Palette: Palette{
			Background: "#FFFFFF",
			Text:       "#262730",
			Heading:    "#262730",
			Accent:     "#FF4B4B",
			AccentAlt:  "#FF4B4B",
			Section:    "#F0F2F6",
			Font:       "sans-serif",
		},
		Copy: Copy{
			Title:         "Smart Premium Estimator",
			Subtitle:      "Estimate your health insurance premium from your profile.",
			SubmitLabel:   "Estimate Premium",
			SuccessBanner: "Prediction Complete",
			PremiumLabel:  "Estimated Premium (₹)",
			HealthHeading: "Health Feedback",
			TipsHeading:   "Personalized Tips",
			ErrorPrefix:   "❌ Prediction failed: ",
			Tiers: map[models.RiskTier]string{
				models.RiskTierGood:     "Your health is Good. Keep it up!",
				models.RiskTierModerate: "Your health is Moderate. Pay some attention.",
				models.RiskTierAtRisk:   "Your health is At Risk. Please consult a healthcare provider.",
			},
			Tips: map[models.Tip]string{
				models.TipReduceSmoking:   "Quit or reduce smoking to lower risks.",
				models.TipHealthyWeight:   "Maintain a healthy weight with exercise and nutrition.",
				models.TipRegularCheckups: "Keep up with regular checkups and treatments.",
				models.TipEarlyScreenings: "Stay proactive with early screenings.",
				models.TipDoingGreat:      "You're doing great. Keep up your healthy lifestyle!",
			},
		},
	},
}

// LookupTheme returns THEME_NOT_FOUND for unknown names.
func LookupTheme(name string) (Theme, error) {
	t, ok := themes[name]
	if !ok {
		return Theme{}, errors.NewThemeNotFoundError(name)
	}
	return t, nil
}

// ThemeNames lists the built-in themes alphabetically.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
