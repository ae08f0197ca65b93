package presentation

import (
	"strings"

	"premium-estimator/internal/common/errors"
	"premium-estimator/internal/models"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// EstimateView is everything a client needs to show one outcome. An error
// view carries only the error message: no premium and no health block.
type EstimateView struct {
	RequestID string       `json:"requestId"`
	Theme     string       `json:"theme"`
	Title     string       `json:"title"`
	Status    string       `json:"status"`
	Banner    string       `json:"banner,omitempty"`
	Premium   *PremiumView `json:"premium,omitempty"`
	Health    *HealthView  `json:"health,omitempty"`
	Error     string       `json:"error,omitempty"`
	Palette   Palette      `json:"palette"`
}

type PremiumView struct {
	Label   string  `json:"label"`
	Amount  float64 `json:"amount"`
	Rounded int64   `json:"rounded"`
	Display string  `json:"display"`
}

type HealthView struct {
	Heading     string          `json:"heading"`
	Score       int             `json:"score"`
	RiskTier    models.RiskTier `json:"riskTier"`
	Headline    string          `json:"headline"`
	TipsHeading string          `json:"tipsHeading"`
	Tips        []string        `json:"tips"`
}

type Presenter struct {
	defaultTheme Theme
}

// NewPresenter fails if defaultTheme is not a built-in theme.
func NewPresenter(defaultTheme string) (*Presenter, error) {
	t, err := LookupTheme(defaultTheme)
	if err != nil {
		return nil, err
	}
	return &Presenter{defaultTheme: t}, nil
}

func (p *Presenter) theme(name string) (Theme, error) {
	if name == "" {
		return p.defaultTheme, nil
	}
	return LookupTheme(name)
}

// Render builds the success view.
func (p *Presenter) Render(themeName, requestID string, premium float64, a models.HealthAssessment) (EstimateView, error) {
	t, err := p.theme(themeName)
	if err != nil {
		return EstimateView{}, err
	}

	tips := make([]string, 0, len(a.Tips))
	for _, tip := range a.Tips {
		tips = append(tips, t.Copy.Tips[tip])
	}

	return EstimateView{
		RequestID: requestID,
		Theme:     t.Name,
		Title:     t.Copy.Title,
		Status:    StatusSuccess,
		Banner:    t.Copy.SuccessBanner,
		Premium: &PremiumView{
			Label:   t.Copy.PremiumLabel,
			Amount:  premium,
			Rounded: RoundPremium(premium),
			Display: FormatPremium(premium),
		},
		Health: &HealthView{
			Heading:     t.Copy.HealthHeading,
			Score:       a.Score,
			RiskTier:    a.RiskTier,
			Headline:    t.Copy.Tiers[a.RiskTier],
			TipsHeading: t.Copy.TipsHeading,
			Tips:        tips,
		},
		Palette: t.Palette,
	}, nil
}

// RenderError builds the view shown when the premium could not be predicted.
func (p *Presenter) RenderError(themeName, requestID string, cause error) (EstimateView, error) {
	t, err := p.theme(themeName)
	if err != nil {
		return EstimateView{}, err
	}

	return EstimateView{
		RequestID: requestID,
		Theme:     t.Name,
		Title:     t.Copy.Title,
		Status:    StatusError,
		Error:     t.Copy.ErrorPrefix + FailureDetail(cause),
		Palette:   t.Palette,
	}, nil
}

// FailureDetail is the human part of a prediction error.
func FailureDetail(err error) string {
	if stdErr, ok := errors.AsStandardError(err); ok {
		if stdErr.Details != "" {
			return stdErr.Details
		}
		return stdErr.Message
	}
	return err.Error()
}

// Text renders the view as plain text for email and SMS.
func (v EstimateView) Text() string {
	var b strings.Builder
	b.WriteString(v.Title)
	b.WriteString("\n\n")

	if v.Status == StatusError {
		b.WriteString(v.Error)
		b.WriteString("\n")
		return b.String()
	}

	if v.Premium != nil {
		b.WriteString(v.Premium.Label)
		b.WriteString(": ")
		b.WriteString(v.Premium.Display)
		b.WriteString("\n")
	}
	if v.Health != nil {
		b.WriteString("\n")
		b.WriteString(v.Health.Heading)
		b.WriteString("\n")
		b.WriteString(v.Health.Headline)
		b.WriteString("\n\n")
		b.WriteString(v.Health.TipsHeading)
		b.WriteString("\n")
		for _, tip := range v.Health.Tips {
			b.WriteString("- ")
			b.WriteString(tip)
			b.WriteString("\n")
		}
	}
	return b.String()
}
