package presentation

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// RoundPremium rounds half to even, matching how the amount was always
// displayed ("{:,.0f}").
func RoundPremium(v float64) int64 {
	return decimal.NewFromFloat(v).RoundBank(0).IntPart()
}

// FormatPremium renders v as a thousands-grouped whole number, e.g. 12,346.
func FormatPremium(v float64) string {
	return humanize.Comma(RoundPremium(v))
}
