package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/rovshanmuradov/token-calc/internal/calculator"
)

// Summary holds portfolio totals. Sums are kept as decimals so that adding
// many float inputs does not accumulate binary rounding error.
type Summary struct {
	Calculators int `json:"calculators"`
	// Targeted counts calculators whose future value is applicable.
	Targeted int `json:"targeted"`

	TotalInvested decimal.Decimal `json:"total_invested"`
	// TargetedInvested is the investment behind the targeted calculators only.
	TargetedInvested decimal.Decimal `json:"targeted_invested"`
	ProjectedValue   decimal.Decimal `json:"projected_value"`
	ProjectedGain    decimal.Decimal `json:"projected_gain"`
	// PostUnlockValue values every position at its post-unlock price.
	PostUnlockValue decimal.Decimal `json:"post_unlock_value"`
}

// ProjectedReturn is ProjectedGain as a percentage of TargetedInvested.
// It is zero when nothing targeted was invested.
func (s Summary) ProjectedReturn() decimal.Decimal {
	if s.TargetedInvested.IsZero() {
		return decimal.Zero
	}
	return s.ProjectedGain.Div(s.TargetedInvested).Mul(decimal.NewFromInt(100))
}

// Summarize computes totals over snaps.
func Summarize(snaps []calculator.Snapshot) Summary {
	sum := Summary{Calculators: len(snaps)}

	for _, snap := range snaps {
		invested := decimal.NewFromFloat(snap.Input.InvestmentAmount)
		sum.TotalInvested = sum.TotalInvested.Add(invested)

		tokens := decimal.NewFromFloat(snap.Output.TokensPurchased)
		afterUnlock := decimal.NewFromFloat(snap.Output.NewPriceAfterUnlock)
		sum.PostUnlockValue = sum.PostUnlockValue.Add(tokens.Mul(afterUnlock))

		if !snap.Output.FutureValue.Valid {
			continue
		}
		sum.Targeted++
		sum.TargetedInvested = sum.TargetedInvested.Add(invested)
		sum.ProjectedValue = sum.ProjectedValue.Add(decimal.NewFromFloat(snap.Output.FutureValue.Float64))
	}

	sum.ProjectedGain = sum.ProjectedValue.Sub(sum.TargetedInvested)
	return sum
}
