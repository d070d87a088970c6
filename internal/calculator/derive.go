package calculator

import (
	"fmt"
	"math"
)

// breakEvenTolerance is the dollar gap under which break-even is reported as
// practically equal to the current price.
const breakEvenTolerance = 0.01

// Output holds the values derived from an Input. It is never stored; Derive
// rebuilds it after every edit.
type Output struct {
	TokensPurchased     float64     `json:"tokens_purchased"`
	FutureValue         NullFloat64 `json:"future_value"`
	BreakEvenPrice      float64     `json:"break_even_price"`
	BreakEvenDelta      float64     `json:"break_even_delta"`
	NewPriceAfterUnlock float64     `json:"new_price_after_unlock"`
}

// Derive computes the outputs for in. It never fails: a zero price yields
// zero tokens and no future value, and an unset target yields no future value
// rather than zero.
func Derive(in Input) Output {
	price := in.CurrentPrice

	out := Output{
		BreakEvenPrice:      finite(price * (1 + 2*in.TradingFees)),
		NewPriceAfterUnlock: finite(price * (1 - in.UpcomingUnlock/100)),
	}
	out.BreakEvenDelta = finite(out.BreakEvenPrice - price)

	if price <= 0 {
		return out
	}

	out.TokensPurchased = finite(in.InvestmentAmount / price)
	if target := in.Target.Currency(); target.Valid {
		out.FutureValue = Some(finite(out.TokensPurchased * target.Float64))
	}

	return out
}

// BreakEvenNote explains how far break-even sits from the current price.
func (o Output) BreakEvenNote() string {
	if math.Abs(o.BreakEvenDelta) < breakEvenTolerance {
		return "Break-even is almost equal to the current price due to low trading fees."
	}
	return fmt.Sprintf("Break-even price includes trading fees for buying & selling. "+
		"Difference from current price: $%.12f USDT", o.BreakEvenDelta)
}

// finite maps NaN and ±Inf, which only arise from overflow, to zero.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
