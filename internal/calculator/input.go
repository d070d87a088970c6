package calculator

// Defaults used by a fresh calculator.
const (
	DefaultTokenName   = "BTC"
	DefaultTradingFees = 0.00000006
)

// Input is everything the user can edit in one calculator.
// Supply and market cap are informational and take part in no formula.
type Input struct {
	TokenName         string  `json:"token_name"`
	CurrentPrice      float64 `json:"current_price"`
	CirculatingSupply float64 `json:"circulating_supply"`
	TotalSupply       float64 `json:"total_supply"`
	MarketCap         float64 `json:"market_cap"`
	InvestmentAmount  float64 `json:"investment_amount"`
	UpcomingUnlock    float64 `json:"upcoming_unlock"` // percent of supply
	TradingFees       float64 `json:"trading_fees"`    // fraction, charged on buy and on sell
	Target            Target  `json:"target"`
}

// DefaultInput returns the input a new calculator starts with.
func DefaultInput() Input {
	return Input{
		TokenName:   DefaultTokenName,
		TradingFees: DefaultTradingFees,
	}
}

// ExpectedPriceTarget is the dollar-denominated price target.
func (in Input) ExpectedPriceTarget() NullFloat64 {
	return in.Target.Currency()
}

// ExpectedPriceTargetTokens is the token-denominated price target.
func (in Input) ExpectedPriceTargetTokens() NullFloat64 {
	return in.Target.Tokens()
}
