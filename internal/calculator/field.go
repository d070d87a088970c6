package calculator

import "fmt"

// Field identifies one editable input.
type Field int

const (
	FieldTokenName Field = iota
	FieldCurrentPrice
	FieldCirculatingSupply
	FieldTotalSupply
	FieldMarketCap
	FieldInvestmentAmount
	FieldTargetCurrency
	FieldTargetTokens
	FieldUpcomingUnlock
	FieldTradingFees
)

// Fields lists every editable input in display order.
var Fields = []Field{
	FieldTokenName,
	FieldCurrentPrice,
	FieldCirculatingSupply,
	FieldTotalSupply,
	FieldMarketCap,
	FieldInvestmentAmount,
	FieldTargetCurrency,
	FieldTargetTokens,
	FieldUpcomingUnlock,
	FieldTradingFees,
}

var fieldNames = map[Field]string{
	FieldTokenName:         "token_name",
	FieldCurrentPrice:      "current_price",
	FieldCirculatingSupply: "circulating_supply",
	FieldTotalSupply:       "total_supply",
	FieldMarketCap:         "market_cap",
	FieldInvestmentAmount:  "investment_amount",
	FieldTargetCurrency:    "expected_price_target",
	FieldTargetTokens:      "expected_price_target_tokens",
	FieldUpcomingUnlock:    "upcoming_unlock",
	FieldTradingFees:       "trading_fees",
}

var fieldLabels = map[Field]string{
	FieldTokenName:         "Token Name",
	FieldCurrentPrice:      "Current Price ($)",
	FieldCirculatingSupply: "Circulating Supply",
	FieldTotalSupply:       "Total Supply",
	FieldMarketCap:         "Market Cap ($)",
	FieldInvestmentAmount:  "Investment Amount ($)",
	FieldTargetCurrency:    "Expected Price Target ($)",
	FieldTargetTokens:      "Expected Price Target (Token/Coin)",
	FieldUpcomingUnlock:    "Upcoming Unlock (%)",
	FieldTradingFees:       "Trading Fees (%)",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Label is the human-readable caption of the field.
func (f Field) Label() string {
	return fieldLabels[f]
}

// IsText reports whether the field holds free-form text.
func (f Field) IsText() bool {
	return f == FieldTokenName
}

// IsTarget reports whether the field is one of the two price target views.
func (f Field) IsTarget() bool {
	return f == FieldTargetCurrency || f == FieldTargetTokens
}

// MarshalText implements encoding.TextMarshaler.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// ParseField looks a field up by its name.
func ParseField(name string) (Field, error) {
	for f, n := range fieldNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown calculator field %q", name)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Field) UnmarshalText(text []byte) error {
	parsed, err := ParseField(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
