package calculator

import "fmt"

// Unit is the denomination a price target was entered in.
type Unit int

const (
	UnitCurrency Unit = iota // dollars per token
	UnitTokens               // multiples of the current price
)

func (u Unit) String() string {
	switch u {
	case UnitCurrency:
		return "currency"
	case UnitTokens:
		return "tokens"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Unit) UnmarshalText(text []byte) error {
	switch string(text) {
	case "currency":
		*u = UnitCurrency
	case "tokens":
		*u = UnitTokens
	default:
		return fmt.Errorf("unknown target unit %q", text)
	}
	return nil
}

// Target is the expected price target held as one canonical value.
//
// Value is what the user typed, in Unit. Price is the current price at the
// moment of that edit; the opposite representation is always derived from it,
// so a later price change leaves both views where they were until the target
// is edited again.
type Target struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
	Price float64 `json:"price"`
	Set   bool    `json:"set"`
}

// CurrencyTarget records a dollar-denominated target entered at price.
// An invalid v clears the target.
func CurrencyTarget(v NullFloat64, price float64) Target {
	if !v.Valid {
		return Target{}
	}
	return Target{Value: v.Float64, Unit: UnitCurrency, Price: price, Set: true}
}

// TokenTarget records a token-denominated target entered at price.
// An invalid v clears the target.
func TokenTarget(v NullFloat64, price float64) Target {
	if !v.Valid {
		return Target{}
	}
	return Target{Value: v.Float64, Unit: UnitTokens, Price: price, Set: true}
}

// Currency returns the dollar-denominated view of the target.
func (t Target) Currency() NullFloat64 {
	if !t.Set {
		return None
	}
	if t.Unit == UnitCurrency {
		return Some(t.Value)
	}
	return Some(finite(t.Value * t.Price))
}

// Tokens returns the token-denominated view of the target. It is unset when
// the target was entered in dollars against a zero price.
func (t Target) Tokens() NullFloat64 {
	if !t.Set {
		return None
	}
	if t.Unit == UnitTokens {
		return Some(t.Value)
	}
	if t.Price <= 0 {
		return None
	}
	return Some(finite(t.Value / t.Price))
}

// Stale reports whether the target was entered against a price other than
// current, i.e. the two views no longer satisfy currency = tokens × current.
func (t Target) Stale(current float64) bool {
	return t.Set && t.Price != current
}
