package calculator

import (
	"encoding/json"
	"strconv"
)

// NullFloat64 is a float that may be "not set".
type NullFloat64 struct {
	Float64 float64
	Valid   bool
}

// Some wraps a set value.
func Some(v float64) NullFloat64 {
	return NullFloat64{Float64: v, Valid: true}
}

// None is the "not set" value.
var None = NullFloat64{}

func (n NullFloat64) String() string {
	if !n.Valid {
		return "<unset>"
	}
	return strconv.FormatFloat(n.Float64, 'g', -1, 64)
}

// MarshalJSON encodes an unset value as null.
func (n NullFloat64) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

// UnmarshalJSON accepts a number or null.
func (n *NullFloat64) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = None
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Some(v)
	return nil
}
