package calculator

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber coerces user text to a number. It reads the longest decimal
// literal at the start of raw ("12.5abc" is 12.5) and falls back to 0 when
// there is none or the value is not finite.
func ParseNumber(raw string) float64 {
	v, ok := leadingNumber(raw)
	if !ok {
		return 0
	}
	return v
}

// ParseTarget coerces user text for a price target field. Empty or
// unparseable text means "not set"; an explicit 0 is a set target of zero.
func ParseTarget(raw string) NullFloat64 {
	v, ok := leadingNumber(raw)
	if !ok {
		return None
	}
	return Some(v)
}

func leadingNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := false
	for i < len(s) && isDigit(s[i]) {
		i++
		digits = true
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits = true
		}
	}
	if !digits {
		return 0, false
	}

	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
