package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	cases := map[string]float64{
		"":          0,
		"   ":       0,
		"42":        42,
		"  3.25 ":   3.25,
		"-7":        -7,
		"+7":        7,
		".5":        0.5,
		"5.":        5,
		"1e3":       1000,
		"2.5E-2":    0.025,
		"1e":        1,
		"1e+":       1,
		"12abc":     12,
		"1,000":     1,
		"abc":       0,
		"-":         0,
		".":         0,
		"NaN":       0,
		"Infinity":  0,
		"1e400":     0,
		"0.0000001": 0.0000001,
	}

	for raw, want := range cases {
		assert.Equal(t, want, ParseNumber(raw), "input %q", raw)
	}
}

func TestParseTarget(t *testing.T) {
	assert.Equal(t, None, ParseTarget(""))
	assert.Equal(t, None, ParseTarget("abc"))
	assert.Equal(t, Some(0), ParseTarget("0"))
	assert.Equal(t, Some(4.5), ParseTarget("4.5"))
	assert.Equal(t, Some(-1), ParseTarget("-1x"))
}
