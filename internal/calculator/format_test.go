package calculator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0.000000000000", FormatNumber(0))
	assert.Equal(t, "500.000000000000", FormatNumber(500))
	assert.Equal(t, "1,234.500000000000", FormatNumber(1234.5))
	assert.Equal(t, "1,000,000.000000000000", FormatNumber(1e6))
	assert.Equal(t, "0.000000060000", FormatNumber(0.00000006))
}

func TestFormatOptional(t *testing.T) {
	assert.Equal(t, NotApplicable, FormatOptional(None))
	assert.Equal(t, "2,000.000000000000", FormatOptional(Some(2000)))
}

func TestNullFloat64JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A NullFloat64 `json:"a"`
		B NullFloat64 `json:"b"`
	}{A: Some(1.5), B: None})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1.5,"b":null}`, string(data))

	var decoded struct {
		A NullFloat64 `json:"a"`
		B NullFloat64 `json:"b"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Some(1.5), decoded.A)
	assert.Equal(t, None, decoded.B)
}

func TestFieldNames(t *testing.T) {
	for _, f := range Fields {
		parsed, err := ParseField(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
		assert.NotEmpty(t, f.Label())
	}

	_, err := ParseField("price")
	assert.Error(t, err)
}

func TestFieldIsTarget(t *testing.T) {
	var targets []Field
	for _, f := range Fields {
		if f.IsTarget() {
			targets = append(targets, f)
		}
	}
	assert.Equal(t, []Field{FieldTargetCurrency, FieldTargetTokens}, targets)
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	s := newTestSession(t)
	s.SetCurrentPrice(2)
	s.SetTargetTokens(Some(3))

	data, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, FieldTargetTokens, decoded.Field)
	assert.Equal(t, UnitTokens, decoded.Input.Target.Unit)
	assert.Equal(t, s.Input(), decoded.Input)
	assert.Equal(t, Some(6), decoded.TargetCurrency)
}

func TestResultRows(t *testing.T) {
	s := newTestSession(t)
	s.SetCurrentPrice(10)
	s.SetInvestmentAmount(100)

	rows := ResultRows(s.Output())
	require.Len(t, rows, 4)
	assert.Equal(t, "Tokens Purchased", rows[0][0])
	assert.Equal(t, "10.000000000000", rows[0][1])
	assert.Equal(t, NotApplicable, rows[1][1])
}
