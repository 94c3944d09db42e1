package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_Symmetric(t *testing.T) {
	for _, r := range []Rule{FIFO, Interval} {
		code, err := Encode(r)
		require.NoError(t, err)

		decoded, err := Decode(code)
		require.NoError(t, err)
		assert.Equal(t, r, decoded)
	}
}

func TestDecode_InvalidCode(t *testing.T) {
	for _, code := range []uint8{2, 3, 0xFF} {
		_, err := Decode(code)
		assert.ErrorIs(t, err, ErrInvalidRule, "code %d", code)
	}
}

func TestEncode_InvalidRule(t *testing.T) {
	_, err := Encode(Rule(42))
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestEligible_FIFO(t *testing.T) {
	tests := []struct {
		name       string
		count, max uint64
		want       bool
	}{
		{"first of two", 1, 2, true},
		{"boundary winner", 2, 2, true},
		{"one past cap", 3, 2, false},
		{"zero winners", 1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Eligible(FIFO, tt.count, tt.max, 0))
		})
	}
}

func TestEligible_Interval(t *testing.T) {
	tests := []struct {
		name                  string
		count, max, intervalN uint64
		want                  bool
	}{
		{"before first interval", 1, 2, 2, false},
		{"first interval", 2, 2, 2, true},
		{"between intervals", 3, 2, 2, false},
		{"second interval", 4, 2, 2, true},
		{"interval past cap", 6, 2, 2, false},
		{"interval of one acts like fifo", 2, 3, 1, true},
		{"zero interval never wins", 4, 10, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Eligible(Interval, tt.count, tt.max, tt.intervalN))
		})
	}
}

func TestEligible_UnknownRule(t *testing.T) {
	assert.False(t, Eligible(Rule(42), 1, 10, 1))
}

func TestRuleString(t *testing.T) {
	assert.Equal(t, "fifo", FIFO.String())
	assert.Equal(t, "interval", Interval.String())
}
