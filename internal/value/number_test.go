package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromFloat64Canonicalization(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{3, "3"},
		{3.5, "3.5"},
	}
	for _, tt := range tests {
		n := FromFloat64(tt.in)
		assert.Equal(t, tt.want, n.String(), "FromFloat64(%v).String()", tt.in)
	}
}

func TestFromFloat64NegZero(t *testing.T) {
	n := FromFloat64(math.Copysign(0, -1))
	assert.True(t, n.IsNegZero(), "FromFloat64(-0.0) should produce the distinguished NegZero")
	assert.Equal(t, float64(0), n.Float64(), "NegZero widens to 0")
}

func TestNaNPropagatesThroughArithmetic(t *testing.T) {
	n := NaN()
	assert.True(t, Add(n, Int32(1)).IsNaN(), "NaN + 1 should be NaN")
	assert.False(t, NumericEqual(n, n), "NaN should not equal itself")
	_, ok := Compare(n, Int32(0))
	assert.False(t, ok, "Compare against NaN should report unordered")
}

func TestDivisionByZeroProducesInfinity(t *testing.T) {
	pos := Div(Int32(1), Int32(0))
	assert.False(t, pos.IsFinite())
	assert.EqualValues(t, 1, pos.Sign(), "1/0 = %v, want +Infinity", pos)

	neg := Div(Int32(-1), Int32(0))
	assert.False(t, neg.IsFinite())
	assert.EqualValues(t, -1, neg.Sign(), "-1/0 = %v, want -Infinity", neg)
}

func TestToInt32Wraps(t *testing.T) {
	n := FromFloat64(4294967296 + 5) // 2^32 + 5
	assert.EqualValues(t, 5, n.ToInt32())
	assert.EqualValues(t, 0, NaN().ToInt32())
}

func TestToStringRadix(t *testing.T) {
	n := Int32(255)
	got, err := n.ToStringRadix(16)
	assert.NoError(t, err)
	assert.Equal(t, "ff", got)

	_, err = n.ToStringRadix(1)
	assert.Error(t, err, "radix 1 should be rejected")
	_, err = n.ToStringRadix(37)
	assert.Error(t, err, "radix 37 should be rejected")
}

func TestParseIntBasics(t *testing.T) {
	tests := []struct {
		src   string
		radix int
		want  float64
	}{
		{"42", 10, 42},
		{"  42abc", 10, 42},
		{"0x1F", 0, 31},
		{"1F", 16, 31},
		{"-10", 10, -10},
		{"z", 36, 35},
	}
	for _, tt := range tests {
		got := ParseInt(tt.src, tt.radix).Float64()
		assert.Equal(t, tt.want, got, "ParseInt(%q, %d)", tt.src, tt.radix)
	}
}

func TestParseIntNoDigitsIsNaN(t *testing.T) {
	assert.True(t, ParseInt("xyz", 10).IsNaN(), `ParseInt("xyz", 10) should be NaN`)
}

func TestParseFloatDropsTrailingGarbage(t *testing.T) {
	n := ParseFloat("3.14xyz")
	assert.Equal(t, 3.14, n.Float64())
}

func TestParseFloatInfinityPrefixIgnoresTrailingGarbage(t *testing.T) {
	// SPEC_FULL.md §8: parseFloat matches a valid prefix and drops
	// whatever follows, including after the "Infinity" spelling.
	n := ParseFloat("Infinityxyz")
	assert.False(t, n.IsFinite())
	assert.EqualValues(t, 1, n.Sign(), `ParseFloat("Infinityxyz") = %v, want +Infinity`, n.Float64())
}

func TestParseFloatEmptyIsNaN(t *testing.T) {
	assert.True(t, ParseFloat("").IsNaN(), `ParseFloat("") should be NaN`)
}
