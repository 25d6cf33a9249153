package fantasy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFractionalToDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{in: "5/1", want: 6},
		{in: "1/1", want: 2},
		{in: "5/2", want: 3.5},
		{in: "1/4", want: 1.25},
		{in: " 11 / 8 ", want: 2.375},
		{in: "5/0", want: 0},
		{in: "5", want: 0},
		{in: "a/b", want: 0},
		{in: "2.5/1", want: 0},
		{in: "-2/1", want: 0},
		{in: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, FractionalToDecimal(tt.in), 1e-9)
		})
	}
}

func TestDecimalToFractional(t *testing.T) {
	assert.Equal(t, "5/1", DecimalToFractional(6))
	assert.Equal(t, "1/1", DecimalToFractional(2))
	assert.Equal(t, "5/2", DecimalToFractional(3.5))
	assert.Equal(t, "2/3", DecimalToFractional(FractionalToDecimal("4/6")))
	assert.Equal(t, "1/4", DecimalToFractional(1.25))
	assert.Equal(t, "100/1", DecimalToFractional(101))
}

func TestDecimalToFractionalFallsBackToWholeNumber(t *testing.T) {
	// 1/997 profit is too fine for any denominator up to 100.
	assert.Equal(t, "0/1", DecimalToFractional(1+1.0/997))
	assert.Equal(t, "0/1", DecimalToFractional(1))
}

func TestFractionalRoundTrip(t *testing.T) {
	assert.Equal(t, "5/1", DecimalToFractional(FractionalToDecimal("5/1")))

	rapid.Check(t, func(t *rapid.T) {
		d := rapid.IntRange(1, 20).Draw(t, "den")
		n := rapid.IntRange(1, 200).Draw(t, "num")
		g := gcd(n, d)
		n, d = n/g, d/g
		frac := fmt.Sprintf("%d/%d", n, d)
		if got := DecimalToFractional(FractionalToDecimal(frac)); got != frac {
			t.Fatalf("round trip %s -> %s", frac, got)
		}
	})
}

func TestFormatOdds(t *testing.T) {
	assert.Equal(t, "Evens", FormatOdds(2.0))
	assert.Equal(t, "Evens", FormatOdds(FractionalToDecimal("1/1")))
	assert.Equal(t, "7/2", FormatOdds(4.5))
}

func TestParseOdds(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "5/1", want: 6},
		{in: "5/2F", want: 3.5},
		{in: "11/8JF", want: 2.375},
		{in: "2/1CF", want: 3},
		{in: "Evens", want: 2},
		{in: "EVS", want: 2},
		{in: "evensF", want: 2},
		{in: "4.5", want: 4.5},
		{in: " 10 ", want: 10},
		{in: "", wantErr: true},
		{in: "1.0", wantErr: true},
		{in: "0.5", wantErr: true},
		{in: "5/0", wantErr: true},
		{in: "NaN", wantErr: true},
		{in: "SP", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOdds(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidOdds)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestOddsOrDefault(t *testing.T) {
	assert.Equal(t, DefaultOdds, OddsOrDefault(""))
	assert.Equal(t, DefaultOdds, OddsOrDefault("9/0"))
	assert.InDelta(t, 9.0, OddsOrDefault("8/1"), 1e-9)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
