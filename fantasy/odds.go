package fantasy

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// DefaultOdds is used when a selection has no usable price on record.
const DefaultOdds = 2.0

const (
	maxDenominator = 100
	fracTolerance  = 0.001
)

// ErrInvalidOdds is returned for prices that are neither fractional nor decimal.
var ErrInvalidOdds = errors.New("invalid odds")

// FractionalToDecimal converts "N/D" to N/D + 1. It returns 0 when the string
// is not integer/integer or the denominator is zero.
func FractionalToDecimal(frac string) float64 {
	n, d, ok := splitFraction(frac)
	if !ok {
		return 0
	}
	return float64(n)/float64(d) + 1
}

// DecimalToFractional finds the closest N/D with D in 1..100 to decimal-1.
// When nothing lands within tolerance the profit is rounded to a whole number
// over 1.
func DecimalToFractional(decimal float64) string {
	profit := decimal - 1
	if math.IsNaN(profit) || math.IsInf(profit, 0) {
		return "0/1"
	}
	for d := 1; d <= maxDenominator; d++ {
		n := math.Round(profit * float64(d))
		if math.Abs(n/float64(d)-profit) < fracTolerance {
			return fmt.Sprintf("%d/%d", int(n), d)
		}
	}
	return fmt.Sprintf("%d/1", int(math.Round(profit)))
}

// FormatOdds renders a decimal price the way the UI shows it.
func FormatOdds(decimal float64) string {
	if math.Abs(decimal-2) < 1e-9 {
		return "Evens"
	}
	return DecimalToFractional(decimal)
}

// ParseOdds reads a stored price. Fractional prices may carry a favourite
// marker ("5/2F", "11/8JF"); "Evens" and "EVS" are 2.0; anything else must be a
// decimal price above 1.
func ParseOdds(s string) (float64, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, fmt.Errorf("%w: empty price", ErrInvalidOdds)
	}

	if strings.Contains(raw, "/") {
		frac := strings.TrimRightFunc(raw, unicode.IsLetter)
		if dec := FractionalToDecimal(frac); dec > 0 {
			return dec, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidOdds, s)
	}

	switch strings.TrimRight(strings.ToUpper(raw), "JCF") {
	case "EVS", "EVEN", "EVENS":
		return 2, nil
	}

	dec, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(dec) || math.IsInf(dec, 0) || dec <= 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOdds, s)
	}
	return dec, nil
}

// OddsOrDefault is ParseOdds falling back to DefaultOdds.
func OddsOrDefault(s string) float64 {
	dec, err := ParseOdds(s)
	if err != nil {
		return DefaultOdds
	}
	return dec
}

func splitFraction(s string) (int, int, bool) {
	num, den, found := strings.Cut(strings.TrimSpace(s), "/")
	if !found {
		return 0, 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil || n < 0 {
		return 0, 0, false
	}
	d, err := strconv.Atoi(strings.TrimSpace(den))
	if err != nil || d <= 0 {
		return 0, 0, false
	}
	return n, d, true
}
