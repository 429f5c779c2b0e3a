// Package asset implements the account asset inventory: amount conversion,
// per-asset records, and the rate-limited metadata resolution that turns a
// raw balance list into displayable, burnable entries.
package asset

import (
	"math"
	"strconv"
	"strings"
)

// ToDecimal converts an integer base-unit amount to its decimal
// representation at the given precision.
func ToDecimal(raw uint64, decimals uint32) float64 {
	return float64(raw) / math.Pow10(int(decimals))
}

// ToBaseUnits converts a decimal amount back to integer base units,
// rounding to nearest with ties away from zero so that values which
// originated as integers round-trip exactly.
func ToBaseUnits(decimal float64, decimals uint32) uint64 {
	if decimal <= 0 || math.IsNaN(decimal) {
		return 0
	}
	return uint64(math.Round(decimal * math.Pow10(int(decimals))))
}

// FormatDecimal renders an integer base-unit amount as an exact decimal
// string, avoiding the float precision loss of ToDecimal for display.
func FormatDecimal(raw uint64, decimals uint32) string {
	s := strconv.FormatUint(raw, 10)
	d := int(decimals)
	if d == 0 {
		return s
	}
	if len(s) <= d {
		s = strings.Repeat("0", d-len(s)+1) + s
	}
	whole := s[:len(s)-d]
	frac := strings.TrimRight(s[len(s)-d:], "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}
