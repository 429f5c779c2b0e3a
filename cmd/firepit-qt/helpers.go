package main

import (
	"fmt"
	"strconv"
	"strings"
)

// formatNative renders raw base units as a decimal amount with the unit
// code, e.g. 1234500 with 6 decimals becomes "1.2345 FPX".
func formatNative(raw uint64, decimals uint32, unit string) string {
	return formatAmount(raw, decimals) + " " + unit
}

// formatNativeSigned renders a signed base-unit delta, keeping the sign
// so fee totals and refunds read correctly.
func formatNativeSigned(raw int64, decimals uint32, unit string) string {
	if raw < 0 {
		return "-" + formatAmount(uint64(-raw), decimals) + " " + unit
	}
	return formatAmount(uint64(raw), decimals) + " " + unit
}

// formatAmount renders raw base units as a decimal string with grouped
// thousands and trailing zeros trimmed.
func formatAmount(raw uint64, decimals uint32) string {
	if decimals == 0 {
		return numberWithCommas(strconv.FormatUint(raw, 10))
	}
	s := strconv.FormatUint(raw, 10)
	d := int(decimals)
	if len(s) <= d {
		s = strings.Repeat("0", d-len(s)+1) + s
	}
	whole := s[:len(s)-d]
	frac := strings.TrimRight(s[len(s)-d:], "0")
	if frac == "" {
		return numberWithCommas(whole)
	}
	return numberWithCommas(whole) + "." + frac
}

// numberWithCommas groups the integer part of a decimal string by
// thousands.
func numberWithCommas(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// ellipseString shortens long identifiers for display, keeping n
// characters from each end.
func ellipseString(s string, n int) string {
	if n <= 0 || len(s) <= 2*n {
		return s
	}
	return fmt.Sprintf("%s...%s", s[:n], s[len(s)-n:])
}
