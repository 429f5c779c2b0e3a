package asset

import "testing"

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		raw      uint64
		decimals uint32
		want     float64
	}{
		{"zero", 0, 6, 0},
		{"whole", 1_000_000, 6, 1},
		{"fractional", 1_234_500, 6, 1.2345},
		{"no decimals", 42, 0, 42},
		{"sub unit", 1, 6, 0.000001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDecimal(tt.raw, tt.decimals)
			if got != tt.want {
				t.Errorf("ToDecimal(%d, %d) = %v, want %v", tt.raw, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		name     string
		decimal  float64
		decimals uint32
		want     uint64
	}{
		{"whole", 1, 6, 1_000_000},
		{"fractional", 1.2345, 6, 1_234_500},
		{"zero", 0, 6, 0},
		{"negative", -1, 6, 0},
		{"rounding", 0.1, 6, 100_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToBaseUnits(tt.decimal, tt.decimals)
			if got != tt.want {
				t.Errorf("ToBaseUnits(%v, %d) = %d, want %d", tt.decimal, tt.decimals, got, tt.want)
			}
		})
	}
}

// Integer balances must survive the decimal round trip at every precision
// the chain allows; form input goes through float64 on the way back.
func TestAmountRoundTrip(t *testing.T) {
	raws := []uint64{1, 999, 1_000_000, 123_456_789, 5_000_000_000}
	for decimals := uint32(0); decimals <= 12; decimals++ {
		for _, raw := range raws {
			got := ToBaseUnits(ToDecimal(raw, decimals), decimals)
			if got != raw {
				t.Errorf("round trip failed: raw=%d decimals=%d got=%d", raw, decimals, got)
			}
		}
	}
}

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		raw      uint64
		decimals uint32
		want     string
	}{
		{0, 6, "0"},
		{1_000_000, 6, "1"},
		{1_234_500, 6, "1.2345"},
		{1, 6, "0.000001"},
		{42, 0, "42"},
	}
	for _, tt := range tests {
		got := FormatDecimal(tt.raw, tt.decimals)
		if got != tt.want {
			t.Errorf("FormatDecimal(%d, %d) = %q, want %q", tt.raw, tt.decimals, got, tt.want)
		}
	}
}
