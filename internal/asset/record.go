package asset

// NativeID is the reserved asset ID of the network's native coin.
const NativeID = 0

// Placeholder metadata for assets whose parameters could not be resolved.
// A deleted asset or an on-chain ID typo is the expected cause.
const (
	DeletedName = "[Deleted Asset]"
	DeletedUnit = "N/A"
)

// Record is one token type held by an account. Records are created fresh on
// every inventory refresh and never mutated afterwards, except for the
// user-editable BurnAmount field.
type Record struct {
	ID            uint64
	RawAmount     uint64
	Decimals      uint32
	DisplayAmount float64 // always RawAmount / 10^Decimals
	Frozen        bool
	Creator       string // issuer address; empty if metadata was unavailable
	Name          string
	UnitCode      string

	// BurnAmount is the intended burn quantity in decimal units, owned by
	// the UI form layer. Zero means "burn the full balance".
	BurnAmount float64
}

// NewRecord builds a record with the display amount derived from the raw
// balance and precision.
func NewRecord(id, raw uint64, decimals uint32, frozen bool) Record {
	return Record{
		ID:            id,
		RawAmount:     raw,
		Decimals:      decimals,
		DisplayAmount: ToDecimal(raw, decimals),
		Frozen:        frozen,
	}
}

// NewNative builds the pseudo-record for the native coin balance.
func NewNative(raw uint64, decimals uint32, unit string) Record {
	r := NewRecord(NativeID, raw, decimals, false)
	r.Name = unit
	r.UnitCode = unit
	return r
}

// SetBurnAmount records the intended burn quantity, clamping values outside
// (0, DisplayAmount] back to the full balance.
func (r *Record) SetBurnAmount(amount float64) {
	if amount <= 0 || amount > r.DisplayAmount {
		r.BurnAmount = r.DisplayAmount
		return
	}
	r.BurnAmount = amount
}

// BurnBaseUnits returns the intended burn quantity in base units. An unset
// BurnAmount means the full raw balance.
func (r *Record) BurnBaseUnits() uint64 {
	if r.BurnAmount <= 0 {
		return r.RawAmount
	}
	units := ToBaseUnits(r.BurnAmount, r.Decimals)
	if units > r.RawAmount {
		return r.RawAmount
	}
	return units
}

// Degraded reports whether the record carries placeholder metadata because
// its parameters lookup failed.
func (r *Record) Degraded() bool {
	return r.ID != NativeID && r.Name == DeletedName
}

// Burnable filters an inventory down to the rows eligible for burning:
// non-native, unfrozen assets. Zero balances stay in; the planner treats
// them as zero-effect so deleted assets fall out naturally.
func Burnable(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.ID == NativeID || r.Frozen {
			continue
		}
		out = append(out, r)
	}
	return out
}
