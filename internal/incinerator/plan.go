package incinerator

import (
	"github.com/firepit-wallet/firepit/internal/asset"
)

// Params holds the deployment constants the planner works against.
type Params struct {
	// SlotCost is the balance reservation per asset holding slot.
	SlotCost uint64
	// MinFee is the flat fee per transaction.
	MinFee uint64
	// OptInFeeFactor is the fee multiplier for opt-in calls, which carry
	// an inner transaction.
	OptInFeeFactor uint64
	// MaxGroupSize is the atomic group operation ceiling.
	MaxGroupSize int
}

// OpKind identifies a planned operation.
type OpKind uint8

const (
	// OpTopUp funds the incinerator's balance headroom for new slots.
	OpTopUp OpKind = iota + 1
	// OpOptIn registers the incinerator for one asset.
	OpOptIn
	// OpTransfer moves the burned units into the incinerator.
	OpTransfer
)

// String returns a short name for logs.
func (k OpKind) String() string {
	switch k {
	case OpTopUp:
		return "topup"
	case OpOptIn:
		return "optin"
	case OpTransfer:
		return "transfer"
	default:
		return "unknown"
	}
}

// Operation is one planned group member.
type Operation struct {
	Kind    OpKind
	AssetID uint64 // opt-in and transfer
	Amount  uint64 // payment amount or transfer base units
	// CloseOut marks a transfer that also releases the sender's holding
	// slot to the incinerator.
	CloseOut bool
	Fee      uint64
}

// Plan is the planner's verdict for a selection: the exact ordered operation
// sequence, its cost accounting, and whether the group is submittable.
type Plan struct {
	// Operations in final group order:
	// [top-up payment?] [opt-in calls...] [transfers...].
	Operations []Operation

	OperationCount int
	OptInCount     int
	TopUpPayments  uint64

	EstimatedFees       uint64
	EstimatedTopUpCost  uint64
	EstimatedSlotRefund uint64

	// Feasible is false when the group exceeds the operation ceiling or
	// the sender cannot cover fees plus top-up. An infeasible plan still
	// carries its full numbers for display; the caller must refuse to
	// submit it. An empty plan is never feasible.
	Feasible bool
}

// NetEffect returns the user's net balance change excluding the burned
// assets themselves: slot refunds minus top-up cost minus fees.
func (p Plan) NetEffect() int64 {
	return int64(p.EstimatedSlotRefund) - int64(p.EstimatedTopUpCost) - int64(p.EstimatedFees)
}

// Planner computes burn plans. Pure computation: identical inputs always
// produce identical plans.
type Planner struct {
	params Params
}

// NewPlanner creates a planner with the given deployment constants.
func NewPlanner(params Params) *Planner {
	return &Planner{params: params}
}

// Plan assembles the operation sequence that burns the selected assets
// through the incinerator, in selection order:
//
//   - zero-balance assets are skipped entirely (a deleted asset reports a
//     zero balance, so they fall out here);
//   - each asset not yet registered with the incinerator needs one opt-in
//     call at OptInFeeFactor times the minimum fee;
//   - a transfer burning the full holding also closes the sender's slot
//     out to the incinerator, unless the sender is the asset's own issuer
//     (issuers have a native path to reclaim their slot) or the creator is
//     unknown from degraded metadata (wrongly releasing is unrecoverable,
//     so unknown means no close-out);
//   - if the opt-ins outnumber the incinerator's spare capacity, a single
//     top-up payment covering the difference is placed before them.
func (pl *Planner) Plan(selected []asset.Record, snap Snapshot, sender string, spendable uint64) Plan {
	var (
		optIns    []Operation
		transfers []Operation
		refund    uint64
	)

	for _, rec := range selected {
		if rec.RawAmount == 0 {
			continue
		}
		if !snap.IsRegistered(rec.ID) {
			optIns = append(optIns, Operation{
				Kind:    OpOptIn,
				AssetID: rec.ID,
				Fee:     pl.params.OptInFeeFactor * pl.params.MinFee,
			})
		}

		units := rec.BurnBaseUnits()
		closeOut := units == rec.RawAmount &&
			rec.Creator != "" &&
			rec.Creator != sender
		if closeOut {
			refund += pl.params.SlotCost
		}
		transfers = append(transfers, Operation{
			Kind:     OpTransfer,
			AssetID:  rec.ID,
			Amount:   units,
			CloseOut: closeOut,
			Fee:      pl.params.MinFee,
		})
	}

	optInCount := len(optIns)
	var topUps uint64
	if spare := snap.SpareCapacity(pl.params.SlotCost); uint64(optInCount) > spare {
		topUps = uint64(optInCount) - spare
	}

	ops := make([]Operation, 0, 1+optInCount+len(transfers))
	if topUps > 0 {
		// The incinerator needs balance headroom at the moment each
		// opt-in executes, so funding comes first.
		ops = append(ops, Operation{
			Kind:   OpTopUp,
			Amount: topUps * pl.params.SlotCost,
			Fee:    pl.params.MinFee,
		})
	}
	ops = append(ops, optIns...)
	ops = append(ops, transfers...)

	var fees uint64
	for _, op := range ops {
		fees += op.Fee
	}
	topUpCost := topUps * pl.params.SlotCost

	return Plan{
		Operations:          ops,
		OperationCount:      len(ops),
		OptInCount:          optInCount,
		TopUpPayments:       topUps,
		EstimatedFees:       fees,
		EstimatedTopUpCost:  topUpCost,
		EstimatedSlotRefund: refund,
		Feasible: len(ops) > 0 &&
			len(ops) <= pl.params.MaxGroupSize &&
			fees+topUpCost <= spendable,
	}
}
