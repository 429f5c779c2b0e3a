package incinerator

import (
	"encoding/binary"
	"fmt"

	"github.com/firepit-wallet/firepit/pkg/txn"
)

// OptInMethod is the incinerator application method that registers a new
// asset holding slot.
const OptInMethod = "optInToAsset"

// BuildGroup materializes a feasible plan into unsigned transactions in
// plan order and links them into one atomic group. The caller signs and
// submits the result.
func BuildGroup(plan Plan, sender, incineratorAddr string, appID uint64, sp txn.SuggestedParams) ([]*txn.Transaction, error) {
	if !plan.Feasible {
		return nil, fmt.Errorf("plan is not feasible (%d operations)", plan.OperationCount)
	}

	txns := make([]*txn.Transaction, 0, len(plan.Operations))
	for _, op := range plan.Operations {
		var tx *txn.Transaction
		switch op.Kind {
		case OpTopUp:
			tx = txn.NewPayment(sender, incineratorAddr, op.Amount, sp)
		case OpOptIn:
			args := [][]byte{
				[]byte(OptInMethod),
				binary.BigEndian.AppendUint64(nil, op.AssetID),
			}
			tx = txn.NewAppCall(sender, appID, args, []uint64{op.AssetID}, op.Fee, sp)
		case OpTransfer:
			closeTo := ""
			if op.CloseOut {
				closeTo = incineratorAddr
			}
			tx = txn.NewAssetTransfer(sender, incineratorAddr, op.AssetID, op.Amount, closeTo, sp)
		default:
			return nil, fmt.Errorf("unknown operation kind %d", op.Kind)
		}
		tx.Fee = op.Fee
		txns = append(txns, tx)
	}

	if err := txn.AssignGroup(txns); err != nil {
		return nil, fmt.Errorf("assign group: %w", err)
	}
	return txns, nil
}
