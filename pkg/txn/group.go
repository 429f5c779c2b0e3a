package txn

import (
	"fmt"

	"github.com/firepit-wallet/firepit/pkg/crypto"
)

// MaxGroupSize is the protocol ceiling on transactions per atomic group.
const MaxGroupSize = 16

// AssignGroup links the transactions into one atomic group: the group ID is
// the hash over the member IDs computed with a zero group field, and is then
// written into every member. Signing must happen after assignment.
func AssignGroup(txns []*Transaction) error {
	if len(txns) == 0 {
		return fmt.Errorf("empty group")
	}
	if len(txns) > MaxGroupSize {
		return fmt.Errorf("group of %d transactions exceeds ceiling of %d", len(txns), MaxGroupSize)
	}
	if len(txns) == 1 {
		// A single transaction stands alone; no group field needed.
		return nil
	}
	ids := make([]crypto.Hash, len(txns))
	for i, tx := range txns {
		if !tx.Group.IsZero() {
			return fmt.Errorf("transaction %d already grouped", i)
		}
		if tx.Signed() {
			return fmt.Errorf("transaction %d signed before group assignment", i)
		}
		ids[i] = tx.ID()
	}
	gid := crypto.SumConcat(ids...)
	for _, tx := range txns {
		tx.Group = gid
	}
	return nil
}

// SignGroup signs every transaction in the group with the given signer.
func SignGroup(txns []*Transaction, signer crypto.Signer) error {
	for i, tx := range txns {
		if err := tx.Sign(signer); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return nil
}
