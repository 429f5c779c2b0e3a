// Package txn implements the account-based transaction model firepit submits
// to a node: payments, asset transfers, and application calls, grouped into
// atomic batches that execute all-or-nothing.
package txn

import (
	"encoding/binary"
	"fmt"

	"github.com/firepit-wallet/firepit/pkg/crypto"
)

// Type identifies the transaction kind.
type Type uint8

const (
	// TypePayment moves native coin between accounts.
	TypePayment Type = iota + 1
	// TypeAssetTransfer moves asset units between accounts, optionally
	// closing the sender's holding slot out to CloseAssetTo.
	TypeAssetTransfer
	// TypeAppCall invokes a method on an on-chain application.
	TypeAppCall
)

// String returns the short wire name of the transaction type.
func (t Type) String() string {
	switch t {
	case TypePayment:
		return "pay"
	case TypeAssetTransfer:
		return "axfer"
	case TypeAppCall:
		return "appl"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Transaction is a single operation submitted to the chain.
// Fields not used by a given type are left zero and excluded from the
// canonical encoding.
type Transaction struct {
	Type       Type
	Sender     string
	Fee        uint64
	FirstValid uint64
	LastValid  uint64
	GenesisID  string
	Group      crypto.Hash

	// Payment fields.
	Receiver string
	Amount   uint64

	// Asset transfer fields (Receiver and Amount shared with payment).
	AssetID      uint64
	CloseAssetTo string // empty = keep the holding slot

	// Application call fields.
	AppID         uint64
	AppArgs       [][]byte
	ForeignAssets []uint64

	// Authorization, set by Sign.
	SenderPubKey []byte
	Signature    []byte
}

// SigningBytes returns the canonical byte encoding covered by the signature
// and by the transaction ID. Layout (little-endian, length-prefixed strings):
//
//	type(1) | fee(8) | firstValid(8) | lastValid(8) | genesisID(lp) |
//	sender(lp) | group(32) | per-type fields
func (t *Transaction) SigningBytes() []byte {
	buf := make([]byte, 0, 128)
	buf = append(buf, byte(t.Type))
	buf = binary.LittleEndian.AppendUint64(buf, t.Fee)
	buf = binary.LittleEndian.AppendUint64(buf, t.FirstValid)
	buf = binary.LittleEndian.AppendUint64(buf, t.LastValid)
	buf = appendString(buf, t.GenesisID)
	buf = appendString(buf, t.Sender)
	buf = append(buf, t.Group[:]...)

	switch t.Type {
	case TypePayment:
		buf = appendString(buf, t.Receiver)
		buf = binary.LittleEndian.AppendUint64(buf, t.Amount)
	case TypeAssetTransfer:
		buf = binary.LittleEndian.AppendUint64(buf, t.AssetID)
		buf = appendString(buf, t.Receiver)
		buf = binary.LittleEndian.AppendUint64(buf, t.Amount)
		buf = appendString(buf, t.CloseAssetTo)
	case TypeAppCall:
		buf = binary.LittleEndian.AppendUint64(buf, t.AppID)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.AppArgs)))
		for _, arg := range t.AppArgs {
			buf = appendBytes(buf, arg)
		}
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.ForeignAssets)))
		for _, id := range t.ForeignAssets {
			buf = binary.LittleEndian.AppendUint64(buf, id)
		}
	}
	return buf
}

// ID returns the transaction ID: BLAKE3 of the canonical signing bytes.
// Note that assigning a group changes the ID.
func (t *Transaction) ID() crypto.Hash {
	return crypto.Sum(t.SigningBytes())
}

// Sign authorizes the transaction with the given signer. The signature
// covers the canonical signing bytes, group assignment included, so groups
// must be assigned before signing.
func (t *Transaction) Sign(signer crypto.Signer) error {
	id := t.ID()
	sig, err := signer.Sign(id[:])
	if err != nil {
		return fmt.Errorf("sign transaction: %w", err)
	}
	t.SenderPubKey = signer.PublicKey()
	t.Signature = sig
	return nil
}

// Signed reports whether the transaction carries a signature.
func (t *Transaction) Signed() bool {
	return len(t.Signature) > 0
}

// Bytes returns the full wire encoding: signing bytes followed by the
// length-prefixed sender public key and signature.
func (t *Transaction) Bytes() []byte {
	buf := t.SigningBytes()
	buf = appendBytes(buf, t.SenderPubKey)
	buf = appendBytes(buf, t.Signature)
	return buf
}

// Verify checks the transaction signature against its canonical bytes.
func (t *Transaction) Verify() bool {
	if !t.Signed() {
		return false
	}
	id := t.ID()
	return crypto.VerifySignature(id[:], t.Signature, t.SenderPubKey)
}

func appendString(buf []byte, s string) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

func appendBytes(buf, b []byte) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(b)))
	return append(buf, b...)
}
