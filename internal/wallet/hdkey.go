package wallet

import (
	"fmt"

	"github.com/tyler-smith/go-bip32"

	"github.com/firepit-wallet/firepit/pkg/crypto"
)

// BIP-44 derivation path constants.
// Full path: m/44'/CoinType'/account'/0/0. The chain is account-based, so
// there is no change chain and every account uses address index 0.
const (
	// PurposeBIP44 is the BIP-44 purpose field (hardened).
	PurposeBIP44 = bip32.FirstHardenedChild + 44

	// CoinTypeFirepit is our placeholder coin type (hardened).
	CoinTypeFirepit = bip32.FirstHardenedChild + 5151
)

// HDKey represents a hierarchical deterministic key (BIP-32).
type HDKey struct {
	key *bip32.Key
}

// NewMasterKey creates a master HD key from a 64-byte seed.
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &HDKey{key: master}, nil
}

// DeriveAccount derives the signing key for an account at
// m/44'/5151'/account'/0/0.
func (k *HDKey) DeriveAccount(account uint32) (*HDKey, error) {
	current := k
	for _, idx := range []uint32{
		PurposeBIP44,
		CoinTypeFirepit,
		bip32.FirstHardenedChild + account,
		0,
		0,
	} {
		child, err := current.key.NewChildKey(idx)
		if err != nil {
			return nil, fmt.Errorf("derive child %d: %w", idx, err)
		}
		current = &HDKey{key: child}
	}
	return current, nil
}

// PrivateKey returns the account's secp256k1 signing key.
func (k *HDKey) PrivateKey() (*crypto.PrivateKey, error) {
	raw := k.key.Key
	if len(raw) != 32 {
		return nil, fmt.Errorf("not a private key")
	}
	return crypto.PrivateKeyFromBytes(raw)
}
