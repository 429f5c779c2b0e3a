package wallet

import (
	"context"
	"fmt"

	"github.com/firepit-wallet/firepit/pkg/crypto"
	"github.com/firepit-wallet/firepit/pkg/txn"
)

// Signer is the capability the session needs from a connected wallet: a
// sender address and signing over prepared transaction groups. Hardware or
// remote wallets plug in behind the same interface.
type Signer interface {
	// Address returns the active sender address.
	Address() string
	// SignGroup signs every transaction in place. The group must already
	// be assigned.
	SignGroup(ctx context.Context, txns []*txn.Transaction) error
}

// LocalSigner signs with a key held in memory, unlocked from the keystore.
type LocalSigner struct {
	key     *crypto.PrivateKey
	address string
}

// Unlock loads a wallet from the keystore and derives the signing key for
// the given account index.
func Unlock(ks *Keystore, walletName string, password []byte, account uint32, hrp string) (*LocalSigner, error) {
	seed, err := ks.Load(walletName, password)
	if err != nil {
		return nil, err
	}
	defer zero(seed)

	master, err := NewMasterKey(seed)
	if err != nil {
		return nil, err
	}
	acctKey, err := master.DeriveAccount(account)
	if err != nil {
		return nil, err
	}
	key, err := acctKey.PrivateKey()
	if err != nil {
		return nil, err
	}
	return &LocalSigner{
		key:     key,
		address: crypto.AddressFromPubKey(key.PublicKey(), hrp),
	}, nil
}

// NewLocalSigner wraps an already-derived private key.
func NewLocalSigner(key *crypto.PrivateKey, hrp string) *LocalSigner {
	return &LocalSigner{
		key:     key,
		address: crypto.AddressFromPubKey(key.PublicKey(), hrp),
	}
}

// Address returns the signer's address.
func (s *LocalSigner) Address() string {
	return s.address
}

// SignGroup signs every transaction in the group.
func (s *LocalSigner) SignGroup(ctx context.Context, txns []*txn.Transaction) error {
	for i, tx := range txns {
		if err := ctx.Err(); err != nil {
			return err
		}
		if tx.Sender != s.address {
			return fmt.Errorf("transaction %d sender %s does not match signer %s", i, tx.Sender, s.address)
		}
		if err := tx.Sign(s.key); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return nil
}

// Close zeroes the private key.
func (s *LocalSigner) Close() {
	if s.key != nil {
		s.key.Zero()
	}
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
