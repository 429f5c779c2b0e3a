package main

import (
	"fmt"

	"github.com/firepit-wallet/firepit/internal/wallet"
)

// WalletService exposes wallet operations to the frontend.
type WalletService struct {
	app *App
}

// WalletInfo is returned after wallet creation/import.
type WalletInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// GenerateMnemonic creates a new 24-word BIP-39 mnemonic. The frontend
// shows it once for backup; it is never persisted in plaintext.
func (w *WalletService) GenerateMnemonic() (string, error) {
	return wallet.GenerateMnemonic()
}

// ValidateMnemonic checks whether a mnemonic is well formed.
func (w *WalletService) ValidateMnemonic(mnemonic string) bool {
	return wallet.ValidateMnemonic(mnemonic)
}

// ListWallets returns the names of wallets in the keystore.
func (w *WalletService) ListWallets() ([]string, error) {
	ks := w.app.Keystore()
	if ks == nil {
		return nil, fmt.Errorf("keystore unavailable")
	}
	return ks.List()
}

// CreateWallet creates an encrypted wallet from a mnemonic and connects it.
func (w *WalletService) CreateWallet(name, mnemonic, password string) (*WalletInfo, error) {
	ks := w.app.Keystore()
	if ks == nil {
		return nil, fmt.Errorf("keystore unavailable")
	}
	seed, err := wallet.SeedFromMnemonic(mnemonic, "")
	if err != nil {
		return nil, err
	}
	if err := ks.Create(name, seed, []byte(password)); err != nil {
		return nil, err
	}
	return w.Unlock(name, password)
}

// Unlock opens a wallet, derives account 0, and connects it to the session.
func (w *WalletService) Unlock(name, password string) (*WalletInfo, error) {
	ks := w.app.Keystore()
	sess := w.app.Session()
	if ks == nil || sess == nil {
		return nil, fmt.Errorf("application not ready")
	}

	hrp := sess.Network().AddressHRP
	signer, err := wallet.Unlock(ks, name, []byte(password), 0, hrp)
	if err != nil {
		return nil, err
	}
	if err := ks.AddAccount(name, wallet.AccountEntry{
		Index:   0,
		Name:    "primary",
		Address: signer.Address(),
	}); err != nil {
		return nil, err
	}

	sess.Connect(signer)
	w.app.mu.Lock()
	w.app.activeWallet = name
	w.app.mu.Unlock()
	w.app.saveSettings()

	go w.refreshAfterConnect()

	return &WalletInfo{Name: name, Address: signer.Address()}, nil
}

// Disconnect detaches the active wallet.
func (w *WalletService) Disconnect() {
	if sess := w.app.Session(); sess != nil {
		sess.Disconnect()
	}
	w.app.mu.Lock()
	w.app.activeWallet = ""
	w.app.mu.Unlock()
	w.app.saveSettings()
}

// ActiveAddress returns the connected wallet address, or "".
func (w *WalletService) ActiveAddress() string {
	sess := w.app.Session()
	if sess == nil {
		return ""
	}
	return sess.Address()
}

func (w *WalletService) refreshAfterConnect() {
	sess := w.app.Session()
	if sess == nil {
		return
	}
	if err := sess.Refresh(w.app.ctx); err != nil {
		// Stale refreshes are expected during rapid wallet switching.
		return
	}
	w.app.emitInventoryChanged()
}
