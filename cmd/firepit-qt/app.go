package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/firepit-wallet/firepit/config"
	"github.com/firepit-wallet/firepit/internal/log"
	"github.com/firepit-wallet/firepit/internal/session"
	"github.com/firepit-wallet/firepit/internal/wallet"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// qtSettings is the persistent configuration written to qt-settings.json.
type qtSettings struct {
	RPCEndpoint  string `json:"rpc_endpoint,omitempty"`
	DataDir      string `json:"data_dir,omitempty"`
	Network      string `json:"network,omitempty"`
	ActiveWallet string `json:"active_wallet,omitempty"`
}

// App manages application lifecycle, settings, and the burn session.
type App struct {
	ctx context.Context

	mu           sync.Mutex
	cfg          *config.Config
	session      *session.Session
	keystore     *wallet.Keystore
	activeWallet string

	wallet  *WalletService
	burn    *BurnService
	network *NetworkService
}

// NewApp creates the application with default settings.
func NewApp() *App {
	app := &App{
		cfg: config.DefaultMainnet(),
	}
	app.wallet = &WalletService{app: app}
	app.burn = &BurnService{app: app}
	app.network = &NetworkService{app: app}
	app.loadSettings()
	return app
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	sess, err := session.New(a.cfg, a.emitProgress)
	if err != nil {
		log.Session.Error().Err(err).Msg("session init failed")
		return
	}
	ks, err := wallet.NewKeystore(a.cfg.KeystoreDir())
	if err != nil {
		log.Wallet.Error().Err(err).Msg("keystore init failed")
	}

	a.mu.Lock()
	a.session = sess
	a.keystore = ks
	a.mu.Unlock()
}

func (a *App) shutdown(_ context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session != nil {
		a.session.Close()
	}
	a.saveSettings()
}

// emitProgress forwards inventory loading progress to the frontend.
func (a *App) emitProgress(resolved, total int) {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, "inventory:progress", resolved, total)
	}
}

// emitInventoryChanged tells the frontend to re-pull inventory state.
func (a *App) emitInventoryChanged() {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, "inventory:changed")
	}
}

// Session returns the burn session, or nil before startup completes.
func (a *App) Session() *session.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

// Keystore returns the wallet keystore.
func (a *App) Keystore() *wallet.Keystore {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.keystore
}

// settingsPath returns the path to qt-settings.json.
func (a *App) settingsPath() string {
	return filepath.Join(a.cfg.DataDir, "qt-settings.json")
}

func (a *App) loadSettings() {
	data, err := os.ReadFile(a.settingsPath())
	if err != nil {
		return // first launch, use defaults
	}
	var s qtSettings
	if err := json.Unmarshal(data, &s); err != nil {
		return
	}
	if s.DataDir != "" {
		a.cfg.DataDir = s.DataDir
	}
	if s.Network != "" {
		if _, ok := a.cfg.Networks[config.NetworkName(s.Network)]; ok {
			a.cfg.Network = config.NetworkName(s.Network)
		}
	}
	if s.RPCEndpoint != "" {
		a.cfg.RPCEndpoint = s.RPCEndpoint
	}
	a.activeWallet = s.ActiveWallet
}

func (a *App) saveSettings() {
	s := qtSettings{
		RPCEndpoint:  a.cfg.RPCEndpoint,
		DataDir:      a.cfg.DataDir,
		Network:      string(a.cfg.Network),
		ActiveWallet: a.activeWallet,
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(a.cfg.DataDir, 0700); err != nil {
		return
	}
	_ = os.WriteFile(a.settingsPath(), data, 0600)
}
