package main

import (
	"fmt"

	"github.com/firepit-wallet/firepit/config"
)

// NetworkService exposes network selection to the frontend.
type NetworkService struct {
	app *App
}

// NetworkEntry describes one selectable network.
type NetworkEntry struct {
	Name             string `json:"name"`
	RPCEndpoint      string `json:"rpc_endpoint"`
	IncineratorAppID uint64 `json:"incinerator_app_id"`
	Active           bool   `json:"active"`
}

// List returns the configured networks.
func (n *NetworkService) List() []NetworkEntry {
	n.app.mu.Lock()
	cfg := n.app.cfg
	active := cfg.Network
	n.app.mu.Unlock()

	order := []config.NetworkName{config.Mainnet, config.Testnet, config.Localnet}
	entries := make([]NetworkEntry, 0, len(order))
	for _, name := range order {
		net, ok := cfg.Networks[name]
		if !ok {
			continue
		}
		entries = append(entries, NetworkEntry{
			Name:             string(net.Name),
			RPCEndpoint:      net.RPCEndpoint,
			IncineratorAppID: net.IncineratorAppID,
			Active:           name == active,
		})
	}
	return entries
}

// Active returns the active network name.
func (n *NetworkService) Active() string {
	n.app.mu.Lock()
	defer n.app.mu.Unlock()
	return string(n.app.cfg.Network)
}

// Switch changes the active network. The wallet stays connected but all
// per-network state is dropped until the next refresh.
func (n *NetworkService) Switch(name string) error {
	sess := n.app.Session()
	if sess == nil {
		return fmt.Errorf("application not ready")
	}
	if err := sess.SetNetwork(config.NetworkName(name)); err != nil {
		return err
	}
	n.app.saveSettings()
	n.app.emitInventoryChanged()
	return nil
}

// SetRPCEndpoint overrides the RPC endpoint for the active network. An
// empty endpoint restores the default.
func (n *NetworkService) SetRPCEndpoint(endpoint string) error {
	sess := n.app.Session()
	if sess == nil {
		return fmt.Errorf("application not ready")
	}
	n.app.mu.Lock()
	n.app.cfg.RPCEndpoint = endpoint
	name := n.app.cfg.Network
	n.app.mu.Unlock()

	// Reconnect so the override takes effect.
	if err := sess.SetNetwork(name); err != nil {
		return err
	}
	n.app.saveSettings()
	return nil
}
