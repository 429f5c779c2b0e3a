package config

import "fmt"

// chainlensExplorer is the multi-network explorer frontend; it needs a
// network-selection redirect instead of plain path-style links.
const chainlensExplorer = "https://app.chainlens.dev"

// chainlensNetwork maps a network to the chainlens network selector name.
func chainlensNetwork(n Network) string {
	if n.Name == Localnet {
		return "sandbox"
	}
	return "firepit_" + string(n.Name)
}

// AccountURL returns the block-explorer link for an account.
func (n Network) AccountURL(addr string) string {
	if n.BlockExplorer == "" {
		return ""
	}
	if n.BlockExplorer == chainlensExplorer {
		return fmt.Sprintf("%s/setnetwork?name=%s&redirect=explorer/account/%s", n.BlockExplorer, chainlensNetwork(n), addr)
	}
	return fmt.Sprintf("%s/account/%s", n.BlockExplorer, addr)
}

// AssetURL returns the block-explorer link for an asset.
func (n Network) AssetURL(assetID uint64) string {
	if n.BlockExplorer == "" {
		return ""
	}
	if n.BlockExplorer == chainlensExplorer {
		return fmt.Sprintf("%s/setnetwork?name=%s&redirect=explorer/asset/%d", n.BlockExplorer, chainlensNetwork(n), assetID)
	}
	return fmt.Sprintf("%s/asset/%d", n.BlockExplorer, assetID)
}

// TxURL returns the block-explorer link for a transaction.
func (n Network) TxURL(txID string) string {
	if n.BlockExplorer == "" {
		return ""
	}
	if n.BlockExplorer == chainlensExplorer {
		return fmt.Sprintf("%s/setnetwork?name=%s&redirect=explorer/transaction/%s", n.BlockExplorer, chainlensNetwork(n), txID)
	}
	return fmt.Sprintf("%s/tx/%s", n.BlockExplorer, txID)
}

// AppURL returns the block-explorer link for an application.
func (n Network) AppURL(appID uint64) string {
	if n.BlockExplorer == "" {
		return ""
	}
	if n.BlockExplorer == chainlensExplorer {
		return fmt.Sprintf("%s/setnetwork?name=%s&redirect=explorer/application/%d", n.BlockExplorer, chainlensNetwork(n), appID)
	}
	return fmt.Sprintf("%s/application/%d", n.BlockExplorer, appID)
}
