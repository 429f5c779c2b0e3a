package rpcclient

import (
	"context"
	"encoding/hex"

	"github.com/firepit-wallet/firepit/pkg/txn"
)

// AssetHolding is one asset balance inside an account.
type AssetHolding struct {
	AssetID uint64 `json:"asset_id"`
	Amount  uint64 `json:"amount"`
	Frozen  bool   `json:"frozen"`
}

// AccountInfo is the result of chain_getAccount.
type AccountInfo struct {
	Address    string         `json:"address"`
	Balance    uint64         `json:"balance"`
	MinBalance uint64         `json:"min_balance"`
	Assets     []AssetHolding `json:"assets"`
}

// Spendable returns the balance above the account's minimum requirement.
func (a *AccountInfo) Spendable() uint64 {
	if a.Balance <= a.MinBalance {
		return 0
	}
	return a.Balance - a.MinBalance
}

// AssetParams is the result of asset_getParams.
type AssetParams struct {
	AssetID  uint64 `json:"asset_id"`
	Name     string `json:"name"`
	UnitName string `json:"unit_name"`
	Decimals uint32 `json:"decimals"`
	Total    uint64 `json:"total"`
	Creator  string `json:"creator"`
	Reserve  string `json:"reserve,omitempty"`
	URL      string `json:"url,omitempty"`
}

// suggestedParamsResult is the wire shape of tx_suggestedParams.
type suggestedParamsResult struct {
	MinFee     uint64 `json:"min_fee"`
	FirstValid uint64 `json:"first_valid"`
	LastValid  uint64 `json:"last_valid"`
	GenesisID  string `json:"genesis_id"`
}

// SubmitGroupResult is the result of tx_submitGroup.
type SubmitGroupResult struct {
	TxIDs []string `json:"tx_ids"`
}

// GetAccount fetches account state: native balance, minimum balance
// requirement, and per-asset holdings.
func (c *Client) GetAccount(ctx context.Context, address string) (*AccountInfo, error) {
	var result AccountInfo
	params := map[string]string{"address": address}
	if err := c.Call(ctx, "chain_getAccount", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAssetParams fetches the immutable parameters of an asset.
func (c *Client) GetAssetParams(ctx context.Context, assetID uint64) (*AssetParams, error) {
	var result AssetParams
	params := map[string]uint64{"asset_id": assetID}
	if err := c.Call(ctx, "asset_getParams", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SuggestedParams fetches the node's suggested transaction parameters.
func (c *Client) SuggestedParams(ctx context.Context) (txn.SuggestedParams, error) {
	var result suggestedParamsResult
	if err := c.Call(ctx, "tx_suggestedParams", nil, &result); err != nil {
		return txn.SuggestedParams{}, err
	}
	return txn.SuggestedParams{
		MinFee:     result.MinFee,
		FirstValid: result.FirstValid,
		LastValid:  result.LastValid,
		GenesisID:  result.GenesisID,
	}, nil
}

// SubmitGroup broadcasts a signed transaction group. The node accepts the
// group atomically: either every transaction lands or none does.
func (c *Client) SubmitGroup(ctx context.Context, txns []*txn.Transaction) (*SubmitGroupResult, error) {
	encoded := make([]string, len(txns))
	for i, tx := range txns {
		encoded[i] = hex.EncodeToString(tx.Bytes())
	}
	var result SubmitGroupResult
	params := map[string][]string{"txns": encoded}
	if err := c.Call(ctx, "tx_submitGroup", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
