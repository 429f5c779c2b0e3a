package main

import (
	"fmt"

	"github.com/firepit-wallet/firepit/internal/session"
)

// BurnService exposes the burn workflow to the frontend.
type BurnService struct {
	app *App
}

// AssetRow is one row of the burnable asset table.
type AssetRow struct {
	Row           int     `json:"row"`
	AssetID       uint64  `json:"asset_id"`
	Name          string  `json:"name"`
	UnitCode      string  `json:"unit_code"`
	DisplayAmount float64 `json:"display_amount"`
	BurnAmount    float64 `json:"burn_amount"`
	Degraded      bool    `json:"degraded"`
	Selected      bool    `json:"selected"`
	ExplorerURL   string  `json:"explorer_url"`
}

// PlanSummary mirrors the plan for the confirmation dialog.
type PlanSummary struct {
	Operations int    `json:"operations"`
	OptIns     int    `json:"opt_ins"`
	TopUps     uint64 `json:"top_ups"`
	Fees       string `json:"fees"`
	TopUpCost  string `json:"top_up_cost"`
	SlotRefund string `json:"slot_refund"`
	NetEffect  string `json:"net_effect"`
	Feasible   bool   `json:"feasible"`
	Infeasible string `json:"infeasible_reason,omitempty"`
}

// IncineratorInfo summarizes the contract state for the status bar.
type IncineratorInfo struct {
	Loaded          bool   `json:"loaded"`
	Address         string `json:"address"`
	SpareCapacity   uint64 `json:"spare_capacity"`
	RegisteredCount int    `json:"registered_count"`
	ExplorerURL     string `json:"explorer_url"`
}

// BurnResult is returned after a burn or donation confirms.
type BurnResult struct {
	TxID        string `json:"tx_id"`
	ExplorerURL string `json:"explorer_url"`
}

// Refresh re-queries account and contract state.
func (b *BurnService) Refresh() error {
	sess := b.app.Session()
	if sess == nil {
		return fmt.Errorf("application not ready")
	}
	if err := sess.Refresh(b.app.ctx); err != nil {
		if err == session.ErrStale {
			return nil
		}
		return err
	}
	b.app.emitInventoryChanged()
	return nil
}

// Rows returns the burnable asset table, already ellipsized and flagged
// with the current selection.
func (b *BurnService) Rows() []AssetRow {
	sess := b.app.Session()
	if sess == nil {
		return nil
	}
	net := sess.Network()
	burnable := sess.Burnable()
	selected := make(map[int]bool)
	for _, row := range sess.SelectedRows() {
		selected[row] = true
	}

	rows := make([]AssetRow, len(burnable))
	for i, rec := range burnable {
		rows[i] = AssetRow{
			Row:           i,
			AssetID:       rec.ID,
			Name:          rec.Name,
			UnitCode:      rec.UnitCode,
			DisplayAmount: rec.DisplayAmount,
			BurnAmount:    rec.BurnAmount,
			Degraded:      rec.Degraded(),
			Selected:      selected[i],
			ExplorerURL:   net.AssetURL(rec.ID),
		}
	}
	return rows
}

// ToggleRow flips a row's selection.
func (b *BurnService) ToggleRow(row int) error {
	sess := b.app.Session()
	if sess == nil {
		return fmt.Errorf("application not ready")
	}
	return sess.ToggleRow(row)
}

// ClearSelection deselects all rows.
func (b *BurnService) ClearSelection() {
	if sess := b.app.Session(); sess != nil {
		sess.ClearSelection()
	}
}

// SetBurnAmount overrides the quantity to burn for one asset.
func (b *BurnService) SetBurnAmount(assetID uint64, amount float64) error {
	sess := b.app.Session()
	if sess == nil {
		return fmt.Errorf("application not ready")
	}
	return sess.SetBurnAmount(assetID, amount)
}

// Plan returns the burn plan summary for the current selection.
func (b *BurnService) Plan() PlanSummary {
	sess := b.app.Session()
	if sess == nil {
		return PlanSummary{Infeasible: "application not ready"}
	}
	plan := sess.Plan()
	unit := b.app.cfg.Protocol.NativeUnit
	dec := b.app.cfg.Protocol.NativeDecimals

	out := PlanSummary{
		Operations: plan.OperationCount,
		OptIns:     plan.OptInCount,
		TopUps:     plan.TopUpPayments,
		Fees:       formatNative(plan.EstimatedFees, dec, unit),
		TopUpCost:  formatNative(plan.EstimatedTopUpCost, dec, unit),
		SlotRefund: formatNative(plan.EstimatedSlotRefund, dec, unit),
		NetEffect:  formatNativeSigned(plan.NetEffect(), dec, unit),
		Feasible:   plan.Feasible,
	}
	if !plan.Feasible {
		out.Infeasible = infeasibleReason(sess, plan.OperationCount, b.app.cfg.Protocol.MaxGroupSize)
	}
	return out
}

func infeasibleReason(sess *session.Session, ops, maxGroup int) string {
	switch {
	case !sess.Connected():
		return "no wallet connected"
	case ops == 0:
		return "nothing selected"
	case ops > maxGroup:
		return fmt.Sprintf("too many operations for one group (%d > %d)", ops, maxGroup)
	default:
		return "insufficient spendable balance for fees and top-ups"
	}
}

// Burn submits the burn group for the current selection.
func (b *BurnService) Burn() (*BurnResult, error) {
	sess := b.app.Session()
	if sess == nil {
		return nil, fmt.Errorf("application not ready")
	}
	result, err := sess.Burn(b.app.ctx)
	if err != nil {
		return nil, err
	}
	txID := ""
	if len(result.TxIDs) > 0 {
		txID = result.TxIDs[0]
	}
	sendOSNotification("Burn confirmed", fmt.Sprintf("Transaction %s", ellipseString(txID, 8)))
	b.app.emitInventoryChanged()
	return &BurnResult{
		TxID:        txID,
		ExplorerURL: sess.Network().TxURL(txID),
	}, nil
}

// DonateSlots funds n holding slots without burning anything.
func (b *BurnService) DonateSlots(n uint64) (*BurnResult, error) {
	sess := b.app.Session()
	if sess == nil {
		return nil, fmt.Errorf("application not ready")
	}
	result, err := sess.DonateSlots(b.app.ctx, n)
	if err != nil {
		return nil, err
	}
	txID := ""
	if len(result.TxIDs) > 0 {
		txID = result.TxIDs[0]
	}
	sendOSNotification("Donation confirmed", fmt.Sprintf("Funded %d slots", n))
	return &BurnResult{
		TxID:        txID,
		ExplorerURL: sess.Network().TxURL(txID),
	}, nil
}

// Incinerator returns the contract status for the status bar.
func (b *BurnService) Incinerator() IncineratorInfo {
	sess := b.app.Session()
	if sess == nil {
		return IncineratorInfo{}
	}
	net := sess.Network()
	snap := sess.Snapshot()
	return IncineratorInfo{
		Loaded:          snap.Loaded,
		Address:         sess.IncineratorAddress(),
		SpareCapacity:   snap.SpareCapacity(b.app.cfg.Protocol.SlotCost),
		RegisteredCount: snap.RegisteredCount(),
		ExplorerURL:     net.AppURL(net.IncineratorAppID),
	}
}

// SpendableBalance returns the formatted spendable native balance.
func (b *BurnService) SpendableBalance() string {
	sess := b.app.Session()
	if sess == nil {
		return ""
	}
	return formatNative(sess.SpendableBalance(),
		b.app.cfg.Protocol.NativeDecimals, b.app.cfg.Protocol.NativeUnit)
}
