package txn

// SuggestedParams carries the per-round parameters a node suggests for new
// transactions. Fee is per transaction (flat-fee mode).
type SuggestedParams struct {
	MinFee     uint64
	FirstValid uint64
	LastValid  uint64
	GenesisID  string
}

// NewPayment builds an unsigned native-coin payment.
func NewPayment(sender, receiver string, amount uint64, sp SuggestedParams) *Transaction {
	return &Transaction{
		Type:       TypePayment,
		Sender:     sender,
		Receiver:   receiver,
		Amount:     amount,
		Fee:        sp.MinFee,
		FirstValid: sp.FirstValid,
		LastValid:  sp.LastValid,
		GenesisID:  sp.GenesisID,
	}
}

// NewAssetTransfer builds an unsigned asset transfer. A non-empty closeTo
// closes the sender's holding slot out to that address after the transfer.
func NewAssetTransfer(sender, receiver string, assetID, amount uint64, closeTo string, sp SuggestedParams) *Transaction {
	return &Transaction{
		Type:         TypeAssetTransfer,
		Sender:       sender,
		Receiver:     receiver,
		AssetID:      assetID,
		Amount:       amount,
		CloseAssetTo: closeTo,
		Fee:          sp.MinFee,
		FirstValid:   sp.FirstValid,
		LastValid:    sp.LastValid,
		GenesisID:    sp.GenesisID,
	}
}

// NewAppCall builds an unsigned application call with an explicit fee.
// Method calls that cause the application to issue inner operations carry a
// fee above the suggested minimum, so the fee is a parameter here.
func NewAppCall(sender string, appID uint64, args [][]byte, foreignAssets []uint64, fee uint64, sp SuggestedParams) *Transaction {
	return &Transaction{
		Type:          TypeAppCall,
		Sender:        sender,
		AppID:         appID,
		AppArgs:       args,
		ForeignAssets: foreignAssets,
		Fee:           fee,
		FirstValid:    sp.FirstValid,
		LastValid:     sp.LastValid,
		GenesisID:     sp.GenesisID,
	}
}
