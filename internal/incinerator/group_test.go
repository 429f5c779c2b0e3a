package incinerator

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/firepit-wallet/firepit/internal/asset"
	"github.com/firepit-wallet/firepit/pkg/txn"
)

const testIncinerator = "fpx1incineratoraddr"

func testSuggested() txn.SuggestedParams {
	return txn.SuggestedParams{
		MinFee:     1_000,
		FirstValid: 500,
		LastValid:  1500,
		GenesisID:  "firepit-mainnet",
	}
}

func TestBuildGroupRefusesInfeasiblePlan(t *testing.T) {
	if _, err := BuildGroup(Plan{}, testSender, testIncinerator, 99, testSuggested()); err == nil {
		t.Fatal("expected error for infeasible plan")
	}
}

func TestBuildGroupFullSequence(t *testing.T) {
	pl := NewPlanner(testPlanParams())
	plan := pl.Plan(
		[]asset.Record{
			holding(10, 100, 0, testIssuer),
			holding(20, 200, 0, testSender), // issuer keeps slot
		},
		loadedSnap(0, 20),
		testSender,
		10_000_000,
	)
	if !plan.Feasible {
		t.Fatalf("plan infeasible: %+v", plan)
	}

	group, err := BuildGroup(plan, testSender, testIncinerator, 99, testSuggested())
	if err != nil {
		t.Fatalf("BuildGroup: %v", err)
	}
	// Top-up, opt-in for 10, transfers for 10 and 20.
	if len(group) != 4 {
		t.Fatalf("len(group) = %d, want 4", len(group))
	}

	pay := group[0]
	if pay.Type != txn.TypePayment || pay.Receiver != testIncinerator {
		t.Errorf("group[0] = %s to %s, want payment to incinerator", pay.Type, pay.Receiver)
	}
	if pay.Amount != 100_000 {
		t.Errorf("top-up amount = %d, want 100000", pay.Amount)
	}

	optIn := group[1]
	if optIn.Type != txn.TypeAppCall || optIn.AppID != 99 {
		t.Errorf("group[1] = %s app %d, want appl 99", optIn.Type, optIn.AppID)
	}
	if optIn.Fee != 2_000 {
		t.Errorf("opt-in fee = %d, want 2000", optIn.Fee)
	}
	if len(optIn.AppArgs) != 2 || !bytes.Equal(optIn.AppArgs[0], []byte(OptInMethod)) {
		t.Fatalf("opt-in args = %q", optIn.AppArgs)
	}
	if got := binary.BigEndian.Uint64(optIn.AppArgs[1]); got != 10 {
		t.Errorf("opt-in arg asset = %d, want 10", got)
	}
	if len(optIn.ForeignAssets) != 1 || optIn.ForeignAssets[0] != 10 {
		t.Errorf("opt-in foreign assets = %v, want [10]", optIn.ForeignAssets)
	}

	closing := group[2]
	if closing.Type != txn.TypeAssetTransfer || closing.AssetID != 10 {
		t.Errorf("group[2] = %s asset %d, want axfer 10", closing.Type, closing.AssetID)
	}
	if closing.CloseAssetTo != testIncinerator {
		t.Errorf("close-to = %q, want incinerator", closing.CloseAssetTo)
	}

	keeping := group[3]
	if keeping.AssetID != 20 || keeping.CloseAssetTo != "" {
		t.Errorf("group[3] = asset %d close-to %q, want 20 with no close-out", keeping.AssetID, keeping.CloseAssetTo)
	}

	// All members share one group ID.
	gid := group[0].Group
	if gid.IsZero() {
		t.Fatal("group ID not assigned")
	}
	for i, tx := range group {
		if tx.Group != gid {
			t.Errorf("group[%d] has a different group ID", i)
		}
		if tx.Signed() {
			t.Errorf("group[%d] already signed", i)
		}
	}
}
