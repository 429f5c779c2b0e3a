package asset

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/firepit-wallet/firepit/internal/rpcclient"
)

// fakeSource serves canned asset parameters and fails for IDs in bad.
type fakeSource struct {
	mu     sync.Mutex
	params map[uint64]*rpcclient.AssetParams
	bad    map[uint64]bool
	calls  int
}

func (f *fakeSource) GetAssetParams(_ context.Context, assetID uint64) (*rpcclient.AssetParams, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.bad[assetID] {
		return nil, fmt.Errorf("asset %d does not exist", assetID)
	}
	p, ok := f.params[assetID]
	if !ok {
		return nil, fmt.Errorf("asset %d not found", assetID)
	}
	return p, nil
}

func testAccount(holdings ...rpcclient.AssetHolding) *rpcclient.AccountInfo {
	return &rpcclient.AccountInfo{
		Address:    "fpx1sender",
		Balance:    3_000_000,
		MinBalance: 100_000,
		Assets:     holdings,
	}
}

func newTestBuilder(source ParamsSource) *Builder {
	// High rate so tests never wait on the token bucket.
	return NewBuilder(source, 1000, 100, 6, "FPX")
}

func TestBuildOrderAndMetadata(t *testing.T) {
	source := &fakeSource{
		params: map[uint64]*rpcclient.AssetParams{
			10: {AssetID: 10, Name: "Alpha", UnitName: "ALP", Decimals: 2, Creator: "fpx1aa"},
			20: {AssetID: 20, Name: "Beta", UnitName: "BET", Decimals: 0, Creator: "fpx1bb"},
		},
	}
	records, err := newTestBuilder(source).Build(context.Background(), testAccount(
		rpcclient.AssetHolding{AssetID: 10, Amount: 1500},
		rpcclient.AssetHolding{AssetID: 20, Amount: 7},
	), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	if records[0].ID != NativeID {
		t.Errorf("first record ID = %d, want native", records[0].ID)
	}
	if records[1].ID != 10 || records[2].ID != 20 {
		t.Errorf("record order = %d, %d, want 10, 20", records[1].ID, records[2].ID)
	}
	if records[1].Name != "Alpha" || records[1].Decimals != 2 {
		t.Errorf("record 10 metadata = %q/%d, want Alpha/2", records[1].Name, records[1].Decimals)
	}
	if records[1].DisplayAmount != 15 {
		t.Errorf("record 10 display amount = %v, want 15", records[1].DisplayAmount)
	}
}

func TestBuildDegradesFailedLookups(t *testing.T) {
	source := &fakeSource{
		params: map[uint64]*rpcclient.AssetParams{
			10: {AssetID: 10, Name: "Alpha", UnitName: "ALP", Decimals: 2, Creator: "fpx1aa"},
		},
		bad: map[uint64]bool{20: true},
	}
	records, err := newTestBuilder(source).Build(context.Background(), testAccount(
		rpcclient.AssetHolding{AssetID: 10, Amount: 1500},
		rpcclient.AssetHolding{AssetID: 20, Amount: 7},
	), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if records[1].Degraded() {
		t.Error("healthy record reported degraded")
	}
	if !records[2].Degraded() {
		t.Error("failed lookup did not degrade the record")
	}
	if records[2].Name != DeletedName || records[2].UnitCode != DeletedUnit {
		t.Errorf("placeholder metadata = %q/%q", records[2].Name, records[2].UnitCode)
	}
	// Raw amount shown as-is, precision unknown.
	if records[2].DisplayAmount != 7 {
		t.Errorf("degraded display amount = %v, want 7", records[2].DisplayAmount)
	}
}

func TestBuildProgress(t *testing.T) {
	source := &fakeSource{
		params: map[uint64]*rpcclient.AssetParams{
			10: {AssetID: 10, Name: "A", UnitName: "A", Decimals: 0},
			20: {AssetID: 20, Name: "B", UnitName: "B", Decimals: 0},
			30: {AssetID: 30, Name: "C", UnitName: "C", Decimals: 0},
		},
	}
	var mu sync.Mutex
	var seen []int
	_, err := newTestBuilder(source).Build(context.Background(), testAccount(
		rpcclient.AssetHolding{AssetID: 10, Amount: 1},
		rpcclient.AssetHolding{AssetID: 20, Amount: 1},
		rpcclient.AssetHolding{AssetID: 30, Amount: 1},
	), func(resolved, total int) {
		mu.Lock()
		defer mu.Unlock()
		if total != 3 {
			t.Errorf("progress total = %d, want 3", total)
		}
		seen = append(seen, resolved)
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(seen) != 3 {
		t.Fatalf("progress called %d times, want 3", len(seen))
	}
	for i, resolved := range seen {
		if resolved != i+1 {
			t.Errorf("progress[%d] = %d, want %d", i, resolved, i+1)
		}
	}
}

func TestBuildEmptyAccount(t *testing.T) {
	source := &fakeSource{}
	called := false
	records, err := newTestBuilder(source).Build(context.Background(), testAccount(),
		func(resolved, total int) {
			called = true
			if resolved != 0 || total != 0 {
				t.Errorf("progress = %d/%d, want 0/0", resolved, total)
			}
		})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1 (native only)", len(records))
	}
	if !called {
		t.Error("progress not called for empty account")
	}
	if source.calls != 0 {
		t.Errorf("source called %d times for empty account", source.calls)
	}
}

func TestBuildCanceled(t *testing.T) {
	source := &fakeSource{
		params: map[uint64]*rpcclient.AssetParams{
			10: {AssetID: 10, Name: "A", UnitName: "A", Decimals: 0},
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestBuilder(source).Build(ctx, testAccount(
		rpcclient.AssetHolding{AssetID: 10, Amount: 1},
	), nil)
	if err == nil {
		t.Fatal("expected error from canceled context")
	}
}
