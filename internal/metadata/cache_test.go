package metadata

import (
	"context"
	"fmt"
	"testing"

	"github.com/firepit-wallet/firepit/internal/rpcclient"
	"github.com/firepit-wallet/firepit/internal/storage"
)

type countingSource struct {
	params map[uint64]*rpcclient.AssetParams
	calls  int
}

func (s *countingSource) GetAssetParams(_ context.Context, assetID uint64) (*rpcclient.AssetParams, error) {
	s.calls++
	p, ok := s.params[assetID]
	if !ok {
		return nil, fmt.Errorf("asset %d not found", assetID)
	}
	return p, nil
}

func newTestCache() (*Cache, *countingSource, storage.DB) {
	source := &countingSource{
		params: map[uint64]*rpcclient.AssetParams{
			42: {AssetID: 42, Name: "Alpha", UnitName: "ALP", Decimals: 2, Creator: "fpx1aa"},
		},
	}
	db := storage.NewMemory()
	return New(source, db), source, db
}

func TestReadThrough(t *testing.T) {
	cache, source, _ := newTestCache()
	ctx := context.Background()

	first, err := cache.GetAssetParams(ctx, 42)
	if err != nil {
		t.Fatalf("GetAssetParams: %v", err)
	}
	if first.Name != "Alpha" {
		t.Errorf("Name = %q, want Alpha", first.Name)
	}
	if source.calls != 1 {
		t.Fatalf("source calls = %d, want 1", source.calls)
	}

	// Second lookup is served from the cache.
	second, err := cache.GetAssetParams(ctx, 42)
	if err != nil {
		t.Fatalf("cached GetAssetParams: %v", err)
	}
	if source.calls != 1 {
		t.Errorf("source calls after cache hit = %d, want 1", source.calls)
	}
	if *second != *first {
		t.Errorf("cached params = %+v, want %+v", second, first)
	}
}

func TestSourceErrorNotCached(t *testing.T) {
	cache, source, _ := newTestCache()
	ctx := context.Background()

	if _, err := cache.GetAssetParams(ctx, 999); err == nil {
		t.Fatal("expected error for unknown asset")
	}
	if _, err := cache.GetAssetParams(ctx, 999); err == nil {
		t.Fatal("expected error for unknown asset on retry")
	}
	if source.calls != 2 {
		t.Errorf("source calls = %d, want 2 (failures must not cache)", source.calls)
	}
}

func TestCorruptEntryDropped(t *testing.T) {
	cache, source, db := newTestCache()
	ctx := context.Background()

	if err := db.Put(key(42), []byte("{not json")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	params, err := cache.GetAssetParams(ctx, 42)
	if err != nil {
		t.Fatalf("GetAssetParams: %v", err)
	}
	if params.Name != "Alpha" {
		t.Errorf("Name = %q, want Alpha", params.Name)
	}
	if source.calls != 1 {
		t.Errorf("source calls = %d, want 1 (corrupt entry falls through)", source.calls)
	}

	// The rewritten entry serves the next lookup.
	if _, err := cache.GetAssetParams(ctx, 42); err != nil {
		t.Fatalf("second GetAssetParams: %v", err)
	}
	if source.calls != 1 {
		t.Errorf("source calls after rewrite = %d, want 1", source.calls)
	}
}

func TestPurge(t *testing.T) {
	cache, source, db := newTestCache()
	ctx := context.Background()

	if _, err := cache.GetAssetParams(ctx, 42); err != nil {
		t.Fatalf("GetAssetParams: %v", err)
	}
	// An unrelated entry must survive the purge.
	if err := db.Put([]byte("other:key"), []byte("value")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := cache.Purge(); err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if ok, _ := db.Has(key(42)); ok {
		t.Error("purged entry still present")
	}
	if ok, _ := db.Has([]byte("other:key")); !ok {
		t.Error("purge removed an entry outside its prefix")
	}

	if _, err := cache.GetAssetParams(ctx, 42); err != nil {
		t.Fatalf("GetAssetParams after purge: %v", err)
	}
	if source.calls != 2 {
		t.Errorf("source calls = %d, want 2 (purge forces a refetch)", source.calls)
	}
}
