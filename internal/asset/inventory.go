package asset

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/firepit-wallet/firepit/internal/log"
	"github.com/firepit-wallet/firepit/internal/rpcclient"
)

// ParamsSource resolves asset parameters by ID. Implemented by the RPC
// client and by the read-through metadata cache.
type ParamsSource interface {
	GetAssetParams(ctx context.Context, assetID uint64) (*rpcclient.AssetParams, error)
}

// Progress receives incremental resolution counts during a refresh so a UI
// can render a progress indicator. Calls are serialized.
type Progress func(resolved, total int)

// Builder turns an account snapshot into an ordered asset inventory.
// Metadata lookups run concurrently but are throttled through a token
// bucket to respect third-party API rate limits.
type Builder struct {
	source  ParamsSource
	limiter *rate.Limiter

	nativeDecimals uint32
	nativeUnit     string
}

// NewBuilder creates an inventory builder. ratePerSec and burst configure
// the metadata lookup token bucket.
func NewBuilder(source ParamsSource, ratePerSec float64, burst int, nativeDecimals uint32, nativeUnit string) *Builder {
	return &Builder{
		source:         source,
		limiter:        rate.NewLimiter(rate.Limit(ratePerSec), burst),
		nativeDecimals: nativeDecimals,
		nativeUnit:     nativeUnit,
	}
}

// Build produces the inventory for an account snapshot: the native coin
// entry first, then one record per asset holding in the snapshot's order.
//
// Every non-native record gets one metadata lookup. A failed lookup
// degrades that record to placeholder metadata instead of failing the
// batch. Build returns only when every lookup has resolved; completion
// order is unconstrained but the output preserves input order.
//
// Build returns an error only when ctx is canceled mid-refresh.
func (b *Builder) Build(ctx context.Context, account *rpcclient.AccountInfo, progress Progress) ([]Record, error) {
	records := make([]Record, 0, len(account.Assets)+1)
	records = append(records, NewNative(account.Balance, b.nativeDecimals, b.nativeUnit))
	for _, h := range account.Assets {
		// Decimals unknown until the lookup resolves; zero keeps
		// DisplayAmount == RawAmount, matching the degraded fallback.
		records = append(records, NewRecord(h.AssetID, h.Amount, 0, h.Frozen))
	}

	total := len(account.Assets)
	if total == 0 {
		if progress != nil {
			progress(0, 0)
		}
		return records, nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		resolved int
	)
	for i := range records[1:] {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			b.resolve(ctx, &records[idx+1])
			mu.Lock()
			resolved++
			if progress != nil {
				progress(resolved, total)
			}
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// resolve fills in one record's metadata, degrading to placeholders on any
// failure so one bad asset never aborts the refresh.
func (b *Builder) resolve(ctx context.Context, r *Record) {
	if err := b.limiter.Wait(ctx); err != nil {
		degrade(r)
		return
	}
	params, err := b.source.GetAssetParams(ctx, r.ID)
	if err != nil {
		log.Inventory.Warn().
			Uint64("asset_id", r.ID).
			Err(err).
			Msg("asset metadata lookup failed; using placeholders")
		degrade(r)
		return
	}
	r.Name = params.Name
	r.UnitCode = params.UnitName
	r.Decimals = params.Decimals
	r.Creator = params.Creator
	r.DisplayAmount = ToDecimal(r.RawAmount, r.Decimals)
}

func degrade(r *Record) {
	r.Name = DeletedName
	r.UnitCode = DeletedUnit
	r.Decimals = 0
	r.Creator = ""
	r.DisplayAmount = ToDecimal(r.RawAmount, 0)
}
