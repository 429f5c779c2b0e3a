// Package incinerator models the on-chain burn contract: its account state,
// spare holding capacity, and the planner that assembles atomic burn groups
// against it.
package incinerator

import (
	"context"
	"fmt"
	"sync"

	"github.com/firepit-wallet/firepit/internal/log"
	"github.com/firepit-wallet/firepit/internal/rpcclient"
)

// Snapshot is the incinerator account's on-chain state at time of query.
// The zero value is the explicit "not yet loaded" state, distinct from a
// loaded snapshot with zero capacity.
type Snapshot struct {
	// Loaded marks the snapshot as the result of a successful query.
	Loaded bool

	// TotalBalance and MinBalance are in base units of the native coin.
	TotalBalance uint64
	MinBalance   uint64

	// Registered is the set of asset IDs the incinerator already holds a
	// slot for.
	Registered map[uint64]struct{}
}

// SpareCapacity returns how many more assets the incinerator can register
// before it needs a top-up: floor((total - min) / slotCost). An under-funded
// contract clamps to zero rather than going negative.
func (s Snapshot) SpareCapacity(slotCost uint64) uint64 {
	if !s.Loaded || slotCost == 0 || s.TotalBalance <= s.MinBalance {
		return 0
	}
	return (s.TotalBalance - s.MinBalance) / slotCost
}

// IsRegistered reports whether the incinerator already holds a slot for the
// asset.
func (s Snapshot) IsRegistered(assetID uint64) bool {
	_, ok := s.Registered[assetID]
	return ok
}

// RegisteredCount returns the number of assets the incinerator holds.
func (s Snapshot) RegisteredCount() int {
	return len(s.Registered)
}

// AccountSource fetches account state; satisfied by the RPC client.
type AccountSource interface {
	GetAccount(ctx context.Context, address string) (*rpcclient.AccountInfo, error)
}

// Tracker maintains the current incinerator snapshot. A failed refresh
// keeps the previous snapshot: zeroing capacity on a transient network
// error would wrongly report every selected asset as needing a top-up.
// Refresh runs off the session lock, so the snapshot gets its own.
type Tracker struct {
	source  AccountSource
	address string

	mu      sync.Mutex
	current Snapshot
}

// NewTracker creates a tracker for the incinerator account at address.
func NewTracker(source AccountSource, address string) *Tracker {
	return &Tracker{source: source, address: address}
}

// Address returns the incinerator account address.
func (t *Tracker) Address() string {
	return t.address
}

// Current returns the most recent snapshot. Check Loaded before trusting
// capacity numbers.
func (t *Tracker) Current() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Refresh queries the incinerator account and replaces the snapshot
// wholesale. On failure the previous snapshot stays in place.
func (t *Tracker) Refresh(ctx context.Context) error {
	info, err := t.source.GetAccount(ctx, t.address)
	if err != nil {
		log.Planner.Warn().
			Str("address", t.address).
			Err(err).
			Msg("incinerator refresh failed; keeping previous snapshot")
		return fmt.Errorf("refresh incinerator state: %w", err)
	}

	registered := make(map[uint64]struct{}, len(info.Assets))
	for _, h := range info.Assets {
		registered[h.AssetID] = struct{}{}
	}
	t.mu.Lock()
	t.current = Snapshot{
		Loaded:       true,
		TotalBalance: info.Balance,
		MinBalance:   info.MinBalance,
		Registered:   registered,
	}
	t.mu.Unlock()
	return nil
}
