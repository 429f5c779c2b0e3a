package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/firepit-wallet/firepit/config"
	"github.com/firepit-wallet/firepit/internal/asset"
	"github.com/firepit-wallet/firepit/internal/incinerator"
	"github.com/firepit-wallet/firepit/internal/log"
	"github.com/firepit-wallet/firepit/internal/metadata"
	"github.com/firepit-wallet/firepit/internal/rpcclient"
	"github.com/firepit-wallet/firepit/internal/storage"
	"github.com/firepit-wallet/firepit/internal/wallet"
	"github.com/firepit-wallet/firepit/pkg/crypto"
	"github.com/firepit-wallet/firepit/pkg/txn"
)

// ErrStale is returned by a refresh whose results were discarded because
// the wallet or network changed while it was in flight.
var ErrStale = errors.New("refresh superseded by wallet or network change")

// ErrNotConnected is returned by operations that need an active wallet.
var ErrNotConnected = errors.New("no wallet connected")

// ErrInfeasible is returned by Burn when the current plan cannot be
// submitted.
var ErrInfeasible = errors.New("burn plan is not feasible")

// Session is the client state for one user. The wallet, inventory,
// incinerator snapshot, and selection hang off it; the burn plan is a
// cached value invalidated whenever any of those change.
type Session struct {
	cfg *config.Config

	mu        sync.Mutex
	network   config.Network
	client    *rpcclient.Client
	builder   *asset.Builder
	tracker   *incinerator.Tracker
	planner   *incinerator.Planner
	signer    wallet.Signer
	cacheDB   storage.DB
	progress  asset.Progress
	account   *rpcclient.AccountInfo
	inventory []asset.Record
	selection *Selection
	plan      *incinerator.Plan
	lastTxID  string

	// generation tags in-flight refreshes; it bumps on every connect,
	// disconnect, and network switch so late completions are discarded.
	generation uint64
}

// New creates a session for the configured network. progress may be nil.
func New(cfg *config.Config, progress asset.Progress) (*Session, error) {
	s := &Session{
		cfg:       cfg,
		progress:  progress,
		selection: NewSelection(),
	}
	if err := s.useNetwork(cfg.Network); err != nil {
		return nil, err
	}
	return s, nil
}

// useNetwork wires the RPC client, metadata source, inventory builder,
// tracker and planner for a network. Caller holds no lock (construction)
// or the lock (switch).
func (s *Session) useNetwork(name config.NetworkName) error {
	net, ok := s.cfg.Networks[name]
	if !ok {
		return fmt.Errorf("unknown network %q", name)
	}
	s.cfg.Network = name
	net = s.cfg.Active()

	if s.cacheDB != nil {
		s.cacheDB.Close()
		s.cacheDB = nil
	}

	client := rpcclient.New(net.RPCEndpoint)

	var source asset.ParamsSource = client
	if s.cfg.Metadata.CacheEnabled {
		db, err := storage.NewBadger(s.cfg.MetadataCacheDir())
		if err != nil {
			// A broken cache is not worth failing the session over.
			log.Session.Warn().Err(err).Msg("metadata cache unavailable; falling back to memory")
			db = nil
		}
		if db == nil {
			source = metadata.New(client, storage.NewMemory())
		} else {
			s.cacheDB = db
			source = metadata.New(client, db)
		}
	}

	s.network = net
	s.client = client
	s.builder = asset.NewBuilder(source, s.cfg.Metadata.RatePerSec, s.cfg.Metadata.Burst,
		s.cfg.Protocol.NativeDecimals, s.cfg.Protocol.NativeUnit)
	s.tracker = incinerator.NewTracker(client, crypto.AddressFromAppID(net.IncineratorAppID, net.AddressHRP))
	s.planner = incinerator.NewPlanner(incinerator.Params{
		SlotCost:       s.cfg.Protocol.SlotCost,
		MinFee:         s.cfg.Protocol.MinFee,
		OptInFeeFactor: s.cfg.Protocol.OptInFeeFactor,
		MaxGroupSize:   s.cfg.Protocol.MaxGroupSize,
	})
	s.invalidateLocked()
	return nil
}

// invalidateLocked clears per-account state after an account or network
// change. Caller holds mu (or is constructing).
func (s *Session) invalidateLocked() {
	s.generation++
	s.account = nil
	s.inventory = nil
	s.selection.Clear()
	s.plan = nil
}

// Network returns the active network parameters.
func (s *Session) Network() config.Network {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.network
}

// SetNetwork switches the active network and invalidates all per-network
// state. A refresh is required afterwards.
func (s *Session) SetNetwork(name config.NetworkName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.useNetwork(name)
}

// Connect attaches a wallet signer and invalidates per-account state.
func (s *Session) Connect(signer wallet.Signer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signer = signer
	s.invalidateLocked()
	log.Session.Info().Str("address", signer.Address()).Msg("wallet connected")
}

// Disconnect detaches the wallet and clears account state.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signer = nil
	s.invalidateLocked()
}

// Connected reports whether a wallet is attached.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signer != nil
}

// Address returns the connected wallet address, or "".
func (s *Session) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.signer == nil {
		return ""
	}
	return s.signer.Address()
}

// Refresh re-queries the wallet account and the incinerator together and
// rebuilds the inventory. The selection is cleared because row indices are
// positional. A refresh that completes after the wallet or network changed
// is discarded and returns ErrStale.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.signer == nil {
		s.mu.Unlock()
		return ErrNotConnected
	}
	gen := s.generation
	address := s.signer.Address()
	client := s.client
	builder := s.builder
	tracker := s.tracker
	progress := s.progress
	s.mu.Unlock()

	account, err := client.GetAccount(ctx, address)
	if err != nil {
		return fmt.Errorf("fetch account: %w", err)
	}
	inventory, err := builder.Build(ctx, account, progress)
	if err != nil {
		return fmt.Errorf("build inventory: %w", err)
	}
	// Tracker refresh failure keeps its previous snapshot; the inventory
	// is still worth publishing.
	if err := tracker.Refresh(ctx); err != nil {
		log.Session.Warn().Err(err).Msg("incinerator refresh failed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		log.Session.Debug().
			Str("address", address).
			Msg("discarding stale refresh")
		return ErrStale
	}
	s.account = account
	s.inventory = inventory
	s.selection.Clear()
	s.plan = nil
	log.Session.Info().
		Str("address", address).
		Int("assets", len(account.Assets)).
		Msg("inventory refreshed")
	return nil
}

// Inventory returns the current asset records in display order.
func (s *Session) Inventory() []asset.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]asset.Record, len(s.inventory))
	copy(out, s.inventory)
	return out
}

// Burnable returns the rows eligible for burning, in display order. Row
// indices used by the selection refer to this slice.
func (s *Session) Burnable() []asset.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return asset.Burnable(s.inventory)
}

// IncineratorAddress returns the contract account address on the active
// network.
func (s *Session) IncineratorAddress() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Address()
}

// Snapshot returns the current incinerator snapshot.
func (s *Session) Snapshot() incinerator.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Current()
}

// SpendableBalance returns the native balance above the account minimum.
func (s *Session) SpendableBalance() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account == nil {
		return 0
	}
	return s.account.Spendable()
}

// SetBurnAmount overrides the intended burn quantity for an asset,
// addressed by asset ID so inventory rebuilds cannot misdirect the edit.
func (s *Session) SetBurnAmount(assetID uint64, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.inventory {
		if s.inventory[i].ID == assetID {
			s.inventory[i].SetBurnAmount(amount)
			s.plan = nil
			return nil
		}
	}
	return fmt.Errorf("asset %d not in inventory", assetID)
}

// ToggleRow flips the selection state of a burnable row.
func (s *Session) ToggleRow(row int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row < 0 || row >= len(asset.Burnable(s.inventory)) {
		return fmt.Errorf("row %d out of range", row)
	}
	s.selection.Toggle(row)
	s.plan = nil
	return nil
}

// ClearSelection deselects everything.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
	s.plan = nil
}

// SelectedRows returns the selected row indices in ascending order.
func (s *Session) SelectedRows() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Rows()
}

// Plan returns the burn plan for the current selection, recomputing it if
// any input changed since the last call. Before the incinerator snapshot
// has loaded, the plan is empty and infeasible.
func (s *Session) Plan() incinerator.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.planLocked()
}

func (s *Session) planLocked() incinerator.Plan {
	if s.plan != nil {
		return *s.plan
	}
	snap := s.tracker.Current()
	sender := ""
	if s.signer != nil {
		sender = s.signer.Address()
	}
	var spendable uint64
	if s.account != nil {
		spendable = s.account.Spendable()
	}

	burnable := asset.Burnable(s.inventory)
	selected := make([]asset.Record, 0, s.selection.Count())
	for _, row := range s.selection.Rows() {
		if row < len(burnable) {
			selected = append(selected, burnable[row])
		}
	}

	plan := s.planner.Plan(selected, snap, sender, spendable)
	s.plan = &plan
	return plan
}

// LastTxID returns the first transaction ID of the most recently confirmed
// submission, or "".
func (s *Session) LastTxID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTxID
}

// Burn assembles, signs, and submits the burn group for the current
// selection, then refreshes the inventory and incinerator state. Nothing
// is committed on failure: the group executes all-or-nothing on chain, and
// local state stays untouched.
func (s *Session) Burn(ctx context.Context) (*rpcclient.SubmitGroupResult, error) {
	s.mu.Lock()
	if s.signer == nil {
		s.mu.Unlock()
		return nil, ErrNotConnected
	}
	plan := s.planLocked()
	if !plan.Feasible {
		s.mu.Unlock()
		return nil, ErrInfeasible
	}
	signer := s.signer
	client := s.client
	sender := signer.Address()
	incineratorAddr := s.tracker.Address()
	appID := s.network.IncineratorAppID
	s.mu.Unlock()

	sp, err := client.SuggestedParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggested params: %w", err)
	}
	group, err := incinerator.BuildGroup(plan, sender, incineratorAddr, appID, sp)
	if err != nil {
		return nil, err
	}
	if err := signer.SignGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("sign group: %w", err)
	}
	result, err := client.SubmitGroup(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("submit group: %w", err)
	}

	s.mu.Lock()
	if len(result.TxIDs) > 0 {
		s.lastTxID = result.TxIDs[0]
	}
	s.selection.Clear()
	s.plan = nil
	s.mu.Unlock()

	log.Session.Info().
		Int("operations", plan.OperationCount).
		Int("opt_ins", plan.OptInCount).
		Uint64("top_ups", plan.TopUpPayments).
		Msg("burn group confirmed")

	if err := s.Refresh(ctx); err != nil && !errors.Is(err, ErrStale) {
		log.Session.Warn().Err(err).Msg("post-burn refresh failed")
	}
	return result, nil
}

// DonateSlots sends a standalone payment funding n holding slots for the
// incinerator, without burning anything.
func (s *Session) DonateSlots(ctx context.Context, n uint64) (*rpcclient.SubmitGroupResult, error) {
	if n == 0 {
		return nil, fmt.Errorf("slot count must be positive")
	}
	s.mu.Lock()
	if s.signer == nil {
		s.mu.Unlock()
		return nil, ErrNotConnected
	}
	signer := s.signer
	client := s.client
	sender := signer.Address()
	incineratorAddr := s.tracker.Address()
	amount := n * s.cfg.Protocol.SlotCost
	s.mu.Unlock()

	sp, err := client.SuggestedParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggested params: %w", err)
	}
	pay := txn.NewPayment(sender, incineratorAddr, amount, sp)
	group := []*txn.Transaction{pay}
	if err := txn.AssignGroup(group); err != nil {
		return nil, err
	}
	if err := signer.SignGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("sign payment: %w", err)
	}
	result, err := client.SubmitGroup(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("submit payment: %w", err)
	}

	s.mu.Lock()
	if len(result.TxIDs) > 0 {
		s.lastTxID = result.TxIDs[0]
	}
	s.mu.Unlock()

	log.Session.Info().Uint64("slots", n).Msg("slot donation confirmed")
	return result, nil
}

// Close releases the metadata cache.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cacheDB != nil {
		err := s.cacheDB.Close()
		s.cacheDB = nil
		return err
	}
	return nil
}
