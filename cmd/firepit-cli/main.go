// firepit-cli is a command-line client for burning fungible assets
// through the incinerator contract.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/firepit-wallet/firepit/config"
	"github.com/firepit-wallet/firepit/internal/asset"
	"github.com/firepit-wallet/firepit/internal/incinerator"
	"github.com/firepit-wallet/firepit/internal/rpcclient"
	"github.com/firepit-wallet/firepit/internal/session"
	"github.com/firepit-wallet/firepit/internal/wallet"
	"github.com/firepit-wallet/firepit/pkg/crypto"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// Parse global flags that appear before the subcommand.
	network := "mainnet"
	dataDir := ""
	rpcURL := ""

	// Scan for --rpc, --datadir, and --network before the subcommand.
	args := os.Args[1:]
	for len(args) > 0 {
		switch {
		case args[0] == "--rpc" && len(args) > 1:
			rpcURL = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--rpc="):
			rpcURL = args[0][len("--rpc="):]
			args = args[1:]
		case args[0] == "--datadir" && len(args) > 1:
			dataDir = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--datadir="):
			dataDir = args[0][len("--datadir="):]
			args = args[1:]
		case args[0] == "--network" && len(args) > 1:
			network = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--network="):
			network = args[0][len("--network="):]
			args = args[1:]
		default:
			goto dispatch
		}
	}

dispatch:
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cfg := config.Default(config.NetworkName(network))
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if rpcURL != "" {
		cfg.RPCEndpoint = rpcURL
	}
	if values, err := config.LoadFile(cfg.ConfigFile()); err == nil {
		// Command-line flags win over the config file.
		saved := *cfg
		if err := config.ApplyFileConfig(cfg, values); err != nil {
			fatal("config file: %v", err)
		}
		if dataDir != "" {
			cfg.DataDir = saved.DataDir
		}
		if rpcURL != "" {
			cfg.RPCEndpoint = saved.RPCEndpoint
		}
		cfg.Network = saved.Network
	}
	if err := config.Validate(cfg); err != nil {
		fatal("config: %v", err)
	}

	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "status":
		cmdStatus(cfg)
	case "balance":
		cmdBalance(cfg, cmdArgs)
	case "assets":
		cmdAssets(cfg, cmdArgs)
	case "plan":
		cmdPlan(cfg, cmdArgs)
	case "burn":
		cmdBurn(cfg, cmdArgs)
	case "donate":
		cmdDonate(cfg, cmdArgs)
	case "wallet":
		cmdWallet(cfg, cmdArgs)
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: firepit-cli [global flags] <command> [flags]

Global flags:
  --rpc <url>         RPC endpoint (default: network endpoint)
  --datadir <path>    Data directory (default: ~/.firepit)
  --network <net>     mainnet (default), testnet, or localnet

Commands:
  status                          Show incinerator contract status
  balance <address>               Show account balance
  assets <address>                List an account's asset holdings

  plan --address <addr> --assets <id,...> [--amount <id=amt> ...]
                                  Preview a burn without submitting
  burn --wallet <w> --assets <id,...> [--amount <id=amt> ...] [--yes]
                                  Burn assets through the incinerator
  donate --wallet <w> --slots <n> Fund incinerator holding slots

  wallet create --name <n>        Create a new wallet
  wallet import --name <n> --mnemonic "..."
                                  Import wallet from mnemonic
  wallet list                     List wallets
  wallet address --wallet <w>     Show wallet addresses
`)
}

// ── status ──────────────────────────────────────────────────────────────

func cmdStatus(cfg *config.Config) {
	ctx := context.Background()
	net := cfg.Active()
	client := rpcclient.New(net.RPCEndpoint)
	incAddr := crypto.AddressFromAppID(net.IncineratorAppID, net.AddressHRP)

	tracker := incinerator.NewTracker(client, incAddr)
	if err := tracker.Refresh(ctx); err != nil {
		fatal("incinerator refresh: %v", err)
	}
	snap := tracker.Current()

	fmt.Printf("Network:     %s\n", net.Name)
	fmt.Printf("Endpoint:    %s\n", net.RPCEndpoint)
	fmt.Printf("Contract:    %s (app %d)\n", incAddr, net.IncineratorAppID)
	fmt.Printf("Balance:     %s\n", formatNative(cfg, snap.TotalBalance))
	fmt.Printf("Min balance: %s\n", formatNative(cfg, snap.MinBalance))
	fmt.Printf("Spare slots: %d\n", snap.SpareCapacity(cfg.Protocol.SlotCost))
	fmt.Printf("Registered:  %d assets\n", snap.RegisteredCount())
}

// ── balance ─────────────────────────────────────────────────────────────

func cmdBalance(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fatal("Usage: firepit-cli balance <address>")
	}
	addr := args[0]
	net := cfg.Active()
	if err := crypto.ValidateAddress(addr, net.AddressHRP); err != nil {
		fatal("invalid address: %v", err)
	}

	client := rpcclient.New(net.RPCEndpoint)
	account, err := client.GetAccount(context.Background(), addr)
	if err != nil {
		fatal("chain_getAccount: %v", err)
	}

	fmt.Printf("Balance:     %s\n", formatNative(cfg, account.Balance))
	fmt.Printf("Min balance: %s\n", formatNative(cfg, account.MinBalance))
	fmt.Printf("Spendable:   %s\n", formatNative(cfg, account.Spendable()))
	fmt.Printf("Assets:      %d\n", len(account.Assets))
}

// ── assets ──────────────────────────────────────────────────────────────

func cmdAssets(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fatal("Usage: firepit-cli assets <address>")
	}
	addr := args[0]
	net := cfg.Active()
	if err := crypto.ValidateAddress(addr, net.AddressHRP); err != nil {
		fatal("invalid address: %v", err)
	}

	ctx := context.Background()
	records, err := buildInventory(ctx, cfg, addr)
	if err != nil {
		fatal("%v", err)
	}

	fmt.Printf("%-12s %-24s %-10s %s\n", "ID", "NAME", "UNIT", "AMOUNT")
	for _, rec := range records {
		id := strconv.FormatUint(rec.ID, 10)
		if rec.ID == asset.NativeID {
			id = "-"
		}
		flags := ""
		if rec.Frozen {
			flags = " (frozen)"
		}
		fmt.Printf("%-12s %-24s %-10s %g%s\n", id, rec.Name, rec.UnitCode, rec.DisplayAmount, flags)
	}
}

// ── plan ────────────────────────────────────────────────────────────────

func cmdPlan(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	address := fs.String("address", "", "Account address")
	assetList := fs.String("assets", "", "Comma-separated asset IDs to burn")
	var amounts amountFlags
	fs.Var(&amounts, "amount", "Partial burn amount as id=amt (repeatable)")
	fs.Parse(args)

	if *address == "" || *assetList == "" {
		fatal("Usage: firepit-cli plan --address <addr> --assets <id,...> [--amount <id=amt> ...]")
	}
	net := cfg.Active()
	if err := crypto.ValidateAddress(*address, net.AddressHRP); err != nil {
		fatal("invalid address: %v", err)
	}
	ids, err := parseAssetIDs(*assetList)
	if err != nil {
		fatal("invalid --assets: %v", err)
	}

	ctx := context.Background()
	client := rpcclient.New(net.RPCEndpoint)
	account, err := client.GetAccount(ctx, *address)
	if err != nil {
		fatal("chain_getAccount: %v", err)
	}
	records, err := buildInventory(ctx, cfg, *address)
	if err != nil {
		fatal("%v", err)
	}
	selected, err := pickAssets(records, ids, amounts)
	if err != nil {
		fatal("%v", err)
	}

	incAddr := crypto.AddressFromAppID(net.IncineratorAppID, net.AddressHRP)
	tracker := incinerator.NewTracker(client, incAddr)
	if err := tracker.Refresh(ctx); err != nil {
		fatal("incinerator refresh: %v", err)
	}

	planner := incinerator.NewPlanner(plannerParams(cfg))
	plan := planner.Plan(selected, tracker.Current(), *address, account.Spendable())
	printPlan(cfg, plan)
}

// ── burn ────────────────────────────────────────────────────────────────

func cmdBurn(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("burn", flag.ExitOnError)
	walletName := fs.String("wallet", "", "Wallet name")
	assetList := fs.String("assets", "", "Comma-separated asset IDs to burn")
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	var amounts amountFlags
	fs.Var(&amounts, "amount", "Partial burn amount as id=amt (repeatable)")
	fs.Parse(args)

	if *walletName == "" || *assetList == "" {
		fatal("Usage: firepit-cli burn --wallet <name> --assets <id,...> [--amount <id=amt> ...] [--yes]")
	}
	ids, err := parseAssetIDs(*assetList)
	if err != nil {
		fatal("invalid --assets: %v", err)
	}

	ctx := context.Background()
	signer := unlockWallet(cfg, *walletName)
	defer signer.Close()

	sess, err := session.New(cfg, nil)
	if err != nil {
		fatal("session: %v", err)
	}
	defer sess.Close()
	sess.Connect(signer)

	if err := sess.Refresh(ctx); err != nil {
		fatal("refresh: %v", err)
	}

	for id, amt := range amounts {
		if err := sess.SetBurnAmount(id, amt); err != nil {
			fatal("--amount: %v", err)
		}
	}
	burnable := sess.Burnable()
	for _, id := range ids {
		row := -1
		for i, rec := range burnable {
			if rec.ID == id {
				row = i
				break
			}
		}
		if row < 0 {
			fatal("asset %d is not burnable from this account", id)
		}
		if err := sess.ToggleRow(row); err != nil {
			fatal("select asset %d: %v", id, err)
		}
	}

	plan := sess.Plan()
	printPlan(cfg, plan)
	if !plan.Feasible {
		fatal("plan is not feasible")
	}

	if !*yes && !confirm("Submit burn group?") {
		fmt.Println("Aborted.")
		return
	}

	result, err := sess.Burn(ctx)
	if err != nil {
		fatal("burn: %v", err)
	}
	for _, txID := range result.TxIDs {
		fmt.Printf("Submitted: %s\n", txID)
	}
	if len(result.TxIDs) > 0 {
		fmt.Printf("Explorer:  %s\n", sess.Network().TxURL(result.TxIDs[0]))
	}
}

// ── donate ──────────────────────────────────────────────────────────────

func cmdDonate(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("donate", flag.ExitOnError)
	walletName := fs.String("wallet", "", "Wallet name")
	slots := fs.Uint64("slots", 0, "Number of holding slots to fund")
	fs.Parse(args)

	if *walletName == "" || *slots == 0 {
		fatal("Usage: firepit-cli donate --wallet <name> --slots <n>")
	}

	ctx := context.Background()
	signer := unlockWallet(cfg, *walletName)
	defer signer.Close()

	sess, err := session.New(cfg, nil)
	if err != nil {
		fatal("session: %v", err)
	}
	defer sess.Close()
	sess.Connect(signer)

	cost := *slots * cfg.Protocol.SlotCost
	fmt.Printf("Funding %d slots costs %s\n", *slots, formatNative(cfg, cost))
	if !confirm("Submit donation?") {
		fmt.Println("Aborted.")
		return
	}

	result, err := sess.DonateSlots(ctx, *slots)
	if err != nil {
		fatal("donate: %v", err)
	}
	if len(result.TxIDs) > 0 {
		fmt.Printf("Submitted: %s\n", result.TxIDs[0])
	}
}

// ── wallet ──────────────────────────────────────────────────────────────

func cmdWallet(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fatal("Usage: firepit-cli wallet <create|import|list|address> [flags]")
	}

	switch args[0] {
	case "create":
		cmdWalletCreate(cfg, args[1:])
	case "import":
		cmdWalletImport(cfg, args[1:])
	case "list":
		cmdWalletList(cfg)
	case "address":
		cmdWalletAddress(cfg, args[1:])
	default:
		fatal("Unknown wallet command: %s\nUsage: firepit-cli wallet <create|import|list|address> [flags]", args[0])
	}
}

func cmdWalletCreate(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("wallet create", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	fs.Parse(args)

	if *name == "" {
		fatal("Usage: firepit-cli wallet create --name <name>")
	}

	mnemonic, err := wallet.GenerateMnemonic()
	if err != nil {
		fatal("generate mnemonic: %v", err)
	}

	fmt.Println("Mnemonic (write this down!):")
	fmt.Printf("  %s\n\n", mnemonic)

	password := readNewPassword()
	createWallet(cfg, *name, mnemonic, password)
	fmt.Printf("\nWallet created: %s\n", *name)
}

func cmdWalletImport(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("wallet import", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	mnemonic := fs.String("mnemonic", "", "BIP-39 mnemonic (24 words)")
	fs.Parse(args)

	if *name == "" || *mnemonic == "" {
		fatal("Usage: firepit-cli wallet import --name <name> --mnemonic \"word1 word2 ...\"")
	}
	if !wallet.ValidateMnemonic(*mnemonic) {
		fatal("invalid mnemonic")
	}

	password := readNewPassword()
	createWallet(cfg, *name, *mnemonic, password)
	fmt.Printf("Wallet imported: %s\n", *name)
}

func createWallet(cfg *config.Config, name, mnemonic string, password []byte) {
	seed, err := wallet.SeedFromMnemonic(mnemonic, "")
	if err != nil {
		fatal("derive seed: %v", err)
	}

	ks, err := wallet.NewKeystore(cfg.KeystoreDir())
	if err != nil {
		fatal("create keystore: %v", err)
	}
	if err := ks.Create(name, seed, password); err != nil {
		fatal("create wallet: %v", err)
	}

	// Zero seed.
	for i := range seed {
		seed[i] = 0
	}

	signer, err := wallet.Unlock(ks, name, password, 0, cfg.Active().AddressHRP)
	if err != nil {
		fatal("unlock wallet: %v", err)
	}
	defer signer.Close()

	if err := ks.AddAccount(name, wallet.AccountEntry{
		Index:   0,
		Name:    "primary",
		Address: signer.Address(),
	}); err != nil {
		fatal("add account: %v", err)
	}
	fmt.Printf("Address: %s\n", signer.Address())
}

func cmdWalletList(cfg *config.Config) {
	ks, err := wallet.NewKeystore(cfg.KeystoreDir())
	if err != nil {
		fatal("open keystore: %v", err)
	}
	names, err := ks.List()
	if err != nil {
		fatal("list wallets: %v", err)
	}
	if len(names) == 0 {
		fmt.Println("No wallets found.")
		return
	}
	for _, name := range names {
		fmt.Println(name)
	}
}

func cmdWalletAddress(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("wallet address", flag.ExitOnError)
	walletName := fs.String("wallet", "", "Wallet name")
	fs.Parse(args)

	if *walletName == "" {
		fatal("Usage: firepit-cli wallet address --wallet <name>")
	}

	ks, err := wallet.NewKeystore(cfg.KeystoreDir())
	if err != nil {
		fatal("open keystore: %v", err)
	}
	accounts, err := ks.Accounts(*walletName)
	if err != nil {
		fatal("read accounts: %v", err)
	}
	for _, acct := range accounts {
		fmt.Printf("[%d] %-10s %s\n", acct.Index, acct.Name, acct.Address)
	}
}

// ── Shared helpers ──────────────────────────────────────────────────────

// buildInventory loads an account's holdings with metadata, printing
// progress to stderr.
func buildInventory(ctx context.Context, cfg *config.Config, addr string) ([]asset.Record, error) {
	net := cfg.Active()
	client := rpcclient.New(net.RPCEndpoint)
	account, err := client.GetAccount(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("chain_getAccount: %w", err)
	}

	builder := asset.NewBuilder(client, cfg.Metadata.RatePerSec, cfg.Metadata.Burst,
		cfg.Protocol.NativeDecimals, cfg.Protocol.NativeUnit)
	records, err := builder.Build(ctx, account, func(resolved, total int) {
		fmt.Fprintf(os.Stderr, "\rLoading asset metadata %d/%d", resolved, total)
		if resolved == total {
			fmt.Fprintln(os.Stderr)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("build inventory: %w", err)
	}
	return records, nil
}

// pickAssets selects burnable records by asset ID and applies partial
// burn amounts.
func pickAssets(records []asset.Record, ids []uint64, amounts amountFlags) ([]asset.Record, error) {
	burnable := asset.Burnable(records)
	byID := make(map[uint64]asset.Record, len(burnable))
	for _, rec := range burnable {
		byID[rec.ID] = rec
	}

	selected := make([]asset.Record, 0, len(ids))
	for _, id := range ids {
		rec, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("asset %d is not burnable from this account", id)
		}
		if amt, ok := amounts[id]; ok {
			rec.SetBurnAmount(amt)
		}
		selected = append(selected, rec)
	}
	return selected, nil
}

func plannerParams(cfg *config.Config) incinerator.Params {
	return incinerator.Params{
		SlotCost:       cfg.Protocol.SlotCost,
		MinFee:         cfg.Protocol.MinFee,
		OptInFeeFactor: cfg.Protocol.OptInFeeFactor,
		MaxGroupSize:   cfg.Protocol.MaxGroupSize,
	}
}

func printPlan(cfg *config.Config, plan incinerator.Plan) {
	fmt.Printf("Operations:  %d (%d opt-ins)\n", plan.OperationCount, plan.OptInCount)
	fmt.Printf("Top-ups:     %d\n", plan.TopUpPayments)
	fmt.Printf("Fees:        %s\n", formatNative(cfg, plan.EstimatedFees))
	fmt.Printf("Top-up cost: %s\n", formatNative(cfg, plan.EstimatedTopUpCost))
	fmt.Printf("Slot refund: %s\n", formatNative(cfg, plan.EstimatedSlotRefund))
	net := plan.NetEffect()
	sign := ""
	if net > 0 {
		sign = "+"
	}
	fmt.Printf("Net effect:  %s%s\n", sign, formatNativeSigned(cfg, net))
	fmt.Printf("Feasible:    %v\n", plan.Feasible)
}

func unlockWallet(cfg *config.Config, name string) *wallet.LocalSigner {
	ks, err := wallet.NewKeystore(cfg.KeystoreDir())
	if err != nil {
		fatal("open keystore: %v", err)
	}
	password, err := readPassword("Enter password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	signer, err := wallet.Unlock(ks, name, password, 0, cfg.Active().AddressHRP)
	if err != nil {
		fatal("unlock wallet: %v", err)
	}
	return signer
}

// ── Flag parsing helpers ────────────────────────────────────────────────

// amountFlags accumulates repeated --amount id=amt flags.
type amountFlags map[uint64]float64

func (a *amountFlags) String() string {
	return fmt.Sprintf("%v", map[uint64]float64(*a))
}

func (a *amountFlags) Set(value string) error {
	parts := strings.SplitN(value, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected id=amount, got %q", value)
	}
	id, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid asset ID %q", parts[0])
	}
	amt, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || amt <= 0 || math.IsNaN(amt) {
		return fmt.Errorf("invalid amount %q", parts[1])
	}
	if *a == nil {
		*a = make(map[uint64]float64)
	}
	(*a)[id] = amt
	return nil
}

func parseAssetIDs(s string) ([]uint64, error) {
	parts := strings.Split(s, ",")
	ids := make([]uint64, 0, len(parts))
	seen := make(map[uint64]bool)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid asset ID %q", part)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no asset IDs given")
	}
	return ids, nil
}

// ── Amount formatting ───────────────────────────────────────────────────

func formatNative(cfg *config.Config, raw uint64) string {
	return fmt.Sprintf("%s %s", asset.FormatDecimal(raw, cfg.Protocol.NativeDecimals), cfg.Protocol.NativeUnit)
}

func formatNativeSigned(cfg *config.Config, raw int64) string {
	if raw < 0 {
		return "-" + formatNative(cfg, uint64(-raw))
	}
	return formatNative(cfg, uint64(raw))
}

// ── Terminal helpers ────────────────────────────────────────────────────

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

func readNewPassword() []byte {
	password, err := readPassword("Enter password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	confirmPw, err := readPassword("Confirm password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	if string(password) != string(confirmPw) {
		fatal("passwords do not match")
	}
	return password
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	var answer string
	fmt.Scanln(&answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// ── Error helper ────────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
