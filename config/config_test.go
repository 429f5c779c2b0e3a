package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultMainnet()
	if err := Validate(cfg); err != nil {
		t.Fatalf("default mainnet config invalid: %v", err)
	}
	if cfg.Network != Mainnet {
		t.Errorf("Network = %q, want mainnet", cfg.Network)
	}
	net := cfg.Active()
	if net.IncineratorAppID != MainnetIncineratorAppID {
		t.Errorf("app ID = %d, want %d", net.IncineratorAppID, MainnetIncineratorAppID)
	}
	if net.AddressHRP != "fpx" {
		t.Errorf("HRP = %q, want fpx", net.AddressHRP)
	}

	test := DefaultTestnet()
	if got := test.Active(); got.IncineratorAppID != TestnetIncineratorAppID || got.AddressHRP != "tfpx" {
		t.Errorf("testnet = app %d hrp %q", got.IncineratorAppID, got.AddressHRP)
	}
}

func TestActiveEndpointOverride(t *testing.T) {
	cfg := DefaultMainnet()
	base := cfg.Active().RPCEndpoint

	cfg.RPCEndpoint = "http://127.0.0.1:9999"
	if got := cfg.Active().RPCEndpoint; got != "http://127.0.0.1:9999" {
		t.Errorf("Active endpoint = %q, want override", got)
	}

	cfg.RPCEndpoint = ""
	if got := cfg.Active().RPCEndpoint; got != base {
		t.Errorf("Active endpoint = %q, want default %q", got, base)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "firepit.conf")
	content := `# client settings
network = testnet
rpc.endpoint = "http://localhost:8545"
metadata.rate = 2.5
metadata.burst = 4
metadata.cache = off
log.level = debug
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write conf: %v", err)
	}

	values, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	cfg := DefaultMainnet()
	if err := ApplyFileConfig(cfg, values); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}

	if cfg.Network != Testnet {
		t.Errorf("Network = %q, want testnet", cfg.Network)
	}
	if cfg.RPCEndpoint != "http://localhost:8545" {
		t.Errorf("RPCEndpoint = %q (quotes not stripped?)", cfg.RPCEndpoint)
	}
	if cfg.Metadata.RatePerSec != 2.5 || cfg.Metadata.Burst != 4 {
		t.Errorf("metadata = %v/%d, want 2.5/4", cfg.Metadata.RatePerSec, cfg.Metadata.Burst)
	}
	if cfg.Metadata.CacheEnabled {
		t.Error("metadata.cache = off not applied")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadFileMissingIsEmpty(t *testing.T) {
	values, err := LoadFile(filepath.Join(t.TempDir(), "absent.conf"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("values = %v, want empty", values)
	}
}

func TestLoadFileBadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.conf")
	if err := os.WriteFile(path, []byte("no equals sign here\n"), 0600); err != nil {
		t.Fatalf("write conf: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for malformed line")
	}
}

func TestApplyFileConfigUnknownKey(t *testing.T) {
	cfg := DefaultMainnet()
	if err := ApplyFileConfig(cfg, map[string]string{"nonsense": "1"}); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"unknown network", func(c *Config) { c.Network = "nonet" }, true},
		{"bad endpoint", func(c *Config) { c.RPCEndpoint = "not a url" }, true},
		{"zero rate", func(c *Config) { c.Metadata.RatePerSec = 0 }, true},
		{"zero burst", func(c *Config) { c.Metadata.Burst = 0 }, true},
		{"zero slot cost", func(c *Config) { c.Protocol.SlotCost = 0 }, true},
		{"zero min fee", func(c *Config) { c.Protocol.MinFee = 0 }, true},
		{"zero fee factor", func(c *Config) { c.Protocol.OptInFeeFactor = 0 }, true},
		{"zero group size", func(c *Config) { c.Protocol.MaxGroupSize = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMainnet()
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExplorerURLs(t *testing.T) {
	plain := Network{Name: Mainnet, BlockExplorer: "https://scan.firepit.network"}
	if got, want := plain.AssetURL(42), "https://scan.firepit.network/asset/42"; got != want {
		t.Errorf("AssetURL = %q, want %q", got, want)
	}
	if got, want := plain.TxURL("abc"), "https://scan.firepit.network/tx/abc"; got != want {
		t.Errorf("TxURL = %q, want %q", got, want)
	}
	if got, want := plain.AccountURL("fpx1abc"), "https://scan.firepit.network/account/fpx1abc"; got != want {
		t.Errorf("AccountURL = %q, want %q", got, want)
	}
	if got, want := plain.AppURL(7), "https://scan.firepit.network/application/7"; got != want {
		t.Errorf("AppURL = %q, want %q", got, want)
	}

	// chainlens cannot deep-link directly; it needs the network-selection
	// redirect.
	lens := Network{Name: Testnet, BlockExplorer: chainlensExplorer}
	want := chainlensExplorer + "/setnetwork?name=firepit_testnet&redirect=explorer/asset/42"
	if got := lens.AssetURL(42); got != want {
		t.Errorf("chainlens AssetURL = %q, want %q", got, want)
	}
	local := Network{Name: Localnet, BlockExplorer: chainlensExplorer}
	want = chainlensExplorer + "/setnetwork?name=sandbox&redirect=explorer/transaction/abc"
	if got := local.TxURL("abc"); got != want {
		t.Errorf("chainlens localnet TxURL = %q, want %q", got, want)
	}

	// No explorer configured yields no link.
	none := Network{Name: Localnet}
	if got := none.AssetURL(42); got != "" {
		t.Errorf("AssetURL without explorer = %q, want empty", got)
	}
}

func TestDataDirs(t *testing.T) {
	cfg := DefaultTestnet()
	cfg.DataDir = "/data/firepit"

	if got, want := cfg.NetworkDataDir(), filepath.Join("/data/firepit", "testnet"); got != want {
		t.Errorf("NetworkDataDir = %q, want %q", got, want)
	}
	if got, want := cfg.KeystoreDir(), filepath.Join("/data/firepit", "testnet", "keystore"); got != want {
		t.Errorf("KeystoreDir = %q, want %q", got, want)
	}
	if got, want := cfg.MetadataCacheDir(), filepath.Join("/data/firepit", "testnet", "metadata"); got != want {
		t.Errorf("MetadataCacheDir = %q, want %q", got, want)
	}
}
