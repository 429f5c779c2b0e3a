// Package config handles application configuration.
//
// Configuration is split into two categories:
//   - Deployment parameters: per-network endpoints, contract IDs, and chain
//     constants that must match the network firepit talks to
//   - Client settings: runtime configuration (cache, logging, rate limits)
//     that can vary per installation
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// NetworkName identifies a supported network.
type NetworkName string

const (
	Mainnet  NetworkName = "mainnet"
	Testnet  NetworkName = "testnet"
	Localnet NetworkName = "localnet"
)

// Network holds the per-network deployment parameters.
type Network struct {
	Name NetworkName

	// RPCEndpoint is the node URL serving chain_/asset_/tx_ methods.
	RPCEndpoint string

	// IncineratorAppID is the on-chain application tokens are burned through.
	IncineratorAppID uint64

	// BlockExplorer is the base URL for outbound inspection links.
	BlockExplorer string

	// AddressHRP is the human-readable address prefix on this network.
	AddressHRP string
}

// Protocol holds chain constants the planner depends on. These are
// deployment-specific and configurable rather than hard-coded.
type Protocol struct {
	// SlotCost is the balance reservation per asset holding slot, in base
	// units of the native coin.
	SlotCost uint64

	// MinFee is the flat minimum fee per transaction.
	MinFee uint64

	// OptInFeeFactor is the fee multiplier for incinerator opt-in calls,
	// which carry an inner transaction.
	OptInFeeFactor uint64

	// MaxGroupSize is the atomic group operation ceiling.
	MaxGroupSize int

	// NativeDecimals and NativeUnit describe the native coin.
	NativeDecimals uint32
	NativeUnit     string
}

// MetadataConfig controls asset-metadata resolution during inventory refresh.
type MetadataConfig struct {
	// RatePerSec caps metadata lookups per second (token bucket refill).
	RatePerSec float64 `conf:"metadata.rate"`

	// Burst is the token bucket capacity.
	Burst int `conf:"metadata.burst"`

	// CacheEnabled persists resolved metadata under the data directory.
	CacheEnabled bool `conf:"metadata.cache"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// Config holds client-side runtime configuration.
type Config struct {
	// Core
	Network NetworkName `conf:"network"`
	DataDir string      `conf:"datadir"`

	// RPCEndpoint overrides the active network's default endpoint when set.
	RPCEndpoint string `conf:"rpc.endpoint"`

	// Networks is the registry of known deployments.
	Networks map[NetworkName]Network

	// Protocol constants for the active network.
	Protocol Protocol

	// Metadata lookup throttling and caching.
	Metadata MetadataConfig

	// Logging
	Log LogConfig
}

// Active returns the active network's deployment parameters, with the
// endpoint override applied.
func (c *Config) Active() Network {
	net := c.Networks[c.Network]
	if c.RPCEndpoint != "" {
		net.RPCEndpoint = c.RPCEndpoint
	}
	return net
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.firepit
//	macOS:   ~/Library/Application Support/Firepit
//	Windows: %APPDATA%\Firepit
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".firepit"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Firepit")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "Firepit")
		}
		return filepath.Join(home, "AppData", "Roaming", "Firepit")
	default:
		return filepath.Join(home, ".firepit")
	}
}

// NetworkDataDir returns the network-specific data directory.
func (c *Config) NetworkDataDir() string {
	return filepath.Join(c.DataDir, string(c.Network))
}

// KeystoreDir returns the keystore directory.
func (c *Config) KeystoreDir() string {
	return filepath.Join(c.NetworkDataDir(), "keystore")
}

// MetadataCacheDir returns the asset-metadata cache directory.
func (c *Config) MetadataCacheDir() string {
	return filepath.Join(c.NetworkDataDir(), "metadata")
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "firepit.conf")
}
