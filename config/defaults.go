package config

// Per-network incinerator application IDs for the observed deployments.
const (
	MainnetIncineratorAppID  = 88041157
	TestnetIncineratorAppID  = 10794231
	LocalnetIncineratorAppID = 1013
)

// defaultNetworks is the registry of known deployments.
func defaultNetworks() map[NetworkName]Network {
	return map[NetworkName]Network{
		Mainnet: {
			Name:             Mainnet,
			RPCEndpoint:      "https://rpc.firepit.network",
			IncineratorAppID: MainnetIncineratorAppID,
			BlockExplorer:    "https://scan.firepit.network",
			AddressHRP:       "fpx",
		},
		Testnet: {
			Name:             Testnet,
			RPCEndpoint:      "https://rpc.testnet.firepit.network",
			IncineratorAppID: TestnetIncineratorAppID,
			BlockExplorer:    "https://scan.testnet.firepit.network",
			AddressHRP:       "tfpx",
		},
		Localnet: {
			Name:             Localnet,
			RPCEndpoint:      "http://127.0.0.1:8545",
			IncineratorAppID: LocalnetIncineratorAppID,
			BlockExplorer:    "",
			AddressHRP:       "tfpx",
		},
	}
}

// defaultProtocol returns the chain constants of the observed deployment.
func defaultProtocol() Protocol {
	return Protocol{
		SlotCost:       100_000,
		MinFee:         1_000,
		OptInFeeFactor: 2,
		MaxGroupSize:   16,
		NativeDecimals: 6,
		NativeUnit:     "FPX",
	}
}

// Default returns the default client configuration for the given network.
func Default(network NetworkName) *Config {
	return &Config{
		Network:  network,
		DataDir:  DefaultDataDir(),
		Networks: defaultNetworks(),
		Protocol: defaultProtocol(),
		Metadata: MetadataConfig{
			// Public API nodes rate-limit free tiers; one lookup every
			// 200ms with a small burst stays well inside them.
			RatePerSec:   5,
			Burst:        2,
			CacheEnabled: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultMainnet returns the default configuration for mainnet.
func DefaultMainnet() *Config {
	return Default(Mainnet)
}

// DefaultTestnet returns the default configuration for testnet.
func DefaultTestnet() *Config {
	return Default(Testnet)
}

// DefaultLocalnet returns the default configuration for a local node.
func DefaultLocalnet() *Config {
	return Default(Localnet)
}
