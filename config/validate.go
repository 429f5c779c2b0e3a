package config

import (
	"fmt"
	"net/url"
)

// Validate checks client config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if _, ok := cfg.Networks[cfg.Network]; !ok {
		return fmt.Errorf("unknown network %q", cfg.Network)
	}
	if cfg.RPCEndpoint != "" {
		if _, err := url.ParseRequestURI(cfg.RPCEndpoint); err != nil {
			return fmt.Errorf("rpc.endpoint: %w", err)
		}
	}
	if cfg.Metadata.RatePerSec <= 0 {
		return fmt.Errorf("metadata.rate must be positive")
	}
	if cfg.Metadata.Burst < 1 {
		return fmt.Errorf("metadata.burst must be at least 1")
	}
	if cfg.Protocol.SlotCost == 0 {
		return fmt.Errorf("protocol slot cost must be positive")
	}
	if cfg.Protocol.MinFee == 0 {
		return fmt.Errorf("protocol min fee must be positive")
	}
	if cfg.Protocol.OptInFeeFactor < 1 {
		return fmt.Errorf("protocol opt-in fee factor must be at least 1")
	}
	if cfg.Protocol.MaxGroupSize < 1 {
		return fmt.Errorf("protocol max group size must be at least 1")
	}
	return nil
}
