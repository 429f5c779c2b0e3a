package crypto

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressSize is the length of the public key hash in an address.
const AddressSize = 20

// Address HRP (human-readable part) constants.
const (
	MainnetHRP = "fpx"
	TestnetHRP = "tfpx"
)

// AddressFromPubKey derives an address string from a compressed public key.
// Address = hrp + "1" + hex(BLAKE3(compressed_pubkey)[:20]).
func AddressFromPubKey(pubKey []byte, hrp string) string {
	h := Sum(pubKey)
	return hrp + "1" + hex.EncodeToString(h[:AddressSize])
}

// AddressFromAppID derives the account address controlled by an on-chain
// application. Address = hrp + "1" + hex(BLAKE3("appID" || be64(id))[:20]).
func AddressFromAppID(appID uint64, hrp string) string {
	buf := make([]byte, 0, 13)
	buf = append(buf, "appID"...)
	buf = append(buf,
		byte(appID>>56), byte(appID>>48), byte(appID>>40), byte(appID>>32),
		byte(appID>>24), byte(appID>>16), byte(appID>>8), byte(appID))
	h := Sum(buf)
	return hrp + "1" + hex.EncodeToString(h[:AddressSize])
}

// ValidateAddress checks that an address string is well formed for the given HRP.
func ValidateAddress(addr, hrp string) error {
	prefix := hrp + "1"
	if !strings.HasPrefix(addr, prefix) {
		return fmt.Errorf("address %q missing prefix %q", addr, prefix)
	}
	body := addr[len(prefix):]
	if len(body) != AddressSize*2 {
		return fmt.Errorf("address body must be %d hex chars, got %d", AddressSize*2, len(body))
	}
	if _, err := hex.DecodeString(body); err != nil {
		return fmt.Errorf("address %q: %w", addr, err)
	}
	return nil
}
