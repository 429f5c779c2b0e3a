// derive_address.go prints the account address for an application ID, or
// for a hex-encoded private key file.
// Usage: go run scripts/derive_address.go [--hrp fpx] (--app <id> | <keyfile>)
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/firepit-wallet/firepit/pkg/crypto"
)

func main() {
	hrp := flag.String("hrp", crypto.MainnetHRP, "address prefix (fpx or tfpx)")
	appID := flag.Uint64("app", 0, "application ID")
	flag.Parse()

	if *appID != 0 {
		fmt.Printf("address=%s\n", crypto.AddressFromAppID(*appID, *hrp))
		return
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: derive_address [--hrp fpx] (--app <id> | <keyfile>)")
		os.Exit(1)
	}
	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	keyBytes, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	key, err := crypto.PrivateKeyFromBytes(keyBytes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	pub := key.PublicKey()
	fmt.Printf("pubkey=%s\n", hex.EncodeToString(pub))
	fmt.Printf("address=%s\n", crypto.AddressFromPubKey(pub, *hrp))
}
