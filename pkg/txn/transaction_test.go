package txn

import (
	"testing"

	"github.com/firepit-wallet/firepit/pkg/crypto"
)

func testAddr(t *testing.T, seed string) (string, *crypto.PrivateKey) {
	t.Helper()
	h := crypto.Sum([]byte(seed))
	key, err := crypto.PrivateKeyFromBytes(h[:])
	if err != nil {
		t.Fatalf("derive key: %v", err)
	}
	return crypto.AddressFromPubKey(key.PublicKey(), crypto.MainnetHRP), key
}

func testParams() SuggestedParams {
	return SuggestedParams{
		MinFee:     1000,
		FirstValid: 100,
		LastValid:  1100,
		GenesisID:  "firepit-mainnet",
	}
}

func TestSigningBytesDeterministic(t *testing.T) {
	sender, _ := testAddr(t, "sender")
	receiver, _ := testAddr(t, "receiver")

	a := NewPayment(sender, receiver, 5000, testParams())
	b := NewPayment(sender, receiver, 5000, testParams())
	if a.ID() != b.ID() {
		t.Error("identical payments have different IDs")
	}

	c := NewPayment(sender, receiver, 5001, testParams())
	if a.ID() == c.ID() {
		t.Error("different amounts produced the same ID")
	}
}

func TestIDChangesWithGroup(t *testing.T) {
	sender, _ := testAddr(t, "sender")
	receiver, _ := testAddr(t, "receiver")

	tx := NewPayment(sender, receiver, 5000, testParams())
	before := tx.ID()
	tx.Group = crypto.Sum([]byte("group"))
	if tx.ID() == before {
		t.Error("group assignment did not change the transaction ID")
	}
}

func TestSignAndVerify(t *testing.T) {
	sender, key := testAddr(t, "sender")
	receiver, _ := testAddr(t, "receiver")

	tx := NewPayment(sender, receiver, 5000, testParams())
	if tx.Signed() {
		t.Fatal("unsigned transaction reported signed")
	}
	if tx.Verify() {
		t.Fatal("unsigned transaction verified")
	}

	if err := tx.Sign(key); err != nil {
		t.Fatalf("sign: %v", err)
	}
	if !tx.Signed() {
		t.Error("signed transaction reported unsigned")
	}
	if !tx.Verify() {
		t.Error("signed transaction failed verification")
	}

	// Mutating a covered field invalidates the signature.
	tx.Amount = 9999
	if tx.Verify() {
		t.Error("mutated transaction still verified")
	}
}

func TestTypeEncodingDistinct(t *testing.T) {
	sender, _ := testAddr(t, "sender")
	receiver, _ := testAddr(t, "receiver")
	sp := testParams()

	pay := NewPayment(sender, receiver, 7, sp)
	axfer := NewAssetTransfer(sender, receiver, 0, 7, "", sp)
	if pay.ID() == axfer.ID() {
		t.Error("payment and asset transfer encoded identically")
	}

	keep := NewAssetTransfer(sender, receiver, 42, 7, "", sp)
	closing := NewAssetTransfer(sender, receiver, 42, 7, receiver, sp)
	if keep.ID() == closing.ID() {
		t.Error("close-out field not covered by the encoding")
	}
}

func TestAppCallEncoding(t *testing.T) {
	sender, _ := testAddr(t, "sender")
	sp := testParams()

	a := NewAppCall(sender, 99, [][]byte{[]byte("optInToAsset")}, []uint64{42}, 2000, sp)
	b := NewAppCall(sender, 99, [][]byte{[]byte("optInToAsset")}, []uint64{43}, 2000, sp)
	if a.ID() == b.ID() {
		t.Error("foreign assets not covered by the encoding")
	}
	if a.Fee != 2000 {
		t.Errorf("app call fee = %d, want 2000", a.Fee)
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TypePayment, "pay"},
		{TypeAssetTransfer, "axfer"},
		{TypeAppCall, "appl"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
