package wallet

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	data := []byte("secret seed material")
	password := []byte("correct horse battery staple")

	encrypted, err := Encrypt(data, password)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if bytes.Contains(encrypted, data) {
		t.Fatal("ciphertext contains plaintext")
	}

	decrypted, err := Decrypt(encrypted, password)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(decrypted, data) {
		t.Errorf("round trip = %q, want %q", decrypted, data)
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	encrypted, err := Encrypt([]byte("data"), []byte("password"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := Decrypt(encrypted, []byte("wrong")); err == nil {
		t.Fatal("expected error for wrong password")
	}
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	password := []byte("password")
	encrypted, err := Encrypt([]byte("data"), password)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	encrypted[len(encrypted)-1] ^= 0xff
	if _, err := Decrypt(encrypted, password); err == nil {
		t.Fatal("expected error for tampered ciphertext")
	}
}

func TestDecryptMalformedInput(t *testing.T) {
	if _, err := Decrypt([]byte("too short"), []byte("password")); err == nil {
		t.Error("expected error for truncated input")
	}

	encrypted, err := Encrypt([]byte("data"), []byte("password"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	encrypted[0] = 99 // unknown version
	if _, err := Decrypt(encrypted, []byte("password")); err == nil {
		t.Error("expected error for unknown format version")
	}
}

func TestEncryptUniqueOutputs(t *testing.T) {
	data := []byte("data")
	password := []byte("password")
	a, err := Encrypt(data, password)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	b, err := Encrypt(data, password)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two encryptions produced identical output (salt/nonce reuse)")
	}
}
