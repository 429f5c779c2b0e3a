package wallet

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Seed encryption format: version(1) | salt(32) | nonce(24) | ciphertext.
const (
	encVersion  = 1
	saltSize    = 32
	encOverhead = 1 + saltSize + chacha20poly1305.NonceSizeX + chacha20poly1305.Overhead
)

// Argon2id parameters, fixed per format version.
const (
	argonMemory      = 64 * 1024 // KiB
	argonIterations  = 3
	argonParallelism = 4
)

// deriveKey uses Argon2id to derive a 32-byte encryption key from password
// and salt.
func deriveKey(password, salt []byte) []byte {
	return argon2.IDKey(
		password,
		salt,
		argonIterations,
		argonMemory,
		argonParallelism,
		chacha20poly1305.KeySize,
	)
}

// Encrypt encrypts data with a password using Argon2id + XChaCha20-Poly1305.
func Encrypt(data, password []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	key := deriveKey(password, salt)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := aead.Seal(nil, nonce, data, nil)

	out := make([]byte, 0, encOverhead+len(data))
	out = append(out, encVersion)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)

	// Zero the derived key.
	for i := range key {
		key[i] = 0
	}
	return out, nil
}

// Decrypt decrypts data produced by Encrypt with the given password.
func Decrypt(encrypted, password []byte) ([]byte, error) {
	if len(encrypted) < encOverhead {
		return nil, fmt.Errorf("encrypted data too short: %d bytes, need at least %d", len(encrypted), encOverhead)
	}
	if encrypted[0] != encVersion {
		return nil, fmt.Errorf("unsupported encryption version %d", encrypted[0])
	}

	salt := encrypted[1 : 1+saltSize]
	nonceStart := 1 + saltSize
	nonceEnd := nonceStart + chacha20poly1305.NonceSizeX
	nonce := encrypted[nonceStart:nonceEnd]
	ciphertext := encrypted[nonceEnd:]

	key := deriveKey(password, salt)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	data, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("wrong password or corrupt wallet file")
	}

	for i := range key {
		key[i] = 0
	}
	return data, nil
}
