package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

var errSealedTooShort = errors.New("sealed session too short")

// deriveKey expands the configured secret into a 32-byte AES key using
// HKDF-SHA256.
func deriveKey(secret string) ([]byte, error) {
	h := hkdf.New(sha256.New, []byte(secret), nil, []byte("session-store"))
	key := make([]byte, 32)
	if _, err := io.ReadFull(h, key); err != nil {
		return nil, err
	}
	return key, nil
}

// seal encrypts the serialized session with AES-GCM, nonce prefixed.
func seal(key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return append(nonce, gcm.Seal(nil, nonce, plaintext, nil)...), nil
}

// unseal reverses seal. Any tampering or key mismatch fails the GCM tag
// check.
func unseal(key, sealed []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	ns := gcm.NonceSize()
	if len(sealed) < ns {
		return nil, errSealedTooShort
	}
	return gcm.Open(nil, sealed[:ns], sealed[ns:], nil)
}
