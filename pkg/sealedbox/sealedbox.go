// Package sealedbox encrypts repository secrets for GitHub Actions using
// anonymous-sender NaCl sealed boxes. Only the holder of the repository's
// private key (GitHub's side) can recover the plaintext.
package sealedbox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/nacl/box"
)

// KeySize is the required length of a decoded recipient public key.
const KeySize = 32

// Encrypt seals plaintext for the recipient identified by publicKeyB64, the
// base64-encoded Curve25519 public key returned by the Actions public-key
// endpoint, and returns the base64-encoded ciphertext.
//
// The API is known to return keys without base64 padding, so the key is
// padded to a multiple of 4 before decoding.
func Encrypt(publicKeyB64, plaintext string) (string, error) {
	keyBytes, err := decodeKey(publicKeyB64)
	if err != nil {
		return "", err
	}

	var recipient [KeySize]byte
	copy(recipient[:], keyBytes)

	sealed, err := box.SealAnonymous(nil, []byte(plaintext), &recipient, rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to seal secret: %w", err)
	}

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a sealed box produced by Encrypt using the recipient keypair.
// It exists for round-trip verification; production code only ever encrypts.
func Open(ciphertextB64 string, publicKey, privateKey *[KeySize]byte) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	plaintext, ok := box.OpenAnonymous(nil, sealed, publicKey, privateKey)
	if !ok {
		return "", fmt.Errorf("failed to open sealed box: ciphertext or key mismatch")
	}

	return string(plaintext), nil
}

// decodeKey pads and decodes a base64 public key, enforcing the key length.
func decodeKey(publicKeyB64 string) ([]byte, error) {
	padded := publicKeyB64
	if rem := len(padded) % 4; rem != 0 {
		padded += strings.Repeat("=", 4-rem)
	}

	keyBytes, err := base64.StdEncoding.DecodeString(padded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode public key: %w", err)
	}

	if len(keyBytes) != KeySize {
		return nil, fmt.Errorf("invalid public key length: expected %d bytes, got %d", KeySize, len(keyBytes))
	}

	return keyBytes, nil
}
