// Package vrf holds the key material of the verifiable random function whose public
// key seeds the delay function. Only key generation and public key handling live
// here; the VRF proof system itself is provided elsewhere.
package vrf

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spacemeshos/ed25519"
)

// KeyFileName is the default name of the private key file inside a data directory.
const KeyFileName = "key.bin"

var (
	ErrKeyFileExists    = errors.New("key file already exists")
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// PublicKey is an ed25519 public key. The delay function only reads its bytes.
type PublicKey []byte

func (pk PublicKey) Bytes() []byte {
	return pk
}

func (pk PublicKey) String() string {
	return hex.EncodeToString(pk)
}

// ParsePublicKey decodes a hex encoded public key.
func ParsePublicKey(s string) (PublicKey, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	if len(b) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: expected length: %d, given: %d", ErrInvalidPublicKey, ed25519.PublicKeySize, len(b))
	}
	return PublicKey(b), nil
}

type PrivateKey struct {
	key ed25519.PrivateKey
}

// GenerateKey creates a new key pair. A nil reader uses crypto/rand.
func GenerateKey(rand io.Reader) (*PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return &PrivateKey{key: priv}, nil
}

// NewKeyFromSeed deterministically derives a key pair from a 32 byte seed.
func NewKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("invalid seed length; expected: %d, given: %d", ed25519.SeedSize, len(seed))
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

func (k *PrivateKey) Public() PublicKey {
	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, k.key[ed25519.SeedSize:])
	return pub
}

// SaveKey writes the hex encoded private key to dir/key.bin. An existing key file
// is never overwritten.
func SaveKey(dir string, k *PrivateKey) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil && !os.IsExist(err) {
		return "", fmt.Errorf("mkdir error: %w", err)
	}

	filename := filepath.Join(dir, KeyFileName)
	if _, err := os.Stat(filename); err == nil {
		return "", ErrKeyFileExists
	}

	if err := os.WriteFile(filename, []byte(hex.EncodeToString(k.key)), 0o600); err != nil {
		return "", fmt.Errorf("key write to disk error: %w", err)
	}
	return filename, nil
}

// LoadKey reads a key written by SaveKey.
func LoadKey(filename string) (*PrivateKey, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read private key from %s: %w", filename, err)
	}

	dst := make([]byte, ed25519.PrivateKeySize)
	n, err := hex.Decode(dst, []byte(strings.TrimSpace(string(data))))
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key from %s: %w", filename, err)
	}
	if n != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("size of key (%d) not expected size %d", n, ed25519.PrivateKeySize)
	}
	return NewKeyFromSeed(dst[:ed25519.SeedSize])
}
