package shared

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spacemeshos/sha256-simd"
)

const (
	OwnerReadWrite     = os.FileMode(0o600)
	OwnerReadWriteExec = os.FileMode(0o700)

	proofFileExt = ".bin"
)

// GetProofsDir returns the directory holding the proofs of a public key.
func GetProofsDir(datadir string, publicKey []byte) string {
	return filepath.Join(datadir, hex.EncodeToString(publicKey), "proofs")
}

// GetProofFilename names a proof by the hash of the statement it proves.
func GetProofFilename(datadir string, m *ProofMetadata) string {
	h := sha256.New()
	fmt.Fprintf(h, "%x/%x/%x/%d", m.Modulus, m.Seed, m.Target, m.NumSteps)
	name := hex.EncodeToString(h.Sum(nil)[:8]) + proofFileExt
	return filepath.Join(GetProofsDir(datadir, m.PublicKey), name)
}

// PersistProof writes a proof bundle under datadir and returns its path.
func PersistProof(datadir string, p *Proof, m *ProofMetadata) (string, error) {
	data, err := Encode(p, m)
	if err != nil {
		return "", err
	}

	dir := GetProofsDir(datadir, m.PublicKey)
	if err := os.MkdirAll(dir, OwnerReadWriteExec); err != nil {
		return "", fmt.Errorf("dir creation failure: %w", err)
	}

	filename := GetProofFilename(datadir, m)
	if err := os.WriteFile(filename, data, OwnerReadWrite); err != nil {
		return "", fmt.Errorf("write to disk failure: %w", err)
	}
	return filename, nil
}

// FetchProof reads a proof bundle written by PersistProof.
func FetchProof(filename string) (*Proof, *ProofMetadata, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrProofNotExist
		}
		return nil, nil, fmt.Errorf("read file failure: %w", err)
	}
	return Decode(data)
}
