package shared

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/nullstyle/go-xdr/xdr3"
)

// MaxEncodedSize bounds the size of an encoded proof bundle accepted by Decode.
const MaxEncodedSize = 1 << 20

// Proof is the ordered list of halving-round midpoints, round 0 first.
type Proof struct {
	Midpoints []*big.Int
}

// ProofMetadata is everything a verifier needs besides the proof itself.
type ProofMetadata struct {
	Modulus   *big.Int
	PublicKey []byte

	Seed     *big.Int
	Target   *big.Int
	Start    *big.Int
	Output   *big.Int
	NumSteps uint64
}

// Clone returns a deep copy of the proof.
func (p *Proof) Clone() *Proof {
	c := &Proof{Midpoints: make([]*big.Int, len(p.Midpoints))}
	for i, mu := range p.Midpoints {
		c.Midpoints[i] = new(big.Int).Set(mu)
	}
	return c
}

// bundle is the XDR wire representation of a proof and its metadata.
type bundle struct {
	Modulus   []byte
	PublicKey []byte
	Seed      []byte
	Target    []byte
	Start     []byte
	Output    []byte
	NumSteps  uint64
	Midpoints [][]byte
}

// Encode serializes a proof together with its metadata.
func Encode(p *Proof, m *ProofMetadata) ([]byte, error) {
	if p == nil || m == nil {
		return nil, errors.New("proof and metadata are required")
	}
	for name, v := range map[string]*big.Int{
		"Modulus": m.Modulus, "Seed": m.Seed, "Target": m.Target, "Start": m.Start, "Output": m.Output,
	} {
		if v == nil {
			return nil, fmt.Errorf("missing `%s`", name)
		}
	}

	b := bundle{
		Modulus:   m.Modulus.Bytes(),
		PublicKey: m.PublicKey,
		Seed:      m.Seed.Bytes(),
		Target:    m.Target.Bytes(),
		Start:     m.Start.Bytes(),
		Output:    m.Output.Bytes(),
		NumSteps:  m.NumSteps,
		Midpoints: make([][]byte, len(p.Midpoints)),
	}
	for i, mu := range p.Midpoints {
		if mu == nil {
			return nil, fmt.Errorf("missing midpoint %d", i)
		}
		b.Midpoints[i] = mu.Bytes()
	}

	var w bytes.Buffer
	if _, err := xdr.Marshal(&w, &b); err != nil {
		return nil, fmt.Errorf("serialization failure: %w", err)
	}
	return w.Bytes(), nil
}

// Decode parses a bundle produced by Encode. Range checks against the modulus are
// left to the verifier.
func Decode(data []byte) (*Proof, *ProofMetadata, error) {
	if len(data) > MaxEncodedSize {
		return nil, nil, fmt.Errorf("encoded proof too large; expected: <= %d, given: %d", MaxEncodedSize, len(data))
	}

	var b bundle
	if _, err := xdr.Unmarshal(bytes.NewReader(data), &b); err != nil {
		return nil, nil, fmt.Errorf("deserialization failure: %w", err)
	}

	m := &ProofMetadata{
		Modulus:   new(big.Int).SetBytes(b.Modulus),
		PublicKey: b.PublicKey,
		Seed:      new(big.Int).SetBytes(b.Seed),
		Target:    new(big.Int).SetBytes(b.Target),
		Start:     new(big.Int).SetBytes(b.Start),
		Output:    new(big.Int).SetBytes(b.Output),
		NumSteps:  b.NumSteps,
	}
	p := &Proof{Midpoints: make([]*big.Int, len(b.Midpoints))}
	for i, mu := range b.Midpoints {
		p.Midpoints[i] = new(big.Int).SetBytes(mu)
	}
	return p, m, nil
}
