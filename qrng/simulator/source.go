package simulator

import (
	crand "crypto/rand"
	"encoding/binary"

	"golang.org/x/exp/rand"
)

// CryptoSource is a rand.Source backed by crypto/rand. Seed is a no-op.
type CryptoSource struct{}

// Uint64 implements rand.Source. It panics if the operating system's entropy
// source fails, as there is no way to report an error through rand.Source.
func (CryptoSource) Uint64() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic("simulator: reading crypto/rand: " + err.Error())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Seed implements rand.Source.
func (CryptoSource) Seed(uint64) {}

// NewSeededSource returns a deterministic source, for reproducible runs.
func NewSeededSource(seed uint64) rand.Source {
	return rand.NewSource(seed)
}

// SourceFor returns NewSeededSource(seed), or CryptoSource if seed is zero.
func SourceFor(seed uint64) rand.Source {
	if seed == 0 {
		return CryptoSource{}
	}
	return NewSeededSource(seed)
}
