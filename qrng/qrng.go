// Package qrng generates random integers by simulating independent quantum
// coin flips.
package qrng

import (
	"github.com/alan-christopher/qrng/qrng/bitmap"
	"github.com/alan-christopher/qrng/qrng/circuit"
	"github.com/alan-christopher/qrng/qrng/result"
	"github.com/alan-christopher/qrng/qrng/simulator"
	"github.com/pkg/errors"
)

var (
	DefaultBits = 8
	MaxBits     = 64
)

// ErrInvalidKey is returned when decoding a bit-string that is not made up of
// '0' and '1' runes, or that is too long to fit a uint64.
var ErrInvalidKey = errors.New("invalid outcome key")

// GeneratorOpts packages together the arguments necessary to construct a new
// Generator.
type GeneratorOpts struct {
	// Bits specifies the width of generated values, in [1, MaxBits]. Defaults
	// to DefaultBits.
	Bits int

	// Simulator executes the generator's circuit. Must be non-nil.
	Simulator simulator.Simulator
}

// A Generator produces Bits-wide unsigned integers, one simulated qubit per
// bit.
type Generator struct {
	bits int
	sim  simulator.Simulator
}

// A Sample is the outcome of one generation: the raw counts reported by the
// simulator, and the value they decode to.
type Sample struct {
	Counts result.Counts
	Value  uint64
}

// NewGenerator returns a new Generator, configured in accordance with opts, or
// an error if the options are nonsensical.
func NewGenerator(opts GeneratorOpts) (*Generator, error) {
	if opts.Simulator == nil {
		return nil, errors.New("must provide Simulator")
	}
	bits := opts.Bits
	if bits == 0 {
		bits = DefaultBits
	}
	if bits < 1 || bits > MaxBits {
		return nil, errors.Errorf("bits must be in [1, %d], got %d", MaxBits, bits)
	}
	return &Generator{bits: bits, sim: opts.Simulator}, nil
}

// Bits returns the width of the values g generates.
func (g *Generator) Bits() int {
	return g.bits
}

// Generate runs a fresh circuit once and decodes the single observed
// bit-string.
func (g *Generator) Generate() (Sample, error) {
	c, err := circuit.RandomBits(g.bits)
	if err != nil {
		return Sample{}, errors.Wrap(err, "building circuit")
	}
	counts, err := g.sim.Run(c, 1)
	if err != nil {
		return Sample{}, errors.Wrapf(err, "running %s", g.sim.Name())
	}
	v, err := DecodeCounts(counts)
	if err != nil {
		return Sample{}, err
	}
	return Sample{Counts: counts, Value: v}, nil
}

// Decode converts an outcome key to an integer. Rune i of key contributes
// bit_i << i, so the first rune is the least significant bit.
func Decode(key string) (uint64, error) {
	if len(key) > MaxBits {
		return 0, errors.Wrapf(ErrInvalidKey, "%q has more than %d bits", key, MaxBits)
	}
	d, err := bitmap.Parse(key)
	if err != nil {
		return 0, errors.Wrap(ErrInvalidKey, err.Error())
	}
	return d.Uint64()
}

// DecodeCounts decodes the only key of a one-shot run.
func DecodeCounts(c result.Counts) (uint64, error) {
	key, err := c.Single()
	if err != nil {
		return 0, err
	}
	return Decode(key)
}

// DecodeAll decodes every key in c, in entry order.
func DecodeAll(c result.Counts) ([]uint64, error) {
	var r []uint64
	for _, e := range c.Entries() {
		v, err := Decode(e.Bits)
		if err != nil {
			return nil, err
		}
		r = append(r, v)
	}
	return r, nil
}
