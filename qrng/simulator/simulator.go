// Package simulator provides classical simulators for the circuits built by
// package circuit.
package simulator

import (
	"sort"

	"github.com/alan-christopher/qrng/qrng/bitmap"
	"github.com/alan-christopher/qrng/qrng/circuit"
	"github.com/alan-christopher/qrng/qrng/result"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Names under which the simulators in this package are registered.
const (
	QASMName        = "qasm_simulator"
	StatevectorName = "statevector_simulator"
)

var (
	// ErrUnknownBackend is returned by New for unregistered names.
	ErrUnknownBackend = errors.New("unknown backend")
	// ErrTooManyQubits is returned when a circuit is too wide to simulate.
	ErrTooManyQubits = errors.New("too many qubits")
)

// A Simulator executes circuits. Every key of the returned counts has exactly
// c.NumClbits() runes, with classical bit i at rune i. Classical bits that are
// never measured read '0'.
type Simulator interface {
	// Name returns the name the simulator is registered under.
	Name() string

	// Run executes c shots times.
	Run(c *circuit.Circuit, shots int) (result.Counts, error)
}

var backends = map[string]func(rand.Source) Simulator{
	QASMName:        func(src rand.Source) Simulator { return NewSampler(src) },
	StatevectorName: func(src rand.Source) Simulator { return NewStatevector(src) },
}

// New returns the simulator registered under name, drawing randomness from
// src. A nil src uses CryptoSource.
func New(name string, src rand.Source) (Simulator, error) {
	f, ok := backends[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownBackend, "%q (have %v)", name, Names())
	}
	if src == nil {
		src = CryptoSource{}
	}
	return f(src), nil
}

// Names returns the registered simulator names, sorted.
func Names() []string {
	var r []string
	for n := range backends {
		r = append(r, n)
	}
	sort.Strings(r)
	return r
}

func validate(c *circuit.Circuit, shots int) error {
	if c == nil {
		return errors.New("nil circuit")
	}
	if shots < 1 {
		return errors.Errorf("need at least one shot, got %d", shots)
	}
	return nil
}

// clbits accumulates the classical register for one shot.
type clbits struct {
	d bitmap.Dense
}

func newClbits(n int) *clbits {
	return &clbits{d: bitmap.NewDense(nil, n)}
}

func (c *clbits) set(i int, v bool) {
	if c.d.Get(i) != v {
		c.d.Flip(i)
	}
}

func (c *clbits) key() string {
	return c.d.String()
}
