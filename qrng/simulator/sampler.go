package simulator

import (
	"github.com/alan-christopher/qrng/qrng/circuit"
	"github.com/alan-christopher/qrng/qrng/result"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// A qubit is the state α|0⟩ + β|1⟩ of a single, unentangled qubit.
type qubit struct {
	alpha complex128
	beta  complex128
}

// A Sampler simulates circuits shot by shot, tracking each qubit separately.
// This is exact because no circuit op entangles two qubits.
type Sampler struct {
	src rand.Source
}

// NewSampler returns a Sampler drawing measurement outcomes from src.
func NewSampler(src rand.Source) *Sampler {
	return &Sampler{src: src}
}

// Name implements Simulator.
func (s *Sampler) Name() string {
	return QASMName
}

// Run implements Simulator.
func (s *Sampler) Run(c *circuit.Circuit, shots int) (result.Counts, error) {
	if err := validate(c, shots); err != nil {
		return result.Counts{}, err
	}
	ops := c.Ops()
	var counts result.Counts
	for shot := 0; shot < shots; shot++ {
		key, err := s.shot(c.NumQubits(), c.NumClbits(), ops)
		if err != nil {
			return result.Counts{}, errors.Wrapf(err, "shot %d", shot)
		}
		counts.Add(key, 1)
	}
	return counts, nil
}

func (s *Sampler) shot(nq, nc int, ops []circuit.Op) (string, error) {
	qs := make([]qubit, nq)
	for i := range qs {
		qs[i] = qubit{alpha: 1}
	}
	cl := newClbits(nc)
	for _, op := range ops {
		q := &qs[op.Qubit]
		switch op.Kind {
		case circuit.Reset:
			*q = qubit{alpha: 1}
		case circuit.Measure:
			one := s.measure(q)
			cl.set(op.Clbit, one)
		default:
			u, err := gateFor(op.Kind)
			if err != nil {
				return "", err
			}
			q.alpha, q.beta = u.apply(q.alpha, q.beta)
		}
	}
	return cl.key(), nil
}

// measure collapses q, reporting whether it was found in |1⟩.
func (s *Sampler) measure(q *qubit) bool {
	b := distuv.Bernoulli{P: clamp(prob(q.beta)), Src: s.src}
	if b.Rand() == 1 {
		*q = qubit{beta: 1}
		return true
	}
	*q = qubit{alpha: 1}
	return false
}

func clamp(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
