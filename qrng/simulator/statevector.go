package simulator

import (
	"math"

	"github.com/alan-christopher/qrng/qrng/circuit"
	"github.com/alan-christopher/qrng/qrng/result"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// MaxStatevectorQubits bounds the width of circuits a Statevector will
// simulate; the state of n qubits takes 2^n amplitudes.
const MaxStatevectorQubits = 24

// A Statevector simulates circuits by evolving the full 2^n amplitude state of
// the quantum register. Basis index i has qubit q set iff bit q of i is set.
//
// When every measurement is terminal, the state is evolved once and all shots
// are sampled from it. Otherwise each shot is simulated separately.
type Statevector struct {
	src rand.Source
}

// NewStatevector returns a Statevector drawing measurement outcomes from src.
func NewStatevector(src rand.Source) *Statevector {
	return &Statevector{src: src}
}

// Name implements Simulator.
func (s *Statevector) Name() string {
	return StatevectorName
}

// Run implements Simulator.
func (s *Statevector) Run(c *circuit.Circuit, shots int) (result.Counts, error) {
	if err := validate(c, shots); err != nil {
		return result.Counts{}, err
	}
	if c.NumQubits() > MaxStatevectorQubits {
		return result.Counts{}, errors.Wrapf(ErrTooManyQubits, "%d > %d", c.NumQubits(), MaxStatevectorQubits)
	}
	ops := c.Ops()
	if !terminalMeasurements(ops) {
		return s.runShots(c, ops, shots)
	}

	st := newState(c.NumQubits())
	var measures []circuit.Op
	for _, op := range ops {
		if op.Kind == circuit.Measure {
			measures = append(measures, op)
			continue
		}
		if err := s.step(st, op); err != nil {
			return result.Counts{}, err
		}
	}

	p := st.probs()
	w := sampleuv.NewWeighted(p, s.src)
	var counts result.Counts
	for shot := 0; shot < shots; shot++ {
		idx, ok := w.Take()
		if !ok {
			return result.Counts{}, errors.New("statevector has no probability mass")
		}
		// Take samples without replacement; put the outcome back.
		w.Reweight(idx, p[idx])
		cl := newClbits(c.NumClbits())
		for _, m := range measures {
			cl.set(m.Clbit, idx&(1<<uint(m.Qubit)) != 0)
		}
		counts.Add(cl.key(), 1)
	}
	return counts, nil
}

func (s *Statevector) runShots(c *circuit.Circuit, ops []circuit.Op, shots int) (result.Counts, error) {
	var counts result.Counts
	for shot := 0; shot < shots; shot++ {
		st := newState(c.NumQubits())
		cl := newClbits(c.NumClbits())
		for _, op := range ops {
			if op.Kind == circuit.Measure {
				cl.set(op.Clbit, st.measure(op.Qubit, s.src))
				continue
			}
			if err := s.step(st, op); err != nil {
				return result.Counts{}, errors.Wrapf(err, "shot %d", shot)
			}
		}
		counts.Add(cl.key(), 1)
	}
	return counts, nil
}

func (s *Statevector) step(st *state, op circuit.Op) error {
	if op.Kind == circuit.Reset {
		if st.measure(op.Qubit, s.src) {
			st.apply(pauliX, op.Qubit)
		}
		return nil
	}
	u, err := gateFor(op.Kind)
	if err != nil {
		return err
	}
	st.apply(u, op.Qubit)
	return nil
}

// terminalMeasurements reports whether no op touches a qubit after that qubit
// has been measured.
func terminalMeasurements(ops []circuit.Op) bool {
	measured := make(map[int]bool)
	for _, op := range ops {
		if measured[op.Qubit] && op.Kind != circuit.Measure {
			return false
		}
		if op.Kind == circuit.Measure {
			measured[op.Qubit] = true
		}
	}
	return true
}

type state struct {
	amps []complex128
}

func newState(n int) *state {
	amps := make([]complex128, 1<<uint(n))
	amps[0] = 1
	return &state{amps: amps}
}

func (st *state) apply(u unitary, q int) {
	bit := 1 << uint(q)
	for i := range st.amps {
		if i&bit != 0 {
			continue
		}
		j := i | bit
		st.amps[i], st.amps[j] = u.apply(st.amps[i], st.amps[j])
	}
}

// probs returns the normalised probability of each basis state.
func (st *state) probs() []float64 {
	p := make([]float64, len(st.amps))
	for i, a := range st.amps {
		p[i] = prob(a)
	}
	if sum := floats.Sum(p); sum > 0 {
		floats.Scale(1/sum, p)
	}
	return p
}

// measure collapses qubit q, reporting whether it was found in |1⟩.
func (st *state) measure(q int, src rand.Source) bool {
	bit := 1 << uint(q)
	p := st.probs()
	var p1 float64
	for i, pi := range p {
		if i&bit != 0 {
			p1 += pi
		}
	}
	one := distuv.Bernoulli{P: clamp(p1), Src: src}.Rand() == 1
	keep := 1 - p1
	if one {
		keep = p1
	}
	norm := complex(1/math.Sqrt(keep), 0)
	for i := range st.amps {
		if (i&bit != 0) == one {
			st.amps[i] *= norm
		} else {
			st.amps[i] = 0
		}
	}
	return one
}
