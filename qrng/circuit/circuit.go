// Package circuit describes the fixed-topology quantum circuits that the
// generator hands to a simulator.
package circuit

import (
	"fmt"

	"github.com/pkg/errors"
)

// An OpKind identifies a single-qubit circuit operation.
type OpKind int

const (
	// Reset returns a qubit to |0⟩.
	Reset OpKind = iota
	// Hadamard maps |0⟩ to an equal superposition of |0⟩ and |1⟩.
	Hadamard
	// PauliX flips |0⟩ and |1⟩.
	PauliX
	// Measure collapses a qubit and records the result in a classical bit.
	Measure
)

func (k OpKind) String() string {
	switch k {
	case Reset:
		return "reset"
	case Hadamard:
		return "h"
	case PauliX:
		return "x"
	case Measure:
		return "measure"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// An Op is one step on one qubit line. Clbit is only meaningful for Measure.
type Op struct {
	Kind  OpKind
	Qubit int
	Clbit int
}

func (o Op) String() string {
	if o.Kind == Measure {
		return fmt.Sprintf("measure q[%d] -> c[%d]", o.Qubit, o.Clbit)
	}
	return fmt.Sprintf("%v q[%d]", o.Kind, o.Qubit)
}

// A Circuit is an ordered list of single-qubit operations over a quantum
// register and a classical register. There is no multi-qubit operation, so
// the qubits of a Circuit never interact.
type Circuit struct {
	qubits int
	clbits int
	ops    []Op
}

// New returns an empty circuit over the given register sizes.
func New(qubits, clbits int) (*Circuit, error) {
	if qubits < 1 {
		return nil, errors.Errorf("circuit needs at least one qubit, got %d", qubits)
	}
	if clbits < 1 {
		return nil, errors.Errorf("circuit needs at least one classical bit, got %d", clbits)
	}
	return &Circuit{qubits: qubits, clbits: clbits}, nil
}

// RandomBits returns a circuit of n independent lines, each of which is reset
// to |0⟩, put into superposition, and measured into the classical bit with the
// same index.
func RandomBits(n int) (*Circuit, error) {
	c, err := New(n, n)
	if err != nil {
		return nil, err
	}
	c.ResetAll()
	c.HAll()
	if err := c.MeasureAll(); err != nil {
		return nil, err
	}
	return c, nil
}

// NumQubits returns the size of the quantum register.
func (c *Circuit) NumQubits() int {
	return c.qubits
}

// NumClbits returns the size of the classical register.
func (c *Circuit) NumClbits() int {
	return c.clbits
}

// Ops returns a copy of the operations in c, in application order.
func (c *Circuit) Ops() []Op {
	ops := make([]Op, len(c.ops))
	copy(ops, c.ops)
	return ops
}

func (c *Circuit) Reset(q int) error {
	return c.single(Reset, q)
}

func (c *Circuit) H(q int) error {
	return c.single(Hadamard, q)
}

func (c *Circuit) X(q int) error {
	return c.single(PauliX, q)
}

// Measure records the outcome of measuring qubit q into classical bit cb.
func (c *Circuit) Measure(q, cb int) error {
	if err := c.checkQubit(q); err != nil {
		return err
	}
	if cb < 0 || cb >= c.clbits {
		return errors.Errorf("classical bit %d out of range [0, %d)", cb, c.clbits)
	}
	c.ops = append(c.ops, Op{Kind: Measure, Qubit: q, Clbit: cb})
	return nil
}

// ResetAll resets every qubit.
func (c *Circuit) ResetAll() {
	for q := 0; q < c.qubits; q++ {
		c.ops = append(c.ops, Op{Kind: Reset, Qubit: q})
	}
}

// HAll applies a Hadamard gate to every qubit.
func (c *Circuit) HAll() {
	for q := 0; q < c.qubits; q++ {
		c.ops = append(c.ops, Op{Kind: Hadamard, Qubit: q})
	}
}

// MeasureAll measures qubit i into classical bit i, for every i. The two
// registers must be the same size.
func (c *Circuit) MeasureAll() error {
	if c.qubits != c.clbits {
		return errors.Errorf("measuring %d qubits into %d classical bits", c.qubits, c.clbits)
	}
	for q := 0; q < c.qubits; q++ {
		c.ops = append(c.ops, Op{Kind: Measure, Qubit: q, Clbit: q})
	}
	return nil
}

func (c *Circuit) single(k OpKind, q int) error {
	if err := c.checkQubit(q); err != nil {
		return errors.Wrap(err, k.String())
	}
	c.ops = append(c.ops, Op{Kind: k, Qubit: q})
	return nil
}

func (c *Circuit) checkQubit(q int) error {
	if q < 0 || q >= c.qubits {
		return errors.Errorf("qubit %d out of range [0, %d)", q, c.qubits)
	}
	return nil
}
