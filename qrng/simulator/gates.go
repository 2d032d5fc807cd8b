package simulator

import (
	"math"

	"github.com/alan-christopher/qrng/qrng/circuit"
	"github.com/pkg/errors"
)

// A unitary is a single-qubit gate, acting on column vectors (α, β) of |0⟩ and
// |1⟩ amplitudes.
type unitary [2][2]complex128

var (
	// H = 1/√2 * [1  1]
	//            [1 -1]
	hadamard = unitary{
		{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)},
		{complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)},
	}
	pauliX = unitary{
		{0, 1},
		{1, 0},
	}
)

func (u unitary) apply(alpha, beta complex128) (complex128, complex128) {
	return u[0][0]*alpha + u[0][1]*beta, u[1][0]*alpha + u[1][1]*beta
}

func gateFor(k circuit.OpKind) (unitary, error) {
	switch k {
	case circuit.Hadamard:
		return hadamard, nil
	case circuit.PauliX:
		return pauliX, nil
	}
	return unitary{}, errors.Errorf("%v is not a gate", k)
}

func prob(a complex128) float64 {
	return real(a)*real(a) + imag(a)*imag(a)
}
