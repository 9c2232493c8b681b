// Package sim builds the full unitary of a circuit by dense matrix
// composition. It exists to verify rewrites: two circuits are equal
// exactly when their unitaries, global phase factors included, agree
// elementwise. Qubit 0 is the least significant bit of a basis index.
package sim

import (
	"fmt"
	"math/cmplx"

	"github.com/qreduce-team/qreduce-engine/core"
)

const maxSimQubits = 12

type Matrix [][]complex128

func identity(dim int) Matrix {
	m := make(Matrix, dim)
	for i := range m {
		m[i] = make([]complex128, dim)
		m[i][i] = 1
	}
	return m
}

func (m Matrix) mul(n Matrix) Matrix {
	dim := len(m)
	out := make(Matrix, dim)
	for i := 0; i < dim; i++ {
		out[i] = make([]complex128, dim)
		for k := 0; k < dim; k++ {
			if m[i][k] == 0 {
				continue
			}
			for j := 0; j < dim; j++ {
				out[i][j] += m[i][k] * n[k][j]
			}
		}
	}
	return out
}

// Unitary composes every operation of the circuit and multiplies in
// the accumulated global phase factor. Opaque operations have no
// matrix and make the circuit unsimulatable.
func Unitary(c *core.Circuit) (Matrix, error) {
	if c.NumQubits > maxSimQubits {
		return nil, fmt.Errorf("%d qubits is beyond the dense simulation limit of %d",
			c.NumQubits, maxSimQubits)
	}
	dim := 1 << c.NumQubits
	u := identity(dim)
	for _, op := range c.Ops() {
		full, err := expand(op, c.NumQubits)
		if err != nil {
			return nil, err
		}
		u = full.mul(u)
	}
	factor := cmplx.Exp(complex(0, c.Phase.Radians()))
	for i := range u {
		for j := range u[i] {
			u[i][j] *= factor
		}
	}
	return u, nil
}

func expand(op *core.Operation, numQubits int) (Matrix, error) {
	dim := 1 << numQubits
	switch op.Kind {
	case core.KindRotation, core.KindUnitary:
		small, err := core.OperationMat(op)
		if err != nil {
			return nil, err
		}
		return embedSingle(small, op.Qubits[0], dim), nil
	case core.KindCX, core.KindMCX:
		return permutation(dim, func(j int) int {
			for _, ctrl := range op.Controls() {
				if j&(1<<ctrl) == 0 {
					return j
				}
			}
			return j ^ (1 << op.Target())
		}), nil
	case core.KindCZ:
		m := identity(dim)
		for j := 0; j < dim; j++ {
			if j&(1<<op.Qubits[0]) != 0 && j&(1<<op.Qubits[1]) != 0 {
				m[j][j] = -1
			}
		}
		return m, nil
	default:
		return nil, fmt.Errorf("opaque operation %s cannot be simulated", op.Name)
	}
}

func embedSingle(small core.Mat2, q, dim int) Matrix {
	m := make(Matrix, dim)
	for i := range m {
		m[i] = make([]complex128, dim)
	}
	bit := 1 << q
	for j := 0; j < dim; j++ {
		row := (j & bit) >> q
		for col := 0; col < 2; col++ {
			target := (j &^ bit) | (col << q)
			m[j][target] += small[row][col]
		}
	}
	return m
}

func permutation(dim int, dest func(int) int) Matrix {
	m := make(Matrix, dim)
	for i := range m {
		m[i] = make([]complex128, dim)
	}
	for j := 0; j < dim; j++ {
		m[dest(j)][j] = 1
	}
	return m
}

// Equal reports elementwise equality within tolerance.
func Equal(a, b Matrix, tolerance float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if cmplx.Abs(a[i][j]-b[i][j]) > tolerance {
				return false
			}
		}
	}
	return true
}
