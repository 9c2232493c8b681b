package core

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Mat2 is a 2x2 complex matrix in row-major order.
type Mat2 [2][2]complex128

func Mat2Identity() Mat2 {
	return Mat2{{1, 0}, {0, 1}}
}

// Mul returns m*n, so n acts first in time.
func (m Mat2) Mul(n Mat2) Mat2 {
	var out Mat2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j]
		}
	}
	return out
}

func (m Mat2) Scale(s complex128) Mat2 {
	var out Mat2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = s * m[i][j]
		}
	}
	return out
}

// RotationMat builds exp(-i*theta*P/2) for the Pauli P on the axis.
func RotationMat(axis Axis, angle Angle) Mat2 {
	h := angle.Radians() / 2
	c := complex(math.Cos(h), 0)
	s := math.Sin(h)
	switch axis {
	case AxisX:
		return Mat2{{c, complex(0, -s)}, {complex(0, -s), c}}
	case AxisY:
		return Mat2{{c, complex(-s, 0)}, {complex(s, 0), c}}
	default:
		return Mat2{{cmplx.Exp(complex(0, -h)), 0}, {0, cmplx.Exp(complex(0, h))}}
	}
}

// UnitaryMat builds Rz(a)*Rx(b)*Rz(c), with c acting first in time.
func UnitaryMat(a, b, c Angle) Mat2 {
	return RotationMat(AxisZ, a).Mul(RotationMat(AxisX, b)).Mul(RotationMat(AxisZ, c))
}

// OperationMat returns the matrix of a single-qubit operation.
func OperationMat(op *Operation) (Mat2, error) {
	switch op.Kind {
	case KindRotation:
		return RotationMat(op.Axis, op.Angle), nil
	case KindUnitary:
		return UnitaryMat(op.Params[0], op.Params[1], op.Params[2]), nil
	default:
		return Mat2{}, fmt.Errorf("%s has no single-qubit matrix", op.Kind)
	}
}

// ScalarPhase reports whether m is a scalar multiple of the identity
// and, if so, the scalar's phase in multiples of pi.
func ScalarPhase(m Mat2) (float64, bool) {
	if cmplx.Abs(m[0][1]) > AngleEpsilon || cmplx.Abs(m[1][0]) > AngleEpsilon {
		return 0, false
	}
	if cmplx.Abs(m[0][0]-m[1][1]) > AngleEpsilon {
		return 0, false
	}
	if math.Abs(cmplx.Abs(m[0][0])-1) > AngleEpsilon {
		return 0, false
	}
	return cmplx.Phase(m[0][0]) / math.Pi, true
}

// EulerZXZ factors any unitary m as exp(i*phase*pi)*Rz(a)*Rx(b)*Rz(c).
// The three angles and the phase are returned in multiples of pi,
// unnormalized.
func EulerZXZ(m Mat2) (a, b, c, phase float64) {
	det := m[0][0]*m[1][1] - m[0][1]*m[1][0]
	root := cmplx.Exp(complex(0, cmplx.Phase(det)/2)) * complex(math.Sqrt(cmplx.Abs(det)), 0)
	su := m.Scale(1 / root)

	cosHalf := cmplx.Abs(su[0][0])
	sinHalf := cmplx.Abs(su[0][1])
	bRad := 2 * math.Atan2(sinHalf, cosHalf)
	var aRad, cRad float64
	switch {
	case sinHalf < AngleEpsilon:
		aRad = -2 * cmplx.Phase(su[0][0])
		cRad = 0
	case cosHalf < AngleEpsilon:
		aRad = -2*cmplx.Phase(su[0][1]) - math.Pi
		cRad = 0
	default:
		sum := -2 * cmplx.Phase(su[0][0])
		diff := -2*cmplx.Phase(su[0][1]) - math.Pi
		aRad = (sum + diff) / 2
		cRad = (sum - diff) / 2
	}

	rebuilt := RotationMat(AxisZ, floatAngle(aRad)).
		Mul(RotationMat(AxisX, floatAngle(bRad))).
		Mul(RotationMat(AxisZ, floatAngle(cRad)))
	residual := 0.0
	if ref := pickLargest(rebuilt); cmplx.Abs(ref) > AngleEpsilon {
		i, j := largestIndex(rebuilt)
		if real(su[i][j]/rebuilt[i][j]) < 0 {
			residual = 1
		}
	}
	return aRad / math.Pi, bRad / math.Pi, cRad / math.Pi,
		cmplx.Phase(root)/math.Pi + residual
}

func floatAngle(rad float64) Angle {
	return Angle{F: rad / math.Pi}
}

func pickLargest(m Mat2) complex128 {
	i, j := largestIndex(m)
	return m[i][j]
}

func largestIndex(m Mat2) (int, int) {
	bi, bj := 0, 0
	best := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if a := cmplx.Abs(m[i][j]); a > best {
				best = a
				bi, bj = i, j
			}
		}
	}
	return bi, bj
}
