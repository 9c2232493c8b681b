package decompose

import (
	"github.com/qreduce-team/qreduce-engine/core"
)

// controlledRx emits a controlled X rotation through two CX gates and
// single-qubit rotations:
//
//	CRx(theta) = Rz(pi/2) . CX . Ry(-theta/2) . CX . Ry(theta/2) . Rz(-pi/2)
//
// read left to right in time, everything single-qubit on the target.
// The identity is exact, so the banked phases of the pieces sum to a
// full 2*pi. With negate set the rotation sign flips, which only swaps
// the two Ry angles.
func (s *sequence) controlledRx(control, target int, theta core.Angle, negate bool) {
	half := theta.Half()
	negHalf, negWraps := half.Neg()
	firstRy, secondRy := negHalf, half
	if negate {
		firstRy, secondRy = half, negHalf
	}

	s.rz(target, core.MustAngle(1, 2))
	s.bank(core.MustAngle(1, 4))
	s.cx(control, target)
	s.ry(target, firstRy)
	s.bankWraps(negWraps)
	s.cx(control, target)
	s.ry(target, secondRy)
	s.rz(target, core.MustAngle(3, 2))
	s.bankWraps(1)
	s.bank(core.MustAngle(7, 4))
}

// controlledRootX emits C(X^alpha) for a rational alpha: a controlled
// Rx(alpha*pi) on the target plus the phase gate P(alpha*pi/2) on the
// control that lifts the rotation back to a root of X.
func (s *sequence) controlledRootX(control, target int, alpha core.Angle, inverse bool) {
	s.controlledRx(control, target, alpha, inverse)
	half := alpha.Half()
	quarter := half.Half()
	if inverse {
		negHalf, wraps := half.Neg()
		s.rz(control, negHalf)
		s.bankWraps(wraps)
		negQuarter, _ := quarter.Neg()
		s.bank(negQuarter)
		return
	}
	s.rz(control, half)
	s.bank(quarter)
}
