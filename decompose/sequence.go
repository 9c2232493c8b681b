// Package decompose lowers multi-controlled X operations into the core
// gate set. Every lowering is exact: the banked global phase makes the
// replacement equal to the original operation as a matrix, not merely
// equal up to phase.
package decompose

import (
	"github.com/qreduce-team/qreduce-engine/core"
)

// sequence accumulates replacement operations in time order together
// with the global phase their gate forms bank.
type sequence struct {
	ops   []*core.Operation
	phase core.Angle
}

func newSequence() *sequence {
	return &sequence{phase: core.ZeroAngle()}
}

func (s *sequence) add(op *core.Operation) {
	s.ops = append(s.ops, op)
}

func (s *sequence) bank(a core.Angle) {
	s.phase, _ = s.phase.Add(a)
}

func (s *sequence) bankWraps(wraps int64) {
	if wraps%2 != 0 {
		s.bank(core.PiAngle())
	}
}

func (s *sequence) cx(control, target int) {
	s.add(core.NewCX(control, target))
}

// h is exp(i*pi/2)*Rz(pi/2)*Rx(pi/2)*Rz(pi/2).
func (s *sequence) h(q int) {
	half := core.MustAngle(1, 2)
	s.add(core.NewUnitary(half, half, half, q))
	s.bank(half)
}

// t is exp(i*pi/8)*Rz(pi/4).
func (s *sequence) t(q int) {
	s.add(core.NewRotation(core.AxisZ, core.MustAngle(1, 4), q))
	s.bank(core.MustAngle(1, 8))
}

// tdg is exp(i*7pi/8)*Rz(7pi/4).
func (s *sequence) tdg(q int) {
	s.add(core.NewRotation(core.AxisZ, core.MustAngle(7, 4), q))
	s.bank(core.MustAngle(7, 8))
}

func (s *sequence) rz(q int, a core.Angle) {
	s.add(core.NewRotation(core.AxisZ, a, q))
}

func (s *sequence) ry(q int, a core.Angle) {
	s.add(core.NewRotation(core.AxisY, a, q))
}
