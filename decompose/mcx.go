package decompose

import (
	"fmt"

	"github.com/qreduce-team/qreduce-engine/core"
	"go.uber.org/zap"
)

// Expand replaces one multi-controlled X in place with its core-gate
// network. The replacement occupies exactly the operation's wires, so
// ordering against the rest of the circuit is untouched.
func Expand(c *core.Circuit, op *core.Operation) error {
	if op.Kind != core.KindMCX {
		return fmt.Errorf("%w: cannot decompose %s", core.ErrorInvalidCircuit, op.Kind)
	}
	s := newSequence()
	s.mcx(op.Controls(), op.Target())
	for _, newOp := range s.ops {
		if err := c.InsertBefore(op, newOp); err != nil {
			return err
		}
	}
	c.Splice(op)
	c.AddPhase(s.phase)
	zap.L().Debug(fmt.Sprintf("decomposed %d-control X into %d operations with phase %s",
		len(op.Controls()), len(s.ops), s.phase))
	return nil
}

func (s *sequence) mcx(controls []int, target int) {
	switch len(controls) {
	case 0:
		s.add(core.NewRotation(core.AxisX, core.PiAngle(), target))
		s.bank(core.MustAngle(1, 2))
	case 1:
		s.cx(controls[0], target)
	case 2:
		s.toffoli(controls[0], controls[1], target)
	default:
		s.mcRootX(controls, target, core.MustAngle(1, 1))
	}
}

// mcRootX emits C^m(X^alpha) by the usual V/V-dagger recursion:
//
//	C^m(X^alpha) = CV . C^(m-1)X . CVdg . C^(m-1)X . C^(m-1)V
//
// with V = X^(alpha/2), V applied on the last control against the
// target. Each level strips one control, and alpha stays an exact
// power-of-two fraction throughout.
func (s *sequence) mcRootX(controls []int, target int, alpha core.Angle) {
	m := len(controls)
	if alpha.Equal(core.MustAngle(1, 1)) && m <= 2 {
		s.mcx(controls, target)
		return
	}
	if m == 1 {
		s.controlledRootX(controls[0], target, alpha, false)
		return
	}
	last := controls[m-1]
	rest := controls[:m-1]
	half := alpha.Half()
	s.controlledRootX(last, target, half, false)
	s.mcx(rest, last)
	s.controlledRootX(last, target, half, true)
	s.mcx(rest, last)
	s.mcRootX(rest, target, half)
}
