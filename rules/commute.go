package rules

import (
	"fmt"

	"github.com/qreduce-team/qreduce-engine/commute"
	"github.com/qreduce-team/qreduce-engine/core"
	"go.uber.org/zap"
)

type pendingHop struct {
	gate *core.Operation
	corr commute.Correction
}

// CommuteAndMerge slides a rotation forward over two-qubit gates it
// commutes through until it reaches a same-axis rotation, then merges
// the two. Hops that need a pi correction are only committed when the
// merge annihilates both rotations and leaves at most one correction
// behind, so the operation count still strictly decreases. The crossed
// gates never move.
func CommuteAndMerge(c *core.Circuit, op *core.Operation, maxScan int) (*Outcome, bool) {
	if op.Kind != core.KindRotation {
		return nil, false
	}
	q := op.Qubits[0]

	var hops []pendingHop
	cur := c.Next(op, q)
	for steps := 0; cur != nil && steps < maxScan; steps++ {
		if cur.Kind == core.KindRotation && cur.Axis == op.Axis {
			return commitMerge(c, op, cur, hops)
		}
		verdict, corr := commute.Through(op, cur)
		switch verdict {
		case commute.Free:
			cur = c.Next(cur, q)
		case commute.PiCorrection:
			hops = append(hops, pendingHop{gate: cur, corr: corr})
			cur = c.Next(cur, q)
		default:
			return nil, false
		}
	}
	return nil, false
}

func commitMerge(c *core.Circuit, op, terminal *core.Operation, hops []pendingHop) (*Outcome, bool) {
	sum, wraps := terminal.Angle.Add(op.Angle)
	if len(hops) > 0 && (!sum.IsZero() || len(hops) > 1) {
		return nil, false
	}

	touched := neighbors(c, op)
	touched = append(touched, neighbors(c, terminal)...)
	c.AddPhaseWraps(wraps)
	c.Splice(op)
	removed := 1
	if sum.IsZero() {
		c.Splice(terminal)
		removed = 2
	} else {
		terminal.Angle = sum
		touched = append(touched, terminal)
	}
	for _, hop := range hops {
		correction := core.NewRotation(hop.corr.Axis, core.PiAngle(), hop.corr.Qubit)
		if err := c.InsertAfter(hop.gate, correction); err != nil {
			// The correction wire is one of the gate's wires, so this
			// cannot happen on a well-formed circuit.
			zap.L().Error(fmt.Sprintf("failed to insert correction/reason:%s", err))
			return nil, false
		}
		c.AddPhase(commute.CorrectionPhase())
		removed--
		touched = append(touched, correction)
	}
	zap.L().Debug(fmt.Sprintf("commuted r%s(%s) on q%d over %d gates into a merge",
		op.Axis, op.Angle, op.Qubits[0], len(hops)))
	return &Outcome{Removed: removed, Touched: touched}, true
}
