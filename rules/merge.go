package rules

import (
	"fmt"

	"github.com/qreduce-team/qreduce-engine/core"
	"go.uber.org/zap"
)

// MergeRotations folds two adjacent same-axis rotations on one wire
// into a single rotation. A sum that normalizes across 2*pi banks pi of
// global phase, and a sum of zero removes both operations.
func MergeRotations(c *core.Circuit, op *core.Operation, _ int) (*Outcome, bool) {
	if op.Kind != core.KindRotation {
		return nil, false
	}
	q := op.Qubits[0]
	next := c.Next(op, q)
	if next == nil || next.Kind != core.KindRotation || next.Axis != op.Axis {
		return nil, false
	}

	sum, wraps := op.Angle.Add(next.Angle)
	c.AddPhaseWraps(wraps)
	touched := neighbors(c, op)
	touched = append(touched, neighbors(c, next)...)
	if sum.IsZero() {
		c.Splice(op)
		c.Splice(next)
		zap.L().Debug(fmt.Sprintf("merged r%s(%s) and r%s(%s) on q%d to identity",
			op.Axis, op.Angle, next.Axis, next.Angle, q))
		return &Outcome{Removed: 2, Touched: touched}, true
	}
	next.Angle = sum
	c.Splice(op)
	zap.L().Debug(fmt.Sprintf("merged rotations on q%d to r%s(%s)", q, next.Axis, sum))
	return &Outcome{Removed: 1, Touched: append(touched, next)}, true
}
