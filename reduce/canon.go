package reduce

import (
	"fmt"

	"github.com/qreduce-team/qreduce-engine/core"
	"go.uber.org/zap"
)

// Canonicalize folds every maximal run of single-qubit operations on a
// wire into at most one gate: nothing when the product is a scalar, a
// single axis rotation when one suffices, and a Rz-Rx-Rz unitary
// otherwise. Angles are snapped back to rationals when they land
// within epsilon of one. Runs already in canonical form are left
// alone, so a second pass is a no-op.
func Canonicalize(c *core.Circuit) (bool, error) {
	changed := false
	for q := 0; q < c.NumQubits; q++ {
		op := c.Front(q)
		for op != nil {
			if !op.SingleQubit() {
				op = c.Next(op, q)
				continue
			}
			run := []*core.Operation{op}
			next := c.Next(op, q)
			for next != nil && next.SingleQubit() {
				run = append(run, next)
				next = c.Next(next, q)
			}
			folded, err := foldRun(c, q, run)
			if err != nil {
				return changed, err
			}
			changed = changed || folded
			op = next
		}
	}
	return changed, nil
}

func foldRun(c *core.Circuit, q int, run []*core.Operation) (bool, error) {
	if len(run) == 1 {
		return foldSingle(c, q, run[0])
	}

	m := core.Mat2Identity()
	for _, op := range run {
		opMat, err := core.OperationMat(op)
		if err != nil {
			return false, err
		}
		m = opMat.Mul(m)
	}
	replacement, phase := canonicalForm(m, q)
	for _, op := range replacement {
		if err := c.InsertBefore(run[0], op); err != nil {
			return false, err
		}
	}
	for _, op := range run {
		c.Splice(op)
	}
	c.AddPhase(phase)
	zap.L().Debug(fmt.Sprintf("folded %d single-qubit operations on q%d into %d",
		len(run), q, len(replacement)))
	return true, nil
}

// foldSingle only drops a lone operation whose matrix is a scalar, such
// as a zero-angle rotation. Everything else is already canonical.
func foldSingle(c *core.Circuit, q int, op *core.Operation) (bool, error) {
	m, err := core.OperationMat(op)
	if err != nil {
		return false, err
	}
	phaseFloat, ok := core.ScalarPhase(m)
	if !ok {
		return false, nil
	}
	c.Splice(op)
	banked, _ := core.NewAngleFromFloat(phaseFloat)
	c.AddPhase(banked)
	zap.L().Debug(fmt.Sprintf("dropped scalar operation on q%d with phase %s", q, banked))
	return true, nil
}

// canonicalForm rebuilds a single-qubit unitary from its Euler angles
// as at most one operation on wire q.
func canonicalForm(m core.Mat2, q int) ([]*core.Operation, core.Angle) {
	aF, bF, cF, phaseF := core.EulerZXZ(m)
	phase, _ := core.NewAngleFromFloat(phaseF)
	a, aw := core.NewAngleFromFloat(aF)
	b, bw := core.NewAngleFromFloat(bF)
	cAng, cw := core.NewAngleFromFloat(cF)
	if (aw+bw+cw)%2 != 0 {
		phase, _ = phase.Add(core.PiAngle())
	}

	switch {
	case b.IsZero() && a.IsZero() && cAng.IsZero():
		return nil, phase
	case b.IsZero():
		sum, wraps := a.Add(cAng)
		if wraps%2 != 0 {
			phase, _ = phase.Add(core.PiAngle())
		}
		if sum.IsZero() {
			return nil, phase
		}
		return []*core.Operation{core.NewRotation(core.AxisZ, sum, q)}, phase
	case a.IsZero() && cAng.IsZero():
		return []*core.Operation{core.NewRotation(core.AxisX, b, q)}, phase
	default:
		return []*core.Operation{core.NewUnitary(a, b, cAng, q)}, phase
	}
}
