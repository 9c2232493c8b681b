package rules

import (
	"fmt"

	"github.com/qreduce-team/qreduce-engine/commute"
	"github.com/qreduce-team/qreduce-engine/core"
	"go.uber.org/zap"
)

// CancelScalarPair removes two adjacent single-qubit operations whose
// matrix product is a scalar, banking the scalar's phase. This is what
// annihilates an H pair, or a rotation against its unitary inverse.
func CancelScalarPair(c *core.Circuit, op *core.Operation, _ int) (*Outcome, bool) {
	if !op.SingleQubit() {
		return nil, false
	}
	q := op.Qubits[0]
	next := c.Next(op, q)
	if next == nil || !next.SingleQubit() {
		return nil, false
	}

	first, err := core.OperationMat(op)
	if err != nil {
		return nil, false
	}
	second, err := core.OperationMat(next)
	if err != nil {
		return nil, false
	}
	phase, ok := core.ScalarPhase(second.Mul(first))
	if !ok {
		return nil, false
	}

	touched := neighbors(c, op)
	touched = append(touched, neighbors(c, next)...)
	c.Splice(op)
	c.Splice(next)
	banked, _ := core.NewAngleFromFloat(phase)
	c.AddPhase(banked)
	zap.L().Debug(fmt.Sprintf("cancelled scalar pair on q%d with phase %s", q, banked))
	return &Outcome{Removed: 2, Touched: touched}, true
}

// CancelControlledPair removes a CX, CZ or multi-controlled X together
// with its duplicate further down the circuit, provided every operation
// between the two on every shared wire provably commutes with the gate.
// Nothing is physically reordered: the intermediates stay where they
// are, and both gates vanish since each of these squares to the
// identity with no phase. Catching multi-controlled pairs here, before
// any lowering, is what lets them annihilate exactly instead of leaving
// two interleaved gate networks behind.
func CancelControlledPair(c *core.Circuit, op *core.Operation, maxScan int) (*Outcome, bool) {
	if op.Kind != core.KindCX && op.Kind != core.KindCZ && op.Kind != core.KindMCX {
		return nil, false
	}
	partner := findDuplicate(c, op, op.Qubits[0], maxScan)
	if partner == nil {
		return nil, false
	}
	for _, q := range op.Qubits[1:] {
		if !clearPathTo(c, op, partner, q, maxScan) {
			return nil, false
		}
	}

	touched := neighbors(c, op)
	touched = append(touched, neighbors(c, partner)...)
	c.Splice(op)
	c.Splice(partner)
	zap.L().Debug(fmt.Sprintf("cancelled %s pair on q%v", op.Kind, op.Qubits))
	return &Outcome{Removed: 2, Touched: touched}, true
}

// findDuplicate walks forward on one wire looking for an identical
// gate, with every intermediate commuting with op.
func findDuplicate(c *core.Circuit, op *core.Operation, q int, maxScan int) *core.Operation {
	cur := c.Next(op, q)
	for steps := 0; cur != nil && steps < maxScan; steps++ {
		if op.SameGate(cur) {
			return cur
		}
		if !commute.Commutes(op, cur) {
			return nil
		}
		cur = c.Next(cur, q)
	}
	return nil
}

// clearPathTo checks that the second wire also reaches partner with
// only commuting intermediates in between.
func clearPathTo(c *core.Circuit, op, partner *core.Operation, q int, maxScan int) bool {
	cur := c.Next(op, q)
	for steps := 0; cur != nil && steps < maxScan; steps++ {
		if cur == partner {
			return true
		}
		if !commute.Commutes(op, cur) {
			return false
		}
		cur = c.Next(cur, q)
	}
	return false
}
