package core

import (
	"fmt"

	"go.uber.org/multierr"
)

// Circuit holds one ordered operation chain per qubit. Two operations
// are ordered only when they share a qubit. Phase is the accumulated
// global phase in multiples of pi, normalized into [0, 2).
type Circuit struct {
	NumQubits int
	Phase     Angle

	heads []*Operation
	tails []*Operation
	count int
}

func NewCircuit(numQubits int) (*Circuit, error) {
	if numQubits <= 0 {
		return nil, fmt.Errorf("%w: qubit count must be positive, got %d",
			ErrorInvalidCircuit, numQubits)
	}
	return &Circuit{
		NumQubits: numQubits,
		Phase:     ZeroAngle(),
		heads:     make([]*Operation, numQubits),
		tails:     make([]*Operation, numQubits),
	}, nil
}

func (c *Circuit) Count() int {
	return c.count
}

func (c *Circuit) Front(q int) *Operation {
	return c.heads[q]
}

func (c *Circuit) Back(q int) *Operation {
	return c.tails[q]
}

func (c *Circuit) Next(op *Operation, q int) *Operation {
	return op.next[q]
}

func (c *Circuit) Prev(op *Operation, q int) *Operation {
	return op.prev[q]
}

// AddPhase accumulates a global phase given in multiples of pi.
func (c *Circuit) AddPhase(a Angle) {
	c.Phase, _ = c.Phase.Add(a)
}

// AddPhaseWraps banks pi of global phase per 2*pi wrap reported by
// angle normalization.
func (c *Circuit) AddPhaseWraps(wraps int64) {
	if wraps%2 != 0 {
		c.AddPhase(PiAngle())
	}
}

func (c *Circuit) checkOp(op *Operation) error {
	var err error
	seen := make(map[int]bool, len(op.Qubits))
	for _, q := range op.Qubits {
		if q < 0 || q >= c.NumQubits {
			err = multierr.Append(err, fmt.Errorf("%w: qubit %d out of range [0, %d)",
				ErrorInvalidCircuit, q, c.NumQubits))
			continue
		}
		if seen[q] {
			err = multierr.Append(err, fmt.Errorf("%w: qubit %d appears twice in %s",
				ErrorInvalidCircuit, q, op.Kind))
		}
		seen[q] = true
	}
	return err
}

// Append links the operation at the back of every chain it touches.
func (c *Circuit) Append(op *Operation) error {
	if err := c.checkOp(op); err != nil {
		return err
	}
	for _, q := range op.Qubits {
		if c.tails[q] == nil {
			c.heads[q] = op
		} else {
			c.tails[q].next[q] = op
			op.prev[q] = c.tails[q]
		}
		c.tails[q] = op
	}
	c.count++
	return nil
}

// InsertBefore places op immediately before anchor on every wire op
// touches. Each of op's wires must be one of anchor's wires, so the
// insertion cannot create a cycle.
func (c *Circuit) InsertBefore(anchor, op *Operation) error {
	if err := c.checkOp(op); err != nil {
		return err
	}
	for _, q := range op.Qubits {
		if !anchor.OnQubit(q) {
			return fmt.Errorf("%w: anchor does not touch qubit %d", ErrorStructuralViolation, q)
		}
	}
	for _, q := range op.Qubits {
		before := anchor.prev[q]
		if before == nil {
			c.heads[q] = op
		} else {
			before.next[q] = op
			op.prev[q] = before
		}
		op.next[q] = anchor
		anchor.prev[q] = op
	}
	c.count++
	return nil
}

// InsertAfter places op immediately after anchor on every wire op
// touches.
func (c *Circuit) InsertAfter(anchor, op *Operation) error {
	if err := c.checkOp(op); err != nil {
		return err
	}
	for _, q := range op.Qubits {
		if !anchor.OnQubit(q) {
			return fmt.Errorf("%w: anchor does not touch qubit %d", ErrorStructuralViolation, q)
		}
	}
	for _, q := range op.Qubits {
		after := anchor.next[q]
		if after == nil {
			c.tails[q] = op
		} else {
			after.prev[q] = op
			op.next[q] = after
		}
		op.prev[q] = anchor
		anchor.next[q] = op
	}
	c.count++
	return nil
}

// Splice unlinks the operation from every chain it sits on and
// reconnects its neighbors. The operation is detached afterwards.
func (c *Circuit) Splice(op *Operation) {
	for _, q := range op.Qubits {
		before, after := op.prev[q], op.next[q]
		if before == nil {
			c.heads[q] = after
		} else {
			before.next[q] = after
		}
		if after == nil {
			c.tails[q] = before
		} else {
			after.prev[q] = before
		}
	}
	op.next = nil
	op.prev = nil
	c.count--
}

// Remove deletes an operation sitting at the front or the back of all
// its chains. Interior removal is rejected, since unlinking there would
// silently reorder the remaining operations.
func (c *Circuit) Remove(op *Operation) error {
	if op.Detached() {
		return fmt.Errorf("%w: operation %s is already detached", ErrorStructuralViolation, op.ID)
	}
	atFront := true
	atBack := true
	for _, q := range op.Qubits {
		if op.prev[q] != nil {
			atFront = false
		}
		if op.next[q] != nil {
			atBack = false
		}
	}
	if !atFront && !atBack {
		return fmt.Errorf("%w: %s has neighbors on both sides", ErrorStructuralViolation, op)
	}
	c.Splice(op)
	return nil
}

func (o *Operation) Detached() bool {
	return o.next == nil
}

// Ops returns every operation in a deterministic topological order:
// repeatedly emit the operation on the lowest-numbered wire whose
// predecessors on all wires have been emitted.
func (c *Circuit) Ops() []*Operation {
	cursor := make([]*Operation, c.NumQubits)
	copy(cursor, c.heads)
	out := make([]*Operation, 0, c.count)
	for len(out) < c.count {
		advanced := false
		for q := 0; q < c.NumQubits; q++ {
			op := cursor[q]
			if op == nil {
				continue
			}
			ready := true
			for _, w := range op.Qubits {
				if cursor[w] != op {
					ready = false
					break
				}
			}
			if !ready {
				continue
			}
			out = append(out, op)
			for _, w := range op.Qubits {
				cursor[w] = op.next[w]
			}
			advanced = true
			break
		}
		if !advanced {
			break
		}
	}
	return out
}
