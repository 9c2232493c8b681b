// Package rules holds the rewrite rule library. Every rule is local:
// it inspects one operation and its forward neighborhood, never moves
// an operation across one it cannot prove commutation for, and any
// rewrite it commits strictly lowers the operation count.
package rules

import (
	"github.com/qreduce-team/qreduce-engine/core"
)

type Category int

const (
	CategoryMerge Category = iota
	CategoryCancel
	CategoryCommute
)

func (c Category) String() string {
	switch c {
	case CategoryMerge:
		return "merge"
	case CategoryCancel:
		return "cancel"
	case CategoryCommute:
		return "commute"
	default:
		return "unknown"
	}
}

// Outcome reports what a fired rule changed. Touched lists the
// operations whose neighborhoods changed and should be revisited.
type Outcome struct {
	Removed int
	Touched []*core.Operation
}

type Rule struct {
	Name     string
	Category Category
	// Apply attempts the rewrite anchored at op. It returns false
	// without touching the circuit when the rule does not fire.
	Apply func(c *core.Circuit, op *core.Operation, maxScan int) (*Outcome, bool)
}

// Library returns the rule set in application order. Cheap adjacent
// rewrites come before the scanning ones.
func Library() []Rule {
	return []Rule{
		{Name: "merge-rotations", Category: CategoryMerge, Apply: MergeRotations},
		{Name: "cancel-scalar-pair", Category: CategoryCancel, Apply: CancelScalarPair},
		{Name: "cancel-controlled-pair", Category: CategoryCancel, Apply: CancelControlledPair},
		{Name: "commute-and-merge", Category: CategoryCommute, Apply: CommuteAndMerge},
	}
}

// neighbors collects the live operations adjacent to op on every wire.
func neighbors(c *core.Circuit, op *core.Operation) []*core.Operation {
	var out []*core.Operation
	for _, q := range op.Qubits {
		if p := c.Prev(op, q); p != nil {
			out = append(out, p)
		}
		if n := c.Next(op, q); n != nil {
			out = append(out, n)
		}
	}
	return out
}
