package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

type OpKind int

const (
	KindRotation OpKind = iota
	KindUnitary
	KindCX
	KindCZ
	KindMCX
	KindOpaque
)

func (k OpKind) String() string {
	switch k {
	case KindRotation:
		return "rotation"
	case KindUnitary:
		return "unitary"
	case KindCX:
		return "cx"
	case KindCZ:
		return "cz"
	case KindMCX:
		return "mcx"
	case KindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Operation is a node in the circuit's per-qubit chains. Qubits lists
// controls first and the target last. Unitary parameters follow the
// Rz(a)Rx(b)Rz(c) form with c applied first in time. Opaque operations
// keep their original name and parameters verbatim.
type Operation struct {
	ID           string
	Kind         OpKind
	Axis         Axis
	Angle        Angle
	Params       [3]Angle
	Name         string
	OpaqueParams []Angle
	Qubits       []int

	next map[int]*Operation
	prev map[int]*Operation
}

func newOperation(kind OpKind, qubits []int) *Operation {
	return &Operation{
		ID:     uuid.NewString(),
		Kind:   kind,
		Qubits: qubits,
		next:   make(map[int]*Operation, len(qubits)),
		prev:   make(map[int]*Operation, len(qubits)),
	}
}

func NewRotation(axis Axis, angle Angle, qubit int) *Operation {
	op := newOperation(KindRotation, []int{qubit})
	op.Axis = axis
	op.Angle = angle
	return op
}

func NewUnitary(a, b, c Angle, qubit int) *Operation {
	op := newOperation(KindUnitary, []int{qubit})
	op.Params = [3]Angle{a, b, c}
	return op
}

func NewCX(control, target int) *Operation {
	return newOperation(KindCX, []int{control, target})
}

// NewCZ orders its qubits ascending. CZ is symmetric, so a canonical
// order makes duplicate detection a plain slice comparison.
func NewCZ(a, b int) *Operation {
	if a > b {
		a, b = b, a
	}
	return newOperation(KindCZ, []int{a, b})
}

func NewMCX(controls []int, target int) *Operation {
	qubits := make([]int, 0, len(controls)+1)
	qubits = append(qubits, controls...)
	qubits = append(qubits, target)
	return newOperation(KindMCX, qubits)
}

func NewOpaque(name string, qubits []int, params []Angle) *Operation {
	op := newOperation(KindOpaque, qubits)
	op.Name = name
	op.OpaqueParams = params
	return op
}

func (o *Operation) Target() int {
	return o.Qubits[len(o.Qubits)-1]
}

func (o *Operation) Controls() []int {
	return o.Qubits[:len(o.Qubits)-1]
}

func (o *Operation) OnQubit(q int) bool {
	for _, oq := range o.Qubits {
		if oq == q {
			return true
		}
	}
	return false
}

// SingleQubit reports whether the operation acts on one wire and has a
// known matrix form.
func (o *Operation) SingleQubit() bool {
	return o.Kind == KindRotation || o.Kind == KindUnitary
}

// SameGate reports whether two operations denote the identical gate on
// the identical wires. Used to spot adjacent self-inverse pairs.
func (o *Operation) SameGate(other *Operation) bool {
	if o.Kind != other.Kind || len(o.Qubits) != len(other.Qubits) {
		return false
	}
	for i, q := range o.Qubits {
		if other.Qubits[i] != q {
			return false
		}
	}
	switch o.Kind {
	case KindRotation:
		return o.Axis == other.Axis && o.Angle.Equal(other.Angle)
	case KindUnitary:
		return o.Params[0].Equal(other.Params[0]) &&
			o.Params[1].Equal(other.Params[1]) &&
			o.Params[2].Equal(other.Params[2])
	case KindOpaque:
		return o.Name == other.Name
	default:
		return true
	}
}

func (o *Operation) String() string {
	qs := make([]string, len(o.Qubits))
	for i, q := range o.Qubits {
		qs[i] = fmt.Sprintf("%d", q)
	}
	wires := strings.Join(qs, ",")
	switch o.Kind {
	case KindRotation:
		return fmt.Sprintf("r%s(%s) q%s", o.Axis, o.Angle, wires)
	case KindUnitary:
		return fmt.Sprintf("u(%s,%s,%s) q%s", o.Params[0], o.Params[1], o.Params[2], wires)
	case KindOpaque:
		return fmt.Sprintf("%s q%s", o.Name, wires)
	default:
		return fmt.Sprintf("%s q%s", o.Kind, wires)
	}
}
