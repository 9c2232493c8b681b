// Package commute decides when a rotation may hop over a two-qubit
// gate. The verdicts are derived from Pauli conjugation under the
// exp(-i*theta*P/2) convention rather than looked up from a fixed
// gate-name table, so every hop carries its exact phase bookkeeping.
package commute

import (
	"github.com/qreduce-team/qreduce-engine/core"
)

type Verdict int

const (
	// Blocked: the pair does not commute with any local correction.
	Blocked Verdict = iota
	// Free: the pair commutes as-is.
	Free
	// PiCorrection: the rotation passes unchanged, and a pi rotation
	// appears on the gate's other wire together with a global phase of
	// pi/2.
	PiCorrection
)

// Correction is the extra rotation a PiCorrection hop leaves behind on
// the far wire of the crossed gate. Its angle is always pi.
type Correction struct {
	Axis  core.Axis
	Qubit int
}

// CorrectionPhase is the global phase banked per PiCorrection hop, in
// multiples of pi.
func CorrectionPhase() core.Angle {
	return core.MustAngle(1, 2)
}

// Through reports whether rot, sitting immediately before gate on a
// shared wire, may move to the far side of gate.
//
// A Z rotation rides through a CX control and any CZ wire, and an X
// rotation rides through a CX target: the rotation's Pauli commutes
// with the gate. At exactly pi, the remaining axes factorize as well,
// because conjugating a full Pauli flip yields a Pauli product rather
// than an entangling generator: CX maps X(control) to X(control)X(target)
// and Z(target) to Z(control)Z(target), while CZ maps X or Y on one
// wire to the same Pauli times Z on the other. Every other case leaves
// a two-qubit generator behind and is blocked.
func Through(rot, gate *core.Operation) (Verdict, Correction) {
	if rot.Kind != core.KindRotation {
		return Blocked, Correction{}
	}
	q := rot.Qubits[0]
	if !gate.OnQubit(q) {
		return Free, Correction{}
	}
	switch gate.Kind {
	case core.KindCX:
		control, target := gate.Qubits[0], gate.Qubits[1]
		if q == control {
			if rot.Axis == core.AxisZ {
				return Free, Correction{}
			}
			if rot.Angle.IsPi() {
				return PiCorrection, Correction{Axis: core.AxisX, Qubit: target}
			}
			return Blocked, Correction{}
		}
		if rot.Axis == core.AxisX {
			return Free, Correction{}
		}
		if rot.Angle.IsPi() {
			return PiCorrection, Correction{Axis: core.AxisZ, Qubit: control}
		}
		return Blocked, Correction{}
	case core.KindCZ:
		if rot.Axis == core.AxisZ {
			return Free, Correction{}
		}
		if rot.Angle.IsPi() {
			other := gate.Qubits[0]
			if other == q {
				other = gate.Qubits[1]
			}
			return PiCorrection, Correction{Axis: core.AxisZ, Qubit: other}
		}
		return Blocked, Correction{}
	case core.KindMCX:
		// A multi-controlled X splits into the all-controls-set block,
		// where it applies X to the target, and the identity elsewhere.
		// Rz on a control preserves that split, and Rx on the target
		// commutes with both blocks, at any angle. Everything else
		// conjugates into a multi-qubit generator and is blocked.
		if q == gate.Target() {
			if rot.Axis == core.AxisX {
				return Free, Correction{}
			}
			return Blocked, Correction{}
		}
		if rot.Axis == core.AxisZ {
			return Free, Correction{}
		}
		return Blocked, Correction{}
	default:
		return Blocked, Correction{}
	}
}

// Disjoint gates always commute. For overlapping two-qubit gates the
// rules are: two CX commute unless one's target sits on the other's
// control, two CZ always commute, and a CX commutes with a CZ unless
// the CX target lies on a CZ wire.
func gatePairCommutes(a, b *core.Operation) bool {
	shared := false
	for _, q := range a.Qubits {
		if b.OnQubit(q) {
			shared = true
			break
		}
	}
	if !shared {
		return true
	}
	switch {
	case a.Kind == core.KindCZ && b.Kind == core.KindCZ:
		return true
	case a.Kind == core.KindCX && b.Kind == core.KindCX:
		if a.Qubits[0] == b.Qubits[0] && a.Qubits[1] == b.Qubits[1] {
			return true
		}
		return a.Qubits[1] != b.Qubits[0] && a.Qubits[0] != b.Qubits[1]
	case a.Kind == core.KindCX && b.Kind == core.KindCZ:
		return !b.OnQubit(a.Qubits[1])
	case a.Kind == core.KindCZ && b.Kind == core.KindCX:
		return !a.OnQubit(b.Qubits[1])
	default:
		return false
	}
}

// Commutes reports whether gate and other provably commute as whole
// operations. Opaque operations never commute with anything.
func Commutes(gate, other *core.Operation) bool {
	if gate.Kind == core.KindOpaque || other.Kind == core.KindOpaque {
		return false
	}
	if other.Kind == core.KindRotation {
		v, _ := Through(other, gate)
		return v == Free
	}
	if gate.Kind == core.KindRotation {
		v, _ := Through(gate, other)
		return v == Free
	}
	if gate.SingleQubit() || other.SingleQubit() {
		// Unitary gates carry no axis to ride along.
		return !sharesWire(gate, other)
	}
	if gate.Kind == core.KindMCX || other.Kind == core.KindMCX {
		return !sharesWire(gate, other)
	}
	return gatePairCommutes(gate, other)
}

func sharesWire(a, b *core.Operation) bool {
	for _, q := range a.Qubits {
		if b.OnQubit(q) {
			return true
		}
	}
	return false
}
