package core

import (
	"fmt"
)

// Named gates are rewritten into the core gate set on load. Each entry
// banks the global phase that relates the named gate to its rotation
// form under the exp(-i*theta*P/2) convention, e.g. X = exp(i*pi/2)*Rx(pi)
// and T = exp(i*pi/8)*Rz(pi/4).

type gateSpec struct {
	arity  int
	params int
	expand func(qubits []int, params []Angle) ([]*Operation, Angle)
}

func pauliGate(axis Axis) gateSpec {
	return gateSpec{arity: 1, expand: func(q []int, _ []Angle) ([]*Operation, Angle) {
		return []*Operation{NewRotation(axis, PiAngle(), q[0])}, MustAngle(1, 2)
	}}
}

func phaseGate(num, den int64, phaseNum, phaseDen int64) gateSpec {
	return gateSpec{arity: 1, expand: func(q []int, _ []Angle) ([]*Operation, Angle) {
		return []*Operation{NewRotation(AxisZ, MustAngle(num, den), q[0])}, MustAngle(phaseNum, phaseDen)
	}}
}

func rotationGate(axis Axis) gateSpec {
	return gateSpec{arity: 1, params: 1, expand: func(q []int, p []Angle) ([]*Operation, Angle) {
		return []*Operation{NewRotation(axis, p[0], q[0])}, ZeroAngle()
	}}
}

var gateTable = map[string]gateSpec{
	"x": pauliGate(AxisX),
	"y": pauliGate(AxisY),
	"z": pauliGate(AxisZ),

	// S = exp(i*pi/4)*Rz(pi/2), Sdg = exp(i*3pi/4)*Rz(3pi/2).
	"s":   phaseGate(1, 2, 1, 4),
	"sdg": phaseGate(3, 2, 3, 4),
	"t":   phaseGate(1, 4, 1, 8),
	"tdg": phaseGate(7, 4, 7, 8),

	"sx": {arity: 1, expand: func(q []int, _ []Angle) ([]*Operation, Angle) {
		return []*Operation{NewRotation(AxisX, MustAngle(1, 2), q[0])}, MustAngle(1, 4)
	}},
	"sxdg": {arity: 1, expand: func(q []int, _ []Angle) ([]*Operation, Angle) {
		return []*Operation{NewRotation(AxisX, MustAngle(3, 2), q[0])}, MustAngle(3, 4)
	}},

	// H = exp(i*pi/2)*Rz(pi/2)*Rx(pi/2)*Rz(pi/2).
	"h": {arity: 1, expand: func(q []int, _ []Angle) ([]*Operation, Angle) {
		half := MustAngle(1, 2)
		return []*Operation{NewUnitary(half, half, half, q[0])}, half
	}},

	"id": {arity: 1, expand: func(q []int, _ []Angle) ([]*Operation, Angle) {
		return nil, ZeroAngle()
	}},

	"rx": rotationGate(AxisX),
	"ry": rotationGate(AxisY),
	"rz": rotationGate(AxisZ),

	// p(lambda) = exp(i*lambda/2)*Rz(lambda).
	"p": {arity: 1, params: 1, expand: func(q []int, p []Angle) ([]*Operation, Angle) {
		return []*Operation{NewRotation(AxisZ, p[0], q[0])}, p[0].Half()
	}},

	"u": {arity: 1, params: 3, expand: func(q []int, p []Angle) ([]*Operation, Angle) {
		return []*Operation{NewUnitary(p[0], p[1], p[2], q[0])}, ZeroAngle()
	}},

	"cx": {arity: 2, expand: func(q []int, _ []Angle) ([]*Operation, Angle) {
		return []*Operation{NewCX(q[0], q[1])}, ZeroAngle()
	}},
	"cz": {arity: 2, expand: func(q []int, _ []Angle) ([]*Operation, Angle) {
		return []*Operation{NewCZ(q[0], q[1])}, ZeroAngle()
	}},
	"ccx": {arity: 3, expand: func(q []int, _ []Angle) ([]*Operation, Angle) {
		return []*Operation{NewMCX(q[:2], q[2])}, ZeroAngle()
	}},
}

var gateAliases = map[string]string{
	"cnot":    "cx",
	"toffoli": "ccx",
	"u1":      "p",
	"sdag":    "sdg",
	"tdag":    "tdg",
}

// ExpandGate maps a named gate onto core operations plus the phase to
// bank. Unknown names come back as a single opaque operation: they are
// preserved verbatim and block every rewrite across them.
func ExpandGate(name string, qubits []int, params []Angle) ([]*Operation, Angle, error) {
	if canonical, ok := gateAliases[name]; ok {
		name = canonical
	}
	if name == "mcx" {
		if len(qubits) < 3 {
			return nil, ZeroAngle(), fmt.Errorf("%w: mcx needs at least 2 controls, got %d qubits",
				ErrorInvalidCircuit, len(qubits))
		}
		return []*Operation{NewMCX(qubits[:len(qubits)-1], qubits[len(qubits)-1])}, ZeroAngle(), nil
	}
	spec, ok := gateTable[name]
	if !ok {
		return []*Operation{NewOpaque(name, qubits, params)}, ZeroAngle(), nil
	}
	if len(qubits) != spec.arity {
		return nil, ZeroAngle(), fmt.Errorf("%w: %s expects %d qubits, got %d",
			ErrorInvalidCircuit, name, spec.arity, len(qubits))
	}
	if len(params) != spec.params {
		return nil, ZeroAngle(), fmt.Errorf("%w: %s expects %d params, got %d",
			ErrorInvalidCircuit, name, spec.params, len(params))
	}
	ops, phase := spec.expand(qubits, params)
	return ops, phase, nil
}

// KnownGate reports whether the name expands to core operations.
func KnownGate(name string) bool {
	if canonical, ok := gateAliases[name]; ok {
		name = canonical
	}
	if name == "mcx" {
		return true
	}
	_, ok := gateTable[name]
	return ok
}
