package qasm

import (
	"fmt"
	"strings"

	"github.com/qreduce-team/qreduce-engine/core"
)

// Emit renders a description back to OpenQASM 2.0. The native unitary
// gate becomes an rz-rx-rz triple, which composes to it exactly, and
// the global phase goes into a trailing comment since QASM 2 cannot
// express it.
func Emit(d *core.Description) string {
	var b strings.Builder
	b.WriteString("OPENQASM 2.0;\n")
	b.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&b, "qreg q[%d];\n", d.Qubits)
	if hasMeasure(d) {
		fmt.Fprintf(&b, "creg c[%d];\n", d.Qubits)
	}
	for _, g := range d.Gates {
		emitGate(&b, g)
	}
	if !d.Phase.IsZero() {
		fmt.Fprintf(&b, "// global phase: %s\n", d.Phase)
	}
	return b.String()
}

func emitGate(b *strings.Builder, g core.GateRecord) {
	switch g.Name {
	case "u":
		emitLine(b, "rz", g.Qubits, g.Params[0:1])
		emitLine(b, "rx", g.Qubits, g.Params[1:2])
		emitLine(b, "rz", g.Qubits, g.Params[2:3])
	case "measure":
		for _, q := range g.Qubits {
			fmt.Fprintf(b, "measure q[%d] -> c[%d];\n", q, q)
		}
	case "barrier":
		fmt.Fprintf(b, "barrier %s;\n", argList(g.Qubits))
	case "mcx":
		name := "mcx"
		switch len(g.Qubits) {
		case 4:
			name = "c3x"
		case 5:
			name = "c4x"
		}
		emitLine(b, name, g.Qubits, nil)
	default:
		emitLine(b, g.Name, g.Qubits, g.Params)
	}
}

func emitLine(b *strings.Builder, name string, qubits []int, params []core.Angle) {
	if len(params) == 0 {
		fmt.Fprintf(b, "%s %s;\n", name, argList(qubits))
		return
	}
	rendered := make([]string, len(params))
	for i, p := range params {
		rendered[i] = formatAngle(p)
	}
	fmt.Fprintf(b, "%s(%s) %s;\n", name, strings.Join(rendered, ","), argList(qubits))
}

func argList(qubits []int) string {
	parts := make([]string, len(qubits))
	for i, q := range qubits {
		parts[i] = fmt.Sprintf("q[%d]", q)
	}
	return strings.Join(parts, ",")
}

// formatAngle renders exact angles as pi expressions and inexact ones
// as radians.
func formatAngle(a core.Angle) string {
	if !a.Exact {
		return fmt.Sprintf("%g", a.Radians())
	}
	switch {
	case a.Num == 0:
		return "0"
	case a.Num == 1 && a.Den == 1:
		return "pi"
	case a.Den == 1:
		return fmt.Sprintf("%d*pi", a.Num)
	case a.Num == 1:
		return fmt.Sprintf("pi/%d", a.Den)
	default:
		return fmt.Sprintf("%d*pi/%d", a.Num, a.Den)
	}
}

func hasMeasure(d *core.Description) bool {
	for _, g := range d.Gates {
		if g.Name == "measure" {
			return true
		}
	}
	return false
}
