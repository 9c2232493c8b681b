//go:build unit
// +build unit

package qasm

import (
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"

	"github.com/qreduce-team/qreduce-engine/core"
	"github.com/qreduce-team/qreduce-engine/sim"
)

func TestParseBasic(t *testing.T) {
	src := heredoc.Doc(`
		OPENQASM 2.0;
		include "qelib1.inc";
		qreg q[2];
		h q[0];
		cx q[0],q[1];
		rz(pi/4) q[1];
	`)
	d, err := Parse(src)
	assert.Nil(t, err)
	assert.Equal(t, 2, d.Qubits)
	assert.Equal(t, 3, len(d.Gates))
	assert.Equal(t, "h", d.Gates[0].Name)
	assert.Equal(t, []int{0, 1}, d.Gates[1].Qubits)
	assert.Equal(t, core.MustAngle(1, 4), d.Gates[2].Params[0])
	assert.True(t, d.Phase.IsZero())
}

func TestParseAngleForms(t *testing.T) {
	tests := []struct {
		in        string
		want      core.Angle
		wantWraps int64
	}{
		{"pi", core.PiAngle(), 0},
		{"pi/2", core.MustAngle(1, 2), 0},
		{"3*pi/4", core.MustAngle(3, 4), 0},
		{"-pi/2", core.MustAngle(3, 2), 1},
		{"2*pi", core.ZeroAngle(), 1},
		{"0.5*pi", core.MustAngle(1, 2), 0},
		{"0", core.ZeroAngle(), 0},
		{"1.5707963267948966", core.MustAngle(1, 2), 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			a, wraps, err := parseAngle(tt.in)
			assert.Nil(t, err)
			assert.True(t, a.Equal(tt.want), "got %s", a)
			assert.Equal(t, tt.wantWraps, wraps)
		})
	}
}

func TestParseNegativeRotationBanksPhase(t *testing.T) {
	src := heredoc.Doc(`
		qreg q[1];
		rz(-pi/2) q[0];
	`)
	d, err := Parse(src)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(d.Gates))
	assert.Equal(t, core.MustAngle(3, 2), d.Gates[0].Params[0])
	// Rz(-pi/2) = -Rz(3*pi/2), so the sign lands on the global phase.
	assert.True(t, d.Phase.IsPi())
}

func TestParseU3Conversion(t *testing.T) {
	src := heredoc.Doc(`
		qreg q[1];
		u3(pi/2,0,pi) q[0];
	`)
	d, err := Parse(src)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(d.Gates))

	g := d.Gates[0]
	assert.Equal(t, "u", g.Name)
	// u3(pi/2, 0, pi) is a Hadamard; the native record is
	// u(pi/2, pi/2, pi/2) with the same overall phase of pi/2.
	assert.Equal(t, core.MustAngle(1, 2), g.Params[0])
	assert.Equal(t, core.MustAngle(1, 2), g.Params[1])
	assert.Equal(t, core.MustAngle(1, 2), g.Params[2])
	assert.True(t, d.Phase.Equal(core.MustAngle(1, 2)))
}

func TestParseU3WrappingPhaseSum(t *testing.T) {
	// u3(0, pi, pi) is exactly the identity: phi+lambda wraps past
	// 2*pi, and the crossed wrap banks pi on top of sum/2.
	src := heredoc.Doc(`
		qreg q[1];
		u3(0,pi,pi) q[0];
	`)
	d, err := Parse(src)
	assert.Nil(t, err)
	assert.True(t, d.Phase.IsPi())

	c, err := d.BuildCircuit()
	assert.Nil(t, err)
	u, err := sim.Unitary(c)
	assert.Nil(t, err)
	want := sim.Matrix{{1, 0}, {0, 1}}
	assert.True(t, sim.Equal(u, want, 1e-9))
}

func TestParseMultipleRegisters(t *testing.T) {
	src := heredoc.Doc(`
		qreg a[2];
		qreg b[2];
		cx a[1],b[0];
	`)
	d, err := Parse(src)
	assert.Nil(t, err)
	assert.Equal(t, 4, d.Qubits)
	assert.Equal(t, []int{1, 2}, d.Gates[0].Qubits)
}

func TestParseBarrierSpansRegister(t *testing.T) {
	src := heredoc.Doc(`
		qreg a[2];
		qreg b[3];
		barrier b;
		barrier a[0],b[1];
	`)
	d, err := Parse(src)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(d.Gates))
	assert.Equal(t, []int{2, 3, 4}, d.Gates[0].Qubits)
	assert.Equal(t, []int{0, 3}, d.Gates[1].Qubits)
}

func TestParseMeasureAndUnknownGate(t *testing.T) {
	src := heredoc.Doc(`
		qreg q[2];
		creg c[2];
		swap q[0],q[1];
		measure q[0] -> c[0];
	`)
	d, err := Parse(src)
	assert.Nil(t, err)
	assert.Equal(t, "swap", d.Gates[0].Name)
	assert.Equal(t, "measure", d.Gates[1].Name)
}

func TestParseControlledX(t *testing.T) {
	src := heredoc.Doc(`
		qreg q[5];
		ccx q[0],q[1],q[2];
		c3x q[0],q[1],q[2],q[3];
		c4x q[0],q[1],q[2],q[3],q[4];
	`)
	d, err := Parse(src)
	assert.Nil(t, err)
	assert.Equal(t, "ccx", d.Gates[0].Name)
	assert.Equal(t, "mcx", d.Gates[1].Name)
	assert.Equal(t, "mcx", d.Gates[2].Name)
	assert.Equal(t, 5, len(d.Gates[2].Qubits))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no qreg", "h q[0];"},
		{"unknown register", "qreg q[1];\nh r[0];"},
		{"garbage angle", "qreg q[1];\nrz(banana) q[0];"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			assert.NotNil(t, err)
		})
	}
}

func TestEmit(t *testing.T) {
	d := &core.Description{
		Qubits: 2,
		Gates: []core.GateRecord{
			{Name: "u", Qubits: []int{0}, Params: []core.Angle{
				core.MustAngle(1, 2), core.MustAngle(1, 4), core.MustAngle(3, 2),
			}},
			{Name: "cx", Qubits: []int{0, 1}},
			{Name: "mcx", Qubits: []int{0, 1, 2, 3}},
		},
		Phase: core.MustAngle(1, 4),
	}
	out := Emit(d)
	assert.Contains(t, out, "OPENQASM 2.0;")
	assert.Contains(t, out, "qreg q[2];")
	assert.Contains(t, out, "rz(pi/2) q[0];")
	assert.Contains(t, out, "rx(pi/4) q[0];")
	assert.Contains(t, out, "rz(3*pi/2) q[0];")
	assert.Contains(t, out, "cx q[0],q[1];")
	assert.Contains(t, out, "c3x q[0],q[1],q[2],q[3];")
	assert.Contains(t, out, "// global phase: pi/4")
	assert.NotContains(t, out, "creg")
}

func TestEmitMeasureAddsCreg(t *testing.T) {
	d := &core.Description{
		Qubits: 1,
		Gates: []core.GateRecord{
			{Name: "measure", Qubits: []int{0}},
		},
		Phase: core.ZeroAngle(),
	}
	out := Emit(d)
	assert.Contains(t, out, "creg c[1];")
	assert.Contains(t, out, "measure q[0] -> c[0];")
}

func TestFormatAngle(t *testing.T) {
	tests := []struct {
		in   core.Angle
		want string
	}{
		{core.ZeroAngle(), "0"},
		{core.PiAngle(), "pi"},
		{core.MustAngle(1, 2), "pi/2"},
		{core.MustAngle(7, 4), "7*pi/4"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatAngle(tt.in))
	}
}

func TestRoundTrip(t *testing.T) {
	src := heredoc.Doc(`
		OPENQASM 2.0;
		include "qelib1.inc";
		qreg q[2];
		h q[0];
		cx q[0],q[1];
		t q[1];
	`)
	d, err := Parse(src)
	assert.Nil(t, err)
	again, err := Parse(Emit(d))
	assert.Nil(t, err)
	assert.Equal(t, d.Qubits, again.Qubits)
	assert.Equal(t, len(d.Gates), len(again.Gates))
	for i := range d.Gates {
		assert.Equal(t, d.Gates[i].Name, again.Gates[i].Name)
		assert.Equal(t, d.Gates[i].Qubits, again.Gates[i].Qubits)
	}
	assert.True(t, strings.HasPrefix(Emit(d), "OPENQASM 2.0;\n"))
}
