//go:build unit
// +build unit

package commute

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qreduce-team/qreduce-engine/core"
)

func TestThroughCX(t *testing.T) {
	cx := core.NewCX(0, 1)
	tests := []struct {
		name     string
		rot      *core.Operation
		want     Verdict
		wantCorr Correction
	}{
		{
			name: "rz rides through the control",
			rot:  core.NewRotation(core.AxisZ, core.MustAngle(1, 3), 0),
			want: Free,
		},
		{
			name: "rx rides through the target",
			rot:  core.NewRotation(core.AxisX, core.MustAngle(1, 3), 1),
			want: Free,
		},
		{
			name:     "x flip on the control leaves an x on the target",
			rot:      core.NewRotation(core.AxisX, core.PiAngle(), 0),
			want:     PiCorrection,
			wantCorr: Correction{Axis: core.AxisX, Qubit: 1},
		},
		{
			name:     "y flip on the control leaves an x on the target",
			rot:      core.NewRotation(core.AxisY, core.PiAngle(), 0),
			want:     PiCorrection,
			wantCorr: Correction{Axis: core.AxisX, Qubit: 1},
		},
		{
			name:     "z flip on the target leaves a z on the control",
			rot:      core.NewRotation(core.AxisZ, core.PiAngle(), 1),
			want:     PiCorrection,
			wantCorr: Correction{Axis: core.AxisZ, Qubit: 0},
		},
		{
			name: "partial x on the control is blocked",
			rot:  core.NewRotation(core.AxisX, core.MustAngle(1, 2), 0),
			want: Blocked,
		},
		{
			name: "partial z on the target is blocked",
			rot:  core.NewRotation(core.AxisZ, core.MustAngle(1, 2), 1),
			want: Blocked,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, corr := Through(tt.rot, cx)
			assert.Equal(t, tt.want, got)
			if tt.want == PiCorrection {
				assert.Equal(t, tt.wantCorr, corr)
			}
		})
	}
}

func TestThroughCZ(t *testing.T) {
	cz := core.NewCZ(0, 1)

	v, _ := Through(core.NewRotation(core.AxisZ, core.MustAngle(1, 5), 0), cz)
	assert.Equal(t, Free, v)
	v, _ = Through(core.NewRotation(core.AxisZ, core.MustAngle(1, 5), 1), cz)
	assert.Equal(t, Free, v)

	v, corr := Through(core.NewRotation(core.AxisX, core.PiAngle(), 0), cz)
	assert.Equal(t, PiCorrection, v)
	assert.Equal(t, Correction{Axis: core.AxisZ, Qubit: 1}, corr)

	v, _ = Through(core.NewRotation(core.AxisX, core.MustAngle(1, 2), 1), cz)
	assert.Equal(t, Blocked, v)
}

func TestThroughMCX(t *testing.T) {
	mcx := core.NewMCX([]int{0, 1}, 2)
	tests := []struct {
		name string
		rot  *core.Operation
		want Verdict
	}{
		{
			name: "rz rides through a control",
			rot:  core.NewRotation(core.AxisZ, core.MustAngle(1, 3), 0),
			want: Free,
		},
		{
			name: "rz rides through the other control",
			rot:  core.NewRotation(core.AxisZ, core.MustAngle(1, 3), 1),
			want: Free,
		},
		{
			name: "rx rides through the target",
			rot:  core.NewRotation(core.AxisX, core.MustAngle(1, 3), 2),
			want: Free,
		},
		{
			name: "rx on a control is blocked even at pi",
			rot:  core.NewRotation(core.AxisX, core.PiAngle(), 0),
			want: Blocked,
		},
		{
			name: "rz on the target is blocked even at pi",
			rot:  core.NewRotation(core.AxisZ, core.PiAngle(), 2),
			want: Blocked,
		},
		{
			name: "ry on a control is blocked",
			rot:  core.NewRotation(core.AxisY, core.MustAngle(1, 3), 1),
			want: Blocked,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Through(tt.rot, mcx)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestThroughDisjointWire(t *testing.T) {
	cx := core.NewCX(0, 1)
	v, _ := Through(core.NewRotation(core.AxisY, core.MustAngle(1, 7), 2), cx)
	assert.Equal(t, Free, v)
}

func TestCommutesGatePairs(t *testing.T) {
	tests := []struct {
		name string
		a, b *core.Operation
		want bool
	}{
		{name: "disjoint cx", a: core.NewCX(0, 1), b: core.NewCX(2, 3), want: true},
		{name: "shared control", a: core.NewCX(0, 1), b: core.NewCX(0, 2), want: true},
		{name: "shared target", a: core.NewCX(0, 2), b: core.NewCX(1, 2), want: true},
		{name: "control on target", a: core.NewCX(0, 1), b: core.NewCX(1, 2), want: false},
		{name: "cz pair on same wires", a: core.NewCZ(0, 1), b: core.NewCZ(1, 0), want: true},
		{name: "cx target on a cz wire", a: core.NewCX(0, 1), b: core.NewCZ(1, 2), want: false},
		{name: "cx control on a cz wire", a: core.NewCX(0, 1), b: core.NewCZ(0, 2), want: true},
		{name: "opaque blocks", a: core.NewOpaque("barrier", []int{0}, nil), b: core.NewCX(0, 1), want: false},
		{
			name: "unitary sharing a wire blocks",
			a:    core.NewUnitary(core.MustAngle(1, 2), core.MustAngle(1, 2), core.MustAngle(1, 2), 1),
			b:    core.NewCX(0, 1),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Commutes(tt.a, tt.b))
			assert.Equal(t, tt.want, Commutes(tt.b, tt.a))
		})
	}
}
