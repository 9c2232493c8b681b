//go:build unit
// +build unit

package reduce

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qreduce-team/qreduce-engine/core"
)

func TestCanonicalizeFoldsToRz(t *testing.T) {
	c := circuitFromGates(t, 1, `
		{"name": "rz", "qubits": [0], "params": ["1/4"]},
		{"name": "rz", "qubits": [0], "params": ["1/4"]},
		{"name": "rz", "qubits": [0], "params": ["1/4"]}`)

	changed, err := Canonicalize(c)
	assert.Nil(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, c.Count())

	op := c.Front(0)
	assert.Equal(t, core.AxisZ, op.Axis)
	assert.Equal(t, core.MustAngle(3, 4), op.Angle)
	assert.True(t, c.Phase.IsZero())
}

func TestCanonicalizeFoldsToRx(t *testing.T) {
	c := circuitFromGates(t, 1, `
		{"name": "rx", "qubits": [0], "params": ["1/4"]},
		{"name": "rx", "qubits": [0], "params": ["1/2"]}`)

	changed, err := Canonicalize(c)
	assert.Nil(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, c.Count())

	op := c.Front(0)
	assert.Equal(t, core.AxisX, op.Axis)
	assert.Equal(t, core.MustAngle(3, 4), op.Angle)
}

func TestCanonicalizeFoldsHadamardPairAway(t *testing.T) {
	c := circuitFromGates(t, 1, `
		{"name": "h", "qubits": [0]},
		{"name": "h", "qubits": [0]}`)

	changed, err := Canonicalize(c)
	assert.Nil(t, err)
	assert.True(t, changed)
	assert.Equal(t, 0, c.Count())
	assert.True(t, c.Phase.IsZero())
}

func TestCanonicalizeFoldsMixedRunToUnitary(t *testing.T) {
	c := circuitFromGates(t, 1, `
		{"name": "rz", "qubits": [0], "params": ["1/4"]},
		{"name": "rx", "qubits": [0], "params": ["1/2"]},
		{"name": "rz", "qubits": [0], "params": ["1/4"]}`)

	changed, err := Canonicalize(c)
	assert.Nil(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, c.Count())

	op := c.Front(0)
	assert.Equal(t, core.KindUnitary, op.Kind)
	assert.Equal(t, core.MustAngle(1, 4), op.Params[0])
	assert.Equal(t, core.MustAngle(1, 2), op.Params[1])
	assert.Equal(t, core.MustAngle(1, 4), op.Params[2])
}

func TestCanonicalizeStopsAtTwoQubitGates(t *testing.T) {
	c := circuitFromGates(t, 2, `
		{"name": "rz", "qubits": [0], "params": ["1/4"]},
		{"name": "cx", "qubits": [0, 1]},
		{"name": "rz", "qubits": [0], "params": ["7/4"]}`)

	// The CX splits the wire into two length-1 runs, so the rotations
	// stay even though they would cancel if adjacent.
	changed, err := Canonicalize(c)
	assert.Nil(t, err)
	assert.False(t, changed)
	assert.Equal(t, 3, c.Count())
}

func TestCanonicalizeIdempotent(t *testing.T) {
	c := circuitFromGates(t, 1, `
		{"name": "rz", "qubits": [0], "params": ["1/4"]},
		{"name": "rx", "qubits": [0], "params": ["1/2"]},
		{"name": "t", "qubits": [0]}`)

	changed, err := Canonicalize(c)
	assert.Nil(t, err)
	assert.True(t, changed)

	again, err := Canonicalize(c)
	assert.Nil(t, err)
	assert.False(t, again)
}

func TestCanonicalizeLeavesLoneRotation(t *testing.T) {
	c := circuitFromGates(t, 1, `
		{"name": "rz", "qubits": [0], "params": ["1/4"]}`)

	changed, err := Canonicalize(c)
	assert.Nil(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, c.Count())
}
