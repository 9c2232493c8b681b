//go:build unit
// +build unit

package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAngleNormalization(t *testing.T) {
	tests := []struct {
		name      string
		num, den  int64
		wantNum   int64
		wantDen   int64
		wantWraps int64
	}{
		{
			name: "already normalized",
			num:  1, den: 2,
			wantNum: 1, wantDen: 2, wantWraps: 0,
		},
		{
			name: "reduced",
			num:  2, den: 4,
			wantNum: 1, wantDen: 2, wantWraps: 0,
		},
		{
			name: "one wrap down",
			num:  5, den: 2,
			wantNum: 1, wantDen: 2, wantWraps: 1,
		},
		{
			name: "negative wraps up",
			num:  -1, den: 2,
			wantNum: 3, wantDen: 2, wantWraps: 1,
		},
		{
			name: "negative denominator",
			num:  1, den: -2,
			wantNum: 3, wantDen: 2, wantWraps: 1,
		},
		{
			name: "two wraps",
			num:  9, den: 2,
			wantNum: 1, wantDen: 2, wantWraps: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, wraps := NewAngle(tt.num, tt.den)
			assert.True(t, got.Exact)
			assert.Equal(t, tt.wantNum, got.Num)
			assert.Equal(t, tt.wantDen, got.Den)
			assert.Equal(t, tt.wantWraps, wraps)
		})
	}
}

func TestAngleAddWraps(t *testing.T) {
	a := MustAngle(3, 2)
	b := MustAngle(1, 2)
	sum, wraps := a.Add(b)
	assert.True(t, sum.IsZero())
	assert.Equal(t, int64(1), wraps)
}

func TestAngleNeg(t *testing.T) {
	a := MustAngle(1, 2)
	neg, wraps := a.Neg()
	assert.Equal(t, MustAngle(3, 2), neg)
	assert.Equal(t, int64(1), wraps)

	zero, wraps := ZeroAngle().Neg()
	assert.True(t, zero.IsZero())
	assert.Equal(t, int64(0), wraps)
}

func TestNewAngleFromFloatSnapping(t *testing.T) {
	a, wraps := NewAngleFromFloat(0.25 + 1e-12)
	assert.True(t, a.Exact)
	assert.Equal(t, MustAngle(1, 4), a)
	assert.Equal(t, int64(0), wraps)

	b, wraps := NewAngleFromFloat(-0.5)
	assert.Equal(t, MustAngle(3, 2), b)
	assert.Equal(t, int64(1), wraps)

	// 1/97 is beyond the snap range and stays a float.
	c, _ := NewAngleFromFloat(1.0 / 97.0)
	assert.False(t, c.Exact)
	assert.InDelta(t, 1.0/97.0, c.Float(), 1e-12)
}

func TestAngleRadians(t *testing.T) {
	assert.InDelta(t, math.Pi/2, MustAngle(1, 2).Radians(), 1e-12)
	assert.InDelta(t, 3*math.Pi/2, MustAngle(3, 2).Radians(), 1e-12)
}

func TestAngleHalf(t *testing.T) {
	assert.Equal(t, MustAngle(1, 4), MustAngle(1, 2).Half())
	assert.Equal(t, MustAngle(7, 8), MustAngle(7, 4).Half())
}

func TestAngleString(t *testing.T) {
	tests := []struct {
		name string
		in   Angle
		want string
	}{
		{name: "zero", in: ZeroAngle(), want: "0"},
		{name: "pi", in: PiAngle(), want: "pi"},
		{name: "half pi", in: MustAngle(1, 2), want: "pi/2"},
		{name: "three halves", in: MustAngle(3, 2), want: "3pi/2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.String())
		})
	}
}

func TestAngleJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Angle
	}{
		{name: "rational string", in: "\"1/4\"", want: MustAngle(1, 4)},
		{name: "integer string", in: "\"1\"", want: PiAngle()},
		{name: "float snaps", in: "0.5", want: MustAngle(1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Angle
			assert.Nil(t, got.UnmarshalJSON([]byte(tt.in)))
			assert.True(t, got.Equal(tt.want))

			marshalled, err := got.MarshalJSON()
			assert.Nil(t, err)
			var back Angle
			assert.Nil(t, back.UnmarshalJSON(marshalled))
			assert.True(t, back.Equal(got))
		})
	}
}
