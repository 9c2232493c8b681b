package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Angles are stored as multiples of pi, normalized into [0, 2).
// A rotation by theta+2*pi equals minus the rotation by theta, so every
// normalization that crosses a 2*pi boundary reports the wrap to the
// caller, which banks a global phase of pi.

const AngleEpsilon = 1e-9

// Largest denominator recognized when snapping a float to a rational
// multiple of pi.
const maxSnapDenominator = 96

type Angle struct {
	Num   int64
	Den   int64
	F     float64
	Exact bool
}

func ZeroAngle() Angle {
	return Angle{Num: 0, Den: 1, Exact: true}
}

func PiAngle() Angle {
	return Angle{Num: 1, Den: 1, Exact: true}
}

// NewAngle returns num/den of pi reduced and normalized into [0, 2).
// The second value reports how many 2*pi wraps the normalization crossed.
func NewAngle(num, den int64) (Angle, int64) {
	if den == 0 {
		panic("angle denominator must not be zero")
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs64(num), den)
	if g > 1 {
		num /= g
		den /= g
	}
	wraps := int64(0)
	for num >= 2*den {
		num -= 2 * den
		wraps++
	}
	for num < 0 {
		num += 2 * den
		wraps++
	}
	return Angle{Num: num, Den: den, Exact: true}, wraps
}

func MustAngle(num, den int64) Angle {
	a, _ := NewAngle(num, den)
	return a
}

// NewAngleFromFloat takes a multiple of pi, snaps it to a small rational
// when one is within AngleEpsilon, and normalizes into [0, 2).
func NewAngleFromFloat(f float64) (Angle, int64) {
	wraps := int64(0)
	for f >= 2-AngleEpsilon {
		f -= 2
		wraps++
	}
	for f < -AngleEpsilon {
		f += 2
		wraps++
	}
	if f < 0 {
		f = 0
	}
	for den := int64(1); den <= maxSnapDenominator; den++ {
		num := math.Round(f * float64(den))
		if math.Abs(f*float64(den)-num) < AngleEpsilon*float64(den) {
			a, w := NewAngle(int64(num), den)
			return a, wraps + w
		}
	}
	return Angle{F: f}, wraps
}

// NewAngleFromRadians converts a radian value into pi units.
func NewAngleFromRadians(rad float64) (Angle, int64) {
	return NewAngleFromFloat(rad / math.Pi)
}

// Float returns the multiple of pi.
func (a Angle) Float() float64 {
	if a.Exact {
		return float64(a.Num) / float64(a.Den)
	}
	return a.F
}

func (a Angle) Radians() float64 {
	return a.Float() * math.Pi
}

func (a Angle) IsZero() bool {
	if a.Exact {
		return a.Num == 0
	}
	return a.F < AngleEpsilon || a.F > 2-AngleEpsilon
}

func (a Angle) IsPi() bool {
	if a.Exact {
		return a.Num == a.Den
	}
	return math.Abs(a.F-1) < AngleEpsilon
}

func (a Angle) Equal(b Angle) bool {
	if a.Exact && b.Exact {
		return a.Num == b.Num && a.Den == b.Den
	}
	d := math.Abs(a.Float() - b.Float())
	return d < AngleEpsilon || d > 2-AngleEpsilon
}

// Add returns the normalized sum and the number of 2*pi wraps the
// normalization crossed.
func (a Angle) Add(b Angle) (Angle, int64) {
	if a.Exact && b.Exact {
		return NewAngle(a.Num*b.Den+b.Num*a.Den, a.Den*b.Den)
	}
	return NewAngleFromFloat(a.Float() + b.Float())
}

// Neg returns the angle representing the negated rotation, normalized
// into [0, 2). Re-expressing -theta as 2*pi-theta crosses one wrap
// whenever theta is nonzero.
func (a Angle) Neg() (Angle, int64) {
	if a.IsZero() {
		return a, 0
	}
	if a.Exact {
		return NewAngle(-a.Num, a.Den)
	}
	return NewAngleFromFloat(-a.F)
}

// Half returns the angle divided by two. Halving never wraps.
func (a Angle) Half() Angle {
	if a.Exact {
		h, _ := NewAngle(a.Num, 2*a.Den)
		return h
	}
	h, _ := NewAngleFromFloat(a.F / 2)
	return h
}

// ScaleInt returns k times the angle.
func (a Angle) ScaleInt(k int64) (Angle, int64) {
	if a.Exact {
		return NewAngle(k*a.Num, a.Den)
	}
	return NewAngleFromFloat(float64(k) * a.F)
}

func (a Angle) String() string {
	if !a.Exact {
		return fmt.Sprintf("%gpi", a.F)
	}
	switch {
	case a.Num == 0:
		return "0"
	case a.Den == 1 && a.Num == 1:
		return "pi"
	case a.Den == 1:
		return fmt.Sprintf("%dpi", a.Num)
	case a.Num == 1:
		return fmt.Sprintf("pi/%d", a.Den)
	default:
		return fmt.Sprintf("%dpi/%d", a.Num, a.Den)
	}
}

// Exact angles travel as "num/den" strings, inexact ones as plain
// numbers. Both are multiples of pi.
func (a Angle) MarshalJSON() ([]byte, error) {
	if a.Exact {
		return []byte(fmt.Sprintf("\"%d/%d\"", a.Num, a.Den)), nil
	}
	return []byte(strconv.FormatFloat(a.F, 'g', -1, 64)), nil
}

func (a *Angle) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) == 0 {
		return fmt.Errorf("empty angle")
	}
	if s[0] == '"' {
		var num, den int64
		trimmed := strings.Trim(s, "\"")
		if _, err := fmt.Sscanf(trimmed, "%d/%d", &num, &den); err != nil {
			if _, err := fmt.Sscanf(trimmed, "%d", &num); err != nil {
				return fmt.Errorf("%s is not a rational angle", trimmed)
			}
			den = 1
		}
		if den == 0 {
			return fmt.Errorf("%s has a zero denominator", trimmed)
		}
		parsed, _ := NewAngle(num, den)
		*a = parsed
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	parsed, _ := NewAngleFromFloat(f)
	*a = parsed
	return nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}
