// Package qasm reads and writes a flat OpenQASM 2.0 subset: one qreg,
// qelib1 gate names, measure, barrier and reset. Anything it cannot
// expand stays in the description as an opaque gate.
package qasm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/qreduce-team/qreduce-engine/core"
)

var (
	qregRegex    = regexp.MustCompile(`^qreg\s+(\w+)\[(\d+)\]$`)
	cregRegex    = regexp.MustCompile(`^creg\s+(\w+)\[(\d+)\]$`)
	gateRegex    = regexp.MustCompile(`^(\w+)\s*(?:\(([^)]*)\))?\s+(.+)$`)
	argRegex     = regexp.MustCompile(`^(\w+)\[(\d+)\]$`)
	measureRegex = regexp.MustCompile(`^measure\s+(\w+)\[(\d+)\]\s*->\s*(\w+)\[(\d+)\]$`)
	piExprRegex  = regexp.MustCompile(`^(-?)(\d+)?\s*\*?\s*pi\s*(?:/\s*(\d+))?$`)
	piFloatRegex = regexp.MustCompile(`^(-?)([\d.]+)?\s*\*?\s*pi\s*(?:/\s*([\d.]+))?$`)
)

// Parse converts QASM source into a circuit description. Rotation
// parameters are radians; exact multiples of pi survive as rationals.
// Negative or oversized angles are normalized into [0, 2*pi), banking
// pi of global phase per crossed wrap for the wrap-sensitive gates.
func Parse(src string) (*core.Description, error) {
	d := &core.Description{Phase: core.ZeroAngle()}
	registers := map[string]int{}
	sizes := map[string]int{}

	for i, raw := range strings.Split(src, "\n") {
		line := raw
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, stmt := range strings.Split(line, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if err := parseStatement(d, registers, sizes, stmt); err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
		}
	}
	if d.Qubits == 0 {
		return nil, fmt.Errorf("%w: no qreg declared", core.ErrorInvalidCircuit)
	}
	return d, nil
}

func parseStatement(d *core.Description, registers, sizes map[string]int, stmt string) error {
	if strings.HasPrefix(stmt, "OPENQASM") || strings.HasPrefix(stmt, "include") {
		return nil
	}
	if m := qregRegex.FindStringSubmatch(stmt); m != nil {
		size, _ := strconv.Atoi(m[2])
		registers[m[1]] = d.Qubits
		sizes[m[1]] = size
		d.Qubits += size
		return nil
	}
	if cregRegex.MatchString(stmt) {
		return nil
	}
	if m := measureRegex.FindStringSubmatch(stmt); m != nil {
		q, err := resolveArg(registers, fmt.Sprintf("%s[%s]", m[1], m[2]))
		if err != nil {
			return err
		}
		d.Gates = append(d.Gates, core.GateRecord{Name: "measure", Qubits: []int{q}})
		return nil
	}
	if strings.HasPrefix(stmt, "barrier") {
		return parseBarrier(d, registers, sizes, strings.TrimSpace(strings.TrimPrefix(stmt, "barrier")))
	}
	m := gateRegex.FindStringSubmatch(stmt)
	if m == nil {
		return fmt.Errorf("%w: cannot parse statement %q", core.ErrorInvalidCircuit, stmt)
	}
	name := strings.ToLower(m[1])
	params, wraps, err := parseParams(m[2])
	if err != nil {
		return err
	}
	qubits, err := parseArgs(registers, m[3])
	if err != nil {
		return err
	}
	return appendGate(d, name, params, wraps, qubits)
}

// parseBarrier accepts both indexed arguments and bare register names,
// the latter spanning the whole register.
func parseBarrier(d *core.Description, registers, sizes map[string]int, raw string) error {
	var qubits []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if offset, ok := registers[part]; ok {
			for q := offset; q < offset+sizes[part]; q++ {
				qubits = append(qubits, q)
			}
			continue
		}
		q, err := resolveArg(registers, part)
		if err != nil {
			return err
		}
		qubits = append(qubits, q)
	}
	d.Gates = append(d.Gates, core.GateRecord{Name: "barrier", Qubits: qubits})
	return nil
}

func appendGate(d *core.Description, name string, params []core.Angle, wraps int64, qubits []int) error {
	switch name {
	case "rx", "ry", "rz":
		// Writing R(theta) with theta normalized into [0, 2*pi) flips
		// the sign once per wrap, R(theta+2*pi) = -R(theta).
		bankWraps(d, wraps)
	case "u", "u3":
		if len(params) != 3 {
			return fmt.Errorf("%w: %s expects 3 params, got %d",
				core.ErrorInvalidCircuit, name, len(params))
		}
		return appendU3(d, params, qubits)
	case "c3x":
		name = "mcx"
	case "c4x":
		name = "mcx"
	}
	d.Gates = append(d.Gates, core.GateRecord{Name: name, Qubits: qubits, Params: params})
	return nil
}

// appendU3 rewrites u3(theta, phi, lambda), a ZYZ form with phase
// convention exp(i*(phi+lambda)/2)*Rz(phi)*Ry(theta)*Rz(lambda), into
// the native Rz-Rx-Rz record using Ry(t) = Rz(pi/2)*Rx(t)*Rz(-pi/2).
func appendU3(d *core.Description, params []core.Angle, qubits []int) error {
	theta, phi, lambda := params[0], params[1], params[2]
	half := core.MustAngle(1, 2)
	negHalf := core.MustAngle(3, 2)

	a, aw := phi.Add(half)
	c, cw := lambda.Add(negHalf)
	bankWraps(d, aw+cw+1)
	// (phi+lambda)/2 = sum/2 + pi per wrap the sum crossed.
	sum, sw := phi.Add(lambda)
	bankWraps(d, sw)
	d.Phase, _ = d.Phase.Add(sum.Half())
	d.Gates = append(d.Gates, core.GateRecord{
		Name:   "u",
		Qubits: qubits,
		Params: []core.Angle{a, theta, c},
	})
	return nil
}

func bankWraps(d *core.Description, wraps int64) {
	if wraps%2 != 0 {
		d.Phase, _ = d.Phase.Add(core.PiAngle())
	}
}

func parseParams(raw string) ([]core.Angle, int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, 0, nil
	}
	var out []core.Angle
	wraps := int64(0)
	for _, part := range strings.Split(raw, ",") {
		a, w, err := parseAngle(part)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
		wraps += w
	}
	return out, wraps, nil
}

// parseAngle understands "pi", "-pi/2", "3*pi/4" exactly and falls
// back to float radians for plain numbers.
func parseAngle(s string) (core.Angle, int64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if m := piExprRegex.FindStringSubmatch(s); m != nil {
		num := int64(1)
		if m[2] != "" {
			parsed, err := strconv.ParseInt(m[2], 10, 64)
			if err != nil {
				return core.ZeroAngle(), 0, err
			}
			num = parsed
		}
		if m[1] == "-" {
			num = -num
		}
		den := int64(1)
		if m[3] != "" {
			parsed, err := strconv.ParseInt(m[3], 10, 64)
			if err != nil {
				return core.ZeroAngle(), 0, err
			}
			den = parsed
		}
		a, w := core.NewAngle(num, den)
		return a, w, nil
	}
	if m := piFloatRegex.FindStringSubmatch(s); m != nil {
		coeff := 1.0
		if m[2] != "" {
			parsed, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				return core.ZeroAngle(), 0, err
			}
			coeff = parsed
		}
		if m[1] == "-" {
			coeff = -coeff
		}
		if m[3] != "" {
			den, err := strconv.ParseFloat(m[3], 64)
			if err != nil || den == 0 {
				return core.ZeroAngle(), 0, fmt.Errorf("%w: %q is not an angle", core.ErrorInvalidCircuit, s)
			}
			coeff /= den
		}
		a, w := core.NewAngleFromFloat(coeff)
		return a, w, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return core.ZeroAngle(), 0, fmt.Errorf("%w: %q is not an angle", core.ErrorInvalidCircuit, s)
	}
	a, w := core.NewAngleFromRadians(f)
	return a, w, nil
}

func parseArgs(registers map[string]int, raw string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(raw, ",") {
		q, err := resolveArg(registers, strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func resolveArg(registers map[string]int, arg string) (int, error) {
	m := argRegex.FindStringSubmatch(arg)
	if m == nil {
		return 0, fmt.Errorf("%w: cannot parse qubit argument %q", core.ErrorInvalidCircuit, arg)
	}
	offset, ok := registers[m[1]]
	if !ok {
		return 0, fmt.Errorf("%w: unknown register %q", core.ErrorInvalidCircuit, m[1])
	}
	idx, _ := strconv.Atoi(m[2])
	return offset + idx, nil
}
