package core

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/mohae/deepcopy"
	"github.com/tidwall/pretty"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// GateRecord is one gate in flat form. Qubits lists controls first and
// the target last.
type GateRecord struct {
	Name   string  `json:"name"`
	Qubits []int   `json:"qubits"`
	Params []Angle `json:"params,omitempty"`
}

// Description is the serializable form of a circuit. Phase is the
// global phase in multiples of pi.
type Description struct {
	Qubits int          `json:"qubits"`
	Gates  []GateRecord `json:"gates"`
	Phase  Angle        `json:"phase"`
}

func (d *Description) Clone() *Description {
	return deepcopy.Copy(d).(*Description)
}

func (d *Description) String() string {
	bytes, err := json.Marshal(d)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to marshal description/reason:%s", err))
		return ""
	}
	return string(bytes)
}

func (d *Description) PrettyString() string {
	return string(pretty.Pretty([]byte(d.String())))
}

func ParseDescription(jsonStr string) (*Description, error) {
	d := &Description{}
	if err := json.Unmarshal([]byte(jsonStr), d); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrorInvalidCircuit, err)
	}
	return d, nil
}

// Validate checks the flat form before any gate expansion: a positive
// qubit count, indices in range, and no repeated qubit within a gate.
// All findings are aggregated.
func (d *Description) Validate() error {
	var err error
	if d.Qubits <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: qubit count must be positive, got %d",
			ErrorInvalidCircuit, d.Qubits))
	}
	for i, g := range d.Gates {
		if len(g.Qubits) == 0 {
			err = multierr.Append(err, fmt.Errorf("%w: gate %d (%s) has no qubits",
				ErrorInvalidCircuit, i, g.Name))
			continue
		}
		seen := make(map[int]bool, len(g.Qubits))
		for _, q := range g.Qubits {
			if q < 0 || q >= d.Qubits {
				err = multierr.Append(err, fmt.Errorf("%w: gate %d (%s) qubit %d out of range [0, %d)",
					ErrorInvalidCircuit, i, g.Name, q, d.Qubits))
			}
			if seen[q] {
				err = multierr.Append(err, fmt.Errorf("%w: gate %d (%s) repeats qubit %d",
					ErrorInvalidCircuit, i, g.Name, q))
			}
			seen[q] = true
		}
	}
	return err
}

// BuildCircuit validates the description and expands every named gate
// into the core gate set, banking the expansion phases.
func (d *Description) BuildCircuit() (*Circuit, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	c, err := NewCircuit(d.Qubits)
	if err != nil {
		return nil, err
	}
	c.AddPhase(d.Phase)
	for i, g := range d.Gates {
		ops, phase, err := ExpandGate(g.Name, g.Qubits, g.Params)
		if err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
		for _, op := range ops {
			if appendErr := c.Append(op); appendErr != nil {
				return nil, fmt.Errorf("gate %d: %w", i, appendErr)
			}
		}
		c.AddPhase(phase)
	}
	zap.L().Debug(fmt.Sprintf("built circuit with %d qubits and %d operations from %d gates",
		c.NumQubits, c.Count(), len(d.Gates)))
	return c, nil
}

// NewDescription flattens a circuit back into serializable form.
func NewDescription(c *Circuit) *Description {
	d := &Description{
		Qubits: c.NumQubits,
		Gates:  make([]GateRecord, 0, c.Count()),
		Phase:  c.Phase,
	}
	for _, op := range c.Ops() {
		d.Gates = append(d.Gates, gateRecord(op))
	}
	return d
}

func gateRecord(op *Operation) GateRecord {
	qubits := make([]int, len(op.Qubits))
	copy(qubits, op.Qubits)
	switch op.Kind {
	case KindRotation:
		return GateRecord{
			Name:   fmt.Sprintf("r%s", op.Axis),
			Qubits: qubits,
			Params: []Angle{op.Angle},
		}
	case KindUnitary:
		return GateRecord{
			Name:   "u",
			Qubits: qubits,
			Params: []Angle{op.Params[0], op.Params[1], op.Params[2]},
		}
	case KindCX:
		return GateRecord{Name: "cx", Qubits: qubits}
	case KindCZ:
		return GateRecord{Name: "cz", Qubits: qubits}
	case KindMCX:
		name := "mcx"
		if len(qubits) == 3 {
			name = "ccx"
		}
		return GateRecord{Name: name, Qubits: qubits}
	default:
		return GateRecord{Name: op.Name, Qubits: qubits, Params: op.OpaqueParams}
	}
}
