// Package reduce drives the rewrite rules to a fixed point. The driver
// first lowers every multi-controlled X, then works a FIFO worklist of
// operations until no rule fires anywhere, and finally folds residual
// single-qubit runs into canonical form.
package reduce

import (
	"fmt"

	"github.com/qreduce-team/qreduce-engine/core"
	"github.com/qreduce-team/qreduce-engine/decompose"
	"github.com/qreduce-team/qreduce-engine/rules"
	"go.uber.org/zap"
)

const REDUCER_SETTING_KEY = "reducer"

type Status int

const (
	StatusInitialized Status = iota
	StatusDecomposing
	StatusReducing
	StatusCanonicalizing
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusInitialized:
		return "initialized"
	case StatusDecomposing:
		return "decomposing"
	case StatusReducing:
		return "reducing"
	case StatusCanonicalizing:
		return "canonicalizing"
	case StatusDone:
		return "done"
	default:
		return "unknown"
	}
}

type Reducer struct {
	setting ReducerSetting
	status  Status
	library []rules.Rule
}

func NewReducer(setting ReducerSetting) *Reducer {
	return &Reducer{
		setting: setting,
		status:  StatusInitialized,
		library: rules.Library(),
	}
}

func (r *Reducer) Setup(_ *core.Conf) error {
	s, ok := core.GetComponentSetting(REDUCER_SETTING_KEY)
	if !ok {
		zap.L().Debug("reducer setting is not found, using defaults")
		r.setting = NewReducerSetting()
		r.library = rules.Library()
		return nil
	}
	zap.L().Debug(fmt.Sprintf("reducer setting:%v", s))

	// TODO: fix this adhoc
	mapped, ok := s.(map[string]interface{})
	if !ok {
		if parsed, isParsed := s.(ReducerSetting); isParsed {
			r.setting = parsed
		} else {
			r.setting = NewReducerSetting()
		}
	} else {
		defaults := NewReducerSetting()
		r.setting = ReducerSetting{
			EnableMerge:        settingBool(mapped, "enable_merge", defaults.EnableMerge),
			EnableCancel:       settingBool(mapped, "enable_cancel", defaults.EnableCancel),
			EnableCommute:      settingBool(mapped, "enable_commute", defaults.EnableCommute),
			EnableCanonicalize: settingBool(mapped, "enable_canonicalize", defaults.EnableCanonicalize),
			MaxScan:            settingInt(mapped, "max_scan", defaults.MaxScan),
			MaxIterations:      settingInt(mapped, "max_iterations", defaults.MaxIterations),
		}
	}
	r.library = rules.Library()
	return nil
}

func settingBool(mapped map[string]interface{}, key string, fallback bool) bool {
	if v, ok := mapped[key].(bool); ok {
		return v
	}
	return fallback
}

func settingInt(mapped map[string]interface{}, key string, fallback int) int {
	if v, ok := mapped[key].(int64); ok {
		return int(v)
	}
	return fallback
}

func (r *Reducer) Status() Status {
	return r.status
}

func (r *Reducer) enabled(category rules.Category) bool {
	switch category {
	case rules.CategoryMerge:
		return r.setting.EnableMerge
	case rules.CategoryCancel:
		return r.setting.EnableCancel
	case rules.CategoryCommute:
		return r.setting.EnableCommute
	default:
		return false
	}
}

// Reduce rewrites the circuit in place and reports whether anything
// changed. The circuit stays equivalent to its input, global phase
// included, after every committed rewrite.
func (r *Reducer) Reduce(c *core.Circuit) (bool, error) {
	changed := false
	iterations := 0

	// Reduce once at full arity before lowering anything: identical
	// multi-controlled pairs annihilate exactly here, where after
	// decomposition only their interleaved networks would remain.
	r.status = StatusReducing
	zap.L().Debug(fmt.Sprintf("reducer status:%s with %d operations", r.status, c.Count()))
	fired, err := r.drainWorklist(c, newConqFIFO(), &iterations)
	if err != nil {
		return fired, err
	}
	changed = changed || fired

	r.status = StatusDecomposing
	zap.L().Debug(fmt.Sprintf("reducer status:%s", r.status))
	for _, op := range c.Ops() {
		if op.Kind != core.KindMCX {
			continue
		}
		if err := decompose.Expand(c, op); err != nil {
			return changed, err
		}
		changed = true
	}

	for {
		r.status = StatusReducing
		zap.L().Debug(fmt.Sprintf("reducer status:%s with %d operations", r.status, c.Count()))
		fired, err := r.drainWorklist(c, newConqFIFO(), &iterations)
		if err != nil {
			return changed, err
		}
		changed = changed || fired

		if !r.setting.EnableCanonicalize {
			break
		}
		r.status = StatusCanonicalizing
		zap.L().Debug(fmt.Sprintf("reducer status:%s", r.status))
		folded, err := Canonicalize(c)
		if err != nil {
			return changed, err
		}
		if !folded {
			break
		}
		// Folding may have exposed new cancellations, e.g. a pair of
		// two-qubit gates separated only by a run that folded away.
		changed = true
	}

	r.status = StatusDone
	zap.L().Debug(fmt.Sprintf("reducer status:%s with %d operations and phase %s",
		r.status, c.Count(), c.Phase))
	return changed, nil
}

func (r *Reducer) drainWorklist(c *core.Circuit, list worklist, iterations *int) (bool, error) {
	for _, op := range c.Ops() {
		if err := list.Enqueue(op); err != nil {
			return false, err
		}
	}
	fired := false
	for list.GetLen() > 0 {
		*iterations++
		if *iterations > r.setting.MaxIterations {
			return fired, fmt.Errorf("%w: %d iterations with %d operations left",
				core.ErrorNotConverged, *iterations, c.Count())
		}
		op, err := list.Dequeue()
		if err != nil {
			break
		}
		if op.Detached() {
			continue
		}
		for _, rule := range r.library {
			if !r.enabled(rule.Category) {
				continue
			}
			outcome, ok := rule.Apply(c, op, r.setting.MaxScan)
			if !ok {
				continue
			}
			zap.L().Debug(fmt.Sprintf("rule %s fired, removed %d, %d operations left",
				rule.Name, outcome.Removed, c.Count()))
			fired = true
			for _, t := range outcome.Touched {
				if t.Detached() {
					continue
				}
				if err := list.Enqueue(t); err != nil {
					return fired, err
				}
			}
			if !op.Detached() {
				if err := list.Enqueue(op); err != nil {
					return fired, err
				}
			}
			break
		}
	}
	return fired, nil
}
