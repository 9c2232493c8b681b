package reduce

// ReducerSetting toggles the rewrite categories and bounds the driver.
// MaxScan limits how far the scanning rules walk along a wire, and
// MaxIterations caps worklist processing as a safety valve: the rules
// strictly shrink the circuit, so a well-formed run never reaches it.
type ReducerSetting struct {
	EnableMerge        bool `toml:"enable_merge"`
	EnableCancel       bool `toml:"enable_cancel"`
	EnableCommute      bool `toml:"enable_commute"`
	EnableCanonicalize bool `toml:"enable_canonicalize"`
	MaxScan            int  `toml:"max_scan"`
	MaxIterations      int  `toml:"max_iterations"`
}

func NewReducerSetting() ReducerSetting {
	return ReducerSetting{
		EnableMerge:        true,
		EnableCancel:       true,
		EnableCommute:      true,
		EnableCanonicalize: true,
		MaxScan:            64,
		MaxIterations:      100000,
	}
}
