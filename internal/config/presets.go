package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"coarse": {
		Method: "explicit", X0: 1.0, V0: 0.0, H: 0.1, NumSteps: 200, FinalTime: 10.0,
		OutDir: DefaultOutDir, Format: DefaultFormat,
	},
	"fine": {
		Method: "symplectic", X0: 1.0, V0: 0.0, H: 0.001, NumSteps: 10000, FinalTime: 10.0,
		OutDir: DefaultOutDir, Format: DefaultFormat,
	},
	"long": {
		Method: "symplectic", X0: 1.0, V0: 0.0, H: 0.01, NumSteps: 10000, FinalTime: 100.0,
		OutDir: DefaultOutDir, Format: DefaultFormat,
	},
	"one-period": {
		Method: "symplectic", X0: 1.0, V0: 0.0, H: 0.01, NumSteps: 629, FinalTime: 6.29,
		OutDir: DefaultOutDir, Format: DefaultFormat,
	},
	"kicked": {
		Method: "implicit", X0: 0.0, V0: 1.0, H: 0.05, NumSteps: 400, FinalTime: 20.0,
		OutDir: DefaultOutDir, Format: DefaultFormat,
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not exist.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Experiments = append([]string(nil), p.Experiments...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
