package config

import "sort"

var Presets = map[string]*File{
	"small": {
		ThetaDeg: 5, Length: 1.0, Dt: 0.01, Steps: 1000, Integrator: "rk4",
	},
	"large": {
		ThetaDeg: 90, Length: 1.0, Dt: 0.01, Steps: 2000, Integrator: "rk4",
	},
	"fine": {
		ThetaDeg: 10, Length: 1.0, Dt: 0.001, Steps: 5000, Integrator: "rk4",
	},
	"long": {
		ThetaDeg: 30, Length: 2.5, Dt: 0.01, Steps: 10000, Integrator: "rk4",
	},
	"euler": {
		ThetaDeg: 10, Length: 1.0, Dt: 0.01, Steps: 1000, Integrator: "euler",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *File {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
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
