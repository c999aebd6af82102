package config

import "sort"

var Presets = map[string]map[string]*Config{
	"decay": {
		"unit": {
			Field: "decay", Method: "rk4", H: 0.1, N: 10,
			Y0: []float64{1},
		},
		"fast": {
			Field: "decay", Method: "rk4", H: 0.01, N: 100,
			Y0: []float64{1}, Params: map[string]float64{"rate": 10},
		},
	},
	"harmonic": {
		"unit": {
			Field: "harmonic", Method: "rk4", H: 0.1, N: 63,
			Y0: []float64{1, 0},
		},
		"long": {
			Field: "harmonic", Method: "rk4", H: 0.1, N: 1000,
			Y0: []float64{1, 0},
		},
		"fast": {
			Field: "harmonic", Method: "rk4", H: 0.01, N: 1000,
			Y0: []float64{1, 0}, Params: map[string]float64{"omega": 5},
		},
	},
	"pendulum": {
		"small": {
			Field: "pendulum", Method: "rk4", H: 0.01, N: 2000,
			Y0: []float64{0.2, 0.0},
		},
		"large": {
			Field: "pendulum", Method: "rk4", H: 0.01, N: 2000,
			Y0: []float64{2.5, 0.0},
		},
		"spinning": {
			Field: "pendulum", Method: "rk4", H: 0.01, N: 3000,
			Y0: []float64{0.1, 8.0},
		},
	},
	"vanderpol": {
		"gentle": {
			Field: "vanderpol", Method: "rk4", H: 0.01, N: 3000,
			Y0: []float64{2, 0}, Params: map[string]float64{"mu": 0.5},
		},
		"relaxation": {
			Field: "vanderpol", Method: "rk4", H: 0.005, N: 8000,
			Y0: []float64{2, 0}, Params: map[string]float64{"mu": 5},
		},
	},
	"duffing": {
		"chaotic": {
			Field: "duffing", Method: "rk4", H: 0.01, N: 20000,
			Y0: []float64{1, 0},
		},
		"periodic": {
			Field: "duffing", Method: "rk4", H: 0.01, N: 20000,
			Y0: []float64{1, 0}, Params: map[string]float64{"gamma": 0.2},
		},
	},
	"rossler": {
		"spiral": {
			Field: "rossler", Method: "rk4", H: 0.01, N: 20000,
			Y0: []float64{1, 1, 1},
		},
	},
	"lorenz": {
		"chaos": {
			Field: "lorenz", Method: "rk4", H: 0.01, N: 5000,
			Y0: []float64{1, 1, 1},
		},
		"fixed_point": {
			Field: "lorenz", Method: "rk4", H: 0.01, N: 3000,
			Y0: []float64{1, 1, 1}, Params: map[string]float64{"rho": 14},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil if there is none.
func GetPreset(field, preset string) *Config {
	fieldPresets, ok := Presets[field]
	if !ok {
		return nil
	}
	cfg, ok := fieldPresets[preset]
	if !ok {
		return nil
	}
	out := cfg.Clone()
	out.Output = DefaultConfig().Output
	return out
}

func ListPresets(field string) []string {
	fieldPresets, ok := Presets[field]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(fieldPresets))
	for name := range fieldPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
