package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/rkode/internal/dynamo"
	"github.com/san-kum/rkode/internal/experiment"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Field != "harmonic" {
		t.Errorf("expected field harmonic, got %s", cfg.Field)
	}
	if cfg.H <= 0 {
		t.Error("h should be positive")
	}
	if cfg.N <= 0 {
		t.Error("n should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.H = 0
	if err := cfg.Validate(); !errors.Is(err, dynamo.ErrConfig) {
		t.Errorf("expected config error for h=0, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.N = -1
	if err := cfg.Validate(); !errors.Is(err, dynamo.ErrConfig) {
		t.Errorf("expected config error for n=-1, got %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := "field: lorenz\nh: 0.005\ny0: [1, 2, 3]\nparams:\n  rho: 14\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Field != "lorenz" || cfg.H != 0.005 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Method != DefaultMethod || cfg.N != DefaultN {
		t.Errorf("defaults not kept: %+v", cfg)
	}
	if len(cfg.Y0) != 3 || cfg.Params["rho"] != 14 {
		t.Errorf("unexpected y0/params: %v %v", cfg.Y0, cfg.Params)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := GetPreset("vanderpol", "gentle")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Params["mu"] != 0.5 || loaded.N != cfg.N {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pendulum", "small")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Y0[0] != 0.2 {
		t.Errorf("expected theta 0.2, got %f", cfg.Y0[0])
	}

	cfg.Y0[0] = 9
	if again := GetPreset("pendulum", "small"); again.Y0[0] != 0.2 {
		t.Error("preset was mutated through a returned copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg := GetPreset("pendulum", "nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg = GetPreset("nonexistent", "small")
	if cfg != nil {
		t.Error("expected nil for nonexistent field")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("pendulum")
	if len(presets) != 3 || presets[0] != "large" {
		t.Errorf("expected sorted pendulum presets, got %v", presets)
	}

	presets = ListPresets("nonexistent")
	if presets != nil {
		t.Error("expected nil for nonexistent field")
	}
}

func TestPresetsMatchFields(t *testing.T) {
	reg := experiment.NewRegistry()
	for field, presets := range Presets {
		f, err := reg.GetField(field)
		if err != nil {
			t.Errorf("preset group %s: %v", field, err)
			continue
		}
		for name, cfg := range presets {
			if cfg.Field != field {
				t.Errorf("%s/%s: field %s", field, name, cfg.Field)
			}
			if len(cfg.Y0) != f.Order() {
				t.Errorf("%s/%s: y0 has %d components, order %d", field, name, len(cfg.Y0), f.Order())
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", field, name, err)
			}
		}
	}
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("n: 10\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("lorenz", "fixed_point")
	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.N != 10 || cfg.Field != "lorenz" || cfg.Params["rho"] != 14 {
		t.Errorf("unexpected overlay: %+v", cfg)
	}
	if base.N == 10 {
		t.Error("base config was modified")
	}
}
