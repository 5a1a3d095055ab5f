package radar

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/sfeldkamp/quadrant/pkg/errors"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Radius != DefaultRadius {
		t.Errorf("Radius = %v, want %v", cfg.Radius, DefaultRadius)
	}
	if len(cfg.Categories) != 4 || len(cfg.Levels) != 4 {
		t.Errorf("expected 4 categories and 4 levels, got %d and %d",
			len(cfg.Categories), len(cfg.Levels))
	}
	if cfg.MaxAttempts != DefaultMaxAttempts {
		t.Errorf("MaxAttempts = %d, want %d", cfg.MaxAttempts, DefaultMaxAttempts)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaulted config should validate: %v", err)
	}

	// Explicit values survive defaulting.
	cfg2 := Config{Radius: 150, MaxAttempts: 50}
	cfg2.ApplyDefaults()
	if cfg2.Radius != 150 || cfg2.MaxAttempts != 50 {
		t.Error("ApplyDefaults overwrote explicit values")
	}
}

func TestValidateRejectsBadGeometry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SectorBounds = []float64{0, 1, 2, 3, 5} // doesn't end at 2π
	if err := cfg.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("non-partitioning sector bounds: want INVALID_CONFIG, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.SectorBounds = []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2, 2 * math.Pi}
	if err := cfg.Validate(); err != nil {
		t.Errorf("exact quarter bounds should validate: %v", err)
	}

	cfg = DefaultConfig()
	cfg.RingRadii = []float64{0, 100, 100, 200, 300} // not strictly increasing
	if err := cfg.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("non-monotonic ring radii: want INVALID_CONFIG, got %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "radar.toml")
	content := `
radius = 250.0
categories = ["Frontend", "Backend", "Ops"]
levels = ["Now", "Next", "Later"]
min_distance = 20.0
max_attempts = 40
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Radius != 250 {
		t.Errorf("Radius = %v, want 250", cfg.Radius)
	}
	if len(cfg.Categories) != 3 {
		t.Errorf("Categories = %v", cfg.Categories)
	}
	if cfg.MinDistance != 20 || cfg.MaxAttempts != 40 {
		t.Errorf("tunables not loaded: %v %v", cfg.MinDistance, cfg.MaxAttempts)
	}
	// Unset fields fall back to defaults.
	if cfg.RelaxStrength != DefaultRelaxStrength {
		t.Errorf("RelaxStrength = %v, want default %v", cfg.RelaxStrength, DefaultRelaxStrength)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("want FILE_NOT_FOUND, got %v", err)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "radar.toml")
	if err := os.WriteFile(path, []byte("radius = -5.0"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("want INVALID_CONFIG, got %v", err)
	}
}
