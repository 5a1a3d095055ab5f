package radar

import (
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/sfeldkamp/quadrant/pkg/errors"
)

// Default tunables. All of these are plain configuration: the layout engine
// never hardcodes a threshold, it reads whatever the Config carries.
const (
	// DefaultRadius is the default radius budget in user units.
	DefaultRadius = 300.0

	// DefaultMinDistance is the default minimum separation between two
	// items in the same sector and ring. Sized for up to a few dozen
	// items per sector at the default radius.
	DefaultMinDistance = 14.0

	// DefaultMaxAttempts bounds the collision retry loop per item.
	DefaultMaxAttempts = 24

	// DefaultRelaxIterations bounds the optional repulsion pass that runs
	// when the retry budget is exhausted.
	DefaultRelaxIterations = 8

	// DefaultRelaxStrength scales the repulsion displacement per iteration.
	DefaultRelaxStrength = 0.5

	// DefaultSectorPadding is the angular margin (radians) trimmed from
	// each side of a sector so dots never touch the quadrant dividers.
	DefaultSectorPadding = 0.035

	// DefaultRingPadding is the radial margin (user units) trimmed from
	// each side of a ring band.
	DefaultRingPadding = 6.0
)

// DefaultCategories are the classic four radar quadrants.
var DefaultCategories = []string{
	"Techniques",
	"Tools",
	"Platforms",
	"Languages & Frameworks",
}

// DefaultLevels are the classic four maturity rings, ordered from the
// innermost (most mature) to the outermost.
var DefaultLevels = []string{"Adopt", "Trial", "Assess", "Hold"}

// Config describes the radar geometry and the layout tunables.
//
// Categories partition the circle into angular sectors in order,
// counter-clockwise from StartAngle. Levels nest as concentric ring bands
// in order, innermost first. Both enumerations are matched against item
// labels via [NormalizeKey].
//
// SectorBounds and RingRadii optionally pin the exact boundaries; when
// empty, sectors split the circle evenly and rings split the radius evenly.
type Config struct {
	// Center of the circle in the output coordinate space.
	CenterX float64 `toml:"center_x"`
	CenterY float64 `toml:"center_y"`

	// Radius is the overall radius budget. Must be positive.
	Radius float64 `toml:"radius"`

	// StartAngle is where the first category's sector begins, in radians.
	StartAngle float64 `toml:"start_angle"`

	// Categories maps to angular sectors, Levels to ring bands.
	Categories []string `toml:"categories"`
	Levels     []string `toml:"levels"`

	// SectorBounds optionally fixes sector boundaries as offsets from
	// StartAngle. Requires len(Categories)+1 strictly increasing values
	// from 0 to 2π.
	SectorBounds []float64 `toml:"sector_bounds,omitempty"`

	// RingRadii optionally fixes ring boundaries. Requires len(Levels)+1
	// strictly increasing values from 0 to Radius.
	RingRadii []float64 `toml:"ring_radii,omitempty"`

	// Margins keeping dots away from sector dividers and ring boundaries.
	SectorPadding float64 `toml:"sector_padding"` // radians per sector side
	RingPadding   float64 `toml:"ring_padding"`   // user units per band side

	// MinDistance is the minimum separation between two items sharing a
	// sector and ring, honored on a best-effort basis.
	MinDistance float64 `toml:"min_distance"`

	// MaxAttempts bounds the per-item collision retry loop.
	MaxAttempts int `toml:"max_attempts"`

	// RelaxIterations enables the post-retry repulsion pass when > 0.
	RelaxIterations int `toml:"relax_iterations"`

	// RelaxStrength scales the repulsion displacement per iteration.
	RelaxStrength float64 `toml:"relax_strength"`
}

// DefaultConfig returns the standard 4-quadrant, 4-ring radar configuration.
func DefaultConfig() Config {
	return Config{
		Radius:          DefaultRadius,
		Categories:      append([]string(nil), DefaultCategories...),
		Levels:          append([]string(nil), DefaultLevels...),
		SectorPadding:   DefaultSectorPadding,
		RingPadding:     DefaultRingPadding,
		MinDistance:     DefaultMinDistance,
		MaxAttempts:     DefaultMaxAttempts,
		RelaxIterations: DefaultRelaxIterations,
		RelaxStrength:   DefaultRelaxStrength,
	}
}

// LoadConfig reads a TOML radar configuration from path, filling unset
// tunables with defaults and validating the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg := Config{}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyDefaults fills zero-valued fields with the package defaults.
// Explicitly configured values are left untouched.
func (c *Config) ApplyDefaults() {
	if c.Radius == 0 {
		c.Radius = DefaultRadius
	}
	if len(c.Categories) == 0 {
		c.Categories = append([]string(nil), DefaultCategories...)
	}
	if len(c.Levels) == 0 {
		c.Levels = append([]string(nil), DefaultLevels...)
	}
	if c.SectorPadding == 0 {
		c.SectorPadding = DefaultSectorPadding
	}
	if c.RingPadding == 0 {
		c.RingPadding = DefaultRingPadding
	}
	if c.MinDistance == 0 {
		c.MinDistance = DefaultMinDistance
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.RelaxStrength == 0 {
		c.RelaxStrength = DefaultRelaxStrength
	}
}

// Validate checks the configuration contract. This is the single fatal
// error path in the layout core: a config that passes Validate can never
// make a later layout call fail.
//
// Checks:
//   - positive radius, at least one category and level
//   - labels valid and unique after normalization
//   - explicit sector bounds partition the circle exactly once
//   - explicit ring radii strictly increase from 0 to Radius
//   - paddings small enough to leave usable space in every region
//   - non-negative tunables, MaxAttempts ≥ 1
func (c *Config) Validate() error {
	if c.Radius <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "radius must be positive, got %g", c.Radius)
	}
	if len(c.Categories) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "at least one category is required")
	}
	if len(c.Levels) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "at least one level is required")
	}

	if err := validateLabels("category", c.Categories); err != nil {
		return err
	}
	if err := validateLabels("level", c.Levels); err != nil {
		return err
	}

	if len(c.SectorBounds) > 0 {
		if len(c.SectorBounds) != len(c.Categories)+1 {
			return errors.New(errors.ErrCodeInvalidConfig,
				"sector_bounds needs %d values for %d categories, got %d",
				len(c.Categories)+1, len(c.Categories), len(c.SectorBounds))
		}
		if c.SectorBounds[0] != 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "sector_bounds must start at 0")
		}
		for i := 1; i < len(c.SectorBounds); i++ {
			if c.SectorBounds[i] <= c.SectorBounds[i-1] {
				return errors.New(errors.ErrCodeInvalidConfig,
					"sector_bounds must be strictly increasing at index %d", i)
			}
		}
		if last := c.SectorBounds[len(c.SectorBounds)-1]; math.Abs(last-2*math.Pi) > 1e-9 {
			return errors.New(errors.ErrCodeInvalidConfig,
				"sector_bounds must end at 2π so sectors partition the circle, got %g", last)
		}
	}

	if len(c.RingRadii) > 0 {
		if len(c.RingRadii) != len(c.Levels)+1 {
			return errors.New(errors.ErrCodeInvalidConfig,
				"ring_radii needs %d values for %d levels, got %d",
				len(c.Levels)+1, len(c.Levels), len(c.RingRadii))
		}
		if c.RingRadii[0] != 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "ring_radii must start at 0")
		}
		for i := 1; i < len(c.RingRadii); i++ {
			if c.RingRadii[i] <= c.RingRadii[i-1] {
				return errors.New(errors.ErrCodeInvalidConfig,
					"ring_radii must be strictly increasing at index %d", i)
			}
		}
		if last := c.RingRadii[len(c.RingRadii)-1]; last > c.Radius+1e-9 {
			return errors.New(errors.ErrCodeInvalidConfig,
				"outermost ring radius %g exceeds radius %g", last, c.Radius)
		}
	}

	if c.SectorPadding < 0 || c.RingPadding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "paddings must be non-negative")
	}
	minSector := c.minSectorSpan()
	if 2*c.SectorPadding >= minSector {
		return errors.New(errors.ErrCodeInvalidConfig,
			"sector_padding %g leaves no usable angle in a %g rad sector", c.SectorPadding, minSector)
	}
	minBand := c.minBandWidth()
	if 2*c.RingPadding >= minBand {
		return errors.New(errors.ErrCodeInvalidConfig,
			"ring_padding %g leaves no usable width in a %g unit band", c.RingPadding, minBand)
	}

	if c.MinDistance < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min_distance must be non-negative")
	}
	if c.MaxAttempts < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_attempts must be at least 1")
	}
	if c.RelaxIterations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "relax_iterations must be non-negative")
	}
	if c.RelaxStrength < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "relax_strength must be non-negative")
	}

	return nil
}

func validateLabels(kind string, labels []string) error {
	seen := make(map[string]string, len(labels))
	for _, label := range labels {
		if err := errors.ValidateLabel(label); err != nil {
			return err
		}
		key := NormalizeKey(label)
		if prev, dup := seen[key]; dup {
			return errors.New(errors.ErrCodeInvalidConfig,
				"%s %q and %q normalize to the same key %q", kind, prev, label, key)
		}
		seen[key] = label
	}
	return nil
}

// minSectorSpan returns the narrowest sector's angular span.
func (c *Config) minSectorSpan() float64 {
	if len(c.SectorBounds) == 0 {
		return 2 * math.Pi / float64(len(c.Categories))
	}
	min := math.Inf(1)
	for i := 1; i < len(c.SectorBounds); i++ {
		if span := c.SectorBounds[i] - c.SectorBounds[i-1]; span < min {
			min = span
		}
	}
	return min
}

// minBandWidth returns the narrowest ring band's radial width.
func (c *Config) minBandWidth() float64 {
	if len(c.RingRadii) == 0 {
		return c.Radius / float64(len(c.Levels))
	}
	min := math.Inf(1)
	for i := 1; i < len(c.RingRadii); i++ {
		if w := c.RingRadii[i] - c.RingRadii[i-1]; w < min {
			min = w
		}
	}
	return min
}
