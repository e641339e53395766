package pipeline

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/ironsheep/rock-contours/internal/export"
	"github.com/ironsheep/rock-contours/internal/imaging"
)

// DefaultOutputDirectory is where artifacts go when nothing else is configured.
const DefaultOutputDirectory = "game_output"

// Config holds every tunable of a run. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// Inclusive 8-bit HSV band (H 0-179, S and V 0-255) that counts as rock.
	RockColorLowerBound [3]uint8 `yaml:"rock_color_lower_bound" json:"rock_color_lower_bound"`
	RockColorUpperBound [3]uint8 `yaml:"rock_color_upper_bound" json:"rock_color_upper_bound"`

	OutputDirectory string `yaml:"output_directory" json:"output_directory"`

	// Side of the square closing kernel; must be odd.
	KernelSize int `yaml:"kernel_size" json:"kernel_size"`

	StrokeWidth      float64 `yaml:"stroke_width" json:"stroke_width"`
	ContourColor     string  `yaml:"contour_color" json:"contour_color"`
	OverlayColor     string  `yaml:"overlay_color" json:"overlay_color"`
	SpatialReference string  `yaml:"spatial_reference" json:"spatial_reference"`
	SaveMask         bool    `yaml:"save_mask" json:"save_mask"`
}

// DefaultConfig returns the stock rock band (10,30,50)-(30,100,150), a 5x5
// closing kernel, 2px white/blue strokes and output to game_output.
func DefaultConfig() Config {
	return Config{
		RockColorLowerBound: [3]uint8{10, 30, 50},
		RockColorUpperBound: [3]uint8{30, 100, 150},
		OutputDirectory:     DefaultOutputDirectory,
		KernelSize:          imaging.DefaultKernelSize,
		StrokeWidth:         export.DefaultStrokeWidth,
		ContourColor:        "#FFFFFF",
		OverlayColor:        "#0000FF",
		SpatialReference:    export.DefaultSpatialReference,
	}
}

// LoadConfig reads a YAML config file over the defaults. Keys missing from
// the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the config for values no run could use.
func (c Config) Validate() error {
	lo, hi := c.RockColorLowerBound, c.RockColorUpperBound
	if lo[0] > 179 || hi[0] > 179 {
		return fmt.Errorf("hue bounds must be within 0-179, got %d and %d", lo[0], hi[0])
	}
	for i, name := range []string{"hue", "saturation", "value"} {
		if lo[i] > hi[i] {
			return fmt.Errorf("%s lower bound %d exceeds upper bound %d", name, lo[i], hi[i])
		}
	}
	if c.KernelSize <= 0 || c.KernelSize%2 == 0 {
		return fmt.Errorf("kernel_size must be a positive odd number, got %d", c.KernelSize)
	}
	if c.StrokeWidth <= 0 {
		return fmt.Errorf("stroke_width must be positive, got %v", c.StrokeWidth)
	}
	if c.OutputDirectory == "" {
		return fmt.Errorf("output_directory must not be empty")
	}
	if _, err := c.Style(); err != nil {
		return err
	}
	return nil
}

// HSVRange returns the configured rock band.
func (c Config) HSVRange() imaging.HSVRange {
	lo, hi := c.RockColorLowerBound, c.RockColorUpperBound
	return imaging.HSVRange{
		Lower: imaging.HSV{H: lo[0], S: lo[1], V: lo[2]},
		Upper: imaging.HSV{H: hi[0], S: hi[1], V: hi[2]},
	}
}

// Style returns the stroke style for rendered artifacts.
func (c Config) Style() (export.Style, error) {
	contour, err := export.ParseHexColor(c.ContourColor)
	if err != nil {
		return export.Style{}, fmt.Errorf("contour_color: %w", err)
	}
	overlay, err := export.ParseHexColor(c.OverlayColor)
	if err != nil {
		return export.Style{}, fmt.Errorf("overlay_color: %w", err)
	}
	return export.Style{
		StrokeWidth:  c.StrokeWidth,
		ContourColor: contour,
		OverlayColor: overlay,
	}, nil
}

// ParseHSV parses an "h,s,v" triple such as "10,30,50".
func ParseHSV(s string) ([3]uint8, error) {
	var out [3]uint8

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("expected h,s,v but got %q", s)
	}
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return out, fmt.Errorf("invalid component %q in %q: %w", p, s, err)
		}
		out[i] = uint8(n)
	}
	return out, nil
}
