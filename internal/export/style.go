package export

import (
	"fmt"
	"image/color"
	"strconv"
)

// DefaultStrokeWidth is the contour stroke width in pixels.
const DefaultStrokeWidth = 2

// Style controls how contours are drawn.
type Style struct {
	StrokeWidth  float64
	ContourColor color.RGBA // strokes on the black raster canvas
	OverlayColor color.RGBA // strokes over the original image
}

// DefaultStyle returns 2px white contours and 2px blue overlay strokes.
func DefaultStyle() Style {
	return Style{
		StrokeWidth:  DefaultStrokeWidth,
		ContourColor: color.RGBA{255, 255, 255, 255},
		OverlayColor: color.RGBA{0, 0, 255, 255},
	}
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA" (leading '#' optional).
func ParseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}

	switch len(hex) {
	case 6:
		return color.RGBA{uint8(val >> 16), uint8(val >> 8), uint8(val), 255}, nil
	case 8:
		return color.RGBA{uint8(val >> 24), uint8(val >> 16), uint8(val >> 8), uint8(val)}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid hex color length %d", len(hex))
}
