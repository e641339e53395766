package imaging

import (
	"fmt"
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSV is a color in the 8-bit HSV convention used for rock thresholds:
//   - H: hue in half-degrees, 0-179 (degrees / 2)
//   - S: saturation scaled to 0-255
//   - V: value (max channel) 0-255
//
// The convention matches what OpenCV produces for 8-bit images, so bounds
// picked in common image tools carry over unchanged.
type HSV struct {
	H uint8 `json:"h" yaml:"h"`
	S uint8 `json:"s" yaml:"s"`
	V uint8 `json:"v" yaml:"v"`
}

// HSVRange is an inclusive per-channel band. A pixel matches when
// Lower.H <= H <= Upper.H, and likewise for S and V.
//
// Hue does not wrap: a band across red (e.g. 170..10) cannot be expressed
// and Lower.H > Upper.H matches nothing.
type HSVRange struct {
	Lower HSV `json:"lower"`
	Upper HSV `json:"upper"`
}

// Contains reports whether c lies inside the band on all three channels.
func (r HSVRange) Contains(c HSV) bool {
	return c.H >= r.Lower.H && c.H <= r.Upper.H &&
		c.S >= r.Lower.S && c.S <= r.Upper.S &&
		c.V >= r.Lower.V && c.V <= r.Upper.V
}

// RGBToHSV converts 8-bit RGB to 8-bit HSV.
//
// The conversion itself is done by go-colorful (H in degrees, S and V in
// [0,1]) and then scaled and rounded to the 8-bit convention. Hue 360°
// rounding up to 180 wraps to 0.
func RGBToHSV(r, g, b uint8) HSV {
	c := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
	h, s, v := c.Hsv()

	hh := int(math.Round(h / 2))
	if hh >= 180 {
		hh -= 180
	}
	return HSV{
		H: uint8(hh),
		S: uint8(math.Round(s * 255)),
		V: uint8(math.Round(v * 255)),
	}
}

// ToHSV converts every pixel of img to 8-bit HSV. The result is row-major with
// len == width*height; index (y*width + x) relative to img.Bounds().Min.
func ToHSV(img *image.NRGBA) []HSV {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	out := make([]HSV, width*height)
	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for x := 0; x < width; x++ {
			p := row[x*4 : x*4+3]
			out[y*width+x] = RGBToHSV(p[0], p[1], p[2])
		}
	}
	return out
}

// Segment marks every pixel whose HSV value falls inside rng as foreground.
//
// The returned mask always has exactly the dimensions of img. Segment does
// not modify img.
func Segment(img *image.NRGBA, rng HSVRange) *Mask {
	bounds := img.Bounds()
	mask := NewMask(bounds.Dx(), bounds.Dy())

	for i, c := range ToHSV(img) {
		if rng.Contains(c) {
			mask.Pix[i] = Foreground
		}
	}
	return mask
}

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// ColorResult contains a sampled pixel in hex, RGB and 8-bit HSV form.
//
// The HSV value uses the same convention as the rock bounds, so it can be
// used directly for the rock_color_lower_bound and rock_color_upper_bound
// config values.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB RGBColor `json:"rgb"`
	HSV HSV      `json:"hsv"`
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Coordinates are 0-based with origin at top-left. Returns an error if (x, y)
// lies outside the image bounds.
func SampleColor(img *image.NRGBA, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := img.NRGBAAt(x, y)
	return &ColorResult{
		Hex: fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B),
		RGB: RGBColor{R: c.R, G: c.G, B: c.B},
		HSV: RGBToHSV(c.R, c.G, c.B),
	}, nil
}
