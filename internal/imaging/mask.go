package imaging

import (
	"image"
	"image/color"
)

// Mask pixel values. Any non-zero value is treated as foreground when reading.
const (
	Background uint8 = 0
	Foreground uint8 = 255
)

// Mask is a single-channel binary image: Foreground marks rock, Background
// everything else. Pix is row-major with len(Pix) == Width*Height.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewMask allocates an all-background mask.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// MaskFromImage thresholds the red channel of img at 128. It is the inverse
// of Mask.Gray for 0/255 data and accepts the *image.RGBA that bild filters
// return.
func MaskFromImage(img image.Image) *Mask {
	bounds := img.Bounds()
	m := NewMask(bounds.Dx(), bounds.Dy())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			r, _, _, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			if r>>8 >= 128 {
				m.Pix[y*m.Width+x] = Foreground
			}
		}
	}
	return m
}

// Bounds returns the mask rectangle anchored at (0,0).
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// At reports whether (x, y) is foreground. Out-of-range coordinates are background.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x] != Background
}

// Set marks (x, y) as foreground or background. Out-of-range writes are ignored.
func (m *Mask) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	if on {
		m.Pix[y*m.Width+x] = Foreground
	} else {
		m.Pix[y*m.Width+x] = Background
	}
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v != Background {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of m.
func (m *Mask) Clone() *Mask {
	out := &Mask{Width: m.Width, Height: m.Height, Pix: make([]uint8, len(m.Pix))}
	copy(out.Pix, m.Pix)
	return out
}

// Gray renders the mask as an 8-bit grayscale image (0 / 255).
func (m *Mask) Gray() *image.Gray {
	g := image.NewGray(m.Bounds())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Pix[y*m.Width+x] != Background {
				g.SetGray(x, y, color.Gray{Y: Foreground})
			}
		}
	}
	return g
}
