package imaging

import (
	"fmt"

	"github.com/anthonynsimon/bild/effect"
)

// DefaultKernelSize is the default side length of the square structuring
// element used to refine rock masks.
const DefaultKernelSize = 5

// Close performs a morphological closing (dilation followed by erosion) with
// a kernelSize x kernelSize square structuring element.
//
// # Tradeoff
//
// Closing merges foreground speckles that are closer than roughly kernelSize
// pixels and fills gaps and notches of that size. Larger kernels therefore
// yield fewer, larger, topologically simpler regions and lose fine boundary
// detail; smaller kernels keep detail but leave more fragments, each of
// which later becomes its own polygon.
//
// The operation is not idempotent in general: closing an already closed
// mask can still change it, so callers should not rely on single-pass
// stability.
//
// # Borders
//
// The dilate/erode windows replicate edge pixels, which for max/min filters
// is the same as ignoring out-of-image pixels. Foreground touching the image
// border is neither grown from nor eaten by the border.
//
// kernelSize must be a positive odd number; 1 returns an unchanged copy.
// The input mask is not modified and the output has the same dimensions.
func Close(m *Mask, kernelSize int) (*Mask, error) {
	if kernelSize <= 0 || kernelSize%2 == 0 {
		return nil, fmt.Errorf("kernel size must be a positive odd number, got %d", kernelSize)
	}
	if kernelSize == 1 || m.Width == 0 || m.Height == 0 {
		return m.Clone(), nil
	}

	// bild uses a window of int(2*radius+1.5) per side.
	radius := float64(kernelSize-1) / 2

	dilated := effect.Dilate(m.Gray(), radius)
	eroded := effect.Erode(dilated, radius)
	return MaskFromImage(eroded), nil
}
