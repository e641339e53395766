package detection

import (
	"github.com/ironsheep/rock-contours/internal/imaging"
)

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Contour is the ordered outer boundary of one connected foreground region.
//
// Points are pixel coordinates of boundary pixels, listed counterclockwise
// on screen (down the left side first) starting from the region's
// topmost-leftmost pixel. The boundary is implicitly closed: the last point
// connects back to the first. Only direction changes are kept, so a filled
// axis-aligned rectangle yields its four corners.
type Contour []Point

// FindContours traces the outer boundary of every 8-connected foreground
// region in mask.
//
// # Topology
//
// Only outermost boundaries are returned. Holes inside a region are ignored,
// and so are regions lying entirely inside another region's hole. Rock
// regions are not expected to carry interesting interior holes, so this
// trades completeness for simpler polygons.
//
// # Ordering
//
// Contours are returned in the order their starting pixels are met by a
// top-to-bottom, left-to-right raster scan. The result is deterministic for
// identical masks.
//
// # Degenerate Regions
//
// An isolated pixel yields a one-point contour, a straight run of pixels a
// two-point contour. They are returned here and dropped by BuildPolygons.
//
// An all-background mask returns an empty, non-nil slice. Every returned
// point lies within [0, mask.Width) x [0, mask.Height).
func FindContours(mask *imaging.Mask) []Contour {
	if mask == nil || mask.Width == 0 || mask.Height == 0 {
		return []Contour{}
	}
	return findContours(mask)
}

// compressChain removes points where the boundary continues in the same
// direction it arrived from. The first point is always kept.
func compressChain(raw []Point) Contour {
	n := len(raw)
	if n <= 2 {
		out := make(Contour, n)
		copy(out, raw)
		return out
	}

	out := make(Contour, 0, 8)
	out = append(out, raw[0])
	for i := 1; i < n; i++ {
		prev := raw[i-1]
		cur := raw[i]
		next := raw[(i+1)%n]

		inX, inY := cur.X-prev.X, cur.Y-prev.Y
		outX, outY := next.X-cur.X, next.Y-cur.Y
		if inX == outX && inY == outY {
			continue
		}
		out = append(out, cur)
	}
	return out
}
