//go:build gocv

package detection

import (
	"sort"

	"gocv.io/x/gocv"

	"github.com/ironsheep/rock-contours/internal/imaging"
)

// Backend names the contour tracing implementation compiled into the binary.
const Backend = "opencv"

// findContours delegates to OpenCV's findContours with external retrieval
// and simple chain approximation. OpenCV starts each contour at the
// region's raster-first pixel but emits contours in its own order, so the
// result is re-sorted by starting pixel to match the raster scan order.
func findContours(mask *imaging.Mask) []Contour {
	mat, err := gocv.NewMatFromBytes(mask.Height, mask.Width, gocv.MatTypeCV8UC1, mask.Pix)
	if err != nil {
		return []Contour{}
	}
	defer mat.Close()

	found := gocv.FindContours(mat, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer found.Close()

	contours := make([]Contour, 0, found.Size())
	for i := 0; i < found.Size(); i++ {
		pv := found.At(i)
		pts := pv.ToPoints()
		c := make(Contour, len(pts))
		for j, p := range pts {
			c[j] = Point{X: p.X, Y: p.Y}
		}
		contours = append(contours, c)
	}

	sort.SliceStable(contours, func(i, j int) bool {
		a, b := contours[i][0], contours[j][0]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return contours
}
