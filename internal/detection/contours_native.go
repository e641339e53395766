//go:build !gocv

package detection

import (
	"github.com/ironsheep/rock-contours/internal/imaging"
)

// Backend names the contour tracing implementation compiled into the binary.
const Backend = "native"

// 8-neighborhood offsets ordered counterclockwise on screen (Y grows down):
// E, NE, N, NW, W, SW, S, SE.
var (
	dirX = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	dirY = [8]int{0, -1, -1, -1, 0, 1, 1, 1}
)

// findContours labels 8-connected foreground regions, keeps the ones whose
// starting pixel touches background connected to the image border, and
// traces the outer border of each with Suzuki-Abe border following.
func findContours(mask *imaging.Mask) []Contour {
	w, h := mask.Width, mask.Height

	labels := labelRegions(mask)
	outside := outsideBackground(mask)
	seen := make(map[int32]bool)

	contours := make([]Contour, 0)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			label := labels[y*w+x]
			if label == 0 || seen[label] {
				continue
			}
			seen[label] = true

			// The first pixel met for a region always has background (or the
			// image edge) to its west. If that background is enclosed, the
			// region sits inside another region's hole.
			if x > 0 && !outside[y*w+x-1] {
				continue
			}
			contours = append(contours, compressChain(traceBorder(mask, x, y)))
		}
	}
	return contours
}

// labelRegions assigns a positive label to every 8-connected foreground
// region, numbered in raster order. Background is 0.
func labelRegions(mask *imaging.Mask) []int32 {
	w, h := mask.Width, mask.Height
	labels := make([]int32, w*h)
	var next int32

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !mask.At(x, y) || labels[y*w+x] != 0 {
				continue
			}
			next++
			floodFill(mask, labels, x, y, next)
		}
	}
	return labels
}

// floodFill performs iterative flood-fill from a starting point.
//
// Uses a stack-based approach (not recursive) to avoid stack overflow
// on large regions. Uses 8-connectivity (includes diagonal neighbors).
func floodFill(mask *imaging.Mask, labels []int32, startX, startY int, label int32) {
	w := mask.Width
	stack := []Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !mask.At(p.X, p.Y) || labels[p.Y*w+p.X] != 0 {
			continue
		}
		labels[p.Y*w+p.X] = label

		for i := 0; i < 8; i++ {
			stack = append(stack, Point{X: p.X + dirX[i], Y: p.Y + dirY[i]})
		}
	}
}

// outsideBackground marks background pixels 4-connected to the image border.
// Background uses 4-connectivity because foreground uses 8.
func outsideBackground(mask *imaging.Mask) []bool {
	w, h := mask.Width, mask.Height
	outside := make([]bool, w*h)
	stack := make([]Point, 0, 2*(w+h))

	push := func(x, y int) {
		if x < 0 || y < 0 || x >= w || y >= h {
			return
		}
		if mask.At(x, y) || outside[y*w+x] {
			return
		}
		outside[y*w+x] = true
		stack = append(stack, Point{X: x, Y: y})
	}

	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.X+1, p.Y)
		push(p.X-1, p.Y)
		push(p.X, p.Y+1)
		push(p.X, p.Y-1)
	}
	return outside
}

// traceBorder follows the outer border of the region whose raster-first
// pixel is (sx, sy) and returns every boundary pixel visited, uncompressed.
func traceBorder(mask *imaging.Mask, sx, sy int) []Point {
	start := Point{X: sx, Y: sy}

	// Clockwise search from the west neighbor for the first foreground pixel.
	first, found := Point{}, false
	for k := 0; k < 8; k++ {
		d := (4 - k + 8) % 8
		q := Point{X: sx + dirX[d], Y: sy + dirY[d]}
		if mask.At(q.X, q.Y) {
			first, found = q, true
			break
		}
	}
	if !found {
		return []Point{start}
	}

	pts := make([]Point, 0, 64)
	prev, cur := first, start
	for {
		// Counterclockwise search around cur, starting just past prev.
		from := direction(cur, prev)
		var next Point
		for k := 1; k <= 8; k++ {
			d := (from + k) % 8
			q := Point{X: cur.X + dirX[d], Y: cur.Y + dirY[d]}
			if mask.At(q.X, q.Y) {
				next = q
				break
			}
		}

		pts = append(pts, cur)
		if next == start && cur == first {
			return pts
		}
		prev, cur = cur, next
	}
}

// direction returns the neighbor index of b as seen from a.
func direction(a, b Point) int {
	dx, dy := b.X-a.X, b.Y-a.Y
	for i := 0; i < 8; i++ {
		if dirX[i] == dx && dirY[i] == dy {
			return i
		}
	}
	return 0
}
