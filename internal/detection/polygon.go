package detection

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// MinPolygonVertices is the smallest contour that can form a polygon.
const MinPolygonVertices = 3

// Polygon is a closed shape built from one contour, in pixel coordinates.
//
// Vertices are the contour points verbatim and are not repeated at the end;
// Ring returns the explicitly closed form used by GeoJSON.
type Polygon struct {
	Vertices []Point `json:"vertices"`
}

// BuildPolygons converts each contour with at least MinPolygonVertices
// points into a Polygon, in input order.
//
// Shorter contours (isolated pixels, straight runs) are topologically
// degenerate and are dropped without error. No smoothing or simplification
// is applied. An empty input or an all-degenerate input yields an empty,
// non-nil slice.
func BuildPolygons(contours []Contour) []Polygon {
	polygons := make([]Polygon, 0, len(contours))
	for _, c := range contours {
		if len(c) < MinPolygonVertices {
			continue
		}
		vertices := make([]Point, len(c))
		copy(vertices, c)
		polygons = append(polygons, Polygon{Vertices: vertices})
	}
	return polygons
}

// Ring returns the polygon boundary as a closed orb.Ring (first point repeated last).
func (p Polygon) Ring() orb.Ring {
	ring := make(orb.Ring, 0, len(p.Vertices)+1)
	for _, v := range p.Vertices {
		ring = append(ring, orb.Point{float64(v.X), float64(v.Y)})
	}
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}
	return ring
}

// Geometry returns the polygon as an orb.Polygon with a single outer ring.
func (p Polygon) Geometry() orb.Polygon {
	return orb.Polygon{p.Ring()}
}

// Area returns the enclosed area in square pixels, measured on the vertex
// coordinates (pixel centers), so a one-pixel-wide strip has zero area.
func (p Polygon) Area() float64 {
	return planar.Area(p.Geometry())
}

// Bound returns the axis-aligned bounding box of the vertices.
func (p Polygon) Bound() orb.Bound {
	return p.Ring().Bound()
}
