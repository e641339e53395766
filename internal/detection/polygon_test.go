package detection

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestBuildPolygons_DropsDegenerate(t *testing.T) {
	contours := []Contour{
		{{1, 1}},                                 // isolated pixel
		{{0, 0}, {5, 0}},                         // straight run
		{{0, 0}, {0, 4}, {4, 4}},                 // triangle
		{{10, 10}, {10, 20}, {20, 20}, {20, 10}}, // square
	}

	polygons := BuildPolygons(contours)
	if len(polygons) != 2 {
		t.Fatalf("got %d polygons, want 2", len(polygons))
	}
	for i, p := range polygons {
		if len(p.Vertices) < MinPolygonVertices {
			t.Errorf("polygon %d has %d vertices", i, len(p.Vertices))
		}
	}
	if polygons[0].Vertices[2] != (Point{4, 4}) {
		t.Errorf("polygon order or vertices changed: %v", polygons[0].Vertices)
	}
}

func TestBuildPolygons_Empty(t *testing.T) {
	for _, in := range [][]Contour{nil, {}, {{{1, 1}}, {{2, 2}, {3, 3}}}} {
		got := BuildPolygons(in)
		if got == nil {
			t.Fatal("BuildPolygons should return an empty slice, not nil")
		}
		if len(got) != 0 {
			t.Errorf("got %d polygons, want 0", len(got))
		}
	}
}

func TestBuildPolygons_CopiesVertices(t *testing.T) {
	contours := []Contour{{{0, 0}, {0, 4}, {4, 4}}}
	polygons := BuildPolygons(contours)

	contours[0][0] = Point{99, 99}
	if polygons[0].Vertices[0] != (Point{0, 0}) {
		t.Error("polygon shares storage with its contour")
	}
}

func TestPolygon_Ring(t *testing.T) {
	p := Polygon{Vertices: []Point{{20, 20}, {20, 59}, {59, 59}, {59, 20}}}

	ring := p.Ring()
	if len(ring) != 5 {
		t.Fatalf("ring length: got %d, want 5", len(ring))
	}
	if !ring.Closed() {
		t.Error("ring should be closed")
	}
	if ring[1] != (orb.Point{20, 59}) {
		t.Errorf("ring[1]: got %v, want [20 59]", ring[1])
	}
}

func TestPolygon_AreaAndBound(t *testing.T) {
	p := Polygon{Vertices: []Point{{20, 20}, {20, 59}, {59, 59}, {59, 20}}}

	if got := p.Area(); math.Abs(got-39*39) > 1e-9 {
		t.Errorf("Area: got %v, want %v", got, 39*39)
	}

	b := p.Bound()
	if b.Min != (orb.Point{20, 20}) || b.Max != (orb.Point{59, 59}) {
		t.Errorf("Bound: got %v", b)
	}
}
