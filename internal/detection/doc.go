// Package detection turns a binary rock mask into boundary contours and
// polygons.
//
// # Pipeline
//
//  1. FindContours: trace the outer border of every 8-connected foreground
//     region, keeping only outermost regions and only the points where the
//     border changes direction
//  2. BuildPolygons: keep contours with at least three points and wrap them
//     as closed polygons
//
// # Backends
//
// The default build traces borders in pure Go. Building with the gocv tag
// (go build -tags gocv) delegates FindContours to OpenCV through gocv; both
// backends return the same contours in the same order. Backend reports which
// one is compiled in.
//
// # Coordinate System
//
// All coordinates are pixel coordinates with the origin at the top-left
// corner, X increasing rightward and Y increasing downward. They are never
// reprojected; any spatial reference attached on export is a label only.
//
// # Limitations
//
// Holes inside rock regions and regions nested inside those holes are not
// reported. No area filtering is applied, so small noise regions that survive
// mask refinement still produce polygons.
package detection
