// Package export writes the artifacts of a contour extraction run.
//
// # Artifacts
//
// Every artifact has a fixed file name inside the output directory:
//
//   - rock_contours_raster.png: contour strokes on a black canvas
//   - rock_contours_overlay.png: contour strokes drawn over the original image
//   - rock_contours_vector.geojson: one polygon feature per polygon
//   - rock_mask.png: the refined binary mask (only when enabled)
//
// # Fault Tolerance
//
// ExportAll runs each artifact on its own. A failure (I/O error, encode
// error, even a panic inside an encoder) is logged, recorded as a failed
// ArtifactResult carrying an *ExportError, and never stops the remaining
// artifacts. The vector artifact is skipped, not failed, when there are no
// polygons.
//
// # Spatial Reference
//
// The GeoJSON collection declares a named crs member, but coordinates are
// pixel coordinates (origin top-left, Y down). Every feature also carries
// coordinate_space "pixel" so consumers do not read them as geographic.
package export
