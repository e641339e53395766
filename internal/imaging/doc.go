// Package imaging provides the raster stages of rock contour extraction:
// loading, HSV color segmentation and mask refinement.
//
// All operations work on *image.NRGBA values produced by Load, whose bytes are
// always in R,G,B,A order regardless of the source file's native layout. The
// coordinate system places (0,0) at the top-left corner, X increases rightward
// and Y increases downward.
//
// # Color Convention
//
// HSV values use the 8-bit convention:
//   - H: 0-179 (degrees / 2)
//   - S: 0-255
//   - V: 0-255
//
// Threshold bounds (HSVRange) must be expressed in the same convention.
//
// # Masks
//
// A Mask has the same width and height as the image it was segmented from,
// one byte per pixel, 0 for background and 255 for foreground. Segment and
// Close never change mask dimensions and never modify their inputs.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The stage functions are pure and may
// run concurrently on different inputs.
//
// # Error Handling
//
// Load wraps os.ErrNotExist for missing files and ErrDecode for files that
// exist but cannot be decoded, so callers can tell the two apart with
// errors.Is.
package imaging
