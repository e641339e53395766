// Package pipeline composes the rock contour extraction stages into a run.
//
// A run loads one image, segments it by an HSV rock band, closes the mask,
// traces outer contours, builds polygons and exports the artifacts:
//
//	p, err := pipeline.New(pipeline.DefaultConfig(), log)
//	if err != nil {
//		return err
//	}
//	report, err := p.Run("map.png")
//
// # Errors
//
// Run returns an *InputError when the image cannot be loaded; this is the
// only failure that aborts a run. Export failures are collected in the
// Report instead (see Report.Err). Finding no rock at all is not an error:
// Report.Empty is set, rasters are still written and the vector artifact is
// skipped.
//
// # Configuration
//
// Config is YAML-tagged. LoadConfig overlays a file on DefaultConfig, and
// Validate rejects bounds outside the 8-bit HSV range, inverted bounds, even
// or non-positive kernels and unusable stroke settings.
package pipeline
