package export

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"github.com/ironsheep/rock-contours/internal/detection"
	rockimg "github.com/ironsheep/rock-contours/internal/imaging"
)

// Input is everything ExportAll can write.
type Input struct {
	Image    image.Image
	Mask     *rockimg.Mask
	Contours []detection.Contour
	Polygons []detection.Polygon
}

// Exporter writes artifacts into one output directory.
type Exporter struct {
	Dir              string
	Style            Style
	SpatialReference string
	SaveMask         bool

	log zerolog.Logger
}

// NewExporter returns an Exporter for dir using the default style and
// spatial reference.
func NewExporter(dir string, log zerolog.Logger) *Exporter {
	return &Exporter{
		Dir:              dir,
		Style:            DefaultStyle(),
		SpatialReference: DefaultSpatialReference,
		log:              log.With().Str("stage", "export").Logger(),
	}
}

// Path returns the full path of an artifact.
func (e *Exporter) Path(a Artifact) string {
	return filepath.Join(e.Dir, a.FileName())
}

// ExportAll writes the raster, overlay and vector artifacts (and the mask
// when SaveMask is set). Each artifact is attempted regardless of how the
// others fared; the results are returned in that fixed order.
func (e *Exporter) ExportAll(in Input) []ArtifactResult {
	results := []ArtifactResult{
		e.run(ArtifactRaster, func(path string) error {
			return SavePNG(RenderContours(in.Image, in.Contours, e.Style), path)
		}),
		e.run(ArtifactOverlay, func(path string) error {
			return SavePNG(RenderOverlay(in.Image, in.Contours, e.Style), path)
		}),
		e.run(ArtifactVector, func(path string) error {
			return WriteVector(in.Polygons, path, e.SpatialReference)
		}),
	}

	if e.SaveMask {
		results = append(results, e.run(ArtifactMask, func(path string) error {
			if in.Mask == nil {
				return errors.New("no mask available")
			}
			return SavePNG(in.Mask.Gray(), path)
		}))
	}
	return results
}

// run executes one artifact write, converting errors and panics into a
// result so that callers always get to the next artifact.
func (e *Exporter) run(a Artifact, write func(path string) error) (res ArtifactResult) {
	path := e.Path(a)
	res = ArtifactResult{Artifact: a, Path: path}

	defer func() {
		if r := recover(); r != nil {
			res = e.failed(res, fmt.Errorf("panic: %v", r))
		}
	}()

	err := write(path)
	switch {
	case err == nil:
		res.Status = StatusWritten
		e.log.Info().Str("artifact", string(a)).Str("path", path).Msg("artifact written")
	case errors.Is(err, ErrNoPolygons):
		res.Status = StatusSkipped
		e.log.Warn().Str("artifact", string(a)).Msg("no valid polygons, skipping vector export")
	default:
		res = e.failed(res, err)
	}
	return res
}

func (e *Exporter) failed(res ArtifactResult, err error) ArtifactResult {
	exportErr := &ExportError{Artifact: res.Artifact, Path: res.Path, Err: err}
	res.Status = StatusFailed
	res.Err = exportErr
	res.Error = exportErr.Error()
	e.log.Error().Err(err).Str("artifact", string(res.Artifact)).Str("path", res.Path).Msg("artifact export failed")
	return res
}

// SavePNG encodes img as PNG at path.
func SavePNG(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save png: %w", err)
	}
	return nil
}
