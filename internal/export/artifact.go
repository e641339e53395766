package export

import (
	"errors"
	"fmt"
)

// Artifact identifies one output of a run.
type Artifact string

const (
	ArtifactRaster  Artifact = "raster"
	ArtifactOverlay Artifact = "overlay"
	ArtifactVector  Artifact = "vector"
	ArtifactMask    Artifact = "mask"
)

// Fixed artifact file names within the output directory.
const (
	RasterFile  = "rock_contours_raster.png"
	OverlayFile = "rock_contours_overlay.png"
	VectorFile  = "rock_contours_vector.geojson"
	MaskFile    = "rock_mask.png"
)

// FileName returns the fixed file name for the artifact.
func (a Artifact) FileName() string {
	switch a {
	case ArtifactRaster:
		return RasterFile
	case ArtifactOverlay:
		return OverlayFile
	case ArtifactVector:
		return VectorFile
	case ArtifactMask:
		return MaskFile
	}
	return ""
}

// Status is the outcome of one artifact.
type Status string

const (
	StatusWritten Status = "written"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// ErrNoPolygons is returned by WriteVector when there is nothing to write.
var ErrNoPolygons = errors.New("no polygons to export")

// ExportError reports a failure writing one artifact.
type ExportError struct {
	Artifact Artifact
	Path     string
	Err      error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("failed to export %s to %s: %v", e.Artifact, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// ArtifactResult records what happened to one artifact.
type ArtifactResult struct {
	Artifact Artifact `json:"artifact"`
	Path     string   `json:"path"`
	Status   Status   `json:"status"`
	Error    string   `json:"error,omitempty"`

	// Err is the *ExportError for failed artifacts, nil otherwise.
	Err error `json:"-"`
}
