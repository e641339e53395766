package export

import (
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"

	"github.com/ironsheep/rock-contours/internal/detection"
)

// DefaultSpatialReference is the crs name declared on vector output. It is a
// label only; coordinates stay in pixel space.
const DefaultSpatialReference = "EPSG:3857"

// FeatureCollection builds a GeoJSON collection with one polygon feature per
// polygon, in order. Feature ids are the zero-based polygon index.
func FeatureCollection(polygons []detection.Polygon, crs string) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if crs != "" {
		fc.ExtraMembers = geojson.Properties{
			"crs": map[string]interface{}{
				"type":       "name",
				"properties": map[string]interface{}{"name": crs},
			},
		}
	}

	for i, p := range polygons {
		f := geojson.NewFeature(p.Geometry())
		f.ID = i
		f.Properties["index"] = i
		f.Properties["vertex_count"] = len(p.Vertices)
		f.Properties["area_px"] = p.Area()
		f.Properties["coordinate_space"] = "pixel"
		fc.Append(f)
	}
	return fc
}

// WriteVector writes polygons as a GeoJSON FeatureCollection to path.
// It returns ErrNoPolygons, without creating the file, when polygons is empty.
func WriteVector(polygons []detection.Polygon, path, crs string) error {
	if len(polygons) == 0 {
		return ErrNoPolygons
	}

	data, err := FeatureCollection(polygons, crs).MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode geojson: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write geojson: %w", err)
	}
	return nil
}
