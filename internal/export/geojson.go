package export

import (
	"fmt"

	"github.com/twpayne/go-geom"
	geojson "github.com/twpayne/go-geom/encoding/geojson"

	"github.com/vishal-singh24/ESM-Backend/internal/models"
)

// GeoJSON renders the same point-and-segment content as the KMZ overlay as
// a GeoJSON FeatureCollection for clients that consume map data directly.
func GeoJSON(waypoints []models.Waypoint) ([]byte, error) {
	if len(waypoints) == 0 {
		return nil, fmt.Errorf("no waypoints provided")
	}

	sorted := nearestNeighborOrder(waypoints)

	features := make([]*geojson.Feature, 0, 2*len(sorted))
	for _, wp := range sorted {
		features = append(features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{wp.Longitude, wp.Latitude}),
			Properties: map[string]interface{}{
				"name":        wp.Name,
				"description": wp.Description,
				"routeType":   wp.RouteType,
			},
		})
	}
	for i := 0; i < len(sorted)-1; i++ {
		line := geom.NewLineStringFlat(geom.XY, []float64{
			sorted[i].Longitude, sorted[i].Latitude,
			sorted[i+1].Longitude, sorted[i+1].Latitude,
		})
		features = append(features, &geojson.Feature{
			Geometry: line,
			Properties: map[string]interface{}{
				"name":        fmt.Sprintf("Segment %d", i+1),
				"description": fmt.Sprintf("From %s to %s", sorted[i].Name, sorted[i+1].Name),
			},
		})
	}

	fc := &geojson.FeatureCollection{Features: features}
	return fc.MarshalJSON()
}
