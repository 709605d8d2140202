package export

import (
	"archive/zip"
	"bytes"
	"fmt"

	kml "github.com/twpayne/go-kml/v3"

	"github.com/vishal-singh24/ESM-Backend/internal/models"
)

// KMZ renders the waypoints as a KMZ archive: point placemarks plus
// segment lines between consecutive points, ordered nearest-neighbor.
func KMZ(waypoints []models.Waypoint) ([]byte, error) {
	if len(waypoints) == 0 {
		return nil, fmt.Errorf("no waypoints provided")
	}

	sorted := nearestNeighborOrder(waypoints)

	var elements []kml.Element
	for _, wp := range sorted {
		elements = append(elements, kml.Placemark(
			kml.Name(wp.Name),
			kml.Description(wp.Description),
			kml.Point(
				kml.Coordinates(kml.Coordinate{Lon: wp.Longitude, Lat: wp.Latitude}),
			),
		))
	}
	for i := 0; i < len(sorted)-1; i++ {
		elements = append(elements, kml.Placemark(
			kml.Name(fmt.Sprintf("Segment %d", i+1)),
			kml.Description(fmt.Sprintf("From %s to %s", sorted[i].Name, sorted[i+1].Name)),
			kml.LineString(
				kml.Coordinates(
					kml.Coordinate{Lon: sorted[i].Longitude, Lat: sorted[i].Latitude},
					kml.Coordinate{Lon: sorted[i+1].Longitude, Lat: sorted[i+1].Latitude},
				),
			),
		))
	}

	var kmlBuf bytes.Buffer
	if err := kml.KML(kml.Document(elements...)).Write(&kmlBuf); err != nil {
		return nil, fmt.Errorf("encode kml: %w", err)
	}

	// A KMZ file is a zip archive holding doc.kml.
	var zipBuf bytes.Buffer
	zw := zip.NewWriter(&zipBuf)
	entry, err := zw.Create("doc.kml")
	if err != nil {
		return nil, fmt.Errorf("create kmz entry: %w", err)
	}
	if _, err := entry.Write(kmlBuf.Bytes()); err != nil {
		return nil, fmt.Errorf("write kmz entry: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close kmz: %w", err)
	}
	return zipBuf.Bytes(), nil
}
