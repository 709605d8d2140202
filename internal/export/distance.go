// Package export renders a flattened, already-filtered waypoint list into
// downloadable artifacts: Excel workbook, KMZ overlay, GeoJSON and PDF map.
// The projection layer hands it flat waypoint slices; nothing here touches
// the database.
package export

import (
	"math"

	"github.com/vishal-singh24/ESM-Backend/internal/models"
)

const earthRadiusMeters = 6371e3

// HaversineMeters returns the great-circle distance between two coordinates.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	φ1 := lat1 * math.Pi / 180
	φ2 := lat2 * math.Pi / 180
	dφ := (lat2 - lat1) * math.Pi / 180
	dλ := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dφ/2)*math.Sin(dφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*math.Sin(dλ/2)*math.Sin(dλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// nearestNeighborOrder reorders waypoints heuristically: starting from the
// first, each step jumps to the closest remaining point. Cosmetic ordering
// for map rendering only, no optimality guarantee.
func nearestNeighborOrder(waypoints []models.Waypoint) []models.Waypoint {
	if len(waypoints) < 2 {
		return waypoints
	}

	path := make([]models.Waypoint, 0, len(waypoints))
	path = append(path, waypoints[0])
	remaining := make([]models.Waypoint, len(waypoints)-1)
	copy(remaining, waypoints[1:])

	for len(remaining) > 0 {
		last := path[len(path)-1]
		nearest := 0
		minDist := math.Inf(1)
		for i, wp := range remaining {
			d := HaversineMeters(last.Latitude, last.Longitude, wp.Latitude, wp.Longitude)
			if d < minDist {
				minDist = d
				nearest = i
			}
		}
		path = append(path, remaining[nearest])
		remaining = append(remaining[:nearest], remaining[nearest+1:]...)
	}
	return path
}
