package export

import (
	"encoding/json"
	"fmt"
	"regexp"

	"gorm.io/datatypes"

	"github.com/vishal-singh24/ESM-Backend/internal/models"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9-_]`)

// firstDetail decodes the first element of a JSON detail array. Returns an
// empty map when the payload is missing or malformed so renderers can index
// freely.
func firstDetail(payload datatypes.JSON) map[string]interface{} {
	var list []map[string]interface{}
	if err := json.Unmarshal(payload, &list); err != nil || len(list) == 0 {
		return map[string]interface{}{}
	}
	return list[0]
}

func detailString(detail map[string]interface{}, key string) string {
	if v, ok := detail[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func detailNumber(detail map[string]interface{}, key string) float64 {
	switch v := detail[key].(type) {
	case float64:
		return v
	case json.Number:
		f, _ := v.Float64()
		return f
	case bool:
		if v {
			return 1
		}
	}
	return 0
}

// SanitizeFilename strips characters that are unsafe in a download filename
// and caps the length, mirroring how export names were always built.
func SanitizeFilename(name string) string {
	out := unsafeFilenameChars.ReplaceAllString(name, "_")
	if len(out) > 50 {
		out = out[:50]
	}
	return out
}

// FeederName pulls the feeder name from the first waypoint carrying one,
// falling back to "feeder". Used to build download filenames.
func FeederName(waypoints []models.Waypoint) string {
	for _, wp := range waypoints {
		if name := detailString(firstDetail(wp.GpsDetails), "feederName"); name != "" {
			return name
		}
	}
	return "feeder"
}
