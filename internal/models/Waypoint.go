package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Waypoint is one recorded survey point (a pole or transformer position).
// Created exactly once at submission time, never edited afterwards.
type Waypoint struct {
	gorm.Model
	PathID uint `json:"path_id" gorm:"index"`
	Seq    int  `json:"seq"` // 1-based order within the path

	Name                 string  `json:"name" gorm:"not null"`
	Description          string  `json:"description"`
	DistanceFromPrevious float64 `json:"distance_from_previous"` // meters
	Latitude             float64 `json:"latitude" gorm:"not null"`
	Longitude            float64 `json:"longitude" gorm:"not null"`

	RouteType       string `json:"route_type"` // "existing", "new"
	RouteStartPoint string `json:"route_start_point"`
	RouteEndPoint   string `json:"route_end_point"`
	IsStart         bool   `json:"is_start"`
	IsEnd           bool   `json:"is_end"`

	Image     string    `json:"image"` // optional blob-store URL
	Timestamp time.Time `json:"timestamp" gorm:"index"`

	CreatedByID uint `json:"created_by_id" gorm:"index"`
	CreatedBy   User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	// PathOwnerID equals CreatedByID for every waypoint of a path; kept
	// denormalized so exports can filter without walking path rows.
	PathOwnerID uint `json:"path_owner_id"`

	// Denormalized structured payloads, stored inline as JSON arrays.
	PoleDetails datatypes.JSON `json:"pole_details" gorm:"type:jsonb"`
	GpsDetails  datatypes.JSON `json:"gps_details" gorm:"type:jsonb"`
}
