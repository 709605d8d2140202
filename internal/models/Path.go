package models

import (
	"gorm.io/gorm"
)

// Path is one continuous survey walk: an ordered, non-empty run of waypoints
// recorded by a single employee inside a project. Paths are append-only at
// the project level; a closed path never accepts further waypoints.
type Path struct {
	gorm.Model

	ProjectID uint `json:"project_id" gorm:"index:idx_paths_project_owner,priority:1"`
	OwnerID   uint `json:"owner_id" gorm:"index:idx_paths_project_owner,priority:2"`
	Owner     User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	// Closed flips to true when the end-marked waypoint lands. At most one
	// open path may exist per (project, owner).
	Closed bool `json:"closed" gorm:"index"`

	Waypoints []Waypoint `gorm:"foreignKey:PathID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"waypoints,omitempty"`
}
