package models

import (
	"gorm.io/gorm"
)

// Project is one surveying assignment. Admins create projects and assign
// employees; assigned employees record waypoint paths against it.
type Project struct {
	gorm.Model

	// ProjectID is the human-facing identifier ("Project_7"). Assigned from
	// the row sequence on creation when the client does not supply one.
	ProjectID   string `json:"project_id" gorm:"uniqueIndex"`
	Circle      string `json:"circle" binding:"required"`
	Division    string `json:"division" binding:"required"`
	Description string `json:"description"`

	CreatedByID uint `json:"created_by_id"`
	CreatedBy   User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`

	// Assigned employees. Membership is required before an employee may
	// contribute waypoints.
	Employees []User `gorm:"many2many:project_employees;" json:"employees,omitempty"`

	Paths []Path `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"paths,omitempty"`
}
