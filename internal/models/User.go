package models

import "gorm.io/gorm"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type User struct {
	gorm.Model
	Name     string `json:"name"`
	EmpID    string `json:"emp_id" gorm:"uniqueIndex;not null"`
	Email    string `json:"email"`
	MobileNo string `json:"mobile_no"`
	Password string `json:"-"`
	Image    string `json:"image"` // public URL in the blob store, opaque to us
	Role     string `json:"role"`  // "admin", "employee"
}
