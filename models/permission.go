package models

import (
	"time"

	"gorm.io/gorm"
)

// KnownResources is the closed set of resource names permissions may target.
// Adding a new protected surface to the app means adding its name here.
var KnownResources = []string{
	"facilities",
	"bookings",
	"schedules",
	"exceptions",
	"holiday-templates",
	"users",
	"roles",
	"permissions",
}

// ValidResource reports whether a permission resource name is one the app
// actually serves.
func ValidResource(resource string) bool {
	for _, r := range KnownResources {
		if r == resource {
			return true
		}
	}
	return false
}

type Permission struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"unique"`
	Description string         `json:"description"`
	Resource    string         `json:"resource"` // e.g., "facilities", "bookings", etc.
	Action      string         `json:"action"`   // e.g., "create", "read", "update", "delete"
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
	Roles       []Role         `json:"roles,omitempty" gorm:"many2many:role_permissions;foreignKey:ID;joinForeignKey:PermissionID;references:ID;joinReferences:RoleID"`
}
