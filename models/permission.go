package models

import "time"

// Permission represents a permission-controlled area of the back office
// (Users, Tables, Waiting List, Dashboard, ...)
type Permission struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	PermissionName string    `gorm:"uniqueIndex;not null" json:"permission_name"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName specifies the table name for the Permission model
func (Permission) TableName() string {
	return "permissions"
}

// RolePermission grants a role view/edit/delete rights over one permission area
type RolePermission struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RoleID       uint      `gorm:"not null;index;uniqueIndex:idx_role_permission" json:"role_id"`       // foreign key to roles table
	PermissionID uint      `gorm:"not null;index;uniqueIndex:idx_role_permission" json:"permission_id"` // foreign key to permissions table
	CanView      bool      `gorm:"not null;default:false" json:"can_view"`
	CanAddEdit   bool      `gorm:"not null;default:false" json:"can_add_edit"`
	CanDelete    bool      `gorm:"not null;default:false" json:"can_delete"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the RolePermission model
func (RolePermission) TableName() string {
	return "role_permissions"
}
