package models

import (
	"time"

	"gorm.io/gorm"
)

// Dining table occupancy states. Status is derived from active order-table
// links and is only flipped by the table-assignment transaction.
const (
	TableStatusAvailable = "Available"
	TableStatusAssigned  = "Assigned"
)

// DiningTable represents a seating unit within a section with fixed capacity
type DiningTable struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	SectionID uint           `gorm:"not null;index" json:"section_id"` // foreign key to sections table
	Name      string         `gorm:"not null" json:"name"`
	Capacity  int            `gorm:"not null;check:capacity > 0" json:"capacity"`
	Status    string         `gorm:"not null;default:'Available'" json:"status"` // Available, Assigned
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the DiningTable model
func (DiningTable) TableName() string {
	return "dining_tables"
}
