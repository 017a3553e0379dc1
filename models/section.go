package models

import (
	"time"

	"gorm.io/gorm"
)

// Section represents a named physical zone of the dining area
type Section struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;uniqueIndex" json:"name"`
	Description string         `json:"description"`
	Tables      []DiningTable  `gorm:"foreignKey:SectionID" json:"tables,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Section model
func (Section) TableName() string {
	return "sections"
}
