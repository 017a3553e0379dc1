package models

import (
	"time"

	"gorm.io/gorm"
)

// TaxesFee represents a configurable tax or fee applied to new orders.
// Orders carry their own snapshot of the rate, so editing a TaxesFee never
// changes historical orders.
type TaxesFee struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;uniqueIndex" json:"name"`
	Value     float64        `gorm:"not null" json:"value"`
	IsEnabled bool           `gorm:"not null;default:true" json:"is_enabled"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the TaxesFee model
func (TaxesFee) TableName() string {
	return "taxes_fees"
}
