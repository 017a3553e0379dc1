package models

import "time"

// WaitingToken represents a queued party awaiting seating. A customer has at
// most one token with IsAssigned=false and IsDeleted=false at a time; the
// partial unique index on CustomerID makes the store reject a second active
// token even if two writers race past the application-level check.
// Tokens are soft-deleted with an explicit flag so historical reporting can
// still see them.
type WaitingToken struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CustomerID  uint      `gorm:"not null;index;uniqueIndex:idx_waiting_tokens_active_customer,where:is_assigned = false AND is_deleted = false" json:"customer_id"` // foreign key to customers table
	SectionID   uint      `gorm:"not null;index" json:"section_id"`  // preferred seating section
	NoOfPersons int       `gorm:"not null;check:no_of_persons > 0" json:"no_of_persons"`
	IsAssigned  bool      `gorm:"not null;default:false" json:"is_assigned"`
	IsDeleted   bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the WaitingToken model
func (WaitingToken) TableName() string {
	return "waiting_tokens"
}
