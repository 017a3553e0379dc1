package models

import "time"

// User account states
const (
	UserStatusActive   = "Active"
	UserStatusInactive = "Inactive"
)

// User represents a back-office user (admin, account manager or chef).
// Users are soft-deleted with an explicit flag so past audit fields keep
// resolving.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string    `json:"phone"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	RoleID    uint      `gorm:"not null;index" json:"role_id"` // foreign key to roles table
	Status    string    `gorm:"not null;default:'Active'" json:"status"` // Active, Inactive
	Address   string    `json:"address"`
	Zipcode   string    `json:"zipcode"`
	IsDeleted bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
