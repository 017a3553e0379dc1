package models

import (
	"time"

	"gorm.io/gorm"
)

// Order lifecycle states
const (
	OrderStatusPending   = "Pending"
	OrderStatusServed    = "Served"
	OrderStatusCancelled = "Cancelled"
)

// Order represents a dine-in order created when tables are assigned to a party
type Order struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	CustomerID  uint                `gorm:"not null;index" json:"customer_id"`        // foreign key to customers table
	Status      string              `gorm:"not null;default:'Pending'" json:"status"` // Pending, Served, Cancelled
	TotalAmount float64             `gorm:"not null;default:0" json:"total_amount"`
	ServingTime *time.Time          `json:"serving_time"` // nullable, set when the order is served
	Tables      []OrderTableMapping `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"tables,omitempty"`
	Taxes       []OrderTaxMapping   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"taxes,omitempty"`
	Items       []OrderItemMapping  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	DeletedAt   gorm.DeletedAt      `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderTableMapping links an order to one of the tables seating the party.
// NoOfPersons records how many of the party sit at this table; the mapping
// rows for an order always sum to the party size requested at assignment.
type OrderTableMapping struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"` // foreign key to orders table
	TableID     uint      `gorm:"not null;index" json:"table_id"` // foreign key to dining_tables table
	SeatedTableName string `gorm:"column:table_name;not null" json:"table_name"` // snapshot of the table name at assignment time
	NoOfPersons int       `gorm:"not null" json:"no_of_persons"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for the OrderTableMapping model
func (OrderTableMapping) TableName() string {
	return "order_table_mappings"
}

// OrderTaxMapping is an immutable snapshot of a tax rate recorded at
// order-creation time. Later edits to the tax definition never change it.
type OrderTaxMapping struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"` // foreign key to orders table
	TaxID     uint      `gorm:"not null" json:"tax_id"`         // foreign key to taxes_fees table
	TaxName   string    `gorm:"not null" json:"tax_name"`
	TaxValue  float64   `gorm:"not null" json:"tax_value"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the OrderTaxMapping model
func (OrderTaxMapping) TableName() string {
	return "order_tax_mappings"
}

// OrderItemMapping records an ordered menu item with its name and price frozen
// at order time. The dashboard aggregates these rows for top/least sellers.
type OrderItemMapping struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"` // foreign key to orders table
	ItemName  string    `gorm:"not null" json:"item_name"`
	Quantity  int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the OrderItemMapping model
func (OrderItemMapping) TableName() string {
	return "order_item_mappings"
}
