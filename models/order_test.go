package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTableNames(t *testing.T) {
	assert.Equal(t, "orders", Order{}.TableName())
	assert.Equal(t, "order_table_mappings", OrderTableMapping{}.TableName())
	assert.Equal(t, "order_tax_mappings", OrderTaxMapping{}.TableName())
	assert.Equal(t, "order_item_mappings", OrderItemMapping{}.TableName())
}

func TestOrderStatusConstants(t *testing.T) {
	assert.Equal(t, "Pending", OrderStatusPending)
	assert.Equal(t, "Served", OrderStatusServed)
	assert.Equal(t, "Cancelled", OrderStatusCancelled)
}

func TestDiningTableStatusConstants(t *testing.T) {
	assert.Equal(t, "Available", TableStatusAvailable)
	assert.Equal(t, "Assigned", TableStatusAssigned)
}

func TestAllIncludesEveryModel(t *testing.T) {
	all := All()
	assert.Len(t, all, 13, "All() should register every migratable model")
}
