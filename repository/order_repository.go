package repository

import (
	"gorm.io/gorm"

	"github.com/pizzashop/backoffice-api/models"
)

// OrderRepository provides data access for orders and their mapping rows
type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// CreateOrder inserts a new order inside the given transaction
func (r *OrderRepository) CreateOrder(tx *gorm.DB, order *models.Order) error {
	return tx.Create(order).Error
}

// CreateOrderTableMapping inserts one order-table link inside the given transaction
func (r *OrderRepository) CreateOrderTableMapping(tx *gorm.DB, mapping *models.OrderTableMapping) error {
	return tx.Create(mapping).Error
}

// CreateOrderTaxMapping inserts one tax snapshot row inside the given transaction
func (r *OrderRepository) CreateOrderTaxMapping(tx *gorm.DB, mapping *models.OrderTaxMapping) error {
	return tx.Create(mapping).Error
}

// GetEnabledTaxes returns the currently active tax/fee definitions
func (r *OrderRepository) GetEnabledTaxes(tx *gorm.DB) ([]models.TaxesFee, error) {
	var taxes []models.TaxesFee
	err := tx.Where("is_enabled = ?", true).Order("id ASC").Find(&taxes).Error
	return taxes, err
}

// GetOrderWithMappings returns an order with its table and tax rows preloaded
func (r *OrderRepository) GetOrderWithMappings(orderID uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.Preload("Tables").Preload("Taxes").First(&order, orderID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
