package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pizzashop/backoffice-api/models"
)

// TableRepository provides data access for sections and dining tables
type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

// GetSections returns all active sections ordered by name
func (r *TableRepository) GetSections() ([]models.Section, error) {
	var sections []models.Section
	err := r.DB.Order("name ASC").Find(&sections).Error
	return sections, err
}

// GetSectionsWithTables returns all active sections with their tables preloaded
func (r *TableRepository) GetSectionsWithTables() ([]models.Section, error) {
	var sections []models.Section
	err := r.DB.Preload("Tables").Order("name ASC").Find(&sections).Error
	return sections, err
}

// GetSectionsWithAvailableTables returns the sections that currently have at
// least one available table.
func (r *TableRepository) GetSectionsWithAvailableTables() ([]models.Section, error) {
	var sections []models.Section
	err := r.DB.
		Joins("JOIN dining_tables dt ON dt.section_id = sections.id AND dt.deleted_at IS NULL").
		Where("dt.status = ?", models.TableStatusAvailable).
		Group("sections.id").
		Order("sections.name ASC").
		Find(&sections).Error
	return sections, err
}

// GetAvailableTablesBySection returns the available tables of one section
func (r *TableRepository) GetAvailableTablesBySection(sectionID uint) ([]models.DiningTable, error) {
	var tables []models.DiningTable
	err := r.DB.
		Where("section_id = ? AND status = ?", sectionID, models.TableStatusAvailable).
		Order("name ASC").
		Find(&tables).Error
	return tables, err
}

// GetTablesByIDs loads the given tables in the caller-supplied order. When
// called inside a transaction on postgres the rows are locked with
// SELECT ... FOR UPDATE so concurrent assignments serialize on the same
// tables; the sqlite test driver has a single writer and needs no lock.
func (r *TableRepository) GetTablesByIDs(tx *gorm.DB, ids []uint) ([]models.DiningTable, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var tables []models.DiningTable
	if err := q.Where("id IN ?", ids).Find(&tables).Error; err != nil {
		return nil, err
	}

	// Find returns rows in storage order; re-order to match the selection.
	byID := make(map[uint]models.DiningTable, len(tables))
	for _, t := range tables {
		byID[t.ID] = t
	}
	ordered := make([]models.DiningTable, 0, len(tables))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered, nil
}

// UpdateTableStatus flips a table's occupancy status inside the given transaction
func (r *TableRepository) UpdateTableStatus(tx *gorm.DB, tableID uint, status string) error {
	return tx.Model(&models.DiningTable{}).
		Where("id = ?", tableID).
		Update("status", status).Error
}

// GetRunningOrderIDByTable returns the id of the pending order seated at the
// given table, or nil when the table has none.
func (r *TableRepository) GetRunningOrderIDByTable(tableID uint) (*uint, error) {
	var orderID uint
	err := r.DB.Model(&models.OrderTableMapping{}).
		Select("order_table_mappings.order_id").
		Joins("JOIN orders o ON o.id = order_table_mappings.order_id").
		Where("order_table_mappings.table_id = ? AND o.status = ?", tableID, models.OrderStatusPending).
		Order("order_table_mappings.order_id DESC").
		Limit(1).
		Scan(&orderID).Error
	if err != nil {
		return nil, err
	}
	if orderID == 0 {
		return nil, nil
	}
	return &orderID, nil
}
