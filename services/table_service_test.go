package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pizzashop/backoffice-api/models"
	"github.com/pizzashop/backoffice-api/repository"
)

func newTableService(t *testing.T) (*TableService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	return NewTableService(db, repository.NewTableRepository(db)), db
}

func TestGetSectionsWithTables(t *testing.T) {
	svc, db := newTableService(t)
	_, tableIDs := seedFloor(t, db)

	views, err := svc.GetSectionsWithTables()
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Main Hall", views[0].Name)
	require.Len(t, views[0].Tables, 2)
	assert.Equal(t, tableIDs[0], views[0].Tables[0].ID)
	assert.Equal(t, 2, views[0].Tables[0].Capacity)
}

func TestGetSectionsWithAvailableTables(t *testing.T) {
	svc, db := newTableService(t)
	sectionID, tableIDs := seedFloor(t, db)

	// A second section with only an occupied table must not show up
	full := models.Section{Name: "Bar"}
	require.NoError(t, db.Create(&full).Error)
	require.NoError(t, db.Create(&models.DiningTable{
		SectionID: full.ID, Name: "B1", Capacity: 2, Status: models.TableStatusAssigned,
	}).Error)

	views, err := svc.GetSectionsWithAvailableTables()
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, sectionID, views[0].ID)

	tables, err := svc.GetAvailableTablesBySection(sectionID)
	require.NoError(t, err)
	assert.Len(t, tables, 2)

	// Occupy one and the section's available list shrinks
	require.NoError(t, db.Model(&models.DiningTable{}).
		Where("id = ?", tableIDs[0]).
		Update("status", models.TableStatusAssigned).Error)
	tables, err = svc.GetAvailableTablesBySection(sectionID)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, tableIDs[1], tables[0].ID)
}

func TestGetOrderIDByTable(t *testing.T) {
	svc, db := newTableService(t)
	_, tableIDs := seedFloor(t, db)
	customer := seedCustomer(t, db, "table@example.com")

	_, err := svc.GetOrderIDByTable(tableIDs[0])
	assert.ErrorIs(t, err, ErrNotFound)

	order := models.Order{CustomerID: customer.ID, Status: models.OrderStatusPending}
	require.NoError(t, db.Create(&order).Error)
	require.NoError(t, db.Create(&models.OrderTableMapping{
		OrderID: order.ID, TableID: tableIDs[0], SeatedTableName: "T1", NoOfPersons: 2,
	}).Error)

	orderID, err := svc.GetOrderIDByTable(tableIDs[0])
	require.NoError(t, err)
	assert.Equal(t, order.ID, orderID)

	// Served orders are no longer running
	require.NoError(t, db.Model(&order).Update("status", models.OrderStatusServed).Error)
	_, err = svc.GetOrderIDByTable(tableIDs[0])
	assert.ErrorIs(t, err, ErrNotFound)
}
