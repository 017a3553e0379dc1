package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/pizzashop/backoffice-api/models"
)

// DashboardRepository provides the aggregation queries behind the sales dashboard
type DashboardRepository struct {
	DB *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{DB: db}
}

// GetOrdersInRange returns all orders created in [start, end)
func (r *DashboardRepository) GetOrdersInRange(start, end time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.
		Where("created_at >= ? AND created_at < ?", start, end).
		Find(&orders).Error
	return orders, err
}

// DailyCount is a per-day row count
type DailyCount struct {
	Day   time.Time
	Count int64
}

// GetDailyCustomerCounts returns the number of customers created per day in
// [start, end), oldest day first.
func (r *DashboardRepository) GetDailyCustomerCounts(start, end time.Time) ([]DailyCount, error) {
	var rows []struct {
		Day   string
		Count int64
	}
	err := r.DB.Model(&models.Customer{}).
		Select("DATE(created_at) AS day, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make([]DailyCount, 0, len(rows))
	for _, row := range rows {
		day, err := time.Parse("2006-01-02", row.Day)
		if err != nil {
			// Some drivers return a full timestamp for DATE()
			day, err = time.Parse(time.RFC3339, row.Day)
			if err != nil {
				continue
			}
		}
		counts = append(counts, DailyCount{Day: day, Count: row.Count})
	}
	return counts, nil
}

// ItemCount aggregates ordered quantity per item name
type ItemCount struct {
	ItemName string `json:"item_name"`
	Quantity int64  `json:"quantity"`
}

// GetTopItems returns the limit best-selling items in [start, end)
func (r *DashboardRepository) GetTopItems(start, end time.Time, limit int) ([]ItemCount, error) {
	return r.itemCounts(start, end, limit, "quantity DESC")
}

// GetLeastItems returns the limit worst-selling items in [start, end)
func (r *DashboardRepository) GetLeastItems(start, end time.Time, limit int) ([]ItemCount, error) {
	return r.itemCounts(start, end, limit, "quantity ASC")
}

func (r *DashboardRepository) itemCounts(start, end time.Time, limit int, order string) ([]ItemCount, error) {
	var rows []ItemCount
	err := r.DB.Table("order_item_mappings AS oi").
		Select("oi.item_name, SUM(oi.quantity) AS quantity").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.created_at >= ? AND o.created_at < ?", start, end).
		Group("oi.item_name").
		Order(order).
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// ServedOrderTimes carries the timestamps needed for wait-time statistics
type ServedOrderTimes struct {
	CreatedAt   time.Time
	ServingTime time.Time
}

// GetServedOrderTimes returns creation and serving timestamps of all orders
// served in [start, end).
func (r *DashboardRepository) GetServedOrderTimes(start, end time.Time) ([]ServedOrderTimes, error) {
	var rows []ServedOrderTimes
	err := r.DB.Model(&models.Order{}).
		Select("created_at, serving_time").
		Where("serving_time IS NOT NULL AND created_at >= ? AND created_at < ?", start, end).
		Scan(&rows).Error
	return rows, err
}

// GetWaitingCount returns the current number of active waiting tokens
func (r *DashboardRepository) GetWaitingCount() (int64, error) {
	var count int64
	err := r.DB.Model(&models.WaitingToken{}).
		Where("is_assigned = ? AND is_deleted = ?", false, false).
		Count(&count).Error
	return count, err
}

// GetNewCustomerCount returns the number of customers created in [start, end)
func (r *DashboardRepository) GetNewCustomerCount(start, end time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Customer{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	return count, err
}
