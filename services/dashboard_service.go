package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/pizzashop/backoffice-api/models"
	"github.com/pizzashop/backoffice-api/repository"
)

// Dashboard date-range filters
const (
	FilterToday        = "Today"
	FilterLast7Days    = "Last 7 Days"
	FilterLast30Days   = "Last 30 Days"
	FilterCurrentMonth = "Current Month"
	FilterCustom       = "Custom"
)

// DashboardService aggregates order, customer and waiting-list data into the
// sales dashboard.
type DashboardService struct {
	DB   *gorm.DB
	Repo *repository.DashboardRepository
}

func NewDashboardService(db *gorm.DB, repo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{DB: db, Repo: repo}
}

// ChartPoint is one labelled value of a dashboard chart
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// DashboardView is the full dashboard payload
type DashboardView struct {
	TotalSales         float64                `json:"total_sales"`
	TotalOrders        int                    `json:"total_orders"`
	AverageOrderValue  float64                `json:"average_order_value"`
	RevenueChart       []ChartPoint           `json:"revenue_chart"`
	CustomerGrowth     []ChartPoint           `json:"customer_growth"`
	TopSellingItems    []repository.ItemCount `json:"top_selling_items"`
	LeastSellingItems  []repository.ItemCount `json:"least_selling_items"`
	AverageWaitMinutes float64                `json:"average_wait_minutes"`
	WaitingListCount   int64                  `json:"waiting_list_count"`
	NewCustomers       int64                  `json:"new_customers"`
}

// GetDashboardData builds the dashboard for the given filter. Custom expects
// both bounds; the end date is inclusive. Unknown filters fall back to the
// current month.
func (s *DashboardService) GetDashboardData(filter string, customStart, customEnd *time.Time) (*DashboardView, error) {
	start, end := resolveDateRange(filter, customStart, customEnd, time.Now())

	orders, err := s.Repo.GetOrdersInRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("loading orders: %w", err)
	}

	var totalSales float64
	for _, o := range orders {
		if o.Status != models.OrderStatusCancelled {
			totalSales += o.TotalAmount
		}
	}
	totalOrders := len(orders)
	avgOrderValue := 0.0
	if totalOrders > 0 {
		avgOrderValue = math.Round(totalSales/float64(totalOrders)*100) / 100
	}

	revenueChart := buildRevenueChart(orders)

	dailyCounts, err := s.Repo.GetDailyCustomerCounts(start, end)
	if err != nil {
		return nil, fmt.Errorf("loading customer counts: %w", err)
	}
	growth := make([]ChartPoint, 0, len(dailyCounts))
	var running int64
	for _, dc := range dailyCounts {
		running += dc.Count
		growth = append(growth, ChartPoint{Label: dc.Day.Format("Jan 02"), Value: float64(running)})
	}

	topItems, err := s.Repo.GetTopItems(start, end, 5)
	if err != nil {
		return nil, fmt.Errorf("loading top items: %w", err)
	}
	leastItems, err := s.Repo.GetLeastItems(start, end, 5)
	if err != nil {
		return nil, fmt.Errorf("loading least items: %w", err)
	}

	servedTimes, err := s.Repo.GetServedOrderTimes(start, end)
	if err != nil {
		return nil, fmt.Errorf("loading served orders: %w", err)
	}
	avgWait := 0.0
	if len(servedTimes) > 0 {
		var totalMinutes float64
		for _, st := range servedTimes {
			totalMinutes += st.ServingTime.Sub(st.CreatedAt).Minutes()
		}
		avgWait = math.Round(totalMinutes/float64(len(servedTimes))*10) / 10
	}

	waitingCount, err := s.Repo.GetWaitingCount()
	if err != nil {
		return nil, fmt.Errorf("counting waiting tokens: %w", err)
	}
	newCustomers, err := s.Repo.GetNewCustomerCount(start, end)
	if err != nil {
		return nil, fmt.Errorf("counting new customers: %w", err)
	}

	return &DashboardView{
		TotalSales:         totalSales,
		TotalOrders:        totalOrders,
		AverageOrderValue:  avgOrderValue,
		RevenueChart:       revenueChart,
		CustomerGrowth:     growth,
		TopSellingItems:    topItems,
		LeastSellingItems:  leastItems,
		AverageWaitMinutes: avgWait,
		WaitingListCount:   waitingCount,
		NewCustomers:       newCustomers,
	}, nil
}

// resolveDateRange maps a filter to a half-open [start, end) interval
func resolveDateRange(filter string, customStart, customEnd *time.Time, now time.Time) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if filter == FilterCustom && customStart != nil && customEnd != nil {
		start := time.Date(customStart.Year(), customStart.Month(), customStart.Day(), 0, 0, 0, 0, customStart.Location())
		end := time.Date(customEnd.Year(), customEnd.Month(), customEnd.Day(), 0, 0, 0, 0, customEnd.Location()).AddDate(0, 0, 1)
		return start, end
	}

	switch filter {
	case FilterToday:
		return today, today.AddDate(0, 0, 1)
	case FilterLast7Days:
		return today.AddDate(0, 0, -6), today.AddDate(0, 0, 1)
	case FilterLast30Days:
		return today.AddDate(0, 0, -29), today.AddDate(0, 0, 1)
	default: // Current Month
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0)
	}
}

// buildRevenueChart groups non-cancelled order totals per creation day
func buildRevenueChart(orders []models.Order) []ChartPoint {
	byDay := make(map[string]float64)
	var days []time.Time
	seen := make(map[string]bool)
	for _, o := range orders {
		if o.Status == models.OrderStatusCancelled {
			continue
		}
		day := time.Date(o.CreatedAt.Year(), o.CreatedAt.Month(), o.CreatedAt.Day(), 0, 0, 0, 0, o.CreatedAt.Location())
		key := day.Format("2006-01-02")
		byDay[key] += o.TotalAmount
		if !seen[key] {
			seen[key] = true
			days = append(days, day)
		}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	chart := make([]ChartPoint, 0, len(days))
	for _, day := range days {
		chart = append(chart, ChartPoint{
			Label: day.Format("Jan 02"),
			Value: byDay[day.Format("2006-01-02")],
		})
	}
	return chart
}
