package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pizzashop/backoffice-api/models"
	"github.com/pizzashop/backoffice-api/repository"
	"github.com/pizzashop/backoffice-api/services"
)

func newDashboardRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	dc := NewDashboardController(services.NewDashboardService(db, repository.NewDashboardRepository(db)))

	r := gin.New()
	r.GET("/api/v1/dashboard", dc.GetDashboard)
	return r, db
}

func TestGetDashboardEndpoint(t *testing.T) {
	r, db := newDashboardRouter(t)

	customer := models.Customer{Name: "Dash Guest", Email: "dash@example.com"}
	require.NoError(t, db.Create(&customer).Error)
	require.NoError(t, db.Create(&models.Order{
		CustomerID: customer.ID, Status: models.OrderStatusServed, TotalAmount: 75,
	}).Error)

	w := doJSON(r, "GET", "/api/v1/dashboard?filter=Today", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			TotalSales  float64 `json:"total_sales"`
			TotalOrders int     `json:"total_orders"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 75.0, resp.Data.TotalSales)
	assert.Equal(t, 1, resp.Data.TotalOrders)
}

func TestGetDashboardCustomRangeValidation(t *testing.T) {
	r, _ := newDashboardRouter(t)

	w := doJSON(r, "GET", "/api/v1/dashboard?filter=Custom", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))

	w = doJSON(r, "GET", "/api/v1/dashboard?filter=Custom&start=2026-08-01&end=2026-08-31", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
