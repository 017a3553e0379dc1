package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pizzashop/backoffice-api/services"
)

// DashboardController exposes the sales dashboard
type DashboardController struct {
	Dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{Dashboard: dashboard}
}

// GetDashboard handles GET /api/v1/dashboard?filter=...&start=...&end=...
// filter is one of Today, "Last 7 Days", "Last 30 Days", "Current Month" or
// Custom; Custom expects start and end as YYYY-MM-DD.
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	filter := c.DefaultQuery("filter", services.FilterCurrentMonth)

	var customStart, customEnd *time.Time
	if filter == services.FilterCustom {
		start, err := time.Parse("2006-01-02", c.Query("start"))
		if err != nil {
			respondError(c, &services.ValidationError{Reason: "Invalid start date, expected YYYY-MM-DD."})
			return
		}
		end, err := time.Parse("2006-01-02", c.Query("end"))
		if err != nil {
			respondError(c, &services.ValidationError{Reason: "Invalid end date, expected YYYY-MM-DD."})
			return
		}
		customStart, customEnd = &start, &end
	}

	view, err := dc.Dashboard.GetDashboardData(filter, customStart, customEnd)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, view)
}
