package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pizzashop/backoffice-api/services"
)

// TablesController exposes the section/table reference data and the
// table-assignment operation.
type TablesController struct {
	Tables  *services.TableService
	Waiting *services.WaitingService
}

func NewTablesController(tables *services.TableService, waiting *services.WaitingService) *TablesController {
	return &TablesController{Tables: tables, Waiting: waiting}
}

// GetSectionsWithTables handles GET /api/v1/sections/tables - the floor view
func (tc *TablesController) GetSectionsWithTables(c *gin.Context) {
	sections, err := tc.Tables.GetSectionsWithTables()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, sections)
}

// GetSections handles GET /api/v1/sections
func (tc *TablesController) GetSections(c *gin.Context) {
	sections, err := tc.Tables.GetAllSections()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, sections)
}

// GetSectionsWithAvailableTables handles GET /api/v1/sections/available
func (tc *TablesController) GetSectionsWithAvailableTables(c *gin.Context) {
	sections, err := tc.Tables.GetSectionsWithAvailableTables()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, sections)
}

// GetAvailableTables handles GET /api/v1/sections/:id/tables/available
func (tc *TablesController) GetAvailableTables(c *gin.Context) {
	sectionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, &services.ValidationError{Reason: "Invalid section id."})
		return
	}

	tables, err := tc.Tables.GetAvailableTablesBySection(uint(sectionID))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, tables)
}

// GetOrderByTable handles GET /api/v1/tables/:id/order - resolves the pending
// order seated at a table.
func (tc *TablesController) GetOrderByTable(c *gin.Context) {
	tableID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, &services.ValidationError{Reason: "Invalid table id."})
		return
	}

	orderID, err := tc.Tables.GetOrderIDByTable(uint(tableID))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"order_id": orderID})
}

// AssignTablesRequest represents the request body for assigning tables
type AssignTablesRequest struct {
	CustomerID     uint   `json:"customer_id" binding:"required"`
	SelectedTables []uint `json:"selected_tables" binding:"required,min=1"`
	NoOfPersons    int    `json:"no_of_persons" binding:"required,gt=0"`
}

// AssignTables handles POST /api/v1/tables/assign - seats a party and creates
// its order in one transaction.
func (tc *TablesController) AssignTables(c *gin.Context) {
	var req AssignTablesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	result, err := tc.Waiting.AssignTables(req.CustomerID, req.SelectedTables, req.NoOfPersons)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, result)
}
