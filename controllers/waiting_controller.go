package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pizzashop/backoffice-api/services"
)

// WaitingController exposes the waiting-list ledger
type WaitingController struct {
	Waiting *services.WaitingService
}

func NewWaitingController(waiting *services.WaitingService) *WaitingController {
	return &WaitingController{Waiting: waiting}
}

// GetWaitingListSections handles GET /api/v1/waiting/sections - sections with
// waiting counts.
func (wc *WaitingController) GetWaitingListSections(c *gin.Context) {
	sections, err := wc.Waiting.GetWaitingListSections()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, sections)
}

// GetWaitingTokens handles GET /api/v1/waiting?section_id=N
func (wc *WaitingController) GetWaitingTokens(c *gin.Context) {
	var sectionID *uint
	if raw := c.Query("section_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondError(c, &services.ValidationError{Reason: "Invalid section id."})
			return
		}
		id := uint(parsed)
		sectionID = &id
	}

	tokens, err := wc.Waiting.GetWaitingTokens(sectionID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, tokens)
}

// GetToken handles GET /api/v1/waiting/:id
func (wc *WaitingController) GetToken(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, &services.ValidationError{Reason: "Invalid token id."})
		return
	}

	token, err := wc.Waiting.GetTokenByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, token)
}

// GetCustomerByEmail handles GET /api/v1/waiting/customer?email=... - used by
// the admission form to prefill returning customers.
func (wc *WaitingController) GetCustomerByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		respondError(c, &services.ValidationError{Reason: "Email is required."})
		return
	}

	customer, err := wc.Waiting.GetCustomerByEmail(email)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, customer)
}

// AddWaitingToken handles POST /api/v1/waiting
func (wc *WaitingController) AddWaitingToken(c *gin.Context) {
	var req services.WaitingTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	if err := wc.Waiting.AddWaitingToken(&req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Waiting token added successfully.",
	})
}

// EditWaitingToken handles PUT /api/v1/waiting/:id
func (wc *WaitingController) EditWaitingToken(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, &services.ValidationError{Reason: "Invalid token id."})
		return
	}

	var req services.WaitingTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	updated, message, err := wc.Waiting.EditWaitingToken(uint(id), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": updated,
		"message": message,
	})
}

// DeleteWaitingToken handles DELETE /api/v1/waiting/:id - soft delete
func (wc *WaitingController) DeleteWaitingToken(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, &services.ValidationError{Reason: "Invalid token id."})
		return
	}

	if err := wc.Waiting.SoftDeleteToken(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Waiting token deleted successfully.",
	})
}
