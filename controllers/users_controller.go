package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pizzashop/backoffice-api/services"
)

// UsersController exposes user administration, profiles and the
// role-permission matrix.
type UsersController struct {
	Users *services.UserService
}

func NewUsersController(users *services.UserService) *UsersController {
	return &UsersController{Users: users}
}

// GetUsers handles GET /api/v1/users with paging, sorting and search:
// ?page=1&page_size=5&sort_by=Name&sort_order=asc&search=term
func (uc *UsersController) GetUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "5"))
	sortBy := c.DefaultQuery("sort_by", "Name")
	sortOrder := c.DefaultQuery("sort_order", "asc")
	search := c.Query("search")

	result, err := uc.Users.GetUsers(page, pageSize, sortBy, sortOrder, search)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

// AddUser handles POST /api/v1/users
func (uc *UsersController) AddUser(c *gin.Context) {
	var req services.AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	user, err := uc.Users.AddUser(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, user)
}

// GetUserForEdit handles GET /api/v1/users/:id
func (uc *UsersController) GetUserForEdit(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, &services.ValidationError{Reason: "Invalid user id."})
		return
	}

	user, err := uc.Users.GetUserForEdit(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, user)
}

// EditUser handles PUT /api/v1/users/:id
func (uc *UsersController) EditUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, &services.ValidationError{Reason: "Invalid user id."})
		return
	}

	var req services.EditUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	updated, message, err := uc.Users.EditUser(uint(id), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": updated,
		"message": message,
	})
}

// DeleteUser handles DELETE /api/v1/users/:id - soft delete
func (uc *UsersController) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, &services.ValidationError{Reason: "Invalid user id."})
		return
	}

	if err := uc.Users.DeleteUser(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully.",
	})
}

// GetRoles handles GET /api/v1/roles
func (uc *UsersController) GetRoles(c *gin.Context) {
	roles, err := uc.Users.GetRoles()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, roles)
}

// GetRolePermissions handles GET /api/v1/roles/:name/permissions
func (uc *UsersController) GetRolePermissions(c *gin.Context) {
	permissions, err := uc.Users.GetPermissionsByRole(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, permissions)
}

// UpdateRolePermissions handles PUT /api/v1/roles/permissions
func (uc *UsersController) UpdateRolePermissions(c *gin.Context) {
	var updates []services.PermissionUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		bindingError(c, err)
		return
	}

	if err := uc.Users.UpdateRolePermissions(updates); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Permissions updated successfully.",
	})
}

// GetProfile handles GET /api/v1/profile?email=... The acting user's identity
// comes from the session layer in front of this API.
func (uc *UsersController) GetProfile(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		respondError(c, &services.ValidationError{Reason: "Email is required."})
		return
	}

	profile, err := uc.Users.GetUserProfile(email)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, profile)
}

// UpdateProfile handles PUT /api/v1/profile?email=...
func (uc *UsersController) UpdateProfile(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		respondError(c, &services.ValidationError{Reason: "Email is required."})
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	if err := uc.Users.UpdateUserProfile(email, &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully.",
	})
}

// ChangePasswordRequest represents the request body for a password change
type ChangePasswordRequest struct {
	Email           string `json:"email" binding:"required,email"`
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword handles POST /api/v1/profile/password
func (uc *UsersController) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	if err := uc.Users.ChangePassword(req.Email, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password changed successfully.",
	})
}
