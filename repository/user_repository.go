package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/pizzashop/backoffice-api/models"
)

// UserRepository provides data access for users, roles and permissions
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// GetUserByEmail returns the non-deleted user with the given email, or nil
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	return r.firstUser("email = ? AND is_deleted = ?", email, false)
}

// GetUserByUsername returns the non-deleted user with the given username, or nil
func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	return r.firstUser("username = ? AND is_deleted = ?", username, false)
}

// GetUserByID returns the non-deleted user with the given id, or nil
func (r *UserRepository) GetUserByID(id uint) (*models.User, error) {
	return r.firstUser("id = ? AND is_deleted = ?", id, false)
}

func (r *UserRepository) firstUser(query string, args ...interface{}) (*models.User, error) {
	var user models.User
	err := r.DB.Where(query, args...).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserRow is a user joined with its role name for list views
type UserRow struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	RoleName  string `json:"role_name"`
	Status    string `json:"status"`
}

// ListUsers returns one page of non-deleted users joined with role names,
// plus the total match count. search filters on first/last name; sortBy is
// "Name" or "Role".
func (r *UserRepository) ListUsers(page, pageSize int, sortBy, sortOrder, search string) ([]UserRow, int64, error) {
	base := r.DB.Table("users AS u").
		Joins("JOIN roles r ON r.id = u.role_id").
		Where("u.is_deleted = ?", false)

	if s := strings.TrimSpace(search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		base = base.Where("LOWER(u.first_name) LIKE ? OR LOWER(u.last_name) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dir := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		dir = "DESC"
	}
	var order string
	switch sortBy {
	case "Role":
		order = "r.role_name " + dir
	case "Name":
		order = "u.first_name " + dir
	default:
		order = "u.id ASC"
	}

	var rows []UserRow
	err := base.
		Select("u.id, u.first_name, u.last_name, u.email, u.phone, u.status, r.role_name").
		Order(order).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Scan(&rows).Error
	return rows, total, err
}

// CreateUser inserts a new user
func (r *UserRepository) CreateUser(user *models.User) error {
	return r.DB.Create(user).Error
}

// UpdateUser persists changed user fields
func (r *UserRepository) UpdateUser(user *models.User) error {
	return r.DB.Save(user).Error
}

// SoftDeleteUser marks a user deleted; the row is kept for audit history
func (r *UserRepository) SoftDeleteUser(user *models.User) error {
	user.IsDeleted = true
	return r.DB.Save(user).Error
}

// GetRoles returns all roles
func (r *UserRepository) GetRoles() ([]models.Role, error) {
	var roles []models.Role
	err := r.DB.Order("id ASC").Find(&roles).Error
	return roles, err
}

// GetRoleByID returns the role with the given id, or nil
func (r *UserRepository) GetRoleByID(id uint) (*models.Role, error) {
	var role models.Role
	err := r.DB.First(&role, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// GetRoleByName returns the role with the given name, or nil
func (r *UserRepository) GetRoleByName(name string) (*models.Role, error) {
	var role models.Role
	err := r.DB.Where("role_name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// RolePermissionRow is a role grant joined with its permission area name
type RolePermissionRow struct {
	RoleID         uint   `json:"role_id"`
	PermissionID   uint   `json:"permission_id"`
	PermissionName string `json:"permission_name"`
	CanView        bool   `json:"can_view"`
	CanAddEdit     bool   `json:"can_add_edit"`
	CanDelete      bool   `json:"can_delete"`
}

// GetRolePermissionsByRoleID returns every grant of one role with the
// permission names resolved.
func (r *UserRepository) GetRolePermissionsByRoleID(roleID uint) ([]RolePermissionRow, error) {
	var rows []RolePermissionRow
	err := r.DB.Table("role_permissions AS rp").
		Select("rp.role_id, rp.permission_id, rp.can_view, rp.can_add_edit, rp.can_delete, p.permission_name").
		Joins("JOIN permissions p ON p.id = rp.permission_id").
		Where("rp.role_id = ?", roleID).
		Order("rp.permission_id ASC").
		Scan(&rows).Error
	return rows, err
}

// GetRolePermission returns one grant, or nil when the pair has none
func (r *UserRepository) GetRolePermission(tx *gorm.DB, roleID, permissionID uint) (*models.RolePermission, error) {
	var grant models.RolePermission
	err := tx.Where("role_id = ? AND permission_id = ?", roleID, permissionID).First(&grant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

// UpdateRolePermission persists changed grant flags inside the given transaction
func (r *UserRepository) UpdateRolePermission(tx *gorm.DB, grant *models.RolePermission) error {
	return tx.Save(grant).Error
}
