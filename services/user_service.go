package services

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pizzashop/backoffice-api/models"
	"github.com/pizzashop/backoffice-api/repository"
	"github.com/pizzashop/backoffice-api/utils"
)

// UserService implements user administration, profiles and the
// role-permission matrix.
type UserService struct {
	DB   *gorm.DB
	Repo *repository.UserRepository
}

func NewUserService(db *gorm.DB, repo *repository.UserRepository) *UserService {
	return &UserService{DB: db, Repo: repo}
}

// AddUserRequest carries the fields needed to create a back-office user
type AddUserRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Password  string `json:"password" binding:"required,min=8"`
	RoleID    uint   `json:"role_id" binding:"required"`
	Address   string `json:"address"`
	Zipcode   string `json:"zipcode"`
}

// EditUserRequest carries the editable fields of a user
type EditUserRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	RoleID    uint   `json:"role_id" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=Active Inactive"`
	Address   string `json:"address"`
	Zipcode   string `json:"zipcode"`
}

// GetUsers returns one page of users with role names, filtered by search and
// sorted by Name or Role.
func (s *UserService) GetUsers(page, pageSize int, sortBy, sortOrder, search string) (*utils.PagedResult[repository.UserRow], error) {
	page, pageSize = utils.NormalizePaging(page, pageSize)

	rows, total, err := s.Repo.ListUsers(page, pageSize, sortBy, sortOrder, search)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	result := utils.NewPagedResult(rows, page, pageSize, total)
	return &result, nil
}

// AddUser creates a back-office user. The role must exist and the email and
// username must be unused; the password is stored as a bcrypt hash.
func (s *UserService) AddUser(req *AddUserRequest) (*models.User, error) {
	role, err := s.Repo.GetRoleByID(req.RoleID)
	if err != nil {
		return nil, fmt.Errorf("loading role: %w", err)
	}
	if role == nil {
		return nil, fmt.Errorf("role: %w", ErrNotFound)
	}

	if existing, err := s.Repo.GetUserByEmail(req.Email); err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	} else if existing != nil {
		return nil, &BusinessRuleError{Reason: "Account already exists with this email."}
	}
	if existing, err := s.Repo.GetUserByUsername(req.Username); err != nil {
		return nil, fmt.Errorf("checking username: %w", err)
	} else if existing != nil {
		return nil, &BusinessRuleError{Reason: "Account already exists with this username."}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  string(hash),
		RoleID:    req.RoleID,
		Status:    models.UserStatusActive,
		Address:   req.Address,
		Zipcode:   req.Zipcode,
	}
	if err := s.Repo.CreateUser(user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

// GetUserForEdit returns the editable fields of a user, or ErrNotFound
func (s *UserService) GetUserForEdit(id uint) (*models.User, error) {
	user, err := s.Repo.GetUserByID(id)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// EditUser updates a user. When every submitted field matches the stored
// state it reports (false, "No changes detected.") and performs zero writes.
func (s *UserService) EditUser(id uint, req *EditUserRequest) (bool, string, error) {
	user, err := s.Repo.GetUserByID(id)
	if err != nil {
		return false, "", fmt.Errorf("loading user: %w", err)
	}
	if user == nil {
		return false, "", ErrNotFound
	}

	unchanged := user.FirstName == req.FirstName &&
		user.LastName == req.LastName &&
		user.Username == req.Username &&
		user.Email == req.Email &&
		user.Phone == req.Phone &&
		user.RoleID == req.RoleID &&
		user.Status == req.Status &&
		user.Address == req.Address &&
		user.Zipcode == req.Zipcode
	if unchanged {
		return false, "No changes detected.", nil
	}

	if user.Email != req.Email {
		if existing, err := s.Repo.GetUserByEmail(req.Email); err != nil {
			return false, "", fmt.Errorf("checking email: %w", err)
		} else if existing != nil && existing.ID != user.ID {
			return false, "", &BusinessRuleError{Reason: "Account already exists with this email."}
		}
	}
	if user.Username != req.Username {
		if existing, err := s.Repo.GetUserByUsername(req.Username); err != nil {
			return false, "", fmt.Errorf("checking username: %w", err)
		} else if existing != nil && existing.ID != user.ID {
			return false, "", &BusinessRuleError{Reason: "Account already exists with this username."}
		}
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Username = req.Username
	user.Email = req.Email
	user.Phone = req.Phone
	user.RoleID = req.RoleID
	user.Status = req.Status
	user.Address = req.Address
	user.Zipcode = req.Zipcode

	if err := s.Repo.UpdateUser(user); err != nil {
		return false, "", fmt.Errorf("updating user: %w", err)
	}
	return true, "User updated successfully.", nil
}

// DeleteUser soft-deletes a user, or returns ErrNotFound
func (s *UserService) DeleteUser(id uint) error {
	user, err := s.Repo.GetUserByID(id)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}
	if err := s.Repo.SoftDeleteUser(user); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

// GetRoles returns all roles
func (s *UserService) GetRoles() ([]models.Role, error) {
	return s.Repo.GetRoles()
}

// ProfileView is the user's own profile shape
type ProfileView struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	RoleName  string `json:"role_name"`
	Address   string `json:"address"`
	Zipcode   string `json:"zipcode"`
}

// GetUserProfile returns the profile of the user with the given email
func (s *UserService) GetUserProfile(email string) (*ProfileView, error) {
	user, err := s.Repo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	role, err := s.Repo.GetRoleByID(user.RoleID)
	if err != nil {
		return nil, fmt.Errorf("loading role: %w", err)
	}
	roleName := ""
	if role != nil {
		roleName = role.RoleName
	}

	return &ProfileView{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		RoleName:  roleName,
		Address:   user.Address,
		Zipcode:   user.Zipcode,
	}, nil
}

// UpdateProfileRequest carries the self-editable profile fields
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Zipcode   string `json:"zipcode"`
}

// UpdateUserProfile updates the profile of the user with the given email
func (s *UserService) UpdateUserProfile(email string, req *UpdateProfileRequest) error {
	user, err := s.Repo.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Username = req.Username
	user.Phone = req.Phone
	user.Address = req.Address
	user.Zipcode = req.Zipcode

	if err := s.Repo.UpdateUser(user); err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	return nil
}

// ChangePassword verifies the current password and stores a hash of the new
// one. A wrong current password is a BusinessRuleError.
func (s *UserService) ChangePassword(email, currentPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return &ValidationError{Reason: "New password is required."}
	}

	user, err := s.Repo.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return &BusinessRuleError{Reason: "Current password is incorrect."}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	user.Password = string(hash)

	if err := s.Repo.UpdateUser(user); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	return nil
}

// PermissionUpdate is one grant row of the role-permission matrix
type PermissionUpdate struct {
	RoleID       uint `json:"role_id" binding:"required"`
	PermissionID uint `json:"permission_id" binding:"required"`
	CanView      bool `json:"can_view"`
	CanAddEdit   bool `json:"can_add_edit"`
	CanDelete    bool `json:"can_delete"`
}

// GetPermissionsByRole returns the grants of the named role
func (s *UserService) GetPermissionsByRole(roleName string) ([]repository.RolePermissionRow, error) {
	role, err := s.Repo.GetRoleByName(roleName)
	if err != nil {
		return nil, fmt.Errorf("loading role: %w", err)
	}
	if role == nil {
		return nil, fmt.Errorf("role %q: %w", roleName, ErrNotFound)
	}
	return s.Repo.GetRolePermissionsByRoleID(role.ID)
}

// UpdateRolePermissions applies grant flag changes in one transaction, so a
// failure part-way through leaves the matrix as it was. Rows for unknown
// role/permission pairs are skipped, matching the admin screen's behavior of
// sending the full matrix.
func (s *UserService) UpdateRolePermissions(updates []PermissionUpdate) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			grant, err := s.Repo.GetRolePermission(tx, u.RoleID, u.PermissionID)
			if err != nil {
				return fmt.Errorf("loading grant: %w", err)
			}
			if grant == nil {
				continue
			}

			grant.CanView = u.CanView
			grant.CanAddEdit = u.CanAddEdit
			grant.CanDelete = u.CanDelete
			if err := s.Repo.UpdateRolePermission(tx, grant); err != nil {
				return fmt.Errorf("updating grant: %w", err)
			}
		}
		return nil
	})
}
