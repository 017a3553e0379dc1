package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pizzashop/backoffice-api/config"
	"github.com/pizzashop/backoffice-api/models"
	"github.com/pizzashop/backoffice-api/repository"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	require.NoError(t, config.SeedLookups(db))

	return NewUserService(db, repository.NewUserRepository(db)), db
}

func addUserReq(first, last, username, email string) *AddUserRequest {
	return &AddUserRequest{
		FirstName: first,
		LastName:  last,
		Username:  username,
		Email:     email,
		Password:  "secret-password",
		RoleID:    1,
	}
}

func TestAddUserHashesPassword(t *testing.T) {
	svc, _ := newUserService(t)

	user, err := svc.AddUser(addUserReq("Ava", "Lind", "avalind", "ava@example.com"))
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret-password")))
	assert.Equal(t, models.UserStatusActive, user.Status)
}

func TestAddUserRejectsDuplicates(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.AddUser(addUserReq("Ava", "Lind", "avalind", "ava@example.com"))
	require.NoError(t, err)

	_, err = svc.AddUser(addUserReq("Ada", "Mint", "adamint", "ava@example.com"))
	require.Error(t, err)
	assert.True(t, IsBusinessRule(err))
	assert.Contains(t, err.Error(), "email")

	_, err = svc.AddUser(addUserReq("Ada", "Mint", "avalind", "ada@example.com"))
	require.Error(t, err)
	assert.True(t, IsBusinessRule(err))
	assert.Contains(t, err.Error(), "username")
}

func TestAddUserUnknownRole(t *testing.T) {
	svc, _ := newUserService(t)

	req := addUserReq("Ava", "Lind", "avalind", "ava@example.com")
	req.RoleID = 99
	_, err := svc.AddUser(req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUsersPagingAndSearch(t *testing.T) {
	svc, _ := newUserService(t)

	for i := 1; i <= 7; i++ {
		_, err := svc.AddUser(addUserReq(
			fmt.Sprintf("User%02d", i), "Test",
			fmt.Sprintf("user%02d", i),
			fmt.Sprintf("user%02d@example.com", i),
		))
		require.NoError(t, err)
	}

	page, err := svc.GetUsers(1, 5, "Name", "asc", "")
	require.NoError(t, err)
	assert.EqualValues(t, 7, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 5)
	assert.Equal(t, "User01", page.Items[0].FirstName)

	second, err := svc.GetUsers(2, 5, "Name", "asc", "")
	require.NoError(t, err)
	assert.Len(t, second.Items, 2)

	desc, err := svc.GetUsers(1, 5, "Name", "desc", "")
	require.NoError(t, err)
	assert.Equal(t, "User07", desc.Items[0].FirstName)

	found, err := svc.GetUsers(1, 5, "Name", "asc", "user03")
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "User03", found.Items[0].FirstName)
}

func TestEditUserNoChanges(t *testing.T) {
	svc, _ := newUserService(t)

	user, err := svc.AddUser(addUserReq("Ava", "Lind", "avalind", "ava@example.com"))
	require.NoError(t, err)

	updated, message, err := svc.EditUser(user.ID, &EditUserRequest{
		FirstName: "Ava",
		LastName:  "Lind",
		Username:  "avalind",
		Email:     "ava@example.com",
		RoleID:    1,
		Status:    models.UserStatusActive,
	})
	require.NoError(t, err)
	assert.False(t, updated)
	assert.Equal(t, "No changes detected.", message)
}

func TestEditUserChangesFields(t *testing.T) {
	svc, db := newUserService(t)

	user, err := svc.AddUser(addUserReq("Ava", "Lind", "avalind", "ava@example.com"))
	require.NoError(t, err)

	updated, _, err := svc.EditUser(user.ID, &EditUserRequest{
		FirstName: "Ava",
		LastName:  "Lind",
		Username:  "avalind",
		Email:     "ava@example.com",
		RoleID:    2,
		Status:    models.UserStatusInactive,
	})
	require.NoError(t, err)
	assert.True(t, updated)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.EqualValues(t, 2, stored.RoleID)
	assert.Equal(t, models.UserStatusInactive, stored.Status)
}

func TestEditUserRejectsTakenEmail(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.AddUser(addUserReq("Ava", "Lind", "avalind", "ava@example.com"))
	require.NoError(t, err)
	other, err := svc.AddUser(addUserReq("Ben", "Cole", "bencole", "ben@example.com"))
	require.NoError(t, err)

	_, _, err = svc.EditUser(other.ID, &EditUserRequest{
		FirstName: "Ben",
		LastName:  "Cole",
		Username:  "bencole",
		Email:     "ava@example.com",
		RoleID:    1,
		Status:    models.UserStatusActive,
	})
	require.Error(t, err)
	assert.True(t, IsBusinessRule(err))
}

func TestDeleteUserIsSoft(t *testing.T) {
	svc, db := newUserService(t)

	user, err := svc.AddUser(addUserReq("Ava", "Lind", "avalind", "ava@example.com"))
	require.NoError(t, err)
	require.NoError(t, svc.DeleteUser(user.ID))

	// Hidden from lookups but the row survives
	_, err = svc.GetUserForEdit(user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.True(t, stored.IsDeleted)

	assert.ErrorIs(t, svc.DeleteUser(user.ID), ErrNotFound)
}

func TestChangePassword(t *testing.T) {
	svc, db := newUserService(t)

	_, err := svc.AddUser(addUserReq("Ava", "Lind", "avalind", "ava@example.com"))
	require.NoError(t, err)

	err = svc.ChangePassword("ava@example.com", "wrong-password", "next-password")
	require.Error(t, err)
	assert.True(t, IsBusinessRule(err))

	require.NoError(t, svc.ChangePassword("ava@example.com", "secret-password", "next-password"))

	var stored models.User
	require.NoError(t, db.Where("email = ?", "ava@example.com").First(&stored).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("next-password")))

	err = svc.ChangePassword("ava@example.com", "next-password", "  ")
	assert.True(t, IsValidation(err))

	err = svc.ChangePassword("missing@example.com", "x", "another-password")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserProfile(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.AddUser(addUserReq("Ava", "Lind", "avalind", "ava@example.com"))
	require.NoError(t, err)

	profile, err := svc.GetUserProfile("ava@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ava", profile.FirstName)
	assert.Equal(t, "Admin", profile.RoleName)

	require.NoError(t, svc.UpdateUserProfile("ava@example.com", &UpdateProfileRequest{
		FirstName: "Avery",
		LastName:  "Lind",
		Username:  "avalind",
		Phone:     "555-0003",
	}))

	profile, err = svc.GetUserProfile("ava@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Avery", profile.FirstName)
	assert.Equal(t, "555-0003", profile.Phone)

	_, err = svc.GetUserProfile("missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRolePermissionsRollsBackOnFailure(t *testing.T) {
	svc, db := newUserService(t)

	rows, err := svc.GetPermissionsByRole("Chef")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2)

	// Make the second grant's update fail at the store
	require.NoError(t, db.Exec(fmt.Sprintf(
		`CREATE TRIGGER reject_grant_update BEFORE UPDATE ON role_permissions
		 WHEN NEW.permission_id = %d AND NEW.role_id = %d
		 BEGIN SELECT RAISE(ABORT, 'update blocked'); END`,
		rows[1].PermissionID, rows[1].RoleID,
	)).Error)

	err = svc.UpdateRolePermissions([]PermissionUpdate{
		{RoleID: rows[0].RoleID, PermissionID: rows[0].PermissionID, CanView: true, CanAddEdit: true},
		{RoleID: rows[1].RoleID, PermissionID: rows[1].PermissionID, CanView: true, CanAddEdit: true},
	})
	require.Error(t, err)

	// The first update must have been rolled back with the failed batch
	after, err := svc.GetPermissionsByRole("Chef")
	require.NoError(t, err)
	assert.False(t, after[0].CanAddEdit, "partial batch must not survive")
	assert.False(t, after[1].CanAddEdit)
}

func TestRolePermissionMatrix(t *testing.T) {
	svc, _ := newUserService(t)

	rows, err := svc.GetPermissionsByRole("Chef")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	for _, row := range rows {
		assert.True(t, row.CanView)
		assert.False(t, row.CanAddEdit, "non-admin roles start view-only")
	}

	update := PermissionUpdate{
		RoleID:       rows[0].RoleID,
		PermissionID: rows[0].PermissionID,
		CanView:      true,
		CanAddEdit:   true,
		CanDelete:    false,
	}
	unknown := PermissionUpdate{RoleID: 99, PermissionID: 99, CanView: true}
	require.NoError(t, svc.UpdateRolePermissions([]PermissionUpdate{update, unknown}))

	rows, err = svc.GetPermissionsByRole("Chef")
	require.NoError(t, err)
	assert.True(t, rows[0].CanAddEdit)

	_, err = svc.GetPermissionsByRole("Nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}
