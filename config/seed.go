package config

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pizzashop/backoffice-api/models"
)

// SeedLookups inserts the lookup data the application expects: roles, the
// permission areas, a full role-permission matrix and the default taxes.
// It is idempotent and safe to run on every startup.
func SeedLookups(db *gorm.DB) error {
	// Roles
	roles := []string{"Admin", "Account Manager", "Chef"}
	for _, name := range roles {
		if err := db.FirstOrCreate(&models.Role{}, models.Role{RoleName: name}).Error; err != nil {
			return err
		}
	}

	// Permission areas
	areas := []string{"Users", "Roles and Permissions", "Tables and Sections", "Waiting List", "Dashboard", "Taxes and Fees"}
	for _, name := range areas {
		if err := db.FirstOrCreate(&models.Permission{}, models.Permission{PermissionName: name}).Error; err != nil {
			return err
		}
	}

	// Role-permission matrix: Admin gets everything, the other roles get
	// view-only access until an admin widens them.
	var allRoles []models.Role
	if err := db.Find(&allRoles).Error; err != nil {
		return err
	}
	var allAreas []models.Permission
	if err := db.Find(&allAreas).Error; err != nil {
		return err
	}
	for _, role := range allRoles {
		isAdmin := role.RoleName == "Admin"
		for _, area := range allAreas {
			grant := models.RolePermission{RoleID: role.ID, PermissionID: area.ID}
			if err := db.Where(grant).Attrs(models.RolePermission{
				CanView:    true,
				CanAddEdit: isAdmin,
				CanDelete:  isAdmin,
			}).FirstOrCreate(&models.RolePermission{}).Error; err != nil {
				return err
			}
		}
	}

	// Default taxes
	taxes := []models.TaxesFee{
		{Name: "GST", Value: 5, IsEnabled: true},
		{Name: "Service Charge", Value: 10, IsEnabled: true},
	}
	for _, tax := range taxes {
		if err := db.Where(models.TaxesFee{Name: tax.Name}).
			Attrs(tax).FirstOrCreate(&models.TaxesFee{}).Error; err != nil {
			return err
		}
	}

	return nil
}

// SeedAdmin creates the bootstrap admin user from ADMIN_EMAIL/ADMIN_PASSWORD.
// Skipped when either variable is unset or the user already exists.
func SeedAdmin(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	pass := os.Getenv("ADMIN_PASSWORD")
	if email == "" || pass == "" {
		log.Println("Skipping admin seed: ADMIN_EMAIL/ADMIN_PASSWORD not set")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var adminRole models.Role
	if err := db.Where("role_name = ?", "Admin").First(&adminRole).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		FirstName: "Admin",
		LastName:  "Seed",
		Username:  "admin",
		Email:     email,
		Password:  string(hash),
		RoleID:    adminRole.ID,
		Status:    models.UserStatusActive,
	}
	return db.Create(&admin).Error
}
