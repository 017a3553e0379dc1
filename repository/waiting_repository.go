package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pizzashop/backoffice-api/models"
)

// WaitingRepository provides data access for customers and waiting tokens
type WaitingRepository struct {
	DB *gorm.DB
}

func NewWaitingRepository(db *gorm.DB) *WaitingRepository {
	return &WaitingRepository{DB: db}
}

// SectionWaitingCount is a per-section count of active waiting tokens
type SectionWaitingCount struct {
	SectionID uint
	Count     int64
}

// GetActiveWaitingCounts returns the number of waiting (not assigned, not
// deleted) tokens per section.
func (r *WaitingRepository) GetActiveWaitingCounts() ([]SectionWaitingCount, error) {
	var counts []SectionWaitingCount
	err := r.DB.Model(&models.WaitingToken{}).
		Select("section_id, COUNT(*) AS count").
		Where("is_assigned = ? AND is_deleted = ?", false, false).
		Group("section_id").
		Scan(&counts).Error
	return counts, err
}

// WaitingTokenRow is a waiting token joined with its customer's contact fields
type WaitingTokenRow struct {
	ID          uint      `json:"id"`
	CustomerID  uint      `json:"customer_id"`
	SectionID   uint      `json:"section_id"`
	NoOfPersons int       `json:"no_of_persons"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
}

// GetWaitingTokens returns the active waiting tokens with customer details,
// oldest first. A nil sectionID returns every section.
func (r *WaitingRepository) GetWaitingTokens(sectionID *uint) ([]WaitingTokenRow, error) {
	q := r.DB.Table("waiting_tokens AS w").
		Select("w.id, w.customer_id, w.section_id, w.no_of_persons, w.created_at, c.name, c.email, c.phone").
		Joins("JOIN customers c ON c.id = w.customer_id").
		Where("w.is_assigned = ? AND w.is_deleted = ?", false, false)
	if sectionID != nil {
		q = q.Where("w.section_id = ?", *sectionID)
	}

	var rows []WaitingTokenRow
	err := q.Order("w.created_at ASC").Scan(&rows).Error
	return rows, err
}

// GetCustomerByEmail returns the customer with the given email, or nil
func (r *WaitingRepository) GetCustomerByEmail(email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.DB.Where("email = ?", email).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetCustomerByEmailForUpdate returns the customer with the given email, or
// nil. Inside a postgres transaction the customer row is locked, so two
// concurrent admissions for the same customer serialize here — necessary
// because the duplicate-token query that follows matches no rows when the
// customer is not waiting, and an empty SELECT ... FOR UPDATE locks nothing.
func (r *WaitingRepository) GetCustomerByEmailForUpdate(tx *gorm.DB, email string) (*models.Customer, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var customer models.Customer
	err := q.Where("email = ?", email).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetCustomerByID returns the customer with the given id, or nil. The row is
// locked inside postgres transactions so an assignment and an admission for
// the same customer cannot interleave.
func (r *WaitingRepository) GetCustomerByID(tx *gorm.DB, id uint) (*models.Customer, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var customer models.Customer
	err := q.First(&customer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// CreateCustomer inserts a new customer inside the given transaction
func (r *WaitingRepository) CreateCustomer(tx *gorm.DB, customer *models.Customer) error {
	return tx.Create(customer).Error
}

// UpdateCustomer persists changed customer fields
func (r *WaitingRepository) UpdateCustomer(tx *gorm.DB, customer *models.Customer) error {
	return tx.Save(customer).Error
}

// GetActiveTokenByCustomerID returns the customer's waiting token that is
// neither assigned nor deleted, or nil when the customer is not waiting.
// Inside a postgres transaction the row is locked so a concurrent admission
// or assignment cannot race the check that follows.
func (r *WaitingRepository) GetActiveTokenByCustomerID(tx *gorm.DB, customerID uint) (*models.WaitingToken, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var token models.WaitingToken
	err := q.Where("customer_id = ? AND is_assigned = ? AND is_deleted = ?", customerID, false, false).
		First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// CreateWaitingToken inserts a waiting token inside the given transaction
func (r *WaitingRepository) CreateWaitingToken(tx *gorm.DB, token *models.WaitingToken) error {
	return tx.Create(token).Error
}

// GetTokenByID returns a waiting token and its customer as two explicit
// records. Deleted tokens are not returned.
func (r *WaitingRepository) GetTokenByID(id uint) (*models.WaitingToken, *models.Customer, error) {
	var token models.WaitingToken
	err := r.DB.Where("id = ? AND is_deleted = ?", id, false).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var customer models.Customer
	if err := r.DB.First(&customer, token.CustomerID).Error; err != nil {
		return nil, nil, err
	}
	return &token, &customer, nil
}

// UpdateWaitingToken persists changed token fields
func (r *WaitingRepository) UpdateWaitingToken(tx *gorm.DB, token *models.WaitingToken) error {
	return tx.Save(token).Error
}
