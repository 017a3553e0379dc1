package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pizzashop/backoffice-api/models"
	"github.com/pizzashop/backoffice-api/repository"
)

// WaitingService implements the waiting-list ledger and the table-assignment
// transaction.
type WaitingService struct {
	DB     *gorm.DB
	Repo   *repository.WaitingRepository
	Tables *repository.TableRepository
	Orders *repository.OrderRepository
}

func NewWaitingService(db *gorm.DB, repo *repository.WaitingRepository, tables *repository.TableRepository, orders *repository.OrderRepository) *WaitingService {
	return &WaitingService{DB: db, Repo: repo, Tables: tables, Orders: orders}
}

// WaitingTokenRequest carries the fields of a waiting-list admission or edit
type WaitingTokenRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	SectionID   uint   `json:"section_id" binding:"required"`
	NoOfPersons int    `json:"no_of_persons" binding:"required,gt=0"`
}

// SectionWaitingView is a section annotated with its active waiting count
type SectionWaitingView struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	WaitingCount int64  `json:"waiting_count"`
}

// CustomerView is the customer shape returned to the calling layer
type CustomerView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// WaitingTokenDetail is one waiting token with its customer fields flattened
type WaitingTokenDetail struct {
	ID          uint      `json:"id"`
	CustomerID  uint      `json:"customer_id"`
	SectionID   uint      `json:"section_id"`
	NoOfPersons int       `json:"no_of_persons"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
}

// GetWaitingListSections returns every section with the number of parties
// currently waiting for it.
func (s *WaitingService) GetWaitingListSections() ([]SectionWaitingView, error) {
	sections, err := s.Tables.GetSections()
	if err != nil {
		return nil, fmt.Errorf("loading sections: %w", err)
	}
	counts, err := s.Repo.GetActiveWaitingCounts()
	if err != nil {
		return nil, fmt.Errorf("counting waiting tokens: %w", err)
	}

	bySection := make(map[uint]int64, len(counts))
	for _, c := range counts {
		bySection[c.SectionID] = c.Count
	}

	views := make([]SectionWaitingView, 0, len(sections))
	for _, sec := range sections {
		views = append(views, SectionWaitingView{
			ID:           sec.ID,
			Name:         sec.Name,
			WaitingCount: bySection[sec.ID],
		})
	}
	return views, nil
}

// GetWaitingTokens returns the active waiting tokens, optionally restricted
// to one section, oldest first.
func (s *WaitingService) GetWaitingTokens(sectionID *uint) ([]repository.WaitingTokenRow, error) {
	return s.Repo.GetWaitingTokens(sectionID)
}

// GetTokenByID returns one waiting token with its customer's contact fields,
// or ErrNotFound.
func (s *WaitingService) GetTokenByID(id uint) (*WaitingTokenDetail, error) {
	token, customer, err := s.Repo.GetTokenByID(id)
	if err != nil {
		return nil, fmt.Errorf("loading waiting token: %w", err)
	}
	if token == nil {
		return nil, ErrNotFound
	}
	return &WaitingTokenDetail{
		ID:          token.ID,
		CustomerID:  token.CustomerID,
		SectionID:   token.SectionID,
		NoOfPersons: token.NoOfPersons,
		Name:        customer.Name,
		Email:       customer.Email,
		Phone:       customer.Phone,
		CreatedAt:   token.CreatedAt,
	}, nil
}

// GetCustomerByEmail returns a returning customer's details, or ErrNotFound
func (s *WaitingService) GetCustomerByEmail(email string) (*CustomerView, error) {
	customer, err := s.Repo.GetCustomerByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("loading customer: %w", err)
	}
	if customer == nil {
		return nil, ErrNotFound
	}
	return &CustomerView{
		ID:    customer.ID,
		Name:  customer.Name,
		Email: customer.Email,
		Phone: customer.Phone,
	}, nil
}

// AddWaitingToken admits a party to the waiting list. A customer with the
// given email is reused, otherwise created. A customer already holding an
// active waiting token is rejected with a BusinessRuleError. The customer
// lookup, the duplicate check and the insert run in one transaction; on
// postgres the customer row is locked up front, so two concurrent admissions
// for the same customer serialize before either checks for an active token.
// The partial unique index on waiting_tokens backs the invariant in the store
// itself.
func (s *WaitingService) AddWaitingToken(req *WaitingTokenRequest) error {
	if err := validateWaitingRequest(req); err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		customer, err := s.Repo.GetCustomerByEmailForUpdate(tx, req.Email)
		if err != nil {
			return fmt.Errorf("looking up customer: %w", err)
		}

		if customer == nil {
			customer = &models.Customer{
				Name:  req.Name,
				Email: req.Email,
				Phone: req.Phone,
			}
			if err := s.Repo.CreateCustomer(tx, customer); err != nil {
				return fmt.Errorf("creating customer: %w", err)
			}
		} else {
			existing, err := s.Repo.GetActiveTokenByCustomerID(tx, customer.ID)
			if err != nil {
				return fmt.Errorf("checking existing token: %w", err)
			}
			if existing != nil {
				return &BusinessRuleError{Reason: "Customer already has an active waiting token."}
			}
		}

		token := &models.WaitingToken{
			CustomerID:  customer.ID,
			SectionID:   req.SectionID,
			NoOfPersons: req.NoOfPersons,
		}
		if err := s.Repo.CreateWaitingToken(tx, token); err != nil {
			return fmt.Errorf("creating waiting token: %w", err)
		}
		return nil
	})
}

// EditWaitingToken updates a waiting token and its customer's contact fields.
// When every field matches the stored state it reports (false, "No changes
// detected.") and performs zero writes.
func (s *WaitingService) EditWaitingToken(id uint, req *WaitingTokenRequest) (bool, string, error) {
	if err := validateWaitingRequest(req); err != nil {
		return false, "", err
	}

	token, customer, err := s.Repo.GetTokenByID(id)
	if err != nil {
		return false, "", fmt.Errorf("loading waiting token: %w", err)
	}
	if token == nil {
		return false, "", ErrNotFound
	}

	unchanged := customer.Name == req.Name &&
		customer.Phone == req.Phone &&
		customer.Email == req.Email &&
		token.SectionID == req.SectionID &&
		token.NoOfPersons == req.NoOfPersons
	if unchanged {
		return false, "No changes detected.", nil
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Email = req.Email
	token.SectionID = req.SectionID
	token.NoOfPersons = req.NoOfPersons

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.UpdateCustomer(tx, customer); err != nil {
			return err
		}
		return s.Repo.UpdateWaitingToken(tx, token)
	})
	if err != nil {
		return false, "", fmt.Errorf("updating waiting token: %w", err)
	}
	return true, "Waiting token updated successfully.", nil
}

// SoftDeleteToken marks a waiting token deleted. The row is never removed so
// historical reporting keeps seeing it.
func (s *WaitingService) SoftDeleteToken(id uint) error {
	token, _, err := s.Repo.GetTokenByID(id)
	if err != nil {
		return fmt.Errorf("loading waiting token: %w", err)
	}
	if token == nil {
		return ErrNotFound
	}

	token.IsDeleted = true
	if err := s.Repo.UpdateWaitingToken(s.DB, token); err != nil {
		return fmt.Errorf("deleting waiting token: %w", err)
	}
	return nil
}

// AssignResult reports a successful table assignment
type AssignResult struct {
	OrderID uint   `json:"order_id"`
	Message string `json:"message"`
}

// AssignTables seats a party at the selected tables as one atomic unit:
// it validates capacity against the party size, creates a Pending order,
// splits the party greedily across the tables in the order given, snapshots
// the enabled taxes onto the order, marks the used tables Assigned and
// resolves the customer's waiting token if one exists. Walk-ins have no
// waiting token; that is not an error. Any failure rolls everything back.
func (s *WaitingService) AssignTables(customerID uint, selectedTableIDs []uint, partySize int) (*AssignResult, error) {
	if len(selectedTableIDs) == 0 {
		return nil, &ValidationError{Reason: "No tables selected."}
	}
	if partySize <= 0 {
		return nil, &ValidationError{Reason: "Number of persons must be greater than zero."}
	}

	var result AssignResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		tables, err := s.Tables.GetTablesByIDs(tx, selectedTableIDs)
		if err != nil {
			return fmt.Errorf("loading tables: %w", err)
		}
		if len(tables) != len(selectedTableIDs) {
			return fmt.Errorf("selected table: %w", ErrNotFound)
		}

		totalCapacity := 0
		var occupied []string
		for _, t := range tables {
			if t.Status != models.TableStatusAvailable {
				occupied = append(occupied, t.Name)
			}
			totalCapacity += t.Capacity
		}
		if len(occupied) > 0 {
			return &BusinessRuleError{
				Reason: fmt.Sprintf("Tables no longer available: %s.", strings.Join(occupied, ", ")),
			}
		}
		if partySize > totalCapacity {
			return &BusinessRuleError{
				Reason: fmt.Sprintf("Selected tables capacity is %d. Please select more tables.", totalCapacity),
			}
		}

		customer, err := s.Repo.GetCustomerByID(tx, customerID)
		if err != nil {
			return fmt.Errorf("loading customer: %w", err)
		}
		if customer == nil {
			return fmt.Errorf("customer: %w", ErrNotFound)
		}

		order := &models.Order{
			CustomerID: customer.ID,
			Status:     models.OrderStatusPending,
		}
		if err := s.Orders.CreateOrder(tx, order); err != nil {
			return fmt.Errorf("creating order: %w", err)
		}

		// Greedy split in the caller-supplied order; tables past the point
		// where the party is seated are neither linked nor flipped.
		remaining := partySize
		for _, t := range tables {
			persons := remaining
			if t.Capacity < persons {
				persons = t.Capacity
			}

			mapping := &models.OrderTableMapping{
				OrderID:         order.ID,
				TableID:         t.ID,
				SeatedTableName: t.Name,
				NoOfPersons:     persons,
			}
			if err := s.Orders.CreateOrderTableMapping(tx, mapping); err != nil {
				return fmt.Errorf("linking table: %w", err)
			}
			if err := s.Tables.UpdateTableStatus(tx, t.ID, models.TableStatusAssigned); err != nil {
				return fmt.Errorf("updating table status: %w", err)
			}

			remaining -= persons
			if remaining <= 0 {
				break
			}
		}

		// Freeze the tax schedule at order time.
		taxes, err := s.Orders.GetEnabledTaxes(tx)
		if err != nil {
			return fmt.Errorf("loading taxes: %w", err)
		}
		for _, tax := range taxes {
			snapshot := &models.OrderTaxMapping{
				OrderID:  order.ID,
				TaxID:    tax.ID,
				TaxName:  tax.Name,
				TaxValue: tax.Value,
			}
			if err := s.Orders.CreateOrderTaxMapping(tx, snapshot); err != nil {
				return fmt.Errorf("snapshotting tax: %w", err)
			}
		}

		token, err := s.Repo.GetActiveTokenByCustomerID(tx, customer.ID)
		if err != nil {
			return fmt.Errorf("loading waiting token: %w", err)
		}
		if token != nil {
			token.IsAssigned = true
			if err := s.Repo.UpdateWaitingToken(tx, token); err != nil {
				return fmt.Errorf("resolving waiting token: %w", err)
			}
		}

		result = AssignResult{
			OrderID: order.ID,
			Message: "Tables successfully assigned and order created.",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func validateWaitingRequest(req *WaitingTokenRequest) error {
	if req == nil {
		return &ValidationError{Reason: "Missing request body."}
	}
	if strings.TrimSpace(req.Name) == "" {
		return &ValidationError{Reason: "Name is required."}
	}
	if req.SectionID == 0 {
		return &ValidationError{Reason: "Section is required."}
	}
	if req.NoOfPersons <= 0 {
		return &ValidationError{Reason: "Number of persons must be greater than zero."}
	}
	return nil
}
