package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pizzashop/backoffice-api/repository"
)

// TableService provides the section/table reference-data reads
type TableService struct {
	DB   *gorm.DB
	Repo *repository.TableRepository
}

func NewTableService(db *gorm.DB, repo *repository.TableRepository) *TableService {
	return &TableService{DB: db, Repo: repo}
}

// SectionView is a section id/name pair for pickers
type SectionView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// TableView is a dining table for pickers and floor views
type TableView struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
}

// SectionWithTablesView is a section with its full table list
type SectionWithTablesView struct {
	ID     uint        `json:"id"`
	Name   string      `json:"name"`
	Tables []TableView `json:"tables"`
}

// GetSectionsWithTables returns every section with all of its tables
func (s *TableService) GetSectionsWithTables() ([]SectionWithTablesView, error) {
	sections, err := s.Repo.GetSectionsWithTables()
	if err != nil {
		return nil, fmt.Errorf("loading sections: %w", err)
	}

	views := make([]SectionWithTablesView, 0, len(sections))
	for _, sec := range sections {
		view := SectionWithTablesView{ID: sec.ID, Name: sec.Name}
		for _, t := range sec.Tables {
			view.Tables = append(view.Tables, TableView{
				ID:       t.ID,
				Name:     t.Name,
				Capacity: t.Capacity,
				Status:   t.Status,
			})
		}
		views = append(views, view)
	}
	return views, nil
}

// GetAllSections returns every section as an id/name pair
func (s *TableService) GetAllSections() ([]SectionView, error) {
	sections, err := s.Repo.GetSections()
	if err != nil {
		return nil, fmt.Errorf("loading sections: %w", err)
	}
	views := make([]SectionView, 0, len(sections))
	for _, sec := range sections {
		views = append(views, SectionView{ID: sec.ID, Name: sec.Name})
	}
	return views, nil
}

// GetSectionsWithAvailableTables returns the sections that can currently seat
// someone.
func (s *TableService) GetSectionsWithAvailableTables() ([]SectionView, error) {
	sections, err := s.Repo.GetSectionsWithAvailableTables()
	if err != nil {
		return nil, fmt.Errorf("loading sections: %w", err)
	}
	views := make([]SectionView, 0, len(sections))
	for _, sec := range sections {
		views = append(views, SectionView{ID: sec.ID, Name: sec.Name})
	}
	return views, nil
}

// GetAvailableTablesBySection returns the available tables of one section
func (s *TableService) GetAvailableTablesBySection(sectionID uint) ([]TableView, error) {
	tables, err := s.Repo.GetAvailableTablesBySection(sectionID)
	if err != nil {
		return nil, fmt.Errorf("loading tables: %w", err)
	}
	views := make([]TableView, 0, len(tables))
	for _, t := range tables {
		views = append(views, TableView{
			ID:       t.ID,
			Name:     t.Name,
			Capacity: t.Capacity,
			Status:   t.Status,
		})
	}
	return views, nil
}

// GetOrderIDByTable returns the id of the pending order seated at a table,
// or ErrNotFound when the table has none.
func (s *TableService) GetOrderIDByTable(tableID uint) (uint, error) {
	orderID, err := s.Repo.GetRunningOrderIDByTable(tableID)
	if err != nil {
		return 0, fmt.Errorf("looking up order: %w", err)
	}
	if orderID == nil {
		return 0, ErrNotFound
	}
	return *orderID, nil
}
