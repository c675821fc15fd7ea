package services

import (
	"github.com/fabriciomourateam/controle-de-pacientes-sub007/models"

	"gorm.io/gorm"
)

// CatalogLookup is the read-only food catalog collaborator consumed by the
// analysis and substitution engines. Implementations must only surface
// active entries.
type CatalogLookup interface {
	// FindByNames batch-resolves food names. Names with no active catalog
	// match are simply absent from the result map.
	FindByNames(names []string) (map[string]models.CatalogFood, error)
	// FindSimilar returns every active entry except the one with the given
	// name, as the candidate pool for substitution ranking.
	FindSimilar(excluding string) ([]models.CatalogFood, error)
}

// CatalogService is the database-backed catalog.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) FindByNames(names []string) (map[string]models.CatalogFood, error) {
	out := make(map[string]models.CatalogFood, len(names))
	if len(names) == 0 {
		return out, nil
	}
	var rows []models.CatalogFood
	if err := s.db.
		Where("name IN ? AND active = ?", names, true).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.Name] = r
	}
	return out, nil
}

func (s *CatalogService) FindSimilar(excluding string) ([]models.CatalogFood, error) {
	var rows []models.CatalogFood
	err := s.db.
		Where("active = ? AND name <> ?", true, excluding).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

// Search matches active foods by name substring, for the catalog endpoint.
func (s *CatalogService) Search(query string, limit int) ([]models.CatalogFood, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.CatalogFood
	q := s.db.Where("active = ?", true).Order("name ASC").Limit(limit)
	if query != "" {
		q = q.Where("name ILIKE ?", "%"+query+"%")
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (s *CatalogService) Create(food *models.CatalogFood) error {
	food.Active = true
	return s.db.Create(food).Error
}

// Deactivate hides a food from lookups without deleting it; plans may still
// reference the name.
func (s *CatalogService) Deactivate(name string) error {
	res := s.db.Model(&models.CatalogFood{}).
		Where("name = ?", name).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
