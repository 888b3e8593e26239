package repositories

import (
	"fmt"

	"github.com/balajigroup/customer-intake/database/models"
	"gorm.io/gorm"
)

type companyRepository struct {
	db *gorm.DB
	*GormRepository[uint, models.Company]
}

func NewCompanyRepository(db *gorm.DB) *companyRepository {
	return &companyRepository{
		db:             db,
		GormRepository: newGormRepository[uint, models.Company](db),
	}
}

// SaveFull writes the company row, one contact row per supplied contact and,
// when imageURLs is non empty, the card image row - all inside a single
// transaction. A failure anywhere rolls back everything, so no orphaned
// company rows are left behind.
func (g *companyRepository) SaveFull(company *models.Company, contacts []models.Contact, imageURLs []string) error {
	return g.Transaction(func(tx *gorm.DB) error {
		if err := g.Create(tx, company); err != nil {
			return fmt.Errorf("could not create company: %w", err)
		}

		for i := range contacts {
			contacts[i].CustomerID = company.ID
		}
		if len(contacts) > 0 {
			if err := tx.Create(&contacts).Error; err != nil {
				return fmt.Errorf("could not create contacts: %w", err)
			}
		}
		company.Contacts = contacts

		if len(imageURLs) > 0 {
			cardImage := models.CardImage{
				CustomerID: company.ID,
				ImageURL:   imageURLs,
			}
			if err := tx.Create(&cardImage).Error; err != nil {
				return fmt.Errorf("could not create card image row: %w", err)
			}
			company.CardImage = &cardImage
		}

		return nil
	})
}

// GetAllWithRelations returns every company with contacts and card images
// eagerly loaded, in insertion order.
func (g *companyRepository) GetAllWithRelations() ([]models.Company, error) {
	var ts []models.Company
	err := g.db.Model(models.Company{}).
		Preload("Contacts").
		Preload("CardImage").
		Order("created_at ASC, id ASC").
		Find(&ts).Error
	return ts, err
}
