package shared

import (
	"context"
	"mime/multipart"

	"github.com/balajigroup/customer-intake/database/models"
)

type CompanyRepository interface {
	Read(id uint) (models.Company, error)

	// SaveFull writes the company, its contacts and (if any) the card image
	// row inside a single transaction.
	SaveFull(company *models.Company, contacts []models.Contact, imageURLs []string) error
	GetAllWithRelations() ([]models.Company, error)
}

// CardStore persists raw card image bytes and returns a publicly
// resolvable URL. Single attempt, fail fast - retries are up to the caller.
type CardStore interface {
	Upload(ctx context.Context, companyName string, file *multipart.FileHeader) (string, error)
}
