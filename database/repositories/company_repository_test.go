package repositories_test

import (
	"testing"

	"github.com/balajigroup/customer-intake/database/models"
	"github.com/balajigroup/customer-intake/database/repositories"
	"github.com/balajigroup/customer-intake/integrationtestutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCompanyRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db, terminate := integrationtestutil.InitDatabaseContainer()
	defer terminate()

	repo := repositories.NewCompanyRepository(db)

	t.Run("SaveFull round trip", func(t *testing.T) {
		company := models.Company{
			CompanyName:       "Acme",
			Address:           "1 Rd",
			Requirements:      []string{"MasterBatches", "Filler Compound"},
			OtherRequirements: "",
			Remarks:           "call first",
			Urgent:            true,
		}
		contacts := []models.Contact{
			{Name: "Jo", Email: "jo@x.com", MobileNo: "9876543210"},
			{Name: "Sam", Email: "sam@x.com, sam2@x.com", MobileNo: ""},
		}
		urls := []string{"https://cdn.example.com/acme/a", "https://cdn.example.com/acme/b"}

		require.NoError(t, repo.SaveFull(&company, contacts, urls))
		assert.NotZero(t, company.ID)

		saved, err := repo.GetAllWithRelations()
		require.NoError(t, err)
		require.Len(t, saved, 1)

		got := saved[0]
		assert.Equal(t, "Acme", got.CompanyName)
		assert.Equal(t, "1 Rd", got.Address)
		assert.True(t, got.Urgent)
		// requirements must come back in submission order
		assert.Equal(t, []string{"MasterBatches", "Filler Compound"}, []string(got.Requirements))

		require.Len(t, got.Contacts, 2)
		assert.Equal(t, "Jo", got.Contacts[0].Name)
		assert.Equal(t, "jo@x.com", got.Contacts[0].Email)
		assert.Equal(t, "9876543210", got.Contacts[0].MobileNo)
		assert.Equal(t, "sam@x.com, sam2@x.com", got.Contacts[1].Email)

		require.NotNil(t, got.CardImage)
		assert.Equal(t, urls, []string(got.CardImage.ImageURL))
	})

	t.Run("reading twice returns identical data", func(t *testing.T) {
		first, err := repo.GetAllWithRelations()
		require.NoError(t, err)
		second, err := repo.GetAllWithRelations()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("no card image row without urls", func(t *testing.T) {
		company := models.Company{
			CompanyName:       "Globex",
			Address:           "2 Ave",
			OtherRequirements: "a bespoke extruder",
		}
		require.NoError(t, repo.SaveFull(&company, []models.Contact{{Name: "Ann"}}, nil))

		saved, err := repo.Read(company.ID)
		require.NoError(t, err)
		assert.Equal(t, "Globex", saved.CompanyName)

		all, err := repo.GetAllWithRelations()
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Nil(t, all[1].CardImage)
	})

	t.Run("insertion order is preserved across companies", func(t *testing.T) {
		all, err := repo.GetAllWithRelations()
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Acme", all[0].CompanyName)
		assert.Equal(t, "Globex", all[1].CompanyName)
	})

	t.Run("panic inside a transaction rolls back", func(t *testing.T) {
		require.Panics(t, func() {
			_ = repo.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&models.Company{CompanyName: "Ghost", Address: "nowhere"}).Error; err != nil {
					return err
				}
				panic("boom")
			})
		})

		all, err := repo.GetAllWithRelations()
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}
