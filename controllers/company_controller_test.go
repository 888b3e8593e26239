package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/balajigroup/customer-intake/database/models"
	"github.com/balajigroup/customer-intake/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCardStore struct {
	uploads int
}

func (f *fakeCardStore) Upload(ctx context.Context, companyName string, file *multipart.FileHeader) (string, error) {
	f.uploads++
	return fmt.Sprintf("https://cdn.example.com/%s/%s", companyName, file.Filename), nil
}

type fakeCompanyRepository struct {
	companies []models.Company
	saves     int
}

func (f *fakeCompanyRepository) Read(id uint) (models.Company, error) {
	return models.Company{}, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepository) SaveFull(company *models.Company, contacts []models.Contact, imageURLs []string) error {
	f.saves++
	company.ID = uint(f.saves)
	return nil
}

func (f *fakeCompanyRepository) GetAllWithRelations() ([]models.Company, error) {
	return f.companies, nil
}

func newTestController(repo *fakeCompanyRepository, store *fakeCardStore) *CompanyController {
	return NewCompanyController(repo, services.NewSubmissionService(repo, store), services.NewExportService(repo))
}

func submissionRequest(t *testing.T, fields map[string]string, fileNames ...string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	for _, name := range fileNames {
		fw, err := w.CreateFormFile("cards", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake png bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func validFields() map[string]string {
	return map[string]string{
		"company":           "Acme",
		"address":           "1 Rd",
		"contacts.0.name":   "Jo",
		"contacts.0.email":  "jo@x.com",
		"contacts.0.mobile": "9876543210",
		"machine":           "MasterBatches",
		"urgent":            "on",
	}
}

func TestCreateSubmission(t *testing.T) {
	t.Run("valid submission returns success envelope", func(t *testing.T) {
		repo := &fakeCompanyRepository{}
		store := &fakeCardStore{}
		h := newTestController(repo, store)

		rec := httptest.NewRecorder()
		ctx := echo.New().NewContext(submissionRequest(t, validFields(), "card.png"), rec)

		require.NoError(t, h.Create(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success bool `json:"success"`
			Error   any  `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Nil(t, resp.Error)
		assert.Equal(t, 1, store.uploads)
		assert.Equal(t, 1, repo.saves)
	})

	t.Run("validation failure returns field errors and skips uploads", func(t *testing.T) {
		repo := &fakeCompanyRepository{}
		store := &fakeCardStore{}
		h := newTestController(repo, store)

		fields := validFields()
		delete(fields, "machine")
		fields["contacts.0.email"] = "a@x.com, not-an-email"

		rec := httptest.NewRecorder()
		ctx := echo.New().NewContext(submissionRequest(t, fields, "card.png"), rec)

		require.NoError(t, h.Create(ctx))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Success bool                `json:"success"`
			Error   map[string][]string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "contacts.0.email")

		assert.Equal(t, 0, store.uploads)
		assert.Equal(t, 0, repo.saves)
	})

	t.Run("urgent only set by the checkbox on-value", func(t *testing.T) {
		form := func(values map[string][]string) *multipart.Form {
			return &multipart.Form{Value: values, File: map[string][]*multipart.FileHeader{}}
		}

		assert.True(t, parseSubmissionForm(form(map[string][]string{"urgent": {"on"}})).Urgent)
		assert.False(t, parseSubmissionForm(form(map[string][]string{"urgent": {"false"}})).Urgent)
		assert.False(t, parseSubmissionForm(form(map[string][]string{"urgent": {""}})).Urgent)
		assert.False(t, parseSubmissionForm(form(map[string][]string{})).Urgent)
	})

	t.Run("should fail on a non multipart body", func(t *testing.T) {
		h := newTestController(&fakeCompanyRepository{}, &fakeCardStore{})

		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("fantasy"))
		ctx := echo.New().NewContext(req, httptest.NewRecorder())

		err := h.Create(ctx)
		if err == nil {
			t.Fail()
		}
	})
}

func TestList(t *testing.T) {
	repo := &fakeCompanyRepository{
		companies: []models.Company{
			{
				ID:           1,
				CreatedAt:    time.Now(),
				CompanyName:  "Acme",
				Address:      "1 Rd",
				Requirements: []string{"MasterBatches"},
				Contacts:     []models.Contact{{ID: 1, Name: "Jo", Email: "jo@x.com", MobileNo: "9876543210"}},
				CardImage:    &models.CardImage{ImageURL: []string{"https://cdn.example.com/acme/a"}},
			},
		},
	}
	h := newTestController(repo, &fakeCardStore{})

	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, h.List(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []struct {
		CompanyName string   `json:"companyName"`
		CardImages  []string `json:"cardImages"`
		Contacts    []struct {
			Name string `json:"name"`
		} `json:"contacts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Acme", resp[0].CompanyName)
	assert.Equal(t, []string{"https://cdn.example.com/acme/a"}, resp[0].CardImages)
	require.Len(t, resp[0].Contacts, 1)
	assert.Equal(t, "Jo", resp[0].Contacts[0].Name)
}

func TestExportCSV(t *testing.T) {
	repo := &fakeCompanyRepository{
		companies: []models.Company{{ID: 1, CompanyName: "Acme", Address: "1 Rd"}},
	}
	h := newTestController(repo, &fakeCardStore{})

	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, h.ExportCSV(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "customer-details.csv")
	assert.Contains(t, rec.Body.String(), "Company Name")
	assert.Contains(t, rec.Body.String(), "Acme")
}

func TestExportPDF(t *testing.T) {
	repo := &fakeCompanyRepository{
		companies: []models.Company{{ID: 1, CompanyName: "Acme", Address: "1 Rd"}},
	}
	h := newTestController(repo, &fakeCardStore{})

	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, h.ExportPDF(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}
