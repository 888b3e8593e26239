package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/balajigroup/customer-intake/dtos"
	"github.com/balajigroup/customer-intake/services"
	"github.com/balajigroup/customer-intake/shared"
	"github.com/balajigroup/customer-intake/storage"
	"github.com/labstack/echo/v4"
)

type CompanyController struct {
	companyRepository shared.CompanyRepository
	submissionService *services.SubmissionService
	exportService     *services.ExportService
}

func NewCompanyController(companyRepository shared.CompanyRepository, submissionService *services.SubmissionService, exportService *services.ExportService) *CompanyController {
	return &CompanyController{
		companyRepository: companyRepository,
		submissionService: submissionService,
		exportService:     exportService,
	}
}

// Create handles one multipart intake submission. Exactly one of field
// errors, upload error, persistence error or success is reported.
func (a *CompanyController) Create(ctx shared.Context) error {
	multipartForm, err := ctx.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(400, "could not parse multipart form").WithInternal(err)
	}

	form := parseSubmissionForm(multipartForm)

	company, err := a.submissionService.Submit(ctx.Request().Context(), form)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			return ctx.JSON(http.StatusBadRequest, dtos.SubmissionResponse{
				Success: false,
				Error:   validationErr.Fields,
			})
		}

		var uploadErr *storage.UploadError
		if errors.As(err, &uploadErr) {
			return ctx.JSON(http.StatusBadGateway, dtos.SubmissionResponse{
				Success: false,
				Error:   echo.Map{"message": uploadErr.Error()},
			})
		}

		return echo.NewHTTPError(500, "could not save submission").WithInternal(err)
	}

	ctx.Logger().Debugf("added company %d", company.ID)
	return ctx.JSON(http.StatusOK, dtos.SubmissionResponse{
		Success: true,
		Error:   nil,
	})
}

// List returns every stored company with nested contacts and card image
// URLs.
func (a *CompanyController) List(ctx shared.Context) error {
	companies, err := a.companyRepository.GetAllWithRelations()
	if err != nil {
		return err
	}

	result := make([]dtos.CompanyDTO, 0, len(companies))
	for _, company := range companies {
		result = append(result, dtos.CompanyToDTO(company))
	}

	return ctx.JSON(200, result)
}

func (a *CompanyController) ExportCSV(ctx shared.Context) error {
	var buf bytes.Buffer
	if err := a.exportService.WriteCSV(&buf); err != nil {
		return err
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="customer-details.csv"`)
	return ctx.Blob(200, "text/csv", buf.Bytes())
}

func (a *CompanyController) ExportPDF(ctx shared.Context) error {
	var buf bytes.Buffer
	if err := a.exportService.WritePDF(&buf); err != nil {
		return err
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="company-details.pdf"`)
	return ctx.Blob(200, "application/pdf", buf.Bytes())
}

// parseSubmissionForm maps the multipart fields onto the submission DTO.
// Contacts are sent as indexed fields (contacts.0.name, contacts.0.email,
// contacts.0.mobile), cards as repeated file parts.
func parseSubmissionForm(form *multipart.Form) dtos.SubmissionForm {
	first := func(key string) string {
		values := form.Value[key]
		if len(values) == 0 {
			return ""
		}
		return values[0]
	}

	var contacts []dtos.ContactForm
	for i := 0; ; i++ {
		name, hasName := form.Value[fmt.Sprintf("contacts.%d.name", i)]
		email, hasEmail := form.Value[fmt.Sprintf("contacts.%d.email", i)]
		mobile, hasMobile := form.Value[fmt.Sprintf("contacts.%d.mobile", i)]
		if !hasName && !hasEmail && !hasMobile {
			break
		}
		contact := dtos.ContactForm{}
		if hasName {
			contact.Name = name[0]
		}
		if hasEmail {
			contact.Email = email[0]
		}
		if hasMobile {
			contact.Mobile = mobile[0]
		}
		contacts = append(contacts, contact)
	}

	return dtos.SubmissionForm{
		CompanyName:       first("company"),
		Address:           first("address"),
		Contacts:          contacts,
		Requirements:      form.Value["machine"],
		OtherRequirements: first("others"),
		Urgent:            first("urgent") == "on",
		Remarks:           first("remarks"),
		Cards:             form.File["cards"],
	}
}
