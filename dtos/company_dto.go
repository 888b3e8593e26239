package dtos

import (
	"fmt"
	"mime/multipart"
	"time"

	"github.com/balajigroup/customer-intake/database/models"
)

// SubmissionForm is the raw intake submission as parsed from the multipart
// request. Cards still hold the unuploaded file parts - the upload step
// turns them into URLs before anything is persisted.
type SubmissionForm struct {
	CompanyName       string                  `json:"company"`
	Address           string                  `json:"address"`
	Contacts          []ContactForm           `json:"contacts"`
	Requirements      []string                `json:"machine"`
	OtherRequirements string                  `json:"others"`
	Urgent            bool                    `json:"urgent"`
	Remarks           string                  `json:"remarks"`
	Cards             []*multipart.FileHeader `json:"-"`
}

type ContactForm struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

// FieldErrorMap maps a dotted field path (e.g. contacts.0.email) to one or
// more human readable messages.
type FieldErrorMap map[string][]string

func (m FieldErrorMap) Add(path string, message string) {
	m[path] = append(m[path], message)
}

func (m FieldErrorMap) AddIndexed(prefix string, index int, field string, message string) {
	m.Add(fmt.Sprintf("%s.%d.%s", prefix, index, field), message)
}

// SubmissionResponse is the envelope returned by the submission endpoint.
// Error is either a FieldErrorMap, an object with a message, or null.
type SubmissionResponse struct {
	Success bool `json:"success"`
	Error   any  `json:"error"`
}

type CompanyDTO struct {
	ID                uint         `json:"id"`
	CompanyName       string       `json:"companyName"`
	Address           string       `json:"address"`
	Requirements      []string     `json:"requirements"`
	OtherRequirements string       `json:"otherRequirements"`
	Remarks           string       `json:"remarks"`
	Urgent            bool         `json:"urgent"`
	CreatedAt         time.Time    `json:"createdAt"`
	Contacts          []ContactDTO `json:"contacts"`
	CardImages        []string     `json:"cardImages"`
}

type ContactDTO struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	MobileNo string `json:"mobileNo"`
}

func CompanyToDTO(company models.Company) CompanyDTO {
	contacts := make([]ContactDTO, 0, len(company.Contacts))
	for _, contact := range company.Contacts {
		contacts = append(contacts, ContactDTO{
			ID:       contact.ID,
			Name:     contact.Name,
			Email:    contact.Email,
			MobileNo: contact.MobileNo,
		})
	}

	cardImages := []string{}
	if company.CardImage != nil {
		cardImages = append(cardImages, company.CardImage.ImageURL...)
	}

	return CompanyDTO{
		ID:                company.ID,
		CompanyName:       company.CompanyName,
		Address:           company.Address,
		Requirements:      company.Requirements,
		OtherRequirements: company.OtherRequirements,
		Remarks:           company.Remarks,
		Urgent:            company.Urgent,
		CreatedAt:         company.CreatedAt,
		Contacts:          contacts,
		CardImages:        cardImages,
	}
}
