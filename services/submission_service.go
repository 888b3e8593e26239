package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/balajigroup/customer-intake/database/models"
	"github.com/balajigroup/customer-intake/dtos"
	"github.com/balajigroup/customer-intake/shared"
	"golang.org/x/sync/errgroup"
)

// PersistenceError wraps a store write failure. Terminal for the request,
// not retried.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("could not persist submission: %s", e.Err.Error())
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

type SubmissionService struct {
	companyRepository shared.CompanyRepository
	cardStore         shared.CardStore
	validator         SubmissionValidator
}

func NewSubmissionService(companyRepository shared.CompanyRepository, cardStore shared.CardStore) *SubmissionService {
	return &SubmissionService{
		companyRepository: companyRepository,
		cardStore:         cardStore,
		validator:         NewSubmissionValidator(),
	}
}

// Submit runs the intake pipeline: validate, upload every card, persist
// company, contacts and image URLs as one transaction. Validation failures
// return a *ValidationError before any upload or write happens; a single
// upload failure aborts the whole submission before anything is written.
func (s *SubmissionService) Submit(ctx context.Context, form dtos.SubmissionForm) (models.Company, error) {
	if fieldErrors := s.validator.Validate(form); fieldErrors != nil {
		return models.Company{}, &ValidationError{Fields: fieldErrors}
	}

	urls, err := s.uploadCards(ctx, form)
	if err != nil {
		return models.Company{}, err
	}

	company := models.Company{
		CompanyName:       form.CompanyName,
		Address:           form.Address,
		Requirements:      form.Requirements,
		OtherRequirements: form.OtherRequirements,
		Remarks:           form.Remarks,
		Urgent:            form.Urgent,
	}

	contacts := make([]models.Contact, 0, len(form.Contacts))
	for _, contact := range form.Contacts {
		contacts = append(contacts, models.Contact{
			Name:     contact.Name,
			Email:    contact.Email,
			MobileNo: contact.Mobile,
		})
	}

	if err := s.companyRepository.SaveFull(&company, contacts, urls); err != nil {
		return models.Company{}, &PersistenceError{Err: err}
	}

	slog.Info("saved intake submission", "company", company.CompanyName, "companyID", company.ID, "contacts", len(contacts), "cards", len(urls))
	return company, nil
}

// uploadCards uploads all card files concurrently. The indexed result slice
// keeps the URL order aligned with the input order.
func (s *SubmissionService) uploadCards(ctx context.Context, form dtos.SubmissionForm) ([]string, error) {
	if len(form.Cards) == 0 {
		return nil, nil
	}

	urls := make([]string, len(form.Cards))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, card := range form.Cards {
		group.Go(func() error {
			url, err := s.cardStore.Upload(groupCtx, form.CompanyName, card)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return urls, nil
}
