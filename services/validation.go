package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/balajigroup/customer-intake/dtos"
	"github.com/balajigroup/customer-intake/shared"
	"github.com/nyaruka/phonenumbers"
)

// MachineCatalog is the fixed set of machine requirement tags the intake
// form offers. Submissions may only select tags from this list.
var MachineCatalog = []string{
	"MasterBatches",
	"Filler Compound",
	"Cable Compounding",
	"Special Compound",
	"Sheet Line(PP/HDPE)",
	"Sheet Line(Eva/Poe)",
	"Recycling Extruder",
	"ABS/PET Compounding",
	"PP Vaccum Sheet Line",
	"UHMWPE Battery SZeperator Film Line",
	"Under Water Peltizer",
	"Spare for Twin Screw Extruder",
	"Biodegradable Compounding",
}

var machineCatalogSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(MachineCatalog))
	for _, machine := range MachineCatalog {
		set[machine] = struct{}{}
	}
	return set
}()

// ValidationError carries the field error map of a rejected submission.
// It is user correctable and rendered verbatim in the response.
type ValidationError struct {
	Fields dtos.FieldErrorMap
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("submission failed validation on %d field(s)", len(e.Fields))
}

type SubmissionValidator struct {
	phoneRegion string
}

func NewSubmissionValidator() SubmissionValidator {
	region := os.Getenv("PHONE_REGION")
	if region == "" {
		region = "IN"
	}
	return SubmissionValidator{phoneRegion: region}
}

// Validate runs the per field checks first and, only when all of them pass,
// the whole record invariant. It returns nil when the submission is valid.
func (v SubmissionValidator) Validate(form dtos.SubmissionForm) dtos.FieldErrorMap {
	fieldErrors := dtos.FieldErrorMap{}

	if strings.TrimSpace(form.CompanyName) == "" {
		fieldErrors.Add("company", "Company is required")
	}
	if strings.TrimSpace(form.Address) == "" {
		fieldErrors.Add("address", "Address is required")
	}

	if len(form.Contacts) == 0 {
		fieldErrors.Add("contacts", "At least one contact is required")
	}
	for i, contact := range form.Contacts {
		v.validateContact(fieldErrors, i, contact)
	}

	for _, machine := range form.Requirements {
		if _, ok := machineCatalogSet[machine]; !ok {
			fieldErrors.Add("machine", fmt.Sprintf("%q is not a known machine requirement", machine))
		}
	}

	if len(fieldErrors) > 0 {
		return fieldErrors
	}

	// whole record invariant, checked only after every field passed
	if len(form.Requirements) == 0 && strings.TrimSpace(form.OtherRequirements) == "" {
		const msg = "Either select a machine requirement or specify others"
		fieldErrors.Add("machine", msg)
		fieldErrors.Add("others", msg)
		return fieldErrors
	}

	return nil
}

func (v SubmissionValidator) validateContact(fieldErrors dtos.FieldErrorMap, index int, contact dtos.ContactForm) {
	if strings.TrimSpace(contact.Name) == "" {
		fieldErrors.AddIndexed("contacts", index, "name", "Name is required")
	}

	if strings.TrimSpace(contact.Email) != "" {
		for _, segment := range splitList(contact.Email) {
			if err := shared.V.Var(segment, "required,email"); err != nil {
				fieldErrors.AddIndexed("contacts", index, "email", fmt.Sprintf("%q is not a valid email address", segment))
			}
		}
	}

	if strings.TrimSpace(contact.Mobile) != "" {
		for _, segment := range splitList(contact.Mobile) {
			if !v.isPossiblePhoneNumber(segment) {
				fieldErrors.AddIndexed("contacts", index, "mobile", fmt.Sprintf("%q is not a valid phone number", segment))
			}
		}
	}
}

func (v SubmissionValidator) isPossiblePhoneNumber(segment string) bool {
	number, err := phonenumbers.Parse(segment, v.phoneRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsPossibleNumber(number)
}

// splitList splits a comma separated list and trims each segment. Empty
// segments are kept so that trailing commas surface as errors.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
