package registration

import (
	"strings"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/documents"
)

// The editing surface is a fixed sequence of steps. Step indices are part of
// the API contract: validation errors report the step owning the failing
// field so the client UI can jump there.
const (
	StepCompany = iota
	StepOwners
	StepSignatories
	StepContacts
	StepReferences
	StepDocuments
	StepReview

	StepCount
)

// FieldError reports a single failed required field and its owning step.
type FieldError struct {
	Field   string `json:"field"`
	Step    int    `json:"step"`
	Message string `json:"message"`
}

type requiredField struct {
	path    string
	message string
	present func(f *Form) bool
}

// stepRequiredFields is the rule table: each step maps to its fixed set of
// required field paths. Steps absent from the table have no gate.
var stepRequiredFields = map[int][]requiredField{
	StepCompany: {
		{"sectionA.companyName", "Company name is required", func(f *Form) bool { return f.SectionA.CompanyName != "" }},
		{"sectionA.email", "Email is required", func(f *Form) bool { return f.SectionA.Email != "" }},
		{"sectionA.tradeLicenseNo", "Trade license number is required", func(f *Form) bool { return f.SectionA.TradeLicenseNo != "" }},
	},
	StepDocuments: {
		{"uploads.tradeLicenseUrl", "Trade License is required", uploadPresent(documents.SlotTradeLicense)},
		{"uploads.vatCertificateUrl", "VAT Certificate is required", uploadPresent(documents.SlotVATCertificate)},
		{"uploads.emiratesIdOwnersUrl", "Emirates ID Copy is required", uploadPresent(documents.SlotEmiratesIDOwners)},
		{"uploads.visaOwnersUrl", "Visa Copy is required", uploadPresent(documents.SlotVisaOwners)},
		{"uploads.passportOwnersUrl", "Passport Copy is required", uploadPresent(documents.SlotPassportOwners)},
	},
	StepReview: {
		{"declarationAgreed", "Please confirm the declaration", func(f *Form) bool { return f.DeclarationAgreed }},
		{"finalSignatoryDate", "Date is required", func(f *Form) bool { return f.FinalSignatoryDate != "" }},
		{"finalSignatoryName", "Name is required", func(f *Form) bool { return f.FinalSignatoryName != "" }},
		{"finalSignatoryDesignation", "Designation is required", func(f *Form) bool { return f.FinalSignatoryDesignation != "" }},
	},
}

func uploadPresent(slot string) func(f *Form) bool {
	return func(f *Form) bool {
		return documents.Satisfied(f.Uploads[slot])
	}
}

// StepForField maps a field path to its owning step by section prefix.
// Unknown paths return -1.
func StepForField(path string) int {
	switch {
	case strings.HasPrefix(path, "sectionA"):
		return StepCompany
	case strings.HasPrefix(path, "sectionB"):
		return StepOwners
	case strings.HasPrefix(path, "sectionC"), strings.HasPrefix(path, "sectionD"):
		return StepSignatories
	case strings.HasPrefix(path, "sectionE"), strings.HasPrefix(path, "sectionF"):
		return StepContacts
	case strings.HasPrefix(path, "sectionG"), strings.HasPrefix(path, "sectionH"):
		return StepReferences
	case strings.HasPrefix(path, "uploads"):
		return StepDocuments
	case strings.HasPrefix(path, "final"), strings.HasPrefix(path, "declaration"):
		return StepReview
	default:
		return -1
	}
}

// ValidateStep runs only the given step's required-field set. An empty result
// means the step gate is open.
func ValidateStep(f *Form, step int) []FieldError {
	var errs []FieldError
	for _, rf := range stepRequiredFields[step] {
		if !rf.present(f) {
			errs = append(errs, FieldError{Field: rf.path, Step: step, Message: rf.message})
		}
	}
	return errs
}

// ValidateAll runs every step's required fields in step order. The first
// entry determines which step the client is redirected to.
func ValidateAll(f *Form) []FieldError {
	var errs []FieldError
	for step := 0; step < StepCount; step++ {
		errs = append(errs, ValidateStep(f, step)...)
	}
	return errs
}
