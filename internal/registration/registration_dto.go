package registration

import (
	"time"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/documents"
)

// SaveFormRequest carries a full snapshot of the client-editable surface.
// Every save replaces the editable fields; partial patches are not supported
// (last write wins).
type SaveFormRequest struct {
	SectionA CompanyInfo       `json:"sectionA"`
	SectionB []OwnerEntry      `json:"sectionB"`
	SectionC []Signatory       `json:"sectionC"`
	SectionD []Signatory       `json:"sectionD"`
	SectionE ContactDetails    `json:"sectionE"`
	SectionF ContactDetails    `json:"sectionF"`
	SectionG []BankReference   `json:"sectionG"`
	SectionH []TradeReference  `json:"sectionH"`
	Uploads  map[string]string `json:"uploads"`

	DeclarationAgreed         bool   `json:"declarationAgreed"`
	FinalSignatoryName        string `json:"finalSignatoryName"`
	FinalSignatoryDesignation string `json:"finalSignatoryDesignation"`
	FinalSignatoryDate        string `json:"finalSignatoryDate"`
}

type OfficeUseRequest struct {
	SalesComments           string `json:"salesComments"`
	SalesStaffName          string `json:"salesStaffName"`
	SalesDate               string `json:"salesDate"`
	DivisionManagerComments string `json:"divisionManagerComments"`
	DivisionManagerName     string `json:"divisionManagerName"`
	DivisionManagerDate     string `json:"divisionManagerDate"`
	FinanceManagerComments  string `json:"financeManagerComments"`
	ApprovedCreditLimit     string `json:"approvedCreditLimit"`
	CreditPeriod            string `json:"creditPeriod"`
}

type Timestamps struct {
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
	SubmittedAt *string `json:"submittedAt,omitempty"`
}

type FormResponse struct {
	FormID      string `json:"formId"`
	ClientID    string `json:"clientId"`
	Status      string `json:"status"`
	ReferenceNo string `json:"referenceNo,omitempty"`

	SectionA CompanyInfo       `json:"sectionA"`
	SectionB []OwnerEntry      `json:"sectionB"`
	SectionC []Signatory       `json:"sectionC"`
	SectionD []Signatory       `json:"sectionD"`
	SectionE ContactDetails    `json:"sectionE"`
	SectionF ContactDetails    `json:"sectionF"`
	SectionG []BankReference   `json:"sectionG"`
	SectionH []TradeReference  `json:"sectionH"`
	Uploads  map[string]string `json:"uploads"`

	DeclarationAgreed         bool   `json:"declarationAgreed"`
	FinalSignatoryName        string `json:"finalSignatoryName"`
	FinalSignatoryDesignation string `json:"finalSignatoryDesignation"`
	FinalSignatoryDate        string `json:"finalSignatoryDate"`

	OfficeUse *OfficeUse `json:"officeUse,omitempty"`

	Timestamps Timestamps `json:"timestamps"`
}

// applyRequest copies the client-editable fields onto the form. Unknown
// upload slots are dropped: that is the snapshot sanitization.
func applyRequest(f *Form, req SaveFormRequest) {
	f.SectionA = req.SectionA
	f.SectionB = req.SectionB
	f.SectionC = req.SectionC
	f.SectionD = req.SectionD
	f.SectionE = req.SectionE
	f.SectionF = req.SectionF
	f.SectionG = req.SectionG
	f.SectionH = req.SectionH

	uploads := make(map[string]string, len(req.Uploads))
	for slot, url := range req.Uploads {
		if documents.KnownSlot(slot) && url != "" {
			uploads[slot] = url
		}
	}
	f.Uploads = uploads

	f.DeclarationAgreed = req.DeclarationAgreed
	f.FinalSignatoryName = req.FinalSignatoryName
	f.FinalSignatoryDesignation = req.FinalSignatoryDesignation
	f.FinalSignatoryDate = req.FinalSignatoryDate
}

// MapToAdminResponse includes the office-use block; it backs the admin's
// merged client view.
func MapToAdminResponse(f Form) FormResponse {
	return mapToResponse(f, true)
}

func mapToResponse(f Form, includeOfficeUse bool) FormResponse {
	resp := FormResponse{
		FormID:      f.ID.String(),
		ClientID:    f.ID.String(),
		Status:      f.Status,
		ReferenceNo: f.ReferenceNo,

		SectionA: f.SectionA,
		SectionB: f.SectionB,
		SectionC: f.SectionC,
		SectionD: f.SectionD,
		SectionE: f.SectionE,
		SectionF: f.SectionF,
		SectionG: f.SectionG,
		SectionH: f.SectionH,
		Uploads:  f.Uploads,

		DeclarationAgreed:         f.DeclarationAgreed,
		FinalSignatoryName:        f.FinalSignatoryName,
		FinalSignatoryDesignation: f.FinalSignatoryDesignation,
		FinalSignatoryDate:        f.FinalSignatoryDate,

		Timestamps: Timestamps{
			CreatedAt: f.CreatedAt.Format(time.RFC3339),
			UpdatedAt: f.UpdatedAt.Format(time.RFC3339),
		},
	}
	if f.Uploads == nil {
		resp.Uploads = map[string]string{}
	}
	if f.SubmittedAt != nil {
		v := f.SubmittedAt.Format(time.RFC3339)
		resp.Timestamps.SubmittedAt = &v
	}
	if includeOfficeUse {
		officeUse := f.OfficeUse
		resp.OfficeUse = &officeUse
	}
	return resp
}
