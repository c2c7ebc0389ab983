package credit

import (
	"time"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/documents"
)

// SaveApplicationRequest is the full editable snapshot, same replace-on-save
// semantics as the registration form.
type SaveApplicationRequest struct {
	Company         CompanyInfo       `json:"company"`
	Financial       FinancialInfo     `json:"financial"`
	Banks           []BankDetail      `json:"banks"`
	Terms           Terms             `json:"terms"`
	TradeReferences []TradeReference  `json:"tradeReferences"`
	Questionnaire   Questionnaire     `json:"questionnaire"`
	Documents       map[string]string `json:"documents"`

	DeclarationAgreed    bool   `json:"declarationAgreed"`
	SignatoryName        string `json:"signatoryName"`
	SignatoryDesignation string `json:"signatoryDesignation"`
	SignatoryDate        string `json:"signatoryDate"`
}

type ApplicationResponse struct {
	ApplicationID   string `json:"applicationId"`
	ClientID        string `json:"clientId"`
	Status          string `json:"status"`
	ReferenceNo     string `json:"referenceNo,omitempty"`
	ReopenRequested bool   `json:"reopenRequested"`

	Company         CompanyInfo       `json:"company"`
	Financial       FinancialInfo     `json:"financial"`
	Banks           []BankDetail      `json:"banks"`
	Terms           Terms             `json:"terms"`
	TradeReferences []TradeReference  `json:"tradeReferences"`
	Questionnaire   Questionnaire     `json:"questionnaire"`
	Documents       map[string]string `json:"documents"`

	DeclarationAgreed    bool   `json:"declarationAgreed"`
	SignatoryName        string `json:"signatoryName"`
	SignatoryDesignation string `json:"signatoryDesignation"`
	SignatoryDate        string `json:"signatoryDate"`

	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
	SubmittedAt *string `json:"submittedAt,omitempty"`
}

type MissingDocument struct {
	Document string `json:"document"`
	Message  string `json:"message"`
}

func applyRequest(app *Application, req SaveApplicationRequest) {
	app.Company = req.Company
	app.Financial = req.Financial
	app.Banks = req.Banks
	app.Terms = req.Terms
	app.TradeReferences = req.TradeReferences
	app.Questionnaire = req.Questionnaire

	docs := make(map[string]string, len(req.Documents))
	for key, url := range req.Documents {
		if isCreditDocKey(key) && url != "" {
			docs[key] = url
		}
	}
	app.Documents = docs

	app.DeclarationAgreed = req.DeclarationAgreed
	app.SignatoryName = req.SignatoryName
	app.SignatoryDesignation = req.SignatoryDesignation
	app.SignatoryDate = req.SignatoryDate
}

func isCreditDocKey(key string) bool {
	for _, known := range documents.CreditDocKeys() {
		if key == known {
			return true
		}
	}
	return false
}

// MapToAdminResponse backs the admin's merged client view.
func MapToAdminResponse(app Application) ApplicationResponse {
	return mapToResponse(app)
}

func mapToResponse(app Application) ApplicationResponse {
	resp := ApplicationResponse{
		ApplicationID:   app.ID.String(),
		ClientID:        app.ID.String(),
		Status:          app.Status,
		ReferenceNo:     app.ReferenceNo,
		ReopenRequested: app.ReopenRequested,

		Company:         app.Company,
		Financial:       app.Financial,
		Banks:           app.Banks,
		Terms:           app.Terms,
		TradeReferences: app.TradeReferences,
		Questionnaire:   app.Questionnaire,
		Documents:       app.Documents,

		DeclarationAgreed:    app.DeclarationAgreed,
		SignatoryName:        app.SignatoryName,
		SignatoryDesignation: app.SignatoryDesignation,
		SignatoryDate:        app.SignatoryDate,

		CreatedAt: app.CreatedAt.Format(time.RFC3339),
		UpdatedAt: app.UpdatedAt.Format(time.RFC3339),
	}
	if resp.Documents == nil {
		resp.Documents = map[string]string{}
	}
	if app.SubmittedAt != nil {
		v := app.SubmittedAt.Format(time.RFC3339)
		resp.SubmittedAt = &v
	}
	return resp
}
