package client

import (
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/credit"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/documents"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/registration"
)

// ClientView is the admin's merged picture of one client. The profile is
// authoritative for lifecycle fields; form and application blocks are nil
// until the respective record exists.
type ClientView struct {
	Profile      ClientResponse              `json:"profile"`
	Registration *registration.FormResponse  `json:"registration,omitempty"`
	Credit       *credit.ApplicationResponse `json:"credit,omitempty"`

	// CreditDocuments is the application's document set after the fallback
	// to registration uploads, so reviewers see what a submit would see.
	CreditDocuments map[string]string `json:"creditDocuments,omitempty"`
}

func buildView(profile Client, form *registration.FormResponse, app *credit.ApplicationResponse) ClientView {
	view := ClientView{
		Profile:      mapToResponse(profile),
		Registration: form,
		Credit:       app,
	}

	if form != nil {
		// The profile status wins when the two records disagree mid-write.
		view.Registration.Status = view.Profile.Status
	}
	if app != nil {
		var uploads map[string]string
		if form != nil {
			uploads = form.Uploads
		}
		view.CreditDocuments = documents.ResolveCreditDocs(app.Documents, uploads)
	}
	return view
}
