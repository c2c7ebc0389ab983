package credit

import (
	"time"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/documents"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/pdf"
)

var creditDocPDFLabels = []struct {
	key   string
	label string
}{
	{documents.CreditDocTradeLicense, "Trade License copy"},
	{documents.CreditDocVATCertificate, "VAT certificate"},
	{documents.CreditDocEmiratesID, "Emirates ID copy"},
	{documents.CreditDocVisaCopy, "Visa copy"},
	{documents.CreditDocPassportCopy, "Passport copy"},
	{documents.CreditDocBankStatement, "Bank statement"},
}

// yesNo keeps the unanswered state visible: an empty value prints as a dash
// rather than a hard No.
func yesNo(v *bool) string {
	if v == nil {
		return ""
	}
	if *v {
		return "Yes"
	}
	return "No"
}

func renderCreditPDF(app *Application) ([]byte, error) {
	doc := pdf.NewDocument("Credit Application")
	doc.Field("Client ID", app.ID.String())
	if app.ReferenceNo != "" {
		doc.Field("Reference no.", app.ReferenceNo)
	}
	doc.Field("Status", app.Status)
	if app.SubmittedAt != nil {
		doc.Field("Submitted", app.SubmittedAt.Format(time.RFC3339))
	}

	doc.Heading("Company")
	c := app.Company
	doc.Field("Company name", c.CompanyName)
	doc.Field("Trade License no.", c.TradeLicenseNo)
	doc.Field("P.O. Box", c.POBox)
	doc.Field("Emirate", c.Emirate)
	doc.Field("Telephone", c.Telephone)
	doc.Field("Email", c.Email)
	doc.Field("Years in UAE", c.YearsInUAE)
	doc.Field("Nature of work", c.NatureOfWork)

	doc.Heading("Financial Information")
	fi := app.Financial
	doc.Field("Annual turnover", fi.AnnualTurnover)
	doc.Field("Paid-up capital", fi.PaidUpCapital)
	doc.Field("Employees", fi.NumberOfEmployees)
	doc.Checkbox("Audited accounts available", fi.AuditedAccounts)

	doc.Heading("Bank Details")
	if len(app.Banks) == 0 {
		doc.Line("None provided")
	}
	for i, bank := range app.Banks {
		doc.Line("%d. %s", i+1, bank.BankName)
		doc.Field("   Branch", bank.Branch)
		doc.Field("   Account no.", bank.AccountNo)
		doc.Field("   IBAN", bank.IBAN)
	}

	doc.Heading("Requested Terms")
	doc.Field("Requested credit limit", app.Terms.RequestedLimit)
	doc.Field("Payment term (days)", app.Terms.PaymentTermDays)
	doc.Field("Estimated monthly purchase", app.Terms.EstimatedMonthlyPurchase)

	doc.Heading("Trade References")
	if len(app.TradeReferences) == 0 {
		doc.Line("None provided")
	}
	for i, ref := range app.TradeReferences {
		doc.Line("%d. %s", i+1, ref.CompanyName)
		doc.Field("   Contact person", ref.ContactPerson)
		doc.Field("   Mobile", ref.Mobile)
		doc.Field("   Email", ref.Email)
	}

	doc.Heading("Questionnaire")
	q := app.Questionnaire
	doc.Field("Existing credit facilities", yesNo(q.HasCreditFacilities))
	doc.Field("   Details", q.CreditFacilitiesDetails)
	doc.Field("Defaulted on payments before", yesNo(q.HasDefaultedPayments))
	doc.Field("   Details", q.DefaultedPaymentsDetails)
	doc.Field("Purchase orders issued before delivery", yesNo(q.PurchaseOrdersBeforeDelivery))
	doc.Field("Financially stable", yesNo(q.FinanciallyStable))
	doc.Field("Preferred communication", q.PreferredCommunication)

	doc.Heading("Documents Provided")
	for _, entry := range creditDocPDFLabels {
		doc.Checkbox(entry.label, documents.Satisfied(app.Documents[entry.key]))
	}

	doc.Heading("Declaration")
	doc.Checkbox("Declaration agreed", app.DeclarationAgreed)
	doc.Field("Signatory name", app.SignatoryName)
	doc.Field("Designation", app.SignatoryDesignation)
	doc.Field("Date", app.SignatoryDate)

	return doc.Bytes()
}
