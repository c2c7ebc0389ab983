package registration

import (
	"time"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/documents"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/pdf"
)

var uploadSlotLabels = []struct {
	slot  string
	label string
}{
	{documents.SlotTradeLicense, "Trade License copy"},
	{documents.SlotChamberCert, "Chamber of Commerce certificate"},
	{documents.SlotVATCertificate, "VAT certificate"},
	{documents.SlotSponsorPassport, "Sponsor passport copy"},
	{documents.SlotEmiratesIDOwners, "Emirates ID of owners/partners"},
	{documents.SlotVisaOwners, "Visa of owners/partners"},
	{documents.SlotPassportOwners, "Passport of owners/partners"},
	{documents.SlotAttestedSignature, "Attested signature"},
	{documents.SlotAuthPassport, "Authorized signatory passport"},
	{documents.SlotSecurityCheque, "Security cheque"},
	{documents.SlotAdvanceCheque, "Advance cheque"},
	{documents.SlotCompanyStamp, "Company stamp"},
	{documents.SlotBankStatement, "Bank statement"},
	{documents.SlotAttestedDocument, "Attested document"},
}

// renderRegistrationPDF writes a printable snapshot of the form. Uploaded
// documents appear as presence checkboxes only.
func renderRegistrationPDF(f *Form) ([]byte, error) {
	doc := pdf.NewDocument("Client Registration Form")
	doc.Field("Client ID", f.ID.String())
	if f.ReferenceNo != "" {
		doc.Field("Reference no.", f.ReferenceNo)
	}
	doc.Field("Status", f.Status)
	if f.SubmittedAt != nil {
		doc.Field("Submitted", f.SubmittedAt.Format(time.RFC3339))
	}

	doc.Heading("A. Company Details")
	a := f.SectionA
	doc.Field("Company name", a.CompanyName)
	doc.Field("Division", a.Division)
	doc.Field("P.O. Box", a.POBox)
	doc.Field("Emirate", a.Emirate)
	doc.Field("Location", a.Location)
	doc.Field("Telephone", a.Telephone)
	doc.Field("Fax", a.Fax)
	doc.Field("Email", a.Email)
	doc.Field("Nature of business", a.NatureOfBusiness)
	doc.Field("Period in UAE", a.PeriodInUAE)
	doc.Field("Legal status", a.LegalStatus)
	doc.Field("Trade License no.", a.TradeLicenseNo)
	doc.Field("Trade License expiry", a.TradeLicenseExpiry)
	doc.Field("Sponsor name", a.SponsorName)
	doc.Field("Contact no.", a.ContactNo)

	doc.Heading("B. Owners / Partners / General Manager")
	if len(f.SectionB) == 0 {
		doc.Line("None provided")
	}
	for i, owner := range f.SectionB {
		role := "Owner/Partner"
		if owner.IsGeneralManager {
			role = "General Manager"
		}
		doc.Line("%d. %s (%s)", i+1, orDash(owner.Name), role)
		doc.Field("   Nationality", owner.Nationality)
		doc.Field("   Position", owner.Position)
		if owner.ContactNo != "" {
			doc.Field("   Contact no.", owner.ContactNo)
		}
	}

	renderSignatories(doc, "C. Authorized Signatories (LPO)", f.SectionC)
	renderSignatories(doc, "D. Authorized Signatories (Cheques)", f.SectionD)
	renderContact(doc, "E. Invoice Contact", f.SectionE)
	renderContact(doc, "F. Finance Contact", f.SectionF)

	doc.Heading("G. Bank References")
	if len(f.SectionG) == 0 {
		doc.Line("None provided")
	}
	for i, bank := range f.SectionG {
		doc.Line("%d. %s", i+1, orDash(bank.BankName))
		doc.Field("   Account no.", bank.AccountNo)
		doc.Field("   Tel no.", bank.TelNo)
	}

	doc.Heading("H. Trade References")
	if len(f.SectionH) == 0 {
		doc.Line("None provided")
	}
	for i, ref := range f.SectionH {
		doc.Line("%d. %s", i+1, orDash(ref.CompanyName))
		doc.Field("   Dealing since", ref.Since)
		doc.Field("   Tel no.", ref.TelNo)
	}

	doc.Heading("Documents Provided")
	for _, entry := range uploadSlotLabels {
		doc.Checkbox(entry.label, documents.Satisfied(f.Uploads[entry.slot]))
	}

	doc.Heading("Declaration")
	doc.Checkbox("Declaration agreed", f.DeclarationAgreed)
	doc.Field("Signatory name", f.FinalSignatoryName)
	doc.Field("Designation", f.FinalSignatoryDesignation)
	doc.Field("Date", f.FinalSignatoryDate)
	doc.Checkbox("Signature provided", documents.Satisfied(f.Uploads[documents.SlotFinalSignature]))

	if f.OfficeUse != (OfficeUse{}) {
		doc.Heading("For Office Use Only")
		o := f.OfficeUse
		doc.Field("Sales comments", o.SalesComments)
		doc.Field("Sales staff", o.SalesStaffName)
		doc.Field("Sales date", o.SalesDate)
		doc.Field("Division manager comments", o.DivisionManagerComments)
		doc.Field("Division manager", o.DivisionManagerName)
		doc.Field("Division manager date", o.DivisionManagerDate)
		doc.Field("Finance manager comments", o.FinanceManagerComments)
		doc.Field("Approved credit limit", o.ApprovedCreditLimit)
		doc.Field("Credit period", o.CreditPeriod)
	}

	return doc.Bytes()
}

func renderSignatories(doc *pdf.Document, heading string, signatories []Signatory) {
	doc.Heading(heading)
	if len(signatories) == 0 {
		doc.Line("None provided")
	}
	for i, sig := range signatories {
		doc.Line("%d. %s", i+1, orDash(sig.Name))
		doc.Field("   Designation", sig.Designation)
		if sig.ContactNo != "" {
			doc.Field("   Contact no.", sig.ContactNo)
		}
		doc.Checkbox("   Signature provided", documents.Satisfied(sig.SignatureURL))
	}
}

func renderContact(doc *pdf.Document, heading string, c ContactDetails) {
	doc.Heading(heading)
	doc.Field("Name", c.Name)
	doc.Field("Designation", c.Designation)
	doc.Field("P.O. Box", c.POBox)
	doc.Field("Emirate", c.Emirate)
	doc.Field("Location", c.Location)
	doc.Field("Contact no.", c.ContactNo)
	doc.Field("Fax", c.Fax)
	doc.Field("Email", c.Email)
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
