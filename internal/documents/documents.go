// Package documents defines the fixed upload-slot vocabulary shared by the
// registration form and the credit application. A slot is satisfied purely by
// URL presence; file contents are never inspected.
package documents

// Registration upload slots.
const (
	SlotTradeLicense       = "tradeLicenseUrl"
	SlotChamberCert        = "chamberCertUrl"
	SlotSponsorPassport    = "sponsorPassportUrl"
	SlotAttestedSignature  = "attestedSignatureUrl"
	SlotAuthPassport       = "authPassportUrl"
	SlotSecurityCheque     = "securityChequeUrl"
	SlotAdvanceCheque      = "advanceChequeUrl"
	SlotCompanyStamp       = "companyStampUrl"
	SlotFinalSignature     = "finalSignatureUrl"
	SlotAttestedDocument   = "attestedDocumentUrl"
	SlotCreditAttestedDoc  = "creditAttestedDocumentUrl"
	SlotVATCertificate     = "vatCertificateUrl"
	SlotEmiratesIDOwners   = "emiratesIdOwnersUrl"
	SlotVisaOwners         = "visaOwnersUrl"
	SlotPassportOwners     = "passportOwnersUrl"
	SlotBankStatement      = "bankStatementUrl"
	SlotSignatoryCSig1     = "sectionC0SignatureUrl"
	SlotSignatoryCSig2     = "sectionC1SignatureUrl"
	SlotSignatoryDSig1     = "sectionD0SignatureUrl"
	SlotSignatoryDSig2     = "sectionD1SignatureUrl"
	SlotCreditDeclaration  = "creditDeclarationSignatureUrl"
	SlotCreditTradeLicense = "creditTradeLicenseUrl"
	SlotCreditVATCert      = "creditVatCertificateUrl"
	SlotCreditEmiratesID   = "creditEmiratesIdUrl"
	SlotCreditVisaCopy     = "creditVisaCopyUrl"
	SlotCreditPassportCopy = "creditPassportCopyUrl"
	SlotCreditBankStmt     = "creditBankStatementUrl"
)

// Credit application document keys (within the credit documents map).
const (
	CreditDocTradeLicense   = "tradeLicenseUrl"
	CreditDocVATCertificate = "vatCertificateUrl"
	CreditDocEmiratesID     = "emiratesIdUrl"
	CreditDocVisaCopy       = "visaCopyUrl"
	CreditDocPassportCopy   = "passportCopyUrl"
	CreditDocBankStatement  = "bankStatementUrl"
)

var registrationSlots = map[string]struct{}{
	SlotTradeLicense:      {},
	SlotChamberCert:       {},
	SlotSponsorPassport:   {},
	SlotAttestedSignature: {},
	SlotAuthPassport:      {},
	SlotSecurityCheque:    {},
	SlotAdvanceCheque:     {},
	SlotCompanyStamp:      {},
	SlotFinalSignature:    {},
	SlotAttestedDocument:  {},
	SlotCreditAttestedDoc: {},
	SlotVATCertificate:    {},
	SlotEmiratesIDOwners:  {},
	SlotVisaOwners:        {},
	SlotPassportOwners:    {},
	SlotBankStatement:     {},
	SlotSignatoryCSig1:    {},
	SlotSignatoryCSig2:    {},
	SlotSignatoryDSig1:    {},
	SlotSignatoryDSig2:    {},
}

var creditSlots = map[string]struct{}{
	SlotCreditDeclaration:  {},
	SlotCreditTradeLicense: {},
	SlotCreditVATCert:      {},
	SlotCreditEmiratesID:   {},
	SlotCreditVisaCopy:     {},
	SlotCreditPassportCopy: {},
	SlotCreditBankStmt:     {},
}

// KnownSlot reports whether the slot name is part of the fixed vocabulary.
func KnownSlot(slot string) bool {
	if _, ok := registrationSlots[slot]; ok {
		return true
	}
	_, ok := creditSlots[slot]
	return ok
}

// Satisfied is the sole "document received" signal: the URL string is
// non-empty. Any non-empty string counts, even a malformed one.
func Satisfied(url string) bool {
	return url != ""
}

// creditFallback maps each credit document key to the ordered registration
// upload slots it falls back to when its own slot is empty.
var creditFallback = map[string][]string{
	CreditDocTradeLicense:   {SlotTradeLicense},
	CreditDocVATCertificate: {SlotVATCertificate},
	CreditDocEmiratesID:     {SlotEmiratesIDOwners},
	CreditDocVisaCopy:       {SlotVisaOwners},
	CreditDocPassportCopy:   {SlotPassportOwners, SlotSponsorPassport},
	CreditDocBankStatement:  {SlotBankStatement},
}

// CreditDocKeys returns the credit document keys covered by the fallback
// table, in a stable order.
func CreditDocKeys() []string {
	return []string{
		CreditDocTradeLicense,
		CreditDocVATCertificate,
		CreditDocEmiratesID,
		CreditDocVisaCopy,
		CreditDocPassportCopy,
		CreditDocBankStatement,
	}
}

// ResolveCreditDocs fills empty credit document slots from the registration
// uploads according to the fallback table. The input maps are not mutated.
func ResolveCreditDocs(creditDocs, registrationUploads map[string]string) map[string]string {
	resolved := make(map[string]string, len(creditFallback))
	for key, sources := range creditFallback {
		if url := creditDocs[key]; Satisfied(url) {
			resolved[key] = url
			continue
		}
		for _, source := range sources {
			if url := registrationUploads[source]; Satisfied(url) {
				resolved[key] = url
				break
			}
		}
	}
	return resolved
}
