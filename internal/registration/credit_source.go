package registration

import (
	"context"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/credit"
)

// CreditSource maps the registration form onto the credit module's prefill
// snapshot without handing it the repository.
type CreditSource struct {
	repo Repository
}

func NewCreditSource(repo Repository) *CreditSource {
	return &CreditSource{repo: repo}
}

// Defaults mirrors what a client would otherwise retype: section A fills the
// company block, the first two section H rows become trade references, and
// the upload map feeds the document fallback.
func (s *CreditSource) Defaults(ctx context.Context, clientID string) (credit.FormDefaults, error) {
	f, err := s.repo.FindByClient(ctx, clientID)
	if err != nil {
		return credit.FormDefaults{}, err
	}

	d := credit.FormDefaults{
		Company: credit.CompanyInfo{
			CompanyName:    f.SectionA.CompanyName,
			TradeLicenseNo: f.SectionA.TradeLicenseNo,
			POBox:          f.SectionA.POBox,
			Emirate:        f.SectionA.Emirate,
			Telephone:      f.SectionA.Telephone,
			Email:          f.SectionA.Email,
			YearsInUAE:     f.SectionA.PeriodInUAE,
			NatureOfWork:   f.SectionA.NatureOfBusiness,
		},
		Uploads: f.Uploads,
	}

	for _, ref := range f.SectionH {
		if len(d.TradeReferences) == 2 {
			break
		}
		if ref.CompanyName == "" {
			continue
		}
		d.TradeReferences = append(d.TradeReferences, credit.TradeReference{
			CompanyName:   ref.CompanyName,
			ContactPerson: ref.CompanyName + " Contact",
			Mobile:        ref.TelNo,
		})
	}

	return d, nil
}
