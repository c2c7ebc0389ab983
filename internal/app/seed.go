package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/bxcodec/faker/v3"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/client"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/config"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/credit"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/identity"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/policy"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/registration"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/connection"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/storage"
)

// seedClient is the fake data for one demo client. Field values come from
// faker tags.
type seedClient struct {
	Email          string `faker:"email"`
	ContactName    string `faker:"name"`
	OwnerName      string `faker:"name"`
	PartnerName    string `faker:"name"`
	ManagerName    string `faker:"name"`
	FinanceContact string `faker:"name"`
	Phone          string `faker:"e_164_phone_number"`
	Fax            string `faker:"e_164_phone_number"`
	CompanyWord    string `faker:"word"`
	BankWord       string `faker:"word"`
}

var seedCaser = cases.Title(language.English)

func (s seedClient) companyName() string {
	return seedCaser.String(s.CompanyWord) + " Trading LLC"
}

// RunSeed provisions demo clients through the real service layer, so the
// seeded rows go through the same lifecycle transitions as live traffic.
// Every second client gets credentials marked sent plus a saved draft form.
func RunSeed(cfg *config.Config, count int) error {
	logger := zap.L().Named("app.seed")

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return err
	}
	if err := migrate(gormDB); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	policyService, err := policy.NewService(cfg.AdminEmails)
	if err != nil {
		return err
	}
	store, err := storage.NewDiskStore(cfg.StorageDir, cfg.StorageBaseURL)
	if err != nil {
		return err
	}

	identityRepo := identity.NewRepository(gormDB)
	clientRepo := client.NewRepository(gormDB)
	formRepo := registration.NewRepository(gormDB)
	creditRepo := credit.NewRepository(gormDB)

	identityService := identity.NewService(identityRepo, policyService, clientRepo)
	clientService := client.NewService(sqlDB, clientRepo, formRepo, creditRepo, identityService, store)
	registrationService := registration.NewService(sqlDB, formRepo, client.NewProfileStore(clientRepo))

	ctx := context.Background()

	for i := 0; i < count; i++ {
		var fake seedClient
		if err := faker.FakeData(&fake); err != nil {
			return fmt.Errorf("generate fake client: %w", err)
		}

		created, err := clientService.Create(ctx, client.CreateClientRequest{
			Email:       strings.ToLower(fake.Email),
			CompanyName: fake.companyName(),
		})
		if err != nil {
			return fmt.Errorf("seed client %d: %w", i+1, err)
		}

		logger.Info("seeded client",
			zap.String("client_id", created.Client.ID),
			zap.String("email", created.Client.Email),
			zap.String("password", created.TemporaryPassword),
		)

		if i%2 != 0 {
			continue
		}

		if _, err := clientService.MarkCredentialsSent(ctx, created.Client.ID); err != nil {
			return fmt.Errorf("seed client %d credentials: %w", i+1, err)
		}
		if _, err := registrationService.SaveDraft(ctx, created.Client.ID, seedFormRequest(fake, created.Client)); err != nil {
			return fmt.Errorf("seed client %d draft: %w", i+1, err)
		}
	}

	logger.Info("seed finished", zap.Int("clients", count))
	return nil
}

func seedFormRequest(fake seedClient, profile client.ClientResponse) registration.SaveFormRequest {
	return registration.SaveFormRequest{
		SectionA: registration.CompanyInfo{
			CompanyName:      profile.CompanyName,
			Email:            profile.Email,
			Emirate:          "Dubai",
			Location:         "Business Bay",
			Telephone:        fake.Phone,
			Fax:              fake.Fax,
			NatureOfBusiness: "General Trading",
			LegalStatus:      "LLC",
			ContactNo:        fake.Phone,
		},
		SectionB: []registration.OwnerEntry{
			{Name: fake.OwnerName, Nationality: "UAE", Position: "Owner"},
			{Name: fake.PartnerName, Nationality: "UAE", Position: "Partner"},
			{Name: fake.ManagerName, Position: "General Manager", IsGeneralManager: true, ContactNo: fake.Phone},
		},
		SectionC: []registration.Signatory{
			{Name: fake.ContactName, Designation: "Purchasing Officer"},
		},
		SectionD: []registration.Signatory{
			{Name: fake.ManagerName, Designation: "General Manager"},
		},
		SectionE: registration.ContactDetails{
			Name:        fake.ContactName,
			Designation: "Accounts",
			ContactNo:   fake.Phone,
			Email:       profile.Email,
		},
		SectionF: registration.ContactDetails{
			Name:        fake.FinanceContact,
			Designation: "Finance Manager",
			ContactNo:   fake.Phone,
			Email:       profile.Email,
		},
		SectionG: []registration.BankReference{
			{BankName: seedCaser.String(fake.BankWord) + " Bank", AccountNo: "AE070331234567890123456", TelNo: fake.Phone},
		},
		SectionH: []registration.TradeReference{
			{CompanyName: seedCaser.String(fake.CompanyWord) + " Foodstuff", Since: "2019", TelNo: fake.Phone},
		},
	}
}
