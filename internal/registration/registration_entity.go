package registration

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyInfo is section A of the registration form.
type CompanyInfo struct {
	CompanyName        string `json:"companyName"`
	Division           string `json:"division"`
	POBox              string `json:"poBox"`
	Emirate            string `json:"emirate"`
	Location           string `json:"location"`
	Telephone          string `json:"telephone"`
	Fax                string `json:"fax"`
	Email              string `json:"email"`
	NatureOfBusiness   string `json:"natureOfBusiness"`
	PeriodInUAE        string `json:"periodInUAE"`
	LegalStatus        string `json:"legalStatus"`
	TradeLicenseNo     string `json:"tradeLicenseNo"`
	TradeLicenseExpiry string `json:"tradeLicenseExpiry"`
	SponsorName        string `json:"sponsorName"`
	ContactNo          string `json:"contactNo"`
}

// OwnerEntry is one row of section B. Entries 1-3 are owners/partners, the
// fourth is the general manager.
type OwnerEntry struct {
	Name             string `json:"name"`
	Nationality      string `json:"nationality"`
	Position         string `json:"position"`
	IsGeneralManager bool   `json:"isGeneralManager,omitempty"`
	ContactNo        string `json:"contactNo,omitempty"`
}

// Signatory is one row of sections C (LPO) and D (cheques).
type Signatory struct {
	Name         string `json:"name"`
	Designation  string `json:"designation"`
	SignatureURL string `json:"signatureUrl,omitempty"`
	ContactNo    string `json:"contactNo,omitempty"`
	POBox        string `json:"poBox,omitempty"`
	Emirate      string `json:"emirate,omitempty"`
	Location     string `json:"location,omitempty"`
}

// ContactDetails is sections E (invoice contact) and F (finance contact).
type ContactDetails struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	POBox       string `json:"poBox"`
	Emirate     string `json:"emirate"`
	Location    string `json:"location"`
	ContactNo   string `json:"contactNo"`
	Fax         string `json:"fax"`
	Email       string `json:"email"`
}

// BankReference is one row of section G.
type BankReference struct {
	BankName  string `json:"bankName"`
	AccountNo string `json:"accountNo"`
	TelNo     string `json:"telNo"`
}

// TradeReference is one row of section H.
type TradeReference struct {
	CompanyName string `json:"companyName"`
	Since       string `json:"since"`
	TelNo       string `json:"telNo"`
}

// OfficeUse is the admin-only review block.
type OfficeUse struct {
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

// Form is the registration form record. Its ID equals the owning client's id
// (one-to-one), and its status mirrors the profile lifecycle.
type Form struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status string    `gorm:"type:varchar(20);not null;default:'CREATED';index"`

	// ReferenceNo is assigned on first submit and survives reopens.
	ReferenceNo string `gorm:"type:varchar(20);index"`

	SectionA CompanyInfo       `gorm:"type:jsonb;serializer:json"`
	SectionB []OwnerEntry      `gorm:"type:jsonb;serializer:json"`
	SectionC []Signatory       `gorm:"type:jsonb;serializer:json"`
	SectionD []Signatory       `gorm:"type:jsonb;serializer:json"`
	SectionE ContactDetails    `gorm:"type:jsonb;serializer:json"`
	SectionF ContactDetails    `gorm:"type:jsonb;serializer:json"`
	SectionG []BankReference   `gorm:"type:jsonb;serializer:json"`
	SectionH []TradeReference  `gorm:"type:jsonb;serializer:json"`
	Uploads  map[string]string `gorm:"type:jsonb;serializer:json"`

	DeclarationAgreed         bool   `gorm:"not null;default:false"`
	FinalSignatoryName        string `gorm:"type:varchar(255)"`
	FinalSignatoryDesignation string `gorm:"type:varchar(255)"`
	FinalSignatoryDate        string `gorm:"type:varchar(30)"`

	OfficeUse OfficeUse `gorm:"type:jsonb;serializer:json"`

	CreatedAt   time.Time
	UpdatedAt   time.Time
	SubmittedAt *time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Form) TableName() string { return "client_forms" }
