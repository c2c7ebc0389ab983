package credit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyInfo is the applicant block of the credit application.
type CompanyInfo struct {
	CompanyName    string `json:"companyName"`
	TradeLicenseNo string `json:"tradeLicenseNo"`
	POBox          string `json:"poBox"`
	Emirate        string `json:"emirate"`
	Telephone      string `json:"telephone"`
	Email          string `json:"email"`
	YearsInUAE     string `json:"yearsInUAE"`
	NatureOfWork   string `json:"natureOfWork"`
}

// FinancialInfo is self-declared, never verified here.
type FinancialInfo struct {
	AnnualTurnover    string `json:"annualTurnover"`
	PaidUpCapital     string `json:"paidUpCapital"`
	NumberOfEmployees string `json:"numberOfEmployees"`
	AuditedAccounts   bool   `json:"auditedAccounts"`
}

type BankDetail struct {
	BankName  string `json:"bankName"`
	Branch    string `json:"branch"`
	AccountNo string `json:"accountNo"`
	IBAN      string `json:"iban"`
}

// Terms is what the client is asking for.
type Terms struct {
	RequestedLimit           string `json:"requestedLimit"`
	PaymentTermDays          string `json:"paymentTermDays"`
	EstimatedMonthlyPurchase string `json:"estimatedMonthlyPurchase"`
}

// TradeReference is one row of the supplier reference block.
type TradeReference struct {
	CompanyName   string `json:"companyName"`
	ContactPerson string `json:"contactPerson"`
	Mobile        string `json:"mobile"`
	Email         string `json:"email"`
}

// Questionnaire is the yes/no disclosure block. Nil means unanswered, which
// renders blank instead of No.
type Questionnaire struct {
	HasCreditFacilities          *bool  `json:"hasCreditFacilities,omitempty"`
	CreditFacilitiesDetails      string `json:"creditFacilitiesDetails,omitempty"`
	HasDefaultedPayments         *bool  `json:"hasDefaultedPayments,omitempty"`
	DefaultedPaymentsDetails     string `json:"defaultedPaymentsDetails,omitempty"`
	PurchaseOrdersBeforeDelivery *bool  `json:"purchaseOrdersBeforeDelivery,omitempty"`
	FinanciallyStable            *bool  `json:"financiallyStable,omitempty"`
	PreferredCommunication       string `json:"preferredCommunication,omitempty"`
}

// Application is the credit application record. Its ID equals the owning
// client's id, one application per client.
type Application struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status string    `gorm:"type:varchar(20);not null;default:'draft';index"`

	// ReferenceNo is assigned on first submit and survives reopens.
	ReferenceNo string `gorm:"type:varchar(20);index"`

	// ReopenRequested marks the application while a reopen approval is
	// pending on the profile; approval clears it.
	ReopenRequested bool `gorm:"not null;default:false"`

	Company         CompanyInfo       `gorm:"type:jsonb;serializer:json"`
	Financial       FinancialInfo     `gorm:"type:jsonb;serializer:json"`
	Banks           []BankDetail      `gorm:"type:jsonb;serializer:json"`
	Terms           Terms             `gorm:"type:jsonb;serializer:json"`
	TradeReferences []TradeReference  `gorm:"type:jsonb;serializer:json"`
	Questionnaire   Questionnaire     `gorm:"type:jsonb;serializer:json"`
	Documents       map[string]string `gorm:"type:jsonb;serializer:json"`

	DeclarationAgreed    bool   `gorm:"not null;default:false"`
	SignatoryName        string `gorm:"type:varchar(255)"`
	SignatoryDesignation string `gorm:"type:varchar(255)"`
	SignatoryDate        string `gorm:"type:varchar(30)"`

	CreatedAt   time.Time
	UpdatedAt   time.Time
	SubmittedAt *time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Application) TableName() string { return "credit_applications" }
