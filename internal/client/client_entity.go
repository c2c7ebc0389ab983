package client

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is the profile record for one onboarded company. Its ID doubles as
// the login user id, the registration form id and the credit application id.
type Client struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	CompanyName string    `gorm:"type:varchar(255);not null"`

	Status string `gorm:"type:varchar(20);not null;default:'CREATED';index"`

	// Reopen flags are pending-admin-action markers, nil when nothing is
	// pending.
	ReopenStatus       *string `gorm:"type:varchar(30)"`
	CreditReopenStatus *string `gorm:"type:varchar(30)"`

	HasCreditAccess     bool   `gorm:"not null;default:false"`
	CreditRequested     bool   `gorm:"not null;default:false"`
	CreditRequestStatus string `gorm:"type:varchar(20);not null;default:'none'"`

	CreatedAt   time.Time
	UpdatedAt   time.Time
	SubmittedAt *time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Client) TableName() string { return "clients" }
