package identity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an authentication record. Client accounts are created by an admin;
// the admin identity itself is just a user whose e-mail is on the allow-list.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password string    `gorm:"type:varchar(255);not null"`
	IsActive bool      `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
