package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is the identity behind a bearer token. It is created on the first
// register-or-login call for an email and never changes afterwards.
type Account struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Email      string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	SecretHash string    `gorm:"size:255;not null" json:"-"`
}

func (Account) TableName() string {
	return "accounts"
}
