package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       string  `gorm:"primaryKey;type:uuid" json:"id"`
	Username string  `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email    string  `gorm:"uniqueIndex;size:254;not null" json:"email"`
	Role     string  `gorm:"default:'user';not null" json:"role"` // "user", "moderator" or "admin"
	Bio      *string `gorm:"type:text" json:"bio,omitempty"`
	// Single active confirmation code, replaced on every signup for the
	// same account. Plain string comparison on exchange, no expiry.
	ConfirmationCode *string   `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
