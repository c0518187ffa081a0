package model

import "time"

// User mirrors the identity provider's subject: one row per authenticated
// account, upserted on every login.
type User struct {
	ID              string    `gorm:"primaryKey;size:128" json:"id"`
	Email           *string   `gorm:"size:255;uniqueIndex" json:"email"`
	FirstName       *string   `gorm:"size:100" json:"firstName"`
	LastName        *string   `gorm:"size:100" json:"lastName"`
	ProfileImageURL *string   `gorm:"size:512" json:"profileImageUrl"`
	IsAdmin         bool      `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
