package user

import "time"

// Account represents the accounts table used by the local identity provider.
type Account struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;size:320;not null"`
	PasswordHash string `gorm:"not null"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Account) TableName() string {
	return "accounts"
}

// Identity is a user as known to an identity provider.
type Identity struct {
	UID   string
	Email string
}

// Profile is the users document stored under the identity's uid.
type Profile struct {
	UID      string
	Email    string
	Username string
}
