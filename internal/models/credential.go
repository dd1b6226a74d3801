package models

// Credential holds the password hash for a user, keyed by membership
// number rather than user id so it can be recreated lazily when missing.
// A user has exactly zero or one credential.
type Credential struct {
	ID               uint   `gorm:"primaryKey"`
	MembershipNumber string `gorm:"uniqueIndex;not null"`
	PasswordHash     string `gorm:"not null"`
}

func (Credential) TableName() string {
	return "user_credentials"
}
