package models

import "time"

// PasswordReset is a single-use, time-boxed reset token. Tokens are
// consumed by setting Used; they are never deleted.
type PasswordReset struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Key       string `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time
	Used      bool `gorm:"not null;default:false"`
}
