package models

// User is a membership record. The membership number is the
// organization-issued identifier members log in with; email is optional
// and stored as NULL when blank so the unique index ignores it.
type User struct {
	ID               uint    `gorm:"primaryKey"`
	MembershipNumber string  `gorm:"uniqueIndex;not null"`
	Email            *string `gorm:"uniqueIndex"`
	FirstName        string
	LastName         string
	PhoneNumber      string
	Position         *string
	IsAdmin          bool `gorm:"not null;default:false"`
}

// EmailValue returns the email or "" when absent.
func (user User) EmailValue() string {
	if user.Email == nil {
		return ""
	}
	return *user.Email
}

// DisplayName is used in the member directory and request logs.
func (user User) DisplayName() string {
	name := user.FirstName
	if user.LastName != "" {
		if name != "" {
			name += " "
		}
		name += user.LastName
	}
	return name
}
