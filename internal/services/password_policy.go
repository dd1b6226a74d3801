package services

import (
	"errors"
	"unicode"
)

var ErrWeakPassword = errors.New("weak password")

// ValidatePasswordStrength enforces the portal policy: at least 10
// characters with both upper and lower case. Digits and symbols are not
// required.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < 10 {
		return ErrWeakPassword
	}

	hasUpper := false
	hasLower := false
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		}
	}

	if hasUpper && hasLower {
		return nil
	}
	return ErrWeakPassword
}
