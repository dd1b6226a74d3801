package services

import (
	"errors"
	"time"

	"github.com/kcouncil/portal/internal/db"
	"github.com/kcouncil/portal/internal/models"
	"github.com/kcouncil/portal/internal/security"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrNoMatchingUser       = errors.New("no user matches email and membership number")
	ErrResetKeyInvalid      = errors.New("invalid or expired reset key")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrWrongCurrentPassword = errors.New("incorrect current password")
)

// ResetTokenTTL is the fixed lifetime of a password-reset key.
const ResetTokenTTL = time.Hour

// AuthService implements login, password reset and password change over
// the user, credential and reset-token tables.
type AuthService struct {
	database    *gorm.DB
	users       *db.UserRepository
	credentials *db.CredentialRepository
	resets      *db.PasswordResetRepository
}

func NewAuthService(database *gorm.DB) *AuthService {
	repos := db.NewRepositories(database)
	return &AuthService{
		database:    database,
		users:       repos.Users,
		credentials: repos.Credentials,
		resets:      repos.Resets,
	}
}

// HashPassword wraps bcrypt at the portal-wide cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login resolves the username against membership number or email and
// verifies the password. A user without a credential row gets one created
// on the spot with the membership number as the default password; in that
// case the submitted password is compared to the membership number
// directly. That literal comparison mirrors long-standing behavior and is
// kept until the account-recovery process changes.
func (service *AuthService) Login(username string, password string) (models.User, error) {
	user, err := service.users.FindByLogin(username)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	credential, err := service.credentials.FindByMembershipNumber(user.MembershipNumber)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaultHash, hashErr := HashPassword(user.MembershipNumber)
		if hashErr != nil {
			return models.User{}, hashErr
		}
		if createErr := service.credentials.Create(&models.Credential{
			MembershipNumber: user.MembershipNumber,
			PasswordHash:     defaultHash,
		}); createErr != nil {
			return models.User{}, createErr
		}
		if password != user.MembershipNumber {
			return models.User{}, ErrInvalidCredentials
		}
		return user, nil
	}
	if err != nil {
		return models.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// StartPasswordReset issues a fresh single-use key when the email and
// membership number identify the same user. Repeated requests stack
// additional valid keys; none are invalidated here.
func (service *AuthService) StartPasswordReset(email string, membershipNumber string, now time.Time) (string, models.User, error) {
	user, err := service.users.FindByEmailAndMembership(email, membershipNumber)
	if err != nil {
		return "", models.User{}, ErrNoMatchingUser
	}

	key, err := security.ResetKey()
	if err != nil {
		return "", models.User{}, err
	}

	reset := models.PasswordReset{
		UserID:    user.ID,
		Key:       key,
		ExpiresAt: now.Add(ResetTokenTTL),
	}
	if err := service.resets.Create(&reset); err != nil {
		return "", models.User{}, err
	}
	return key, user, nil
}

// ValidateResetKey reports whether a key is still usable.
func (service *AuthService) ValidateResetKey(key string, now time.Time) error {
	if _, err := service.resets.FindValid(key, now); err != nil {
		return ErrResetKeyInvalid
	}
	return nil
}

// ResetPassword consumes a valid key and overwrites (or creates) the
// user's credential. Any failure leaves every row untouched.
func (service *AuthService) ResetPassword(key string, newPassword string, confirmPassword string, now time.Time) error {
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	reset, err := service.resets.FindValid(key, now)
	if err != nil {
		return ErrResetKeyInvalid
	}

	user, err := service.users.FindByID(reset.UserID)
	if err != nil {
		return ErrResetKeyInvalid
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	// The credential overwrite and the token consumption land together or
	// not at all; a stored hash with a still-valid key must never exist.
	return service.database.Transaction(func(tx *gorm.DB) error {
		if err := db.NewCredentialRepository(tx).UpsertHash(user.MembershipNumber, hash); err != nil {
			return err
		}
		return db.NewPasswordResetRepository(tx).MarkUsed(reset.ID)
	})
}

// ChangePassword verifies the current password before applying the new one.
func (service *AuthService) ChangePassword(user models.User, currentPassword string, newPassword string, confirmPassword string) error {
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	credential, err := service.credentials.FindByMembershipNumber(user.MembershipNumber)
	if err != nil {
		return ErrWrongCurrentPassword
	}
	if bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(currentPassword)) != nil {
		return ErrWrongCurrentPassword
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return service.credentials.UpsertHash(user.MembershipNumber, hash)
}
