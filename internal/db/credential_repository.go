package db

import (
	"errors"

	"github.com/kcouncil/portal/internal/models"
	"gorm.io/gorm"
)

type CredentialRepository struct {
	database *gorm.DB
}

func NewCredentialRepository(database *gorm.DB) *CredentialRepository {
	return &CredentialRepository{database: database}
}

func (repo *CredentialRepository) FindByMembershipNumber(membershipNumber string) (models.Credential, error) {
	var credential models.Credential
	if err := repo.database.
		Where("membership_number = ?", membershipNumber).
		First(&credential).Error; err != nil {
		return models.Credential{}, err
	}
	return credential, nil
}

func (repo *CredentialRepository) Create(credential *models.Credential) error {
	return repo.database.Create(credential).Error
}

// UpsertHash overwrites the stored hash, creating the credential row when
// the user has none (password reset against a lazily-created account).
func (repo *CredentialRepository) UpsertHash(membershipNumber string, passwordHash string) error {
	var credential models.Credential
	err := repo.database.
		Where("membership_number = ?", membershipNumber).
		First(&credential).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.database.Create(&models.Credential{
			MembershipNumber: membershipNumber,
			PasswordHash:     passwordHash,
		}).Error
	}
	if err != nil {
		return err
	}
	return repo.database.Model(&credential).Update("password_hash", passwordHash).Error
}

// Rekey follows a membership-number change on the owning user.
func (repo *CredentialRepository) Rekey(oldMembershipNumber string, newMembershipNumber string) error {
	return repo.database.Model(&models.Credential{}).
		Where("membership_number = ?", oldMembershipNumber).
		Update("membership_number", newMembershipNumber).Error
}
