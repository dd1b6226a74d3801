package db

import (
	"strings"

	"github.com/kcouncil/portal/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) CountUsers() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// FindByLogin matches the submitted username against either the membership
// number or the email, case-insensitively.
func (repo *UserRepository) FindByLogin(username string) (models.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(username))
	var user models.User
	if err := repo.database.
		Where("lower(membership_number) = ? OR lower(email) = ?", normalized, normalized).
		First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// FindByEmailAndMembership requires both identifiers to match the same
// record: email case-insensitively, membership number exactly.
func (repo *UserRepository) FindByEmailAndMembership(email string, membershipNumber string) (models.User, error) {
	var user models.User
	if err := repo.database.
		Where("lower(email) = ? AND membership_number = ?", strings.ToLower(strings.TrimSpace(email)), membershipNumber).
		First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByMembershipNumber(membershipNumber string) (models.User, error) {
	var user models.User
	if err := repo.database.
		Where("membership_number = ?", membershipNumber).
		First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByMembershipNumber(membershipNumber string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("membership_number = ?", membershipNumber).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("email = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// ListSortedByName returns the full member directory ordered by last name
// then first name.
func (repo *UserRepository) ListSortedByName() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.Order("last_name, first_name").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepository) ListMissingCredential() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.
		Where("membership_number <> '' AND membership_number NOT IN (?)",
			repo.database.Model(&models.Credential{}).Select("membership_number")).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}

// DeleteWithCredential removes the user and their credential together.
func (repo *UserRepository) DeleteWithCredential(userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if err := tx.Where("membership_number = ?", user.MembershipNumber).
			Delete(&models.Credential{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
