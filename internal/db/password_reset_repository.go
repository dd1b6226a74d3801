package db

import (
	"time"

	"github.com/kcouncil/portal/internal/models"
	"gorm.io/gorm"
)

type PasswordResetRepository struct {
	database *gorm.DB
}

func NewPasswordResetRepository(database *gorm.DB) *PasswordResetRepository {
	return &PasswordResetRepository{database: database}
}

func (repo *PasswordResetRepository) Create(reset *models.PasswordReset) error {
	return repo.database.Create(reset).Error
}

// FindValid returns the token only while it is unused and unexpired.
func (repo *PasswordResetRepository) FindValid(key string, now time.Time) (models.PasswordReset, error) {
	var reset models.PasswordReset
	if err := repo.database.
		Where("key = ? AND used = ? AND expires_at > ?", key, false, now).
		First(&reset).Error; err != nil {
		return models.PasswordReset{}, err
	}
	return reset, nil
}

func (repo *PasswordResetRepository) MarkUsed(resetID uint) error {
	return repo.database.Model(&models.PasswordReset{}).
		Where("id = ?", resetID).
		Update("used", true).Error
}
