package db

import (
	"github.com/kcouncil/portal/internal/models"
	"gorm.io/gorm"
)

type SettingRepository struct {
	database *gorm.DB
}

func NewSettingRepository(database *gorm.DB) *SettingRepository {
	return &SettingRepository{database: database}
}

// All returns the whole settings table as a map for template injection.
func (repo *SettingRepository) All() (map[string]string, error) {
	settings := make([]models.Setting, 0)
	if err := repo.database.Find(&settings).Error; err != nil {
		return nil, err
	}
	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		values[setting.Key] = setting.Value
	}
	return values, nil
}

func (repo *SettingRepository) List() ([]models.Setting, error) {
	settings := make([]models.Setting, 0)
	if err := repo.database.Order("key").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (repo *SettingRepository) Exists(key string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Setting{}).
		Where("key = ?", key).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *SettingRepository) Create(setting *models.Setting) error {
	return repo.database.Create(setting).Error
}

// UpdateValue changes an existing key and reports whether it matched one.
func (repo *SettingRepository) UpdateValue(key string, value string) (bool, error) {
	result := repo.database.Model(&models.Setting{}).
		Where("key = ?", key).
		Update("value", value)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
