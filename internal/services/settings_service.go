package services

import (
	"strings"

	"github.com/kcouncil/portal/internal/db"
	"github.com/kcouncil/portal/internal/models"
)

// Form fields reserved for inserting a brand-new setting.
const (
	settingsFormNewKey   = "new_key"
	settingsFormNewValue = "new_value"
)

// SettingsService applies the admin settings form: every existing key
// present in the payload is updated, and one new key/value pair may be
// inserted per submission. Unknown keys in the payload are ignored.
type SettingsService struct {
	settings *db.SettingRepository
}

func NewSettingsService(settings *db.SettingRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

func (service *SettingsService) ApplyForm(form map[string]string) error {
	for key, value := range form {
		if key == settingsFormNewKey || key == settingsFormNewValue {
			continue
		}
		if _, err := service.settings.UpdateValue(key, value); err != nil {
			return err
		}
	}

	newKey := strings.TrimSpace(form[settingsFormNewKey])
	newValue := form[settingsFormNewValue]
	if newKey == "" || newValue == "" {
		return nil
	}

	exists, err := service.settings.Exists(newKey)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return service.settings.Create(&models.Setting{Key: newKey, Value: newValue})
}
