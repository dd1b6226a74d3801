package services

import (
	"errors"

	"github.com/kcouncil/portal/internal/models"
	"gorm.io/gorm"
)

// SetupService seeds the first-run state: default pages and settings, a
// bootstrap administrator when the users table is empty, and a default
// credential for any user missing one.
type SetupService struct {
	database *gorm.DB
}

func NewSetupService(database *gorm.DB) *SetupService {
	return &SetupService{database: database}
}

func defaultPages() []models.Page {
	return []models.Page{
		{Title: "Home", Slug: "home", Content: "<h1>Welcome to the Council Portal</h1>", IsPublic: true},
		{Title: "About", Slug: "about", Content: "<h1>About Us</h1><p>Council information goes here.</p>", IsPublic: true},
		{Title: "Calendar", Slug: "calendar", Content: "<h1>Calendar</h1><p>Upcoming events.</p>", IsPublic: false},
	}
}

func defaultSettings() []models.Setting {
	return []models.Setting{
		{Key: "council_name", Value: "My Council"},
		{Key: "council_number", Value: "1234"},
		{Key: "app_title", Value: "Council Portal"},
		{Key: "email_text", Value: "Welcome to our portal"},
	}
}

// Seed is idempotent; it only fills gaps and never overwrites existing rows.
func (service *SetupService) Seed(adminUsername string, adminPassword string) error {
	return service.database.Transaction(func(tx *gorm.DB) error {
		for _, page := range defaultPages() {
			var existing models.Page
			err := tx.Where("slug = ?", page.Slug).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := tx.Create(&page).Error; err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}
		}

		for _, setting := range defaultSettings() {
			var existing models.Setting
			err := tx.Where("key = ?", setting.Key).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := tx.Create(&setting).Error; err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}
		}

		var userCount int64
		if err := tx.Model(&models.User{}).Count(&userCount).Error; err != nil {
			return err
		}
		if userCount == 0 {
			email := "admin@example.com"
			admin := models.User{
				MembershipNumber: adminUsername,
				FirstName:        "Admin",
				LastName:         "User",
				Email:            &email,
				IsAdmin:          true,
			}
			if err := tx.Create(&admin).Error; err != nil {
				return err
			}
			hash, err := HashPassword(adminPassword)
			if err != nil {
				return err
			}
			if err := tx.Create(&models.Credential{
				MembershipNumber: adminUsername,
				PasswordHash:     hash,
			}).Error; err != nil {
				return err
			}
		}

		return backfillMissingCredentials(tx)
	})
}

// backfillMissingCredentials gives every user without a credential row one
// hashing their membership number, matching the lazy login-time default.
func backfillMissingCredentials(tx *gorm.DB) error {
	users := make([]models.User, 0)
	if err := tx.
		Where("membership_number <> '' AND membership_number NOT IN (?)",
			tx.Model(&models.Credential{}).Select("membership_number")).
		Find(&users).Error; err != nil {
		return err
	}

	for _, user := range users {
		hash, err := HashPassword(user.MembershipNumber)
		if err != nil {
			return err
		}
		if err := tx.Create(&models.Credential{
			MembershipNumber: user.MembershipNumber,
			PasswordHash:     hash,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}
