package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Credentials *CredentialRepository
	Resets      *PasswordResetRepository
	Pages       *PageRepository
	Settings    *SettingRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Credentials: NewCredentialRepository(database),
		Resets:      NewPasswordResetRepository(database),
		Pages:       NewPageRepository(database),
		Settings:    NewSettingRepository(database),
	}
}
