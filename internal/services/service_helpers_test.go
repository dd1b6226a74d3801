package services

import (
	"path/filepath"
	"testing"

	"github.com/kcouncil/portal/internal/db"
	"github.com/kcouncil/portal/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "portal-test.db"))
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	database := newTestDB(t)
	return NewAuthService(database), database
}

// seedUser creates a user row; password == "" leaves the credential absent.
func seedUser(t *testing.T, database *gorm.DB, membershipNumber string, email string, password string) models.User {
	t.Helper()

	user := models.User{
		MembershipNumber: membershipNumber,
		FirstName:        "Test",
		LastName:         "Member",
	}
	if email != "" {
		user.Email = &email
	}
	require.NoError(t, database.Create(&user).Error)

	if password != "" {
		hash, err := HashPassword(password)
		require.NoError(t, err)
		require.NoError(t, database.Create(&models.Credential{
			MembershipNumber: membershipNumber,
			PasswordHash:     hash,
		}).Error)
	}
	return user
}

func countRows(t *testing.T, database *gorm.DB, model any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.Model(model).Count(&count).Error)
	return count
}
