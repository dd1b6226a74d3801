package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/kcouncil/portal/internal/db"
	"github.com/kcouncil/portal/internal/models"
	"github.com/kcouncil/portal/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := handler.repos.Users.ListSortedByName()
	if err != nil {
		return err
	}
	return handler.render(c, "admin_users", fiber.Map{"Users": users})
}

func (handler *Handler) ShowNewUser(c *fiber.Ctx) error {
	return handler.render(c, "edit_user", fiber.Map{})
}

func (handler *Handler) CreateUser(c *fiber.Ctx) error {
	membershipNumber := strings.TrimSpace(c.FormValue("membership_number"))

	exists, err := handler.repos.Users.ExistsByMembershipNumber(membershipNumber)
	if err != nil {
		return err
	}
	if exists {
		return handler.render(c, "edit_user", fiber.Map{
			"Error": "Membership number already exists",
		})
	}

	email := optionalField(c.FormValue("email"))
	if email != nil {
		taken, err := handler.repos.Users.ExistsByEmail(*email)
		if err != nil {
			return err
		}
		if taken {
			return handler.render(c, "edit_user", fiber.Map{
				"Error": "Email already exists",
			})
		}
	}

	// New users start with the membership number as their password.
	hash, err := services.HashPassword(membershipNumber)
	if err != nil {
		return err
	}

	user := models.User{
		MembershipNumber: membershipNumber,
		FirstName:        c.FormValue("first_name"),
		LastName:         c.FormValue("last_name"),
		Email:            email,
		PhoneNumber:      c.FormValue("phone_number"),
		Position:         normalizePosition(c.FormValue("position")),
		IsAdmin:          formBool(c, "is_admin"),
	}

	// The user row and its default credential land together or not at all.
	if err := handler.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Credential{
			MembershipNumber: membershipNumber,
			PasswordHash:     hash,
		}).Error
	}); err != nil {
		return err
	}

	return c.Redirect("/admin/users", fiber.StatusSeeOther)
}

func (handler *Handler) ShowEditUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c)
	if err != nil {
		return err
	}
	editUser, err := handler.repos.Users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		return err
	}
	return handler.render(c, "edit_user", fiber.Map{"EditUser": editUser})
}

func (handler *Handler) UpdateUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c)
	if err != nil {
		return err
	}
	editUser, err := handler.repos.Users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		return err
	}

	membershipNumber := strings.TrimSpace(c.FormValue("membership_number"))
	if existing, err := handler.repos.Users.FindByMembershipNumber(membershipNumber); err == nil && existing.ID != userID {
		return handler.render(c, "edit_user", fiber.Map{
			"EditUser": editUser,
			"Error":    "Membership number already exists",
		})
	}

	email := optionalField(c.FormValue("email"))
	if email != nil {
		if existing, err := handler.repos.Users.FindByEmail(*email); err == nil && existing.ID != userID {
			return handler.render(c, "edit_user", fiber.Map{
				"EditUser": editUser,
				"Error":    "Email already exists",
			})
		}
	}

	oldMembershipNumber := editUser.MembershipNumber
	editUser.MembershipNumber = membershipNumber
	editUser.FirstName = c.FormValue("first_name")
	editUser.LastName = c.FormValue("last_name")
	editUser.Email = email
	editUser.PhoneNumber = c.FormValue("phone_number")
	editUser.Position = normalizePosition(c.FormValue("position"))
	editUser.IsAdmin = formBool(c, "is_admin")

	// The credential is keyed by membership number and must follow it in
	// the same transaction, or the lazy login path would mint a default
	// password for the renamed user.
	if err := handler.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&editUser).Error; err != nil {
			return err
		}
		if oldMembershipNumber != membershipNumber {
			return db.NewCredentialRepository(tx).Rekey(oldMembershipNumber, membershipNumber)
		}
		return nil
	}); err != nil {
		return err
	}

	return c.Redirect("/admin/users", fiber.StatusSeeOther)
}

func (handler *Handler) DeleteUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	// Administrators cannot delete their own account.
	admin, _ := currentUser(c)
	if admin != nil && admin.ID == userID {
		return c.Redirect("/admin/users", fiber.StatusSeeOther)
	}

	if err := handler.repos.Users.DeleteWithCredential(userID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return c.Redirect("/admin/users", fiber.StatusSeeOther)
}

// optionalField maps a blank form value to absent.
func optionalField(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// normalizePosition additionally treats the literal "none" as absent; the
// roster exports use it as a placeholder. Email gets no such shortcut.
func normalizePosition(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.EqualFold(trimmed, "none") {
		return nil
	}
	return &trimmed
}
