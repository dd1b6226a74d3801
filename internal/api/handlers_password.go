package api

import (
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kcouncil/portal/internal/services"
	"go.uber.org/zap"
)

const (
	weakPasswordMessage    = "Password must be at least 10 characters long and contain both upper and lower case letters."
	invalidResetKeyMessage = "Invalid or expired reset key."
)

func (handler *Handler) ShowForgotPasswordPage(c *fiber.Ctx) error {
	return handler.render(c, "forgot_password", fiber.Map{})
}

func (handler *Handler) ForgotPassword(c *fiber.Ctx) error {
	email := c.FormValue("email")
	membershipNumber := c.FormValue("membership_number")

	key, user, err := handler.auth.StartPasswordReset(email, membershipNumber, time.Now())
	if errors.Is(err, services.ErrNoMatchingUser) {
		return handler.render(c, "forgot_password", fiber.Map{
			"Error": "Invalid email or membership number.",
		})
	}
	if err != nil {
		return err
	}

	resetURL := handler.baseURL + "/reset-password?key=" + url.QueryEscape(key)
	if err := handler.mailer.SendPasswordReset(user.EmailValue(), resetURL); err != nil {
		handler.logger.Error("reset mail dispatch failed",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return handler.render(c, "forgot_password", fiber.Map{
			"Error": "Could not send reset email. Please contact an administrator.",
		})
	}

	return handler.render(c, "forgot_password", fiber.Map{
		"Message": "Password reset link sent to your email.",
	})
}

func (handler *Handler) ShowResetPasswordPage(c *fiber.Ctx) error {
	key := c.Query("key")
	if err := handler.auth.ValidateResetKey(key, time.Now()); err != nil {
		return handler.render(c, "reset_password", fiber.Map{"Error": invalidResetKeyMessage})
	}
	return handler.render(c, "reset_password", fiber.Map{"Key": key})
}

func (handler *Handler) ResetPassword(c *fiber.Ctx) error {
	key := c.FormValue("key")
	newPassword := c.FormValue("new_password")
	confirmPassword := c.FormValue("confirm_password")

	err := handler.auth.ResetPassword(key, newPassword, confirmPassword, time.Now())
	switch {
	case errors.Is(err, services.ErrPasswordMismatch):
		return handler.render(c, "reset_password", fiber.Map{"Key": key, "Error": "Passwords do not match."})
	case errors.Is(err, services.ErrWeakPassword):
		return handler.render(c, "reset_password", fiber.Map{"Key": key, "Error": weakPasswordMessage})
	case errors.Is(err, services.ErrResetKeyInvalid):
		return handler.render(c, "reset_password", fiber.Map{"Error": invalidResetKeyMessage})
	case err != nil:
		return err
	}

	return handler.render(c, "login", fiber.Map{
		"Message": "Password has been reset successfully. Please log in.",
	})
}

func (handler *Handler) ShowChangePasswordPage(c *fiber.Ctx) error {
	return handler.render(c, "change_password", fiber.Map{})
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	err := handler.auth.ChangePassword(*user,
		c.FormValue("current_password"),
		c.FormValue("new_password"),
		c.FormValue("confirm_password"),
	)
	switch {
	case errors.Is(err, services.ErrPasswordMismatch):
		return handler.render(c, "change_password", fiber.Map{"Error": "New passwords do not match"})
	case errors.Is(err, services.ErrWeakPassword):
		return handler.render(c, "change_password", fiber.Map{"Error": weakPasswordMessage})
	case errors.Is(err, services.ErrWrongCurrentPassword):
		return handler.render(c, "change_password", fiber.Map{"Error": "Incorrect current password"})
	case err != nil:
		return err
	}

	return handler.render(c, "change_password", fiber.Map{
		"Message": "Password changed successfully",
	})
}
