package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kcouncil/portal/internal/services"
)

const invalidCredentialsMessage = "Invalid credentials"

func (handler *Handler) ShowLoginPage(c *fiber.Ctx) error {
	return handler.render(c, "login", fiber.Map{})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := handler.auth.Login(username, password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return handler.render(c, "login", fiber.Map{"Error": invalidCredentialsMessage})
	}
	if err != nil {
		return err
	}

	handler.setSessionCookie(c, user.ID)
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearSessionCookie(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}

// setSessionCookie attaches the numeric user id with no expiry. See the
// note on sessionCookieName before changing the format.
func (handler *Handler) setSessionCookie(c *fiber.Ctx, userID uint) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    strconv.FormatUint(uint64(userID), 10),
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func (handler *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
