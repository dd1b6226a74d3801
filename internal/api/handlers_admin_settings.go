package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListSettings(c *fiber.Ctx) error {
	settings, err := handler.repos.Settings.List()
	if err != nil {
		return err
	}
	return handler.render(c, "admin_settings", fiber.Map{"AllSettings": settings})
}

func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	form := map[string]string{}
	c.Request().PostArgs().VisitAll(func(key []byte, value []byte) {
		form[string(key)] = string(value)
	})

	if err := handler.settings.ApplyForm(form); err != nil {
		return err
	}
	return c.Redirect("/admin/settings", fiber.StatusSeeOther)
}
