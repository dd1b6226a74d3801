package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func (handler *Handler) ShowHome(c *fiber.Ctx) error {
	return handler.renderNamedPage(c, "home")
}

func (handler *Handler) ShowAbout(c *fiber.Ctx) error {
	return handler.renderNamedPage(c, "about")
}

func (handler *Handler) ShowCalendar(c *fiber.Ctx) error {
	return handler.renderNamedPage(c, "calendar")
}

// renderNamedPage renders a well-known page slug; a missing row renders an
// empty shell rather than failing.
func (handler *Handler) renderNamedPage(c *fiber.Ctx, slug string) error {
	data := fiber.Map{}
	if page, err := handler.repos.Pages.FindBySlug(slug); err == nil {
		data["Page"] = page
	}
	return handler.render(c, "page", data)
}

func (handler *Handler) ShowMembers(c *fiber.Ctx) error {
	members, err := handler.repos.Users.ListSortedByName()
	if err != nil {
		return err
	}
	return handler.render(c, "members", fiber.Map{"Members": members})
}

// ShowPage is the slug catch-all, registered after every named route.
func (handler *Handler) ShowPage(c *fiber.Ctx) error {
	page, err := handler.repos.Pages.FindBySlug(c.Params("slug"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	}
	if err != nil {
		return err
	}

	if !page.IsPublic {
		if _, ok := currentUser(c); !ok {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
	}
	return handler.render(c, "page", fiber.Map{"Page": page})
}

// ServeMedia streams an uploaded file; anything outside the media root or
// not a regular file is a 404.
func (handler *Handler) ServeMedia(c *fiber.Ctx) error {
	path, err := handler.media.FilePath(c.Params("*"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "File not found")
	}
	return c.SendFile(path)
}
