package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/kcouncil/portal/internal/media"
	"github.com/kcouncil/portal/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusNotFound, "not found")
	}
	return uint(id), nil
}

func (handler *Handler) ListPages(c *fiber.Ctx) error {
	pages, err := handler.repos.Pages.List()
	if err != nil {
		return err
	}
	return handler.render(c, "admin_pages", fiber.Map{"Pages": pages})
}

func (handler *Handler) ShowNewPage(c *fiber.Ctx) error {
	return handler.render(c, "edit_page", fiber.Map{})
}

func (handler *Handler) CreatePage(c *fiber.Ctx) error {
	page := models.Page{
		Title:    c.FormValue("title"),
		Slug:     c.FormValue("slug"),
		Content:  c.FormValue("content"),
		IsPublic: formBool(c, "is_public"),
	}
	if err := handler.repos.Pages.Create(&page); err != nil {
		return handler.render(c, "edit_page", fiber.Map{
			"Page":  page,
			"Error": "Could not create page: slug already exists",
		})
	}
	return c.Redirect("/admin/pages", fiber.StatusSeeOther)
}

func (handler *Handler) ShowEditPage(c *fiber.Ctx) error {
	pageID, err := parseIDParam(c)
	if err != nil {
		return err
	}
	page, err := handler.repos.Pages.FindByID(pageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	}
	if err != nil {
		return err
	}
	return handler.render(c, "edit_page", fiber.Map{"Page": page})
}

// PageContent feeds the admin editor with the raw page body as JSON.
func (handler *Handler) PageContent(c *fiber.Ctx) error {
	pageID, err := parseIDParam(c)
	if err != nil {
		return err
	}
	page, err := handler.repos.Pages.FindByID(pageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Page not found"})
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"content": page.Content})
}

func (handler *Handler) UpdatePage(c *fiber.Ctx) error {
	pageID, err := parseIDParam(c)
	if err != nil {
		return err
	}
	page, err := handler.repos.Pages.FindByID(pageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	}
	if err != nil {
		return err
	}

	page.Title = c.FormValue("title")
	page.Slug = c.FormValue("slug")
	page.Content = c.FormValue("content")
	page.IsPublic = formBool(c, "is_public")
	if err := handler.repos.Pages.Save(&page); err != nil {
		return handler.render(c, "edit_page", fiber.Map{
			"Page":  page,
			"Error": "Could not save page: slug already exists",
		})
	}

	handler.deleteRequestedImages(c.FormValue("deleted_images"))
	return c.Redirect("/admin/pages", fiber.StatusSeeOther)
}

// deleteRequestedImages removes the media files the editor marked for
// deletion. Traversal attempts and filesystem errors are logged, never
// surfaced; the page save has already succeeded.
func (handler *Handler) deleteRequestedImages(deletedImages string) {
	if deletedImages == "" {
		return
	}
	for _, imagePath := range strings.Split(deletedImages, ",") {
		imagePath = strings.TrimSpace(imagePath)
		if imagePath == "" {
			continue
		}
		if err := handler.media.DeleteFile(imagePath); errors.Is(err, media.ErrOutsideRoot) {
			handler.logger.Warn("rejected media deletion outside root",
				zap.String("path", imagePath),
			)
		}
	}
}

func (handler *Handler) DeletePage(c *fiber.Ctx) error {
	pageID, err := parseIDParam(c)
	if err != nil {
		return err
	}
	page, err := handler.repos.Pages.FindByID(pageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Redirect("/admin/pages", fiber.StatusSeeOther)
	}
	if err != nil {
		return err
	}

	if err := handler.repos.Pages.Delete(page.ID); err != nil {
		return err
	}
	if page.Slug != "" {
		if err := handler.media.DeleteSlugDir(page.Slug); errors.Is(err, media.ErrOutsideRoot) {
			handler.logger.Warn("rejected media directory deletion outside root",
				zap.String("slug", page.Slug),
			)
		}
	}
	return c.Redirect("/admin/pages", fiber.StatusSeeOther)
}

// formBool reads an HTML checkbox: any non-empty value except "false" and
// "0" counts as checked.
func formBool(c *fiber.Ctx, field string) bool {
	value := strings.ToLower(strings.TrimSpace(c.FormValue(field)))
	return value != "" && value != "false" && value != "0"
}
