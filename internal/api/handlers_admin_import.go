package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ShowImportPage(c *fiber.Ctx) error {
	return handler.render(c, "import", fiber.Map{})
}

// ImportUsers runs the CSV bulk import. The import is all-or-nothing; on
// failure the raw error text is shown so the admin can fix the export.
func (handler *Handler) ImportUsers(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return handler.render(c, "import", fiber.Map{"Error": "No file uploaded"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return handler.render(c, "import", fiber.Map{"Error": err.Error()})
	}
	defer file.Close()

	created, err := handler.importer.ImportCSV(file)
	if err != nil {
		return handler.render(c, "import", fiber.Map{"Error": err.Error()})
	}

	return handler.render(c, "import", fiber.Map{
		"Message": fmt.Sprintf("Import successful. %d users added.", created),
	})
}
