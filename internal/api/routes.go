package api

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts every handler. The slug catch-all MUST stay last
// so it never shadows a named route.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Use(handler.ResolveUser)

	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	app.Get("/", handler.ShowHome)
	app.Get("/about", handler.ShowAbout)
	app.Get("/calendar", handler.ShowCalendar)
	app.Get("/members", handler.LoginRequired, handler.ShowMembers)

	app.Get("/login", handler.ShowLoginPage)
	app.Post("/login", handler.Login)
	app.Get("/logout", handler.Logout)
	app.Get("/forgot-password", handler.ShowForgotPasswordPage)
	app.Post("/forgot-password", handler.ForgotPassword)
	app.Get("/reset-password", handler.ShowResetPasswordPage)
	app.Post("/reset-password", handler.ResetPassword)
	app.Get("/change-password", handler.LoginRequired, handler.ShowChangePasswordPage)
	app.Post("/change-password", handler.LoginRequired, handler.ChangePassword)

	admin := app.Group("/admin", handler.AdminRequired)
	admin.Get("/import", handler.ShowImportPage)
	admin.Post("/import", handler.ImportUsers)
	admin.Get("/pages", handler.ListPages)
	admin.Get("/pages/new", handler.ShowNewPage)
	admin.Post("/pages/new", handler.CreatePage)
	admin.Get("/pages/:id/edit", handler.ShowEditPage)
	admin.Post("/pages/:id/edit", handler.UpdatePage)
	admin.Post("/pages/:id/delete", handler.DeletePage)
	admin.Get("/api/pages/:id", handler.PageContent)
	admin.Get("/users", handler.ListUsers)
	admin.Get("/users/new", handler.ShowNewUser)
	admin.Post("/users/new", handler.CreateUser)
	admin.Get("/users/:id/edit", handler.ShowEditUser)
	admin.Post("/users/:id/edit", handler.UpdateUser)
	admin.Post("/users/:id/delete", handler.DeleteUser)
	admin.Get("/settings", handler.ListSettings)
	admin.Post("/settings", handler.UpdateSettings)
	admin.Post("/upload-image", handler.UploadImage)

	app.Get("/media/*", handler.ServeMedia)
	app.Get("/:slug", handler.ShowPage)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
