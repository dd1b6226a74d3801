// Package api wires the portal's HTTP surface: one set of handlers for
// both the member-facing pages and the admin area.
package api

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/kcouncil/portal/internal/db"
	"github.com/kcouncil/portal/internal/media"
	"github.com/kcouncil/portal/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// The session is the bare numeric user id, trusted as presented.
	// Replacing it with a signed, expiring token is a known follow-up
	// that needs a coordinated rollout with the deployed clients.
	sessionCookieName = "user_id"

	contextUserKey      = "current_user"
	contextRequestIDKey = "request_id"
)

// ResetMailer dispatches the password-reset side channel. The production
// implementation is internal/mailer; tests substitute a recorder.
type ResetMailer interface {
	SendPasswordReset(to string, resetURL string) error
}

type Handler struct {
	database  *gorm.DB
	logger    *zap.Logger
	templates map[string]*template.Template
	media     *media.Store
	mailer    ResetMailer
	baseURL   string

	repos    *db.Repositories
	auth     *services.AuthService
	importer *services.ImportService
	settings *services.SettingsService
}

func NewHandler(
	database *gorm.DB,
	logger *zap.Logger,
	templateDir string,
	mediaStore *media.Store,
	resetMailer ResetMailer,
	baseURL string,
) (*Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	funcMap := template.FuncMap{
		"raw": func(value string) template.HTML {
			return template.HTML(value)
		},
	}

	templates := make(map[string]*template.Template)
	pages := []string{
		"page",
		"login",
		"forgot_password",
		"reset_password",
		"change_password",
		"members",
		"import",
		"admin_pages",
		"edit_page",
		"admin_users",
		"edit_user",
		"admin_settings",
	}
	for _, page := range pages {
		parsed, err := template.New("base").Funcs(funcMap).ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, page+".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = parsed
	}

	repos := db.NewRepositories(database)
	return &Handler{
		database:  database,
		logger:    logger,
		templates: templates,
		media:     mediaStore,
		mailer:    resetMailer,
		baseURL:   baseURL,
		repos:     repos,
		auth:      services.NewAuthService(database),
		importer:  services.NewImportService(database),
		settings:  services.NewSettingsService(repos.Settings),
	}, nil
}

// render executes a page template inside base.html, injecting the current
// user and the site-wide settings. A settings load failure is ignored so a
// broken settings table cannot take every page down.
func (handler *Handler) render(c *fiber.Ctx, name string, data fiber.Map) error {
	tmpl, ok := handler.templates[name]
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("template not found")
	}

	payload := fiber.Map{}
	for key, value := range data {
		payload[key] = value
	}
	if _, present := payload["User"]; !present {
		user, _ := currentUser(c)
		payload["User"] = user
	}
	settings, err := handler.repos.Settings.All()
	if err != nil {
		settings = map[string]string{}
	}
	payload["Settings"] = settings
	payload["Path"] = c.Path()

	var output bytes.Buffer
	if err := tmpl.ExecuteTemplate(&output, "base", payload); err != nil {
		handler.logger.Error("render template failed", zap.String("template", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render template")
	}
	c.Type("html", "utf-8")
	return c.Send(output.Bytes())
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
